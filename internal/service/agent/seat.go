package agent

import (
	"fmt"

	"rummy-service/internal/model"
	appErr "rummy-service/pkg/errors"
)

// Strategy selects how a seat picks its discard.
type Strategy string

const (
	// StrategyPlain sheds the highest-value loose card.
	StrategyPlain Strategy = "plain"
	// StrategyRiskAware sheds the loose card least useful to the opponent.
	StrategyRiskAware Strategy = "risk_aware"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPlain, StrategyRiskAware:
		return Strategy(s), nil
	case "":
		return StrategyPlain, nil
	default:
		return "", fmt.Errorf("%w: %q", appErr.ErrInvalidStrategy, s)
	}
}

const (
	AgentName    = "agent"
	OpponentName = "opponent"
)

// Seat describes one player in terms of deck locations.
type Seat struct {
	Name string
	// Hand lists every location that makes up the player's hand.
	Hand []model.Location
	// Draw receives cards drawn from the pick pile.
	Draw model.Location
	// Take receives cards picked up from the discard pile.
	Take     model.Location
	Strategy Strategy
	Wildness WildnessContext
}

// AgentSeat is the AI-driven player. Everything it holds is in OwnHand.
func AgentSeat(strategy Strategy) Seat {
	return Seat{
		Name:     AgentName,
		Hand:     []model.Location{model.OwnHand},
		Draw:     model.OwnHand,
		Take:     model.OwnHand,
		Strategy: strategy,
		Wildness: DefaultWildnessContext(),
	}
}

// OpponentSeat is the other player. Cards it picks up from the discard pile
// are visible to the agent, cards it draws are not.
func OpponentSeat(strategy Strategy) Seat {
	return Seat{
		Name:     OpponentName,
		Hand:     []model.Location{model.OpponentUnknown, model.OpponentKnown},
		Draw:     model.OpponentUnknown,
		Take:     model.OpponentKnown,
		Strategy: strategy,
		Wildness: WildnessContext{
			Familiar:  []model.Location{model.OpponentUnknown, model.OpponentKnown, model.Discard},
			Reachable: []model.Location{model.PickPile},
		},
	}
}

// Cards snapshots the seat's hand.
func (s Seat) Cards(deck *model.Deck) []model.Card {
	return deck.Cards(s.Hand...)
}
