package agent

import (
	"slices"

	"rummy-service/internal/model"
)

// WildnessContext names the locations Wildness reads. Familiar cards are the
// ones the thrower has seen; Reachable cards are the ones the opponent holds
// or may still draw.
type WildnessContext struct {
	Familiar  []model.Location
	Reachable []model.Location
}

// DefaultWildnessContext is the agent's view: its own hand and the discards
// are familiar, the opponent's known cards and the pick pile are reachable.
func DefaultWildnessContext() WildnessContext {
	return WildnessContext{
		Familiar:  []model.Location{model.OwnHand, model.Discard},
		Reachable: []model.Location{model.OpponentKnown, model.PickPile},
	}
}

const runWindow = 3

// Wildness estimates how useful card would be to the opponent; lower is
// safer to discard. It adds a rank term (3 when no other card of the rank is
// familiar, 1 for one, 0 for two or more) to the number of three-card runs
// through card that could be completed from reachable cards.
func Wildness(deck *model.Deck, card model.Card, wctx WildnessContext) int {
	return rankFamiliarity(deck, card, wctx.Familiar) + runPotential(deck, card, wctx.Reachable)
}

func rankFamiliarity(deck *model.Deck, card model.Card, familiar []model.Location) int {
	seen := 0
	for _, s := range model.Suits {
		other := model.Card{Rank: card.Rank, Suit: s}
		if other == card {
			continue
		}
		if slices.Contains(familiar, deck.Location(other)) {
			seen++
		}
	}
	switch seen {
	case 0:
		return 3
	case 1:
		return 1
	default:
		return 0
	}
}

func runPotential(deck *model.Deck, card model.Card, reachable []model.Location) int {
	present := func(r int) bool {
		if r < 0 || r >= model.NumRanks {
			return false
		}
		if r == int(card.Rank) {
			return true
		}
		return slices.Contains(reachable, deck.Location(model.Card{Rank: model.Rank(r), Suit: card.Suit}))
	}

	windows := 0
	for start := int(card.Rank) - (runWindow - 1); start <= int(card.Rank); start++ {
		full := true
		for r := start; r < start+runWindow; r++ {
			if !present(r) {
				full = false
				break
			}
		}
		if full {
			windows++
		}
	}
	return windows
}
