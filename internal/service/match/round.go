package match

import (
	"context"
	"fmt"
	"math/rand"

	"rummy-service/internal/model"
	"rummy-service/internal/service/agent"
	"rummy-service/internal/service/game"
	appErr "rummy-service/pkg/errors"
	"rummy-service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxTurns is the default turn cap; both seats can keep trading the top
	// discard.
	MaxTurns = 200

	handSize = 10
	// A round ends without score once the pick pile is down to this many cards.
	minPickPile = 2
)

// Seat indexes.
const (
	SeatAgent    = 0
	SeatOpponent = 1
)

// KnockThreshold derives the go-out limit from the card that opens the
// discard pile. An ace means the round can only be won with zero deadwood.
func KnockThreshold(c model.Card) int {
	v := min(int(c.Rank)+1, 10)
	if v == 1 {
		return 0
	}
	return v
}

// Deal hands ten cards to each seat in draw order, then turns the next card
// up as the first discard.
func Deal(deck *model.Deck, seats [2]agent.Seat) (model.Card, error) {
	for i := 0; i < 2*handSize; i++ {
		seat := seats[i/handSize]
		if _, ok := deck.Draw(seat.Draw); !ok {
			return model.Card{}, fmt.Errorf("%w: pick pile ran out while dealing", appErr.ErrInvalidConfig)
		}
	}
	top, ok := deck.Draw(model.Discard)
	if !ok {
		return model.Card{}, fmt.Errorf("%w: no card left to open the discard pile", appErr.ErrInvalidConfig)
	}
	return top, nil
}

type RoundConfig struct {
	Agent    agent.Strategy
	Opponent agent.Strategy
	Observer Observer
	// MaxTurns caps the round; zero means MaxTurns.
	MaxTurns int
}

type Round struct {
	id       string
	deck     *model.Deck
	seats    [2]agent.Seat
	top      model.Card
	knock    int
	turn     int
	maxTurns int
	observer Observer
	log      *zap.Logger
}

// NewRound shuffles a fresh deck from rng and deals it.
func NewRound(rng *rand.Rand, cfg RoundConfig) (*Round, error) {
	return newRound(model.NewShuffledDeck(rng), cfg)
}

func newRound(deck *model.Deck, cfg RoundConfig) (*Round, error) {
	seats := [2]agent.Seat{
		agent.AgentSeat(cfg.Agent),
		agent.OpponentSeat(cfg.Opponent),
	}
	top, err := Deal(deck, seats)
	if err != nil {
		return nil, err
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}
	id := uuid.NewString()
	r := &Round{
		id:       id,
		deck:     deck,
		seats:    seats,
		top:      top,
		knock:    KnockThreshold(top),
		maxTurns: maxTurns,
		observer: cfg.Observer,
		log:      logger.Round(id),
	}
	r.emit(Event{Type: EventDeal, Card: top.String(), Knock: r.knock})
	return r, nil
}

func (r *Round) ID() string {
	return r.id
}

func (r *Round) Knock() int {
	return r.knock
}

// Deck exposes a snapshot of the card locations.
func (r *Round) Deck() *model.Deck {
	return r.deck.Clone()
}

// Play alternates turns, agent first, until a seat goes out or the pick pile
// runs low. A round still going at the turn cap returns ErrRoundNotTerminated
// alongside the partial result.
func (r *Round) Play(ctx context.Context) (Result, error) {
	r.log.Debug("round started",
		zap.Int("knock", r.knock),
		zap.String("discard", r.top.String()),
	)

	for r.turn < r.maxTurns {
		if err := ctx.Err(); err != nil {
			return r.result(OutcomeAborted, -1), err
		}
		if r.deck.Count(model.PickPile) <= minPickPile {
			r.emit(Event{Type: EventExhausted})
			r.log.Debug("pick pile exhausted", zap.Int("turns", r.turn))
			return r.result(OutcomeExhausted, -1), nil
		}

		seat := r.turn % 2
		out, err := r.takeTurn(seat)
		r.turn++
		if err != nil {
			return r.result(OutcomeAborted, -1), err
		}
		if out {
			res := r.result(OutcomeGoneOut, seat)
			r.log.Debug("round won",
				zap.String("winner", res.Winner),
				zap.Int("score", res.Score),
				zap.Int("turns", res.Turns),
			)
			return res, nil
		}
	}

	r.log.Warn("round hit turn cap", zap.Int("turns", r.turn))
	return r.result(OutcomeAborted, -1), fmt.Errorf("%w: %d turns", appErr.ErrRoundNotTerminated, r.turn)
}

// takeTurn plays one turn for seat and reports whether it went out.
func (r *Round) takeTurn(i int) (bool, error) {
	seat := r.seats[i]

	if r.goOut(i) {
		return true, nil
	}

	if agent.ShouldTakeDiscard(r.deck, seat, r.top) {
		r.deck.SetLocation(r.top, seat.Take)
		r.emit(Event{Seat: seat.Name, Type: EventTakeDiscard, Card: r.top.String()})
	} else {
		drawn, ok := r.deck.Draw(seat.Draw)
		if !ok {
			return false, fmt.Errorf("%w: pick pile empty on turn %d", appErr.ErrCardNotFound, r.turn)
		}
		ev := Event{Seat: seat.Name, Type: EventDraw}
		if i == SeatAgent {
			ev.Card = drawn.String()
		}
		r.emit(ev)
	}

	throw, ok := agent.ChooseDiscard(r.deck, seat)
	if !ok {
		return false, fmt.Errorf("%w: %s has no card to throw", appErr.ErrEmptyHand, seat.Name)
	}
	r.deck.SetLocation(throw, model.Discard)
	r.top = throw
	r.emit(Event{Seat: seat.Name, Type: EventDiscard, Card: throw.String()})

	return r.goOut(i), nil
}

func (r *Round) goOut(i int) bool {
	seat := r.seats[i]
	best, points, ok := agent.CanGoOut(seat.Cards(r.deck), r.knock)
	if !ok {
		return false
	}
	r.emit(Event{
		Seat:         seat.Name,
		Type:         EventGoOut,
		Deadwood:     points,
		Organization: best.Sorted().String(),
	})
	return true
}

func (r *Round) result(outcome Outcome, winner int) Result {
	res := Result{
		RoundID: r.id,
		Outcome: outcome,
		Knock:   r.knock,
		Turns:   r.turn,
	}
	for i, seat := range r.seats {
		best, _ := game.BestOrganization(game.Organizations(seat.Cards(r.deck)))
		res.Deadwood[i] = game.DeadwoodPoints(best)
	}
	if outcome == OutcomeGoneOut {
		res.WinnerSeat = winner
		res.Winner = r.seats[winner].Name
		res.Score = res.Deadwood[1-winner]
	} else {
		res.WinnerSeat = -1
	}
	return res
}

func (r *Round) emit(ev Event) {
	if r.observer == nil {
		return
	}
	ev.RoundID = r.id
	ev.Turn = r.turn
	r.observer(ev)
}
