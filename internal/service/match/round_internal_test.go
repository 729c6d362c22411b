package match

import (
	"context"
	"errors"
	"testing"

	"rummy-service/internal/model"
	"rummy-service/internal/service/agent"
	appErr "rummy-service/pkg/errors"
)

func TestRoundOnOrderedDeck(t *testing.T) {
	// Unshuffled: the agent holds AS-TS, the opponent JS QS KS AC-7C and 8C
	// opens the discard pile.
	var events []Event
	round, err := newRound(model.NewDeck(), RoundConfig{
		Agent:    agent.StrategyPlain,
		Opponent: agent.StrategyPlain,
		Observer: func(ev Event) { events = append(events, ev) },
	})
	if err != nil {
		t.Fatalf("newRound failed: %v", err)
	}
	if round.Knock() != 8 {
		t.Fatalf("expected knock 8 from 8C, got %d", round.Knock())
	}

	res, err := round.Play(context.Background())
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if res.Outcome != OutcomeGoneOut || res.Winner != agent.AgentName {
		t.Fatalf("expected the agent to go out, got %+v", res)
	}
	if res.Turns != 1 {
		t.Fatalf("expected the agent to go out before drawing, took %d turns", res.Turns)
	}
	if res.Deadwood != [2]int{0, 0} || res.Score != 0 {
		t.Fatalf("unexpected deadwood %v score %d", res.Deadwood, res.Score)
	}

	if len(events) != 2 {
		t.Fatalf("expected deal and go_out events, got %+v", events)
	}
	if events[0].Type != EventDeal || events[0].Card != "8C" || events[0].Knock != 8 {
		t.Fatalf("unexpected deal event %+v", events[0])
	}
	if events[1].Type != EventGoOut || events[1].Seat != agent.AgentName {
		t.Fatalf("unexpected final event %+v", events[1])
	}
	for _, ev := range events {
		if ev.RoundID != round.ID() {
			t.Fatalf("event carries round %q, want %q", ev.RoundID, round.ID())
		}
	}
}

func TestResultScoresLoserDeadwood(t *testing.T) {
	round, err := newRound(model.NewDeck(), RoundConfig{})
	if err != nil {
		t.Fatalf("newRound failed: %v", err)
	}
	// Give the opponent a loose king in place of 7C.
	round.deck.SetLocation(model.MustParseCards("7C")[0], model.PickPile)
	round.deck.SetLocation(model.MustParseCards("KD")[0], model.OpponentUnknown)

	res := round.result(OutcomeGoneOut, SeatAgent)
	if res.Deadwood[SeatOpponent] != 10 || res.Score != 10 {
		t.Fatalf("expected opponent deadwood 10 to score, got %+v", res)
	}

	res = round.result(OutcomeExhausted, -1)
	if res.Score != 0 || res.Winner != "" || res.WinnerSeat != -1 {
		t.Fatalf("exhausted round must not score, got %+v", res)
	}
}

func TestPlayStopsAtTurnCap(t *testing.T) {
	round, err := newRound(model.NewDeck(), RoundConfig{MaxTurns: 1})
	if err != nil {
		t.Fatalf("newRound failed: %v", err)
	}
	// Swap the even spades for even hearts: AS 3S 5S 7S 9S 2H 4H 6H 8H TH
	// holds no meld, so the agent cannot go out on its first turn.
	for _, c := range model.MustParseCards("2S 4S 6S 8S TS") {
		round.deck.SetLocation(c, model.PickPile)
	}
	for _, c := range model.MustParseCards("2H 4H 6H 8H TH") {
		round.deck.SetLocation(c, model.OwnHand)
	}

	res, err := round.Play(context.Background())
	if !errors.Is(err, appErr.ErrRoundNotTerminated) {
		t.Fatalf("expected ErrRoundNotTerminated, got %v", err)
	}
	if res.Outcome != OutcomeAborted || res.WinnerSeat != -1 || res.Winner != "" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Turns != 1 || res.Score != 0 {
		t.Fatalf("expected one unscored turn, got %+v", res)
	}
	if err := round.Deck().Validate(); err != nil {
		t.Fatalf("deck corrupted at the cap: %v", err)
	}
}

func TestNewRoundDefaultsTurnCap(t *testing.T) {
	round, err := newRound(model.NewDeck(), RoundConfig{})
	if err != nil {
		t.Fatalf("newRound failed: %v", err)
	}
	if round.maxTurns != MaxTurns {
		t.Fatalf("expected default cap %d, got %d", MaxTurns, round.maxTurns)
	}
}
