package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"rummy-service/internal/model"
	"rummy-service/internal/service/analysis"
	"rummy-service/internal/service/game"
	appErr "rummy-service/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestOrganize(t *testing.T) {
	svc := analysis.NewService(nil, 0)

	report, err := svc.Organize(context.Background(), analysis.OrganizeRequest{Hand: "9c js 4s 2s jc 3s as"})
	if err != nil {
		t.Fatalf("Organize failed: %v", err)
	}
	if report.Hand != "AS 2S 3S 4S JS 9C JC" {
		t.Fatalf("unexpected canonical hand %q", report.Hand)
	}
	if report.Deadwood != 29 || report.MeldCount != 4 {
		t.Fatalf("expected deadwood 29 and meld count 4, got %d and %d", report.Deadwood, report.MeldCount)
	}
	if report.Cached {
		t.Fatalf("nothing should be cached without redis")
	}
	if len(report.Organizations) == 0 {
		t.Fatalf("expected at least one organization")
	}
	first := report.Best.Groups[0]
	if first.Kind != "run" || len(first.Cards) != 4 {
		t.Fatalf("best organization should lead with the four-card run, got %+v", report.Best)
	}
}

func TestOrganizeRejectsBadHands(t *testing.T) {
	svc := analysis.NewService(nil, 0)
	tests := []struct {
		name string
		hand string
		want error
	}{
		{"empty", "", appErr.ErrEmptyHand},
		{"bad card", "AS 1S", appErr.ErrInvalidCard},
		{"duplicate", "AS AS", appErr.ErrDuplicateCard},
		{"too large", "AS 2S 3S 4S 5S 6S 7S 8S 9S TS JS QS", appErr.ErrHandTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Organize(context.Background(), analysis.OrganizeRequest{Hand: tt.hand})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestOrganizeHandSizeLimit(t *testing.T) {
	svc := analysis.NewService(nil, 0)
	deck := model.FormatCards(model.NewDeck().Cards(model.PickPile))
	codes := strings.Fields(deck)

	full := strings.Join(codes[:game.MaxHandSize], " ")
	if _, err := svc.Organize(context.Background(), analysis.OrganizeRequest{Hand: full}); err != nil {
		t.Fatalf("a hand of %d cards must be accepted: %v", game.MaxHandSize, err)
	}
	over := strings.Join(codes[:game.MaxHandSize+1], " ")
	if _, err := svc.Organize(context.Background(), analysis.OrganizeRequest{Hand: over}); !errors.Is(err, appErr.ErrHandTooLarge) {
		t.Fatalf("expected ErrHandTooLarge, got %v", err)
	}
}

func TestAdvise(t *testing.T) {
	svc := analysis.NewService(nil, 0)
	report, err := svc.Advise(context.Background(), analysis.AdviseRequest{
		Hand:       "5H 6H 9C KD 2S QC QH",
		Discards:   "3C",
		TopDiscard: "7H",
	})
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if report.Threshold != 7 {
		t.Fatalf("expected threshold 7 from 7H, got %d", report.Threshold)
	}
	if report.TakeDiscard == nil || !*report.TakeDiscard {
		t.Fatalf("7H completes a run and should be taken")
	}
	if report.GoOut {
		t.Fatalf("deadwood %d cannot go out at 7", report.Best.Deadwood)
	}
	if report.Throw != "KD" || report.Recommended != report.Throw {
		t.Fatalf("expected KD, got throw %s recommended %s", report.Throw, report.Recommended)
	}
	if len(report.Wildness) != 7 {
		t.Fatalf("expected wildness for every card, got %v", report.Wildness)
	}
}

func TestAdviseRiskAware(t *testing.T) {
	svc := analysis.NewService(nil, 0)
	report, err := svc.Advise(context.Background(), analysis.AdviseRequest{
		Hand:          "KD 8H 2C",
		Discards:      "8S 8C 9H",
		OpponentKnown: "6H 7H",
		Threshold:     intPtr(0),
		Strategy:      "risk_aware",
	})
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if report.Throw != "KD" || report.SafeThrow != "8H" || report.Recommended != "8H" {
		t.Fatalf("unexpected throws %+v", report)
	}
	if report.Wildness["8H"] != 1 || report.Wildness["KD"] != 4 {
		t.Fatalf("unexpected wildness %v", report.Wildness)
	}
	if report.TakeDiscard != nil {
		t.Fatalf("no top discard was given")
	}
}

func TestAdviseRejects(t *testing.T) {
	svc := analysis.NewService(nil, 0)
	tests := []struct {
		name string
		req  analysis.AdviseRequest
		want error
	}{
		{"threshold too high", analysis.AdviseRequest{Hand: "AS", Threshold: intPtr(11)}, appErr.ErrInvalidThreshold},
		{"negative threshold", analysis.AdviseRequest{Hand: "AS", Threshold: intPtr(-1)}, appErr.ErrInvalidThreshold},
		{"card in two places", analysis.AdviseRequest{Hand: "AS 2S", Discards: "2S"}, appErr.ErrLocationConflict},
		{"top discard in hand", analysis.AdviseRequest{Hand: "AS 2S", TopDiscard: "AS"}, appErr.ErrLocationConflict},
		{"bad discard text", analysis.AdviseRequest{Hand: "AS", Discards: "ZZ"}, appErr.ErrInvalidCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Advise(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
