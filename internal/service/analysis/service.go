package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"rummy-service/internal/model"
	"rummy-service/internal/service/agent"
	"rummy-service/internal/service/game"
	"rummy-service/internal/service/match"
	appErr "rummy-service/pkg/errors"
	"rummy-service/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Service struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewService caches organization reports in rdb for ttl. A nil client
// disables the cache.
func NewService(rdb *redis.Client, ttl time.Duration) *Service {
	return &Service{rdb: rdb, ttl: ttl}
}

func (s *Service) Organize(ctx context.Context, req OrganizeRequest) (*OrganizeReport, error) {
	cards, err := parseHand(req.Hand)
	if err != nil {
		return nil, err
	}
	hand := model.FormatCards(cards)

	if report, ok := s.loadReport(ctx, hand); ok {
		return report, nil
	}

	orgs := game.Organizations(cards)
	best, _ := game.BestOrganization(orgs)
	report := &OrganizeReport{
		Hand:          hand,
		Organizations: make([]OrganizationView, 0, len(orgs)),
		Best:          viewOf(best),
		Deadwood:      game.DeadwoodPoints(best),
		MeldCount:     game.MaxMeldCount(orgs),
	}
	for _, org := range orgs {
		report.Organizations = append(report.Organizations, viewOf(org))
	}

	s.saveReport(ctx, report)
	return report, nil
}

func (s *Service) Advise(ctx context.Context, req AdviseRequest) (*AdviceReport, error) {
	cards, err := parseHand(req.Hand)
	if err != nil {
		return nil, err
	}
	strategy, err := agent.ParseStrategy(req.Strategy)
	if err != nil {
		return nil, err
	}

	deck := model.NewDeck()
	if err := deck.Place(cards, model.OwnHand); err != nil {
		return nil, err
	}
	for loc, text := range map[model.Location]string{
		model.Discard:       req.Discards,
		model.OpponentKnown: req.OpponentKnown,
	} {
		if err := placeText(deck, text, loc); err != nil {
			return nil, err
		}
	}

	var top *model.Card
	if req.TopDiscard != "" {
		c, err := model.ParseCard(req.TopDiscard)
		if err != nil {
			return nil, err
		}
		if loc := deck.Location(c); loc != model.PickPile && loc != model.Discard {
			return nil, fmt.Errorf("%w: %s is in %s", appErr.ErrLocationConflict, c, loc)
		}
		deck.SetLocation(c, model.Discard)
		top = &c
	}

	threshold := 10
	switch {
	case req.Threshold != nil:
		threshold = *req.Threshold
	case top != nil:
		threshold = match.KnockThreshold(*top)
	}
	if threshold < 0 || threshold > 10 {
		return nil, fmt.Errorf("%w: got %d", appErr.ErrInvalidThreshold, threshold)
	}

	seat := agent.AgentSeat(strategy)
	best, _, goOut := agent.CanGoOut(cards, threshold)
	report := &AdviceReport{
		Best:      viewOf(best),
		Threshold: threshold,
		GoOut:     goOut,
		Wildness:  make(map[string]int, len(cards)),
	}
	if top != nil {
		take := agent.ShouldTakeDiscard(deck, seat, *top)
		report.TakeDiscard = &take
	}
	if c, ok := agent.ChooseThrow(cards); ok {
		report.Throw = c.String()
	}
	if c, ok := agent.ChooseSafeThrow(deck, cards, seat.Wildness); ok {
		report.SafeThrow = c.String()
	}
	if c, ok := agent.ChooseDiscard(deck, seat); ok {
		report.Recommended = c.String()
	}
	for _, c := range cards {
		report.Wildness[c.String()] = agent.Wildness(deck, c, seat.Wildness)
	}

	logger.Log.Debug("hand advised",
		zap.String("hand", model.FormatCards(cards)),
		zap.Int("threshold", threshold),
		zap.Bool("goOut", goOut),
		zap.String("recommended", report.Recommended),
	)
	return report, nil
}

// parseHand returns the cards of text in deck order.
func parseHand(text string) ([]model.Card, error) {
	cards, err := model.ParseCards(text)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, appErr.ErrEmptyHand
	}
	if len(cards) > game.MaxHandSize {
		return nil, fmt.Errorf("%w: %d cards, at most %d", appErr.ErrHandTooLarge, len(cards), game.MaxHandSize)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID() < cards[j].ID() })
	return cards, nil
}

func placeText(deck *model.Deck, text string, loc model.Location) error {
	if text == "" {
		return nil
	}
	cards, err := model.ParseCards(text)
	if err != nil {
		return err
	}
	return deck.Place(cards, loc)
}

func viewOf(org game.Organization) OrganizationView {
	sorted := org.Sorted()
	view := OrganizationView{
		Groups:    make([]GroupView, 0, len(sorted)),
		Deadwood:  game.DeadwoodPoints(sorted),
		MeldCount: game.MeldCount(sorted),
		Text:      sorted.String(),
	}
	for _, g := range sorted {
		names := make([]string, len(g.Cards))
		for i, c := range g.Cards {
			names[i] = c.String()
		}
		view.Groups = append(view.Groups, GroupView{Kind: g.Kind.String(), Cards: names})
	}
	return view
}

func (s *Service) loadReport(ctx context.Context, hand string) (*OrganizeReport, bool) {
	if s.rdb == nil {
		return nil, false
	}
	data, err := s.rdb.Get(ctx, buildReportKey(hand)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("organize cache read failed", zap.String("hand", hand), zap.Error(err))
		}
		return nil, false
	}
	report, err := decodeReport(data)
	if err != nil {
		logger.Log.Warn("organize cache entry corrupt", zap.String("hand", hand), zap.Error(err))
		return nil, false
	}
	return report, true
}

func (s *Service) saveReport(ctx context.Context, report *OrganizeReport) {
	if s.rdb == nil {
		return
	}
	data, err := encodeReport(report)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, buildReportKey(report.Hand), data, s.ttl).Err(); err != nil {
		logger.Log.Warn("organize cache write failed", zap.String("hand", report.Hand), zap.Error(err))
	}
}

// encodeReport stores report without its Cached flag.
func encodeReport(report *OrganizeReport) ([]byte, error) {
	stored := *report
	stored.Cached = false
	return json.Marshal(stored)
}

// decodeReport reads a cached report back and marks it as served from the
// cache. Entries without a hand are rejected.
func decodeReport(data string) (*OrganizeReport, error) {
	var report OrganizeReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	if report.Hand == "" {
		return nil, fmt.Errorf("cached report has no hand")
	}
	report.Cached = true
	return &report, nil
}

func buildReportKey(hand string) string {
	return fmt.Sprintf("rummy:organize:%s", hand)
}
