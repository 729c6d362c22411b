package agent

import (
	"rummy-service/internal/model"
	"rummy-service/internal/service/game"
)

// CanGoOut reports whether the best organization of cards is within the knock
// threshold. It also returns that organization and its deadwood.
func CanGoOut(cards []model.Card, threshold int) (game.Organization, int, bool) {
	best, _ := game.BestOrganization(game.Organizations(cards))
	points := game.DeadwoodPoints(best)
	return best, points, points <= threshold
}

// ShouldTakeDiscard reports whether picking up discard would raise the
// seat's best meld count. The discard is moved into the seat's hand only for
// the duration of the probe.
func ShouldTakeDiscard(deck *model.Deck, seat Seat, discard model.Card) bool {
	before := game.MaxMeldCount(game.Organizations(seat.Cards(deck)))

	var after int
	deck.Probe(discard, seat.Take, func() {
		after = game.MaxMeldCount(game.Organizations(seat.Cards(deck)))
	})
	return after > before
}

// throwCandidates picks the loose cards of the best organization: singles
// first, then pairs, then any card.
func throwCandidates(cards []model.Card) []model.Card {
	best, _ := game.BestOrganization(game.Organizations(cards))

	var candidates []model.Card
	for _, limit := range []int{2, 3} {
		for _, g := range best {
			if g.Size() < limit {
				candidates = append(candidates, g.Cards...)
			}
		}
		if len(candidates) > 0 {
			return candidates
		}
	}
	return best.Cards()
}

// ChooseThrow picks the loose card worth the most points. Ties go to the
// higher rank. ok is false for an empty hand.
func ChooseThrow(cards []model.Card) (card model.Card, ok bool) {
	for _, c := range throwCandidates(cards) {
		if !ok || outranks(c, card) {
			card, ok = c, true
		}
	}
	return card, ok
}

// ChooseSafeThrow picks the loose card with the lowest wildness. Ties go to
// the card worth more points, then the higher rank.
func ChooseSafeThrow(deck *model.Deck, cards []model.Card, wctx WildnessContext) (card model.Card, ok bool) {
	bestScore := 0
	for _, c := range throwCandidates(cards) {
		score := Wildness(deck, c, wctx)
		better := !ok || score < bestScore ||
			(score == bestScore && outranks(c, card))
		if better {
			card, bestScore, ok = c, score, true
		}
	}
	return card, ok
}

// ChooseDiscard applies the seat's strategy to its current hand.
func ChooseDiscard(deck *model.Deck, seat Seat) (model.Card, bool) {
	cards := seat.Cards(deck)
	if seat.Strategy == StrategyRiskAware {
		return ChooseSafeThrow(deck, cards, seat.Wildness)
	}
	return ChooseThrow(cards)
}

// outranks orders throw candidates by points, then rank.
func outranks(a, b model.Card) bool {
	if a.Points() != b.Points() {
		return a.Points() > b.Points()
	}
	return a.Rank > b.Rank
}
