package game

import (
	"rummy-service/internal/model"
)

const (
	// maxMeldsPerHand bounds the meld combinations tried; four melds need
	// twelve cards and a hand never holds more than eleven.
	maxMeldsPerHand = 3

	// MaxHandSize is the most cards a player holds: ten plus the one drawn.
	MaxHandSize = 11
)

// Organizations enumerates the maximal ways to organize cards. Only
// organizations with the highest number of melds survive, then only those
// with the highest number of melds plus pairs. Every organization covers all
// of cards, left-over cards as single groups, and no two organizations hold
// the same set of groups.
//
// cards must be distinct. An empty hand yields one empty organization.
func Organizations(cards []model.Card) []Organization {
	if len(cards) == 0 {
		return []Organization{{}}
	}

	melds, pairs := candidateGroups(cards)

	meldCombos := disjointCombinations(melds, maxMeldsPerHand)
	mmc := 0
	for _, combo := range meldCombos {
		mmc = max(mmc, len(combo))
	}
	var coverage [][]Group
	for _, combo := range meldCombos {
		if len(combo) == mmc {
			coverage = append(coverage, combo)
		}
	}

	pairCombos := disjointCombinations(pairs, pairLimit(mmc))

	mmd := -1
	var best []Organization
	for _, e := range coverage {
		for _, f := range pairCombos {
			combined := make([]Group, 0, len(e)+len(f))
			combined = append(combined, e...)
			combined = append(combined, f...)
			org := Organization(ResolveConflictsGreedy(combined))
			switch {
			case len(org) > mmd:
				mmd = len(org)
				best = append(best[:0], org)
			case len(org) == mmd:
				best = append(best, org)
			}
		}
	}

	for i, org := range best {
		best[i] = withSingles(org, cards)
	}
	return Deduplicate(best)
}

// candidateGroups splits the runs and sets of cards into melds and pairs.
// A four-of-a-kind also offers each of its three-card subsets so one of the
// four can serve in a run.
func candidateGroups(cards []model.Card) (melds, pairs []Group) {
	var runs []Group
	for _, s := range model.Suits {
		runs = append(runs, DetectRuns(cards, s)...)
	}
	for _, r := range runs {
		if r.IsMeld() {
			melds = append(melds, r)
		} else {
			pairs = append(pairs, r)
		}
	}

	sets := DetectSets(cards)
	for _, s := range sets {
		switch {
		case s.Size() == 4:
			melds = append(melds, s)
			for _, sub := range Combinations(s.Cards, 3) {
				melds = append(melds, NewGroup(KindSet, sub))
			}
		case s.IsMeld():
			melds = append(melds, s)
		default:
			pairs = append(pairs, s)
		}
	}
	return melds, pairs
}

// pairLimit is the most pairs that fit in the cards left over by mmc melds.
func pairLimit(mmc int) int {
	return max((MaxHandSize-mmc*3)/2, 0)
}

// withSingles appends every card of hand not yet grouped as its own group.
func withSingles(org Organization, hand []model.Card) Organization {
	used := org.Mask()
	full := make(Organization, len(org), len(org)+len(hand))
	copy(full, org)
	for _, c := range hand {
		if used&(1<<uint(c.ID())) != 0 {
			continue
		}
		full = append(full, NewGroup(KindSingle, []model.Card{c}))
	}
	return full
}
