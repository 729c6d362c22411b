package game

import (
	"rummy-service/internal/model"
)

const (
	minRunWindow = 2
	maxRunWindow = 5
)

// DetectRuns reports every window of 2 to 5 consecutive ranks of suit that is
// fully present in cards. Overlapping windows are all reported, shortest
// windows first.
func DetectRuns(cards []model.Card, suit model.Suit) []Group {
	var present [model.NumRanks]bool
	n := 0
	for _, c := range cards {
		if c.Suit == suit && !present[c.Rank] {
			present[c.Rank] = true
			n++
		}
	}
	if n < minRunWindow {
		return nil
	}

	var runs []Group
	for size := minRunWindow; size <= maxRunWindow; size++ {
		for start := 0; start+size <= model.NumRanks; start++ {
			full := true
			for r := start; r < start+size; r++ {
				if !present[r] {
					full = false
					break
				}
			}
			if !full {
				continue
			}
			run := make([]model.Card, size)
			for k := range run {
				run[k] = model.Card{Rank: model.Rank(start + k), Suit: suit}
			}
			runs = append(runs, NewGroup(KindRun, run))
		}
	}
	return runs
}

// DetectSets groups cards by rank and returns every rank with two or more
// cards, lowest rank first.
func DetectSets(cards []model.Card) []Group {
	var byRank [model.NumRanks][]model.Card
	for _, c := range cards {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	var sets []Group
	for _, same := range byRank {
		if len(same) >= 2 {
			sets = append(sets, NewGroup(KindSet, same))
		}
	}
	return sets
}

// Conflicts reports whether a and b share a card.
func Conflicts(a, b Group) bool {
	return a.mask&b.mask != 0
}

// NoConflicts reports whether the groups are pairwise disjoint.
func NoConflicts(groups []Group) bool {
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if Conflicts(groups[i], groups[j]) {
				return false
			}
		}
	}
	return true
}

// ResolveConflictsGreedy keeps the first group, then every later group that
// is disjoint from all groups kept so far. The result depends on input order.
// groups is not modified.
func ResolveConflictsGreedy(groups []Group) []Group {
	if len(groups) == 0 {
		return nil
	}
	kept := make([]Group, 0, len(groups))
	var used uint64
	for _, g := range groups {
		if g.mask&used != 0 {
			continue
		}
		kept = append(kept, g)
		used |= g.mask
	}
	return kept
}

// Deduplicate drops organizations that hold the same set of groups as an
// earlier one. The first occurrence keeps its position.
func Deduplicate(orgs []Organization) []Organization {
	seen := make(map[string]struct{}, len(orgs))
	unique := make([]Organization, 0, len(orgs))
	for _, o := range orgs {
		key := o.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, o)
	}
	return unique
}
