package game

import (
	"sort"
	"strconv"
	"strings"

	"rummy-service/internal/model"
)

// Kind tells how the cards of a group relate to each other.
type Kind int

const (
	KindSingle Kind = iota
	KindRun
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindRun:
		return "run"
	case KindSet:
		return "set"
	default:
		return "single"
	}
}

// Group is a run, a set or a lone card. Groups of three or more cards are
// melds; groups of exactly two are pairs.
type Group struct {
	Kind  Kind
	Cards []model.Card
	mask  uint64
}

func NewGroup(kind Kind, cards []model.Card) Group {
	g := Group{Kind: kind, Cards: append([]model.Card(nil), cards...)}
	for _, c := range cards {
		g.mask |= 1 << uint(c.ID())
	}
	return g
}

func (g Group) Size() int { return len(g.Cards) }

// IsMeld reports whether the group is exempt from deadwood.
func (g Group) IsMeld() bool { return len(g.Cards) >= 3 }

func (g Group) IsPair() bool { return len(g.Cards) == 2 }

// Mask is the card bitset of the group, bit i set for card ID i.
func (g Group) Mask() uint64 { return g.mask }

func (g Group) Points() int {
	total := 0
	for _, c := range g.Cards {
		total += c.Points()
	}
	return total
}

// Contains reports whether c belongs to the group.
func (g Group) Contains(c model.Card) bool {
	return g.mask&(1<<uint(c.ID())) != 0
}

func (g Group) String() string {
	cards := append([]model.Card(nil), g.Cards...)
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID() < cards[j].ID() })
	return model.FormatCards(cards)
}

// Organization partitions a hand into groups. Every card of the hand sits in
// exactly one group.
type Organization []Group

// Cards flattens the organization in group order.
func (o Organization) Cards() []model.Card {
	var cards []model.Card
	for _, g := range o {
		cards = append(cards, g.Cards...)
	}
	return cards
}

// Mask is the union of the group masks.
func (o Organization) Mask() uint64 {
	var m uint64
	for _, g := range o {
		m |= g.mask
	}
	return m
}

// Key identifies the organization by its set of groups, independent of the
// order they were generated in.
func (o Organization) Key() string {
	masks := make([]uint64, len(o))
	for i, g := range o {
		masks[i] = g.mask
	}
	sort.Slice(masks, func(i, j int) bool { return masks[i] < masks[j] })
	parts := make([]string, len(masks))
	for i, m := range masks {
		parts[i] = strconv.FormatUint(m, 36)
	}
	return strings.Join(parts, ".")
}

// Sorted returns a copy with the largest groups first, for display.
func (o Organization) Sorted() Organization {
	cp := append(Organization(nil), o...)
	sort.SliceStable(cp, func(i, j int) bool { return len(cp[i].Cards) > len(cp[j].Cards) })
	return cp
}

func (o Organization) String() string {
	sorted := o.Sorted()
	parts := make([]string, len(sorted))
	for i, g := range sorted {
		parts[i] = g.String()
	}
	return strings.Join(parts, " | ")
}
