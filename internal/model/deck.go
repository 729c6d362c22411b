package model

import (
	"fmt"
	"math/rand"
	"strings"

	appErr "rummy-service/pkg/errors"
)

// Location tags where a card currently sits from the agent's point of view.
type Location int

const (
	PickPile Location = iota
	OwnHand
	OpponentUnknown
	OpponentKnown
	Discard
)

var locationNames = [...]string{"pick", "hand", "opponent_unknown", "opponent_known", "discard"}

// locationCodes are the one-letter codes used by Grid.
const locationCodes = "phukd"

func (l Location) String() string {
	if l < PickPile || l > Discard {
		return "unknown"
	}
	return locationNames[l]
}

// Deck is the location map for one round. It always holds the 52 distinct
// cards, each in exactly one location, plus the draw order of the pick pile.
type Deck struct {
	locations [NumCards]Location
	order     []Card
	cursor    int
}

// NewDeck returns an unshuffled deck with every card in the pick pile.
func NewDeck() *Deck {
	d := &Deck{order: make([]Card, NumCards)}
	for id := 0; id < NumCards; id++ {
		d.order[id] = CardFromID(id)
	}
	return d
}

// NewShuffledDeck returns a deck whose draw order is a uniform shuffle.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	d := NewDeck()
	rng.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	return d
}

// SetLocation moves c to loc and returns where it was.
func (d *Deck) SetLocation(c Card, loc Location) Location {
	prev := d.locations[c.ID()]
	d.locations[c.ID()] = loc
	return prev
}

func (d *Deck) Location(c Card) Location {
	return d.locations[c.ID()]
}

// Cards returns a snapshot of every card at any of locs, ordered by suit
// then rank.
func (d *Deck) Cards(locs ...Location) []Card {
	var cards []Card
	for id, loc := range d.locations {
		for _, want := range locs {
			if loc == want {
				cards = append(cards, CardFromID(id))
				break
			}
		}
	}
	return cards
}

func (d *Deck) Count(loc Location) int {
	n := 0
	for _, l := range d.locations {
		if l == loc {
			n++
		}
	}
	return n
}

// Draw moves the next pick-pile card in shuffle order to loc.
func (d *Deck) Draw(to Location) (Card, bool) {
	for d.cursor < len(d.order) {
		c := d.order[d.cursor]
		d.cursor++
		if d.Location(c) == PickPile {
			d.SetLocation(c, to)
			return c, true
		}
	}
	return Card{}, false
}

// Place moves cards out of the pick pile into loc. Cards already placed
// elsewhere are rejected so text setups cannot silently steal cards.
func (d *Deck) Place(cards []Card, loc Location) error {
	for _, c := range cards {
		if !c.valid() {
			return fmt.Errorf("%w: %v", appErr.ErrInvalidCard, c)
		}
		if cur := d.Location(c); cur != PickPile && cur != loc {
			return fmt.Errorf("%w: %s is in %s", appErr.ErrLocationConflict, c, cur)
		}
	}
	for _, c := range cards {
		d.SetLocation(c, loc)
	}
	return nil
}

// Probe relocates c to loc for the duration of fn and restores it on every
// exit path, panics included. fn must not move c itself; Probe panics if it
// finds c anywhere but loc on the way out.
func (d *Deck) Probe(c Card, loc Location, fn func()) {
	prev := d.SetLocation(c, loc)
	defer func() {
		if cur := d.Location(c); cur != loc {
			panic(fmt.Sprintf("deck: probe of %s moved to %s during probe", c, cur))
		}
		d.SetLocation(c, prev)
	}()
	fn()
}

// Clone returns an independent copy safe to read from another goroutine.
func (d *Deck) Clone() *Deck {
	cp := &Deck{
		locations: d.locations,
		order:     append([]Card(nil), d.order...),
		cursor:    d.cursor,
	}
	return cp
}

// Validate checks that every card carries a known location and the draw
// order is a permutation of the 52 cards.
func (d *Deck) Validate() error {
	for id, loc := range d.locations {
		if loc < PickPile || loc > Discard {
			return fmt.Errorf("%w: %s has location %d", appErr.ErrDeckCorrupt, CardFromID(id), loc)
		}
	}
	if len(d.order) != NumCards {
		return fmt.Errorf("%w: draw order has %d cards, want %d", appErr.ErrDeckCorrupt, len(d.order), NumCards)
	}
	var seen [NumCards]bool
	for _, c := range d.order {
		if !c.valid() || seen[c.ID()] {
			return fmt.Errorf("%w: %s repeats in the draw order", appErr.ErrDeckCorrupt, c)
		}
		seen[c.ID()] = true
	}
	return nil
}

// Grid renders the location of every card, one row per suit.
func (d *Deck) Grid() string {
	var b strings.Builder
	b.WriteString("   ")
	for r := Ace; r <= King; r++ {
		b.WriteString(" " + r.String())
	}
	b.WriteString("\n")
	for _, s := range Suits {
		b.WriteString(s.String() + ": ")
		for r := Ace; r <= King; r++ {
			b.WriteByte(' ')
			b.WriteByte(locationCodes[d.Location(Card{Rank: r, Suit: s})])
		}
		b.WriteString("\n")
	}
	return b.String()
}
