package model

import (
	"fmt"
	"strings"

	appErr "rummy-service/pkg/errors"
)

// Rank is the card ordinal, Ace lowest (0) through King (12).
type Rank int

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const (
	rankLetters = "A23456789TJQK"
	suitLetters = "SCHD"

	NumRanks = 13
	NumSuits = 4
	NumCards = NumRanks * NumSuits
)

func (r Rank) String() string {
	if r < Ace || r > King {
		return "?"
	}
	return string(rankLetters[r])
}

// Suit follows the S, C, H, D ordering used for display and card IDs.
type Suit int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

func (s Suit) String() string {
	if s < Spades || s > Diamonds {
		return "?"
	}
	return string(suitLetters[s])
}

// Suits lists every suit in display order.
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

// Card is an immutable rank/suit identity. Where a card currently sits is
// tracked by the Deck, never by the card itself.
type Card struct {
	Rank Rank
	Suit Suit
}

// Points is the deadwood value: face value, court cards capped at 10.
func (c Card) Points() int {
	return min(int(c.Rank)+1, 10)
}

// ID maps the card onto 0..51, suit-major.
func (c Card) ID() int {
	return int(c.Suit)*NumRanks + int(c.Rank)
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) valid() bool {
	return c.Rank >= Ace && c.Rank <= King && c.Suit >= Spades && c.Suit <= Diamonds
}

// CardFromID is the inverse of Card.ID.
func CardFromID(id int) Card {
	return Card{Rank: Rank(id % NumRanks), Suit: Suit(id / NumRanks)}
}

// ParseCard reads a two-letter code such as "AS", "th" or "10D".
func ParseCard(text string) (Card, error) {
	code := strings.ToUpper(strings.TrimSpace(text))
	if strings.HasPrefix(code, "10") {
		code = "T" + code[2:]
	}
	if len(code) != 2 {
		return Card{}, fmt.Errorf("%w: %q", appErr.ErrInvalidCard, text)
	}
	r := strings.IndexByte(rankLetters, code[0])
	s := strings.IndexByte(suitLetters, code[1])
	if r < 0 || s < 0 {
		return Card{}, fmt.Errorf("%w: %q", appErr.ErrInvalidCard, text)
	}
	return Card{Rank: Rank(r), Suit: Suit(s)}, nil
}

// ParseCards reads a whitespace or comma separated list of card codes.
// A card listed twice is rejected.
func ParseCards(text string) ([]Card, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	seen := make(map[Card]struct{}, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c]; ok {
			return nil, fmt.Errorf("%w: %s", appErr.ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals known to be valid.
func MustParseCards(text string) []Card {
	cards, err := ParseCards(text)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card codes with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
