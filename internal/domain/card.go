package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Suit identifies a card suit. Jokers carry SuitJoker.
type Suit int32

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
	SuitJoker
)

// Suits lists the four ranked suits in deck order.
var Suits = []Suit{SuitClubs, SuitDiamonds, SuitHearts, SuitSpades}

func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "C"
	case SuitDiamonds:
		return "D"
	case SuitHearts:
		return "H"
	case SuitSpades:
		return "S"
	case SuitJoker:
		return "*"
	default:
		return "?"
	}
}

const (
	RankTwo   = 2
	RankThree = 3
	RankTen   = 10
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
	RankJoker = 15
)

// Card is a single playing card. Rank is 2..14 for ranked cards and RankJoker for jokers.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

// Joker returns the joker card. Both jokers in the deck are identical.
func Joker() Card {
	return Card{Suit: SuitJoker, Rank: RankJoker}
}

// IsJoker reports whether c is a joker.
func (c Card) IsJoker() bool {
	return c.Rank == RankJoker
}

func (c Card) String() string {
	if c.IsJoker() {
		return "JK"
	}
	var r string
	switch c.Rank {
	case RankJack:
		r = "J"
	case RankQueen:
		r = "Q"
	case RankKing:
		r = "K"
	case RankAce:
		r = "A"
	default:
		r = fmt.Sprintf("%d", c.Rank)
	}
	return r + c.Suit.String()
}

// Strength maps a rank onto the canonical order 3 < 4 < ... < K < A < 2 < Joker.
func Strength(rank int) int {
	switch rank {
	case RankTwo:
		return 15
	case RankJoker:
		return 16
	default:
		return rank
	}
}

// SortHand orders cards by ascending strength, then suit.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		si, sj := Strength(cards[i].Rank), Strength(cards[j].Rank)
		if si != sj {
			return si < sj
		}
		return cards[i].Suit < cards[j].Suit
	})
}

// FormatCards renders cards as a space separated list, e.g. "3C 3H JK".
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
