package domain

import "math/rand"

// DeckSize is the number of cards in a full deck: 52 ranked cards and two jokers.
const DeckSize = 54

// NewDeck returns an ordered 54-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return append(deck, Joker(), Joker())
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal distributes the whole deck round-robin: card i goes to player i mod n.
// Hand sizes differ by at most one when the deck does not divide evenly.
func Deal(deck []Card, n int) [][]Card {
	if n <= 0 {
		return nil
	}
	hands := make([][]Card, n)
	for i, c := range deck {
		hands[i%n] = append(hands[i%n], c)
	}
	return hands
}

// StartingPlayer returns the index of the player holding leadCard and true.
// When nobody holds it, player 0 starts and no forced play applies.
func StartingPlayer(players []Player, leadCard Card) (int, bool) {
	for i, p := range players {
		if HasCards(p.Hand, []Card{leadCard}) {
			return i, true
		}
	}
	return 0, false
}
