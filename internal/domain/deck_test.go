package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}

	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}
	if counts[Joker()] != 2 {
		t.Errorf("expected 2 jokers, got %d", counts[Joker()])
	}
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			if n := counts[Card{Suit: s, Rank: r}]; n != 1 {
				t.Errorf("card %s appears %d times", Card{Suit: s, Rank: r}, n)
			}
		}
	}
}

func TestShuffleDeckPreservesCards(t *testing.T) {
	deck := NewDeck()
	for seed := int64(0); seed < 5; seed++ {
		shuffled := ShuffleDeck(deck, rand.New(rand.NewSource(seed)))
		if len(shuffled) != DeckSize {
			t.Fatalf("seed %d: expected %d cards, got %d", seed, DeckSize, len(shuffled))
		}
		if !HasCards(shuffled, deck) || !HasCards(deck, shuffled) {
			t.Fatalf("seed %d: shuffle changed the card multiset", seed)
		}
	}
	if deck[0] != (Card{Suit: SuitClubs, Rank: RankTwo}) {
		t.Fatalf("input deck was reordered")
	}
}

func TestDealRoundRobin(t *testing.T) {
	tests := []struct {
		players int
		sizes   []int
	}{
		{2, []int{27, 27}},
		{4, []int{14, 14, 13, 13}},
		{5, []int{11, 11, 11, 11, 10}},
		{6, []int{9, 9, 9, 9, 9, 9}},
	}
	for _, tt := range tests {
		hands := Deal(NewDeck(), tt.players)
		if len(hands) != tt.players {
			t.Fatalf("%d players: got %d hands", tt.players, len(hands))
		}
		total := 0
		for i, h := range hands {
			if len(h) != tt.sizes[i] {
				t.Errorf("%d players: hand %d has %d cards, want %d", tt.players, i, len(h), tt.sizes[i])
			}
			total += len(h)
		}
		if total != DeckSize {
			t.Errorf("%d players: dealt %d cards", tt.players, total)
		}
	}

	if Deal(NewDeck(), 0) != nil {
		t.Errorf("expected nil hands for zero players")
	}
}

func TestStartingPlayer(t *testing.T) {
	lead := card(3, SuitClubs)
	players := []Player{
		{ID: "a", Hand: singles(4)},
		{ID: "b", Hand: []Card{lead}},
	}
	if idx, ok := StartingPlayer(players, lead); idx != 1 || !ok {
		t.Fatalf("expected player 1 to start, got %d (%v)", idx, ok)
	}

	players[1].Hand = singles(5)
	if idx, ok := StartingPlayer(players, lead); idx != 0 || ok {
		t.Fatalf("expected fallback to player 0 without force, got %d (%v)", idx, ok)
	}
}

func TestCreateGame(t *testing.T) {
	infos := []PlayerInfo{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Ben"}, {ID: "c", Name: "Cy"}, {ID: "d", Name: "Di"}}
	g := CreateGame(infos, Options{Rand: rand.New(rand.NewSource(7))})
	if g == nil {
		t.Fatal("expected a game")
	}

	total := 0
	for _, p := range g.Players {
		total += len(p.Hand)
	}
	if total != DeckSize {
		t.Fatalf("expected %d dealt cards, got %d", DeckSize, total)
	}

	lead := card(3, SuitClubs)
	if g.LeadCard != lead {
		t.Fatalf("expected lead card %s, got %s", lead, g.LeadCard)
	}
	if !HasCards(g.Players[g.CurrentPlayerIndex].Hand, []Card{lead}) {
		t.Fatalf("starter does not hold the leading three")
	}
	if !g.MustPlay || !g.IsFirstPlay() {
		t.Fatalf("starter should be forced to open the round")
	}

	if CreateGame(nil, Options{}) != nil {
		t.Fatalf("expected nil game without players")
	}
}

func TestCreateGameLeadingSuit(t *testing.T) {
	infos := []PlayerInfo{{ID: "a"}, {ID: "b"}}
	g := CreateGame(infos, Options{LeadingSuit: SuitHearts, Rand: rand.New(rand.NewSource(1))})
	if g.LeadCard != card(3, SuitHearts) {
		t.Fatalf("expected 3H lead, got %s", g.LeadCard)
	}
	if !HasCards(g.Players[g.CurrentPlayerIndex].Hand, []Card{g.LeadCard}) {
		t.Fatalf("starter does not hold %s", g.LeadCard)
	}
}
