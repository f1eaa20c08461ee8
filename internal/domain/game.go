package domain

import (
	"math/rand"
	"time"
)

// PlayerInfo seats a player in a new game.
type PlayerInfo struct {
	ID   string
	Name string
}

// Options control how a round is set up.
type Options struct {
	// LeadingSuit picks the three that opens the round. The zero value is clubs.
	LeadingSuit Suit
	// Rand drives the shuffle. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// CreateGame shuffles a fresh deck, deals it round-robin and seats the starter.
// It returns nil when no players are given.
func CreateGame(players []PlayerInfo, opts Options) *GameState {
	if len(players) == 0 {
		return nil
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	hands := Deal(ShuffleDeck(NewDeck(), rng), len(players))
	seated := make([]Player, len(players))
	for i, info := range players {
		seated[i] = Player{ID: info.ID, Name: info.Name, Hand: hands[i]}
	}
	return NewGameWithHands(seated, opts.LeadingSuit)
}

// NewGameWithHands builds the opening state for pre-dealt hands. Hands are
// copied and sorted. The holder of the leading three starts and must play.
func NewGameWithHands(players []Player, leadingSuit Suit) *GameState {
	if len(players) == 0 {
		return nil
	}
	seated := make([]Player, len(players))
	for i, p := range players {
		p.Hand = cloneCards(p.Hand)
		SortHand(p.Hand)
		seated[i] = p
	}

	lead := Card{Suit: leadingSuit, Rank: RankThree}
	start, held := StartingPlayer(seated, lead)
	return &GameState{
		Players:            seated,
		CurrentPlayerIndex: start,
		MustPlay:           held,
		LeadCard:           lead,
	}
}
