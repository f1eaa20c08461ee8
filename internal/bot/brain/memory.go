package brain

import (
	"presidents/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // We don't know who has it
	StatusMine                      // In the bot's hand
	StatusPlayed                    // Already on the table
)

const jokerSlots = 2

// GameMemory stores the bot's private view of the deck.
type GameMemory struct {
	// DeckStatus tracks the 52 ranked cards. Index = (Rank-2)*4 + Suit.
	DeckStatus [52]CardStatus
	// Jokers counts jokers by status; both jokers are identical.
	Jokers map[CardStatus]int
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{Jokers: map[CardStatus]int{StatusUnknown: jokerSlots}}
}

// Observe builds the memory a player at seat can derive from the table:
// their own hand plus every card played in the archived and current tricks.
// Cards cleared by a two before the trick ended are no longer on record.
func Observe(state *domain.GameState, seat int) *GameMemory {
	m := NewMemory()
	for _, t := range state.TrickHistory {
		m.recordTrick(t)
	}
	m.recordTrick(state.CurrentTrick)
	if seat >= 0 && seat < len(state.Players) {
		m.MarkMine(state.Players[seat].Hand)
	}
	return m
}

func (m *GameMemory) recordTrick(t domain.Trick) {
	for _, a := range t.Actions {
		if a.Kind == domain.ActionPlay {
			m.MarkPlayed(a.Cards)
		}
	}
}

// Reset clears the memory for a new round.
func (m *GameMemory) Reset() {
	for i := range m.DeckStatus {
		m.DeckStatus[i] = StatusUnknown
	}
	m.Jokers = map[CardStatus]int{StatusUnknown: jokerSlots}
}

// MarkMine records the cards currently in the bot's hand.
func (m *GameMemory) MarkMine(cards []domain.Card) {
	m.mark(cards, StatusMine)
}

// MarkPlayed records cards that have been played on the table.
func (m *GameMemory) MarkPlayed(cards []domain.Card) {
	m.mark(cards, StatusPlayed)
}

func (m *GameMemory) mark(cards []domain.Card, status CardStatus) {
	for _, c := range cards {
		if c.IsJoker() {
			if m.Jokers[StatusUnknown] > 0 {
				m.Jokers[StatusUnknown]--
				m.Jokers[status]++
			}
			continue
		}
		if idx, ok := cardToIndex(c); ok {
			m.DeckStatus[idx] = status
		}
	}
}

// IsPlayed returns true if the card is already out of the game.
// For jokers it reports whether any joker was played.
func (m *GameMemory) IsPlayed(c domain.Card) bool {
	if c.IsJoker() {
		return m.Jokers[StatusPlayed] > 0
	}
	idx, ok := cardToIndex(c)
	return ok && m.DeckStatus[idx] == StatusPlayed
}

// UnseenWhere counts cards neither held nor seen played that satisfy keep.
func (m *GameMemory) UnseenWhere(keep func(domain.Card) bool) int {
	n := 0
	for i, status := range m.DeckStatus {
		if status == StatusUnknown && keep(indexToCard(i)) {
			n++
		}
	}
	if keep(domain.Joker()) {
		n += m.Jokers[StatusUnknown]
	}
	return n
}

// cardToIndex converts a ranked card to a 0-51 index.
func cardToIndex(c domain.Card) (int, bool) {
	if c.Rank < domain.RankTwo || c.Rank > domain.RankAce || c.Suit < domain.SuitClubs || c.Suit > domain.SuitSpades {
		return 0, false
	}
	return (c.Rank-domain.RankTwo)*4 + int(c.Suit), true
}

func indexToCard(i int) domain.Card {
	return domain.Card{Suit: domain.Suit(i % 4), Rank: i/4 + domain.RankTwo}
}
