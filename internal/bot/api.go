package bot

import (
	"fmt"
	"strings"

	"presidents/internal/domain"
)

// Move represents the decision made by the AI.
type Move struct {
	Pass      bool
	Cards     []domain.Card
	Direction domain.Direction
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// CalculateMove picks a play or a pass for the player at playerIndex.
	CalculateMove(state *domain.GameState, playerIndex int) (Move, error)
	// ChooseDirection settles a ten-rule the bot triggered.
	ChooseDirection(state *domain.GameState, playerIndex int) domain.Direction
}

// BotLevel selects a Brain implementation.
type BotLevel int

const (
	BotLevelGreedy BotLevel = iota
	BotLevelCautious
)

func (l BotLevel) String() string {
	switch l {
	case BotLevelGreedy:
		return "greedy"
	case BotLevelCautious:
		return "cautious"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a level or difficulty name onto a BotLevel.
// Identity difficulties ("easy", "medium", "hard") are accepted too.
func ParseLevel(name string) (BotLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "greedy", "easy":
		return BotLevelGreedy, nil
	case "cautious", "medium", "hard":
		return BotLevelCautious, nil
	default:
		return 0, fmt.Errorf("unknown bot level: %q", name)
	}
}
