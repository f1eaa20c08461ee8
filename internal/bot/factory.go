package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// NewBrain creates a new AI brain based on the specified level.
// rng drives random choices; a time-seeded source is used when nil.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	switch level {
	case BotLevelGreedy:
		return &GreedyBrain{rng: rng}, nil
	case BotLevelCautious:
		return &CautiousBrain{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for the given player id.
func NewAgent(id, name string, level BotLevel, rng *rand.Rand) (*Agent, error) {
	b, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return &Agent{ID: id, Name: name, Strategy: b}, nil
}
