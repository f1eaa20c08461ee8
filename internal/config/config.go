package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"presidents/internal/app"
	"presidents/internal/domain"
)

type GameConfig struct {
	MinPlayers int `json:"min_players"`
	MaxPlayers int `json:"max_players"`
	// LeadingSuit names the suit of the three that opens a round ("clubs", "spades", ...).
	LeadingSuit         string `json:"leading_suit"`
	TurnDurationSeconds int    `json:"turn_duration_seconds"`
	BotMinDelaySeconds  int    `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds  int    `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

// Defaults returns the configuration used when no file is loaded.
func Defaults() GameConfig {
	return GameConfig{
		MinPlayers:              2,
		MaxPlayers:              6,
		LeadingSuit:             "clubs",
		TurnDurationSeconds:     30,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		BotAutoFillDelaySeconds: 5,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
// Fields left out of the file keep their defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c, err := ReadGameConfig(path)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// ReadGameConfig parses and validates a config file without touching the global.
func ReadGameConfig(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, fmt.Errorf("failed to read game config: %w", err)
	}

	c := Defaults()
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return GameConfig{}, fmt.Errorf("invalid game config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the player bounds, bot delays and leading suit.
func (c GameConfig) Validate() error {
	if c.MinPlayers < app.MinPlayersToStartGame || c.MaxPlayers < c.MinPlayers || c.MaxPlayers > app.MaxPlayers {
		return fmt.Errorf("player bounds %d..%d out of range", c.MinPlayers, c.MaxPlayers)
	}
	if c.BotMinDelaySeconds < 0 || c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		return fmt.Errorf("bot delay %d..%d out of range", c.BotMinDelaySeconds, c.BotMaxDelaySeconds)
	}
	if _, err := ParseSuit(c.LeadingSuit); err != nil {
		return err
	}
	return nil
}

// Suit returns the parsed leading suit, falling back to clubs.
func (c GameConfig) Suit() domain.Suit {
	s, err := ParseSuit(c.LeadingSuit)
	if err != nil {
		return domain.SuitClubs
	}
	return s
}

// GetGameConfig returns the global game configuration, or the defaults when none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

// ParseSuit maps a suit name or letter onto a domain suit.
func ParseSuit(name string) (domain.Suit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "clubs", "c":
		return domain.SuitClubs, nil
	case "diamonds", "d":
		return domain.SuitDiamonds, nil
	case "hearts", "h":
		return domain.SuitHearts, nil
	case "spades", "s":
		return domain.SuitSpades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", name)
	}
}
