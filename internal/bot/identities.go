package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"
)

type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

// Level maps the identity's difficulty onto a brain level, defaulting to greedy.
func (b BotIdentity) Level() BotLevel {
	level, err := ParseLevel(b.Difficulty)
	if err != nil {
		return BotLevelGreedy
	}
	return level
}

// Agent builds a playing agent for this identity.
func (b BotIdentity) Agent(rng *rand.Rand) (*Agent, error) {
	name := b.DisplayName
	if name == "" {
		name = b.Username
	}
	return NewAgent(b.UserID, name, b.Level(), rng)
}

// registry is the process-wide bot pool. Provisioning rewrites user ids while
// matches look bots up, so access goes through mu.
type registry struct {
	mu         sync.RWMutex
	identities []BotIdentity
	byID       map[string]BotIdentity
}

var (
	pool          = &registry{byID: make(map[string]BotIdentity)}
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		pool.set(identities)
	})
	return loadErr
}

func (r *registry) set(identities []BotIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities = identities
	r.byID = make(map[string]BotIdentity, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			r.byID[identity.UserID] = identity
		}
	}
}

func (r *registry) update(i int, identity BotIdentity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities[i] = identity
	r.byID[identity.UserID] = identity
}

func (r *registry) snapshot() []BotIdentity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]BotIdentity(nil), r.identities...)
}

// ProvisionBots ensures that bot accounts exist in the Nakama database and have the is_bot metadata.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) {
	provisionOnce.Do(func() {
		for i, identity := range pool.snapshot() {
			if identity.DeviceID == "" {
				continue
			}

			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"difficulty":   identity.Difficulty,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}

			pool.update(i, identity)
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Level: %s", identity.DisplayName, userID, identity.Level())
		}
	})
}

// GetBotConfig returns the full identity configuration for a given bot ID.
func GetBotConfig(userID string) (BotIdentity, bool) {
	pool.mu.RLock()
	defer pool.mu.RUnlock()
	identity, ok := pool.byID[userID]
	return identity, ok
}

// GetBotDisplayName returns the display name for a bot ID, or an empty string if not a bot.
func GetBotDisplayName(userID string) string {
	identity, ok := GetBotConfig(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName == "" {
		return identity.Username
	}
	return identity.DisplayName
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
// Without a loaded pool it synthesizes a placeholder identity.
func GetBotIdentity(index int) BotIdentity {
	identities := pool.snapshot()
	if len(identities) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return identities[index%len(identities)]
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := GetBotConfig(userID)
	return ok
}
