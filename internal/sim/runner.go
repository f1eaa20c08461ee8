// Package sim plays whole rounds between CPU agents and checks the engine's
// invariants after every accepted action.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"presidents/internal/bot"
	"presidents/internal/domain"
)

// DefaultMaxSteps bounds a single round. A 54-card round needs far fewer actions.
const DefaultMaxSteps = 5000

const playerPrefix = "cpu-"

var (
	ErrInvariant = errors.New("invariant violated")
	ErrStuck     = errors.New("no action accepted")
	ErrStepLimit = errors.New("step limit reached")
)

// Config describes the table a simulated round is played at.
type Config struct {
	Players     int
	MaxSteps    int
	Level       bot.BotLevel
	LeadingSuit domain.Suit
	Seed        int64
	// Brain, when set, replaces the Level strategy for every seat.
	Brain bot.Brain
}

// Divergence records an agent action the engine refused, or a brain failure.
// Err is set only when the agent itself returned an error.
type Divergence struct {
	Step     int
	PlayerID string
	Action   domain.Action
	Err      error
}

func (d Divergence) String() string {
	if d.Err != nil {
		return fmt.Sprintf("step %d: %s agent error: %v", d.Step, d.PlayerID, d.Err)
	}
	return fmt.Sprintf("step %d: %s %s %s refused", d.Step, d.PlayerID, d.Action.Kind, domain.FormatCards(d.Action.Cards))
}

// Result summarizes one simulated round.
type Result struct {
	GameID       uuid.UUID
	Seed         int64
	Steps        int
	Tricks       int
	Standings    []string
	Divergences  []Divergence
	ForcedPasses int
	Completed    bool
	Err          error
}

// Failed reports whether the round hit an error or any divergence.
func (r Result) Failed() bool {
	return r.Err != nil || len(r.Divergences) > 0
}

// GameID derives a stable id from the seed so reruns can be matched up.
func GameID(seed int64) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("presidents-sim-%d", seed)))
}

// RunGame deals a round from cfg.Seed and lets CPU agents play it out.
// A refused agent action is recorded and replaced by a pass; if the pass is
// refused too the round aborts with ErrStuck. Agent errors are recorded as
// divergences and the agent's fallback action is still applied.
func RunGame(cfg Config) Result {
	res := Result{GameID: GameID(cfg.Seed), Seed: cfg.Seed}
	if cfg.Players < 2 {
		res.Err = fmt.Errorf("need at least 2 players, got %d", cfg.Players)
		return res
	}
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	infos := make([]domain.PlayerInfo, cfg.Players)
	agents := make(map[string]*bot.Agent, cfg.Players)
	for i := range infos {
		id := fmt.Sprintf("%s%d", playerPrefix, i+1)
		infos[i] = domain.PlayerInfo{ID: id, Name: fmt.Sprintf("CPU %d", i+1)}
		agent, err := bot.NewAgent(id, infos[i].Name, cfg.Level, rng)
		if err != nil {
			res.Err = err
			return res
		}
		if cfg.Brain != nil {
			agent.Strategy = cfg.Brain
		}
		agents[id] = agent
	}

	state := domain.CreateGame(infos, domain.Options{LeadingSuit: cfg.LeadingSuit, Rand: rng})
	played := 0
	for !state.RoundOver() {
		if res.Steps >= maxSteps {
			res.Err = fmt.Errorf("%w after %d steps", ErrStepLimit, res.Steps)
			break
		}
		res.Steps++

		cur := state.CurrentPlayer()
		action, err := agents[cur.ID].Act(state)
		if err != nil {
			res.Divergences = append(res.Divergences, Divergence{Step: res.Steps, PlayerID: cur.ID, Action: action, Err: err})
		}
		next := domain.Apply(state, action)
		if next == state {
			res.Divergences = append(res.Divergences, Divergence{Step: res.Steps, PlayerID: cur.ID, Action: action})
			action = domain.Action{Kind: domain.ActionPass, PlayerID: cur.ID}
			next = domain.Apply(state, action)
			if next == state {
				res.Err = fmt.Errorf("%w: %s at step %d", ErrStuck, cur.ID, res.Steps)
				break
			}
			res.ForcedPasses++
		}

		if action.Kind == domain.ActionPlay {
			played += len(action.Cards)
		}
		if err := CheckInvariants(next, played); err != nil {
			res.Err = fmt.Errorf("step %d: %w", res.Steps, err)
			break
		}
		state = next
	}

	res.Tricks = len(state.TrickHistory)
	res.Standings = state.Standings()
	res.Completed = res.Err == nil && state.RoundOver()
	return res
}

// CheckInvariants validates s given the number of cards played so far.
func CheckInvariants(s *domain.GameState, played int) error {
	held := 0
	for _, p := range s.Players {
		held += len(p.Hand)
	}
	if held+played != domain.DeckSize {
		return fmt.Errorf("%w: %d cards held and %d played", ErrInvariant, held, played)
	}

	seen := make(map[string]bool, len(s.FinishedOrder))
	for _, id := range s.FinishedOrder {
		if seen[id] {
			return fmt.Errorf("%w: %s finished twice", ErrInvariant, id)
		}
		seen[id] = true
		if idx := s.PlayerIndex(id); idx < 0 || len(s.Players[idx].Hand) > 0 {
			return fmt.Errorf("%w: %s finished while holding cards", ErrInvariant, id)
		}
	}
	for _, p := range s.Players {
		if len(p.Hand) == 0 && !seen[p.ID] {
			return fmt.Errorf("%w: %s has no cards but is not finished", ErrInvariant, p.ID)
		}
	}

	if !uniformRank(s.Pile) && !domain.IsRun(s.Pile) {
		return fmt.Errorf("%w: pile %s is neither one rank nor a run", ErrInvariant, domain.FormatCards(s.Pile))
	}

	if s.TenRule.Pending() && s.FourOfAKind.Pending() {
		return fmt.Errorf("%w: ten-rule and four-of-a-kind challenge both pending", ErrInvariant)
	}

	if !s.RoundOver() && !s.TenRule.Pending() {
		cur := s.CurrentPlayer()
		if cur == nil || s.IsFinished(cur.ID) {
			return fmt.Errorf("%w: turn held by a finished player", ErrInvariant)
		}
	}
	return nil
}

func uniformRank(cards []domain.Card) bool {
	for _, c := range cards {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}
