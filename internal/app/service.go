package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"presidents/internal/domain"
)

// Phase is the lifecycle stage of a Game.
type Phase string

const (
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

// Game wraps one round of engine state with an id and phase.
type Game struct {
	ID    uuid.UUID
	Phase Phase
	State *domain.GameState
}

// Service contains Presidents use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
	// LeadingSuit picks the three that opens each round.
	LeadingSuit domain.Suit
	// MinPlayers and MaxPlayers bound the seated players StartGame accepts.
	MinPlayers int
	MaxPlayers int
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, MinPlayers: MinPlayersToStartGame, MaxPlayers: MaxPlayers}
}

var (
	ErrNotOwner       = errors.New("actor is not match owner")
	ErrNotPlaying     = errors.New("match not in playing phase")
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrTooManyPlayers = errors.New("too many players to start")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrPlayerFinished = errors.New("player already finished")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrRejected       = errors.New("action rejected")
)

// StartGame deals a new round to the provided players.
// It expects a list of userIDs in seat order (empty strings for empty seats).
// names maps user ids to display names and may be nil.
func (s *Service) StartGame(seats []string, names map[string]string) (*Game, []Event, error) {
	var infos []domain.PlayerInfo
	for _, userID := range seats {
		if userID == "" {
			continue
		}
		infos = append(infos, domain.PlayerInfo{ID: userID, Name: names[userID]})
	}

	if len(infos) < s.MinPlayers {
		return nil, nil, fmt.Errorf("%w: %d seated, min %d", ErrTooFewPlayers, len(infos), s.MinPlayers)
	}
	if len(infos) > s.MaxPlayers {
		return nil, nil, fmt.Errorf("%w: %d seated, max %d", ErrTooManyPlayers, len(infos), s.MaxPlayers)
	}

	state := domain.CreateGame(infos, domain.Options{LeadingSuit: s.LeadingSuit, Rand: s.rng})
	game := &Game{ID: uuid.New(), Phase: PhasePlaying, State: state}

	events := make([]Event, 0, len(infos)+1)
	order := make([]string, len(state.Players))
	sizes := make(map[string]int, len(state.Players))
	for i, p := range state.Players {
		order[i] = p.ID
		sizes[p.ID] = len(p.Hand)
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{UserID: p.ID, Hand: p.Hand},
			Recipients: []string{p.ID},
		})
	}

	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:          game.ID.String(),
			Players:         order,
			FirstTurnUserID: state.CurrentPlayer().ID,
			LeadCard:        state.LeadCard,
			MustPlay:        state.MustPlay,
			HandSizes:       sizes,
		},
	})
	return game, events, nil
}

// Apply submits an action to the engine and emits the resulting events.
// An action the engine refuses returns an error wrapping ErrRejected and
// leaves the game untouched.
func (s *Service) Apply(game *Game, action domain.Action) ([]Event, error) {
	if game == nil || game.Phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	prev := game.State
	if prev.PlayerIndex(action.PlayerID) < 0 {
		return nil, ErrUnknownPlayer
	}
	if action.Kind != domain.ActionChooseDirection && prev.IsFinished(action.PlayerID) {
		return nil, ErrPlayerFinished
	}
	if cur := prev.CurrentPlayer(); cur == nil || cur.ID != action.PlayerID {
		return nil, ErrNotYourTurn
	}

	next := domain.Apply(prev, action)
	if next == prev {
		return nil, fmt.Errorf("%w: %s by %s", ErrRejected, action.Kind, action.PlayerID)
	}
	game.State = next

	events := describe(prev, next, action)
	if next.RoundOver() {
		game.Phase = PhaseEnded
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{GameID: game.ID.String(), Standings: next.Standings()},
		})
	}
	return events, nil
}

// Hint returns the play the CPU heuristic would make for playerID, or nil for a pass.
func (s *Service) Hint(game *Game, playerID string) ([]domain.Card, error) {
	if game == nil || game.Phase != PhasePlaying {
		return nil, ErrNotPlaying
	}
	idx := game.State.PlayerIndex(playerID)
	if idx < 0 {
		return nil, ErrUnknownPlayer
	}
	return domain.FindCPUPlay(game.State.Players[idx].Hand, game.State.HeuristicContext()), nil
}

// describe derives the events for an accepted action from the state change.
func describe(prev, next *domain.GameState, action domain.Action) []Event {
	nextTurn := ""
	if cur := next.CurrentPlayer(); cur != nil {
		nextTurn = cur.ID
	}

	var events []Event
	switch action.Kind {
	case domain.ActionPlay:
		events = append(events, Event{Kind: EventCardPlayed, Payload: CardPlayedPayload{
			UserID:         action.PlayerID,
			Cards:          action.Cards,
			NextTurnUserID: nextTurn,
			PileCleared:    len(next.Pile) == 0,
			CardsLeft:      len(next.Players[next.PlayerIndex(action.PlayerID)].Hand),
		}})
	case domain.ActionPass:
		events = append(events, Event{Kind: EventTurnPassed, Payload: TurnPassedPayload{
			UserID:         action.PlayerID,
			NextTurnUserID: nextTurn,
		}})
	case domain.ActionChooseDirection:
		events = append(events, Event{Kind: EventDirectionChosen, Payload: DirectionChosenPayload{
			UserID:         action.PlayerID,
			Direction:      next.TenRule.Direction.String(),
			NextTurnUserID: nextTurn,
		}})
	}

	if next.TenRule.Pending() {
		events = append(events, Event{Kind: EventTenRulePending, Payload: TenRulePendingPayload{UserID: action.PlayerID}})
	}
	for i := len(prev.FinishedOrder); i < len(next.FinishedOrder); i++ {
		events = append(events, Event{Kind: EventPlayerFinished, Payload: PlayerFinishedPayload{
			UserID: next.FinishedOrder[i],
			Place:  i + 1,
		}})
	}
	if len(next.TrickHistory) > len(prev.TrickHistory) {
		won := next.TrickHistory[len(next.TrickHistory)-1]
		events = append(events, Event{Kind: EventTrickWon, Payload: TrickWonPayload{
			WinnerID:   won.Winner,
			LeadUserID: nextTurn,
		}})
	}
	return events
}
