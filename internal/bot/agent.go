package bot

import (
	"presidents/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Play asks the agent to calculate its move based on the current game state.
// An agent that is not seated in the game always passes.
func (a *Agent) Play(state *domain.GameState) (Move, error) {
	idx := state.PlayerIndex(a.ID)
	if idx < 0 {
		return Move{Pass: true}, nil
	}

	if state.TenRule.Pending() {
		return Move{Direction: a.Strategy.ChooseDirection(state, idx)}, nil
	}
	// A pass locks the player out until the trick ends.
	if state.HasPassed(a.ID) {
		return Move{Pass: true}, nil
	}

	move, err := a.Strategy.CalculateMove(state, idx)
	if err != nil {
		return Move{Pass: true}, err
	}
	return move, nil
}

// Act turns the agent's move into an engine action.
func (a *Agent) Act(state *domain.GameState) (domain.Action, error) {
	move, err := a.Play(state)
	action := move.Action(a.ID)
	return action, err
}

// Action converts a move into the engine action for playerID.
func (m Move) Action(playerID string) domain.Action {
	switch {
	case m.Direction != domain.DirectionNone:
		return domain.Action{Kind: domain.ActionChooseDirection, PlayerID: playerID, Direction: m.Direction}
	case m.Pass || len(m.Cards) == 0:
		return domain.Action{Kind: domain.ActionPass, PlayerID: playerID}
	default:
		return domain.Action{Kind: domain.ActionPlay, PlayerID: playerID, Cards: m.Cards}
	}
}
