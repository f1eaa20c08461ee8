package bot

import (
	"math/rand"

	"presidents/internal/domain"
)

// GreedyBrain plays whatever the engine's heuristic proposes and picks
// ten-rule directions at random.
type GreedyBrain struct {
	rng *rand.Rand
}

// CalculateMove determines the move for the player at playerIndex.
func (b *GreedyBrain) CalculateMove(state *domain.GameState, playerIndex int) (Move, error) {
	player := &state.Players[playerIndex]
	if len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}

	cards := domain.FindCPUPlay(player.Hand, state.HeuristicContext())
	if cards == nil {
		return Move{Pass: true}, nil
	}
	return Move{Cards: cards}, nil
}

func (b *GreedyBrain) ChooseDirection(_ *domain.GameState, _ int) domain.Direction {
	if b.rng.Intn(2) == 0 {
		return domain.DirectionHigher
	}
	return domain.DirectionLower
}
