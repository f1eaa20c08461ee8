package bot

import (
	"presidents/internal/bot/brain"
	"presidents/internal/domain"
)

// CautiousBrain follows the heuristic but saves twos and jokers while its hand
// is large and no opponent is close to going out. It counts cards to choose
// the ten-rule direction opponents are least able to follow.
type CautiousBrain struct {
	Tuning Tuning
}

func (b *CautiousBrain) CalculateMove(state *domain.GameState, playerIndex int) (Move, error) {
	player := &state.Players[playerIndex]
	if len(player.Hand) == 0 {
		return Move{Pass: true}, nil
	}

	cards := domain.FindCPUPlay(player.Hand, state.HeuristicContext())
	if cards == nil {
		return Move{Pass: true}, nil
	}

	if isPowerPlay(cards) && b.canSave(state, playerIndex) {
		return Move{Pass: true}, nil
	}
	return Move{Cards: cards}, nil
}

// canSave reports whether passing is both allowed and affordable right now.
func (b *CautiousBrain) canSave(state *domain.GameState, playerIndex int) bool {
	if state.MustPlay || state.IsFirstPlay() || len(state.Pile) == 0 {
		return false
	}
	if len(state.Players[playerIndex].Hand) <= b.Tuning.HoldBackHandSize {
		return false
	}
	for _, i := range state.ActivePlayers() {
		if i != playerIndex && len(state.Players[i].Hand) <= b.Tuning.ThreatThreshold {
			return false
		}
	}
	return true
}

// ChooseDirection picks the side of the tens where fewer unseen cards remain,
// which leaves opponents the fewest answers.
func (b *CautiousBrain) ChooseDirection(state *domain.GameState, playerIndex int) domain.Direction {
	pivot := domain.Strength(domain.RankTen)
	if len(state.Pile) > 0 {
		pivot = domain.Strength(state.Pile[0].Rank)
	}

	mem := brain.Observe(state, playerIndex)
	above := mem.UnseenWhere(func(c domain.Card) bool {
		return !c.IsJoker() && domain.Strength(c.Rank) > pivot
	})
	below := mem.UnseenWhere(func(c domain.Card) bool {
		return !c.IsJoker() && domain.Strength(c.Rank) < pivot
	})
	if below < above {
		return domain.DirectionLower
	}
	return domain.DirectionHigher
}

func isPowerPlay(cards []domain.Card) bool {
	for _, c := range cards {
		if c.IsJoker() || c.Rank == domain.RankTwo {
			return true
		}
	}
	return false
}
