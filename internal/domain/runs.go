package domain

import "sort"

// IsRun reports whether cards form a run: at least three distinct ranks that are
// consecutive in strength order, each held the same number of times, with no
// twos, tens or jokers.
func IsRun(cards []Card) bool {
	_, ok := runShape(cards)
	return ok
}

// Run describes the shape of a run on the pile.
type Run struct {
	Cards []Card
	// Low is the strength of the lowest rank.
	Low int
	// Ranks is the number of distinct ranks and Multiplicity the copies of each.
	Ranks        int
	Multiplicity int
	// Last is the card adjacency plays are measured against.
	Last Card
}

func canExtendRun(c Card) bool {
	return c.Rank != RankTwo && c.Rank != RankTen && !c.IsJoker()
}

func runShape(cards []Card) (Run, bool) {
	if len(cards) < 3 {
		return Run{}, false
	}
	counts := make(map[int]int)
	for _, c := range cards {
		if !canExtendRun(c) {
			return Run{}, false
		}
		counts[c.Rank]++
	}
	if len(counts) < 3 {
		return Run{}, false
	}

	m := -1
	strengths := make([]int, 0, len(counts))
	for rank, n := range counts {
		if m == -1 {
			m = n
		} else if n != m {
			return Run{}, false
		}
		strengths = append(strengths, Strength(rank))
	}
	if m*len(counts) != len(cards) {
		return Run{}, false
	}

	sort.Ints(strengths)
	for i := 1; i < len(strengths); i++ {
		if strengths[i] != strengths[i-1]+1 {
			return Run{}, false
		}
	}

	sorted := cloneCards(cards)
	SortHand(sorted)
	return Run{
		Cards:        sorted,
		Low:          strengths[0],
		Ranks:        len(counts),
		Multiplicity: m,
		Last:         sorted[len(sorted)-1],
	}, true
}

// ReconstructRun infers a run from the tail of a trick log made of single-card
// plays. Passes after the last play leave the pile unchanged and are skipped.
// Scanning backwards from there it stops at any non-play, multi-card play, two,
// ten, joker, or a player acting twice in a row (a turn-order gap). It returns
// the longest such tail, oldest first, that forms a run of distinct ranks, or nil.
func ReconstructRun(actions []Action) []Card {
	end := len(actions)
	for end > 0 && actions[end-1].Kind == ActionPass {
		end--
	}

	var tail []Card // most recent first
	prev := ""
	for i := end - 1; i >= 0; i-- {
		a := actions[i]
		if a.Kind != ActionPlay || len(a.Cards) != 1 || !canExtendRun(a.Cards[0]) {
			break
		}
		if len(tail) > 0 && a.PlayerID == prev {
			break
		}
		prev = a.PlayerID
		tail = append(tail, a.Cards[0])
	}

	for k := len(tail); k >= 3; k-- {
		candidate := make([]Card, k)
		for i := 0; i < k; i++ {
			candidate[i] = tail[k-1-i]
		}
		if shape, ok := runShape(candidate); ok && shape.Multiplicity == 1 {
			return candidate
		}
	}
	return nil
}

// ReconstructFromHistory is the fallback when no trick log is available: it
// treats pile-history entries as consecutive plays.
func ReconstructFromHistory(history []PileEntry) []Card {
	actions := make([]Action, len(history))
	for i, p := range history {
		actions[i] = Action{Kind: ActionPlay, PlayerID: p.PlayerID, Cards: p.Cards}
	}
	return ReconstructRun(actions)
}

// EffectiveRun returns the run the next play must answer, if any: the pile
// itself when it is a run, otherwise a run rebuilt from single-card plays that
// ends with the card currently on the pile.
func EffectiveRun(ctx PlayContext) (Run, bool) {
	if run, ok := runShape(ctx.Pile); ok {
		return run, true
	}
	if len(ctx.Pile) != 1 {
		return Run{}, false
	}

	var cards []Card
	if hasPlays(ctx.Trick) {
		cards = ReconstructRun(ctx.Trick)
	} else {
		cards = ReconstructFromHistory(ctx.PileHistory)
	}
	if len(cards) == 0 || cards[len(cards)-1] != ctx.Pile[0] {
		return Run{}, false
	}

	run, ok := runShape(cards)
	if !ok {
		return Run{}, false
	}
	run.Cards = cards
	run.Last = cards[len(cards)-1]
	return run, true
}

func hasPlays(actions []Action) bool {
	for _, a := range actions {
		if a.Kind == ActionPlay {
			return true
		}
	}
	return false
}
