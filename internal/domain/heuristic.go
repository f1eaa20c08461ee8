package domain

// HeuristicContext extends the pile context with the facts a CPU player needs to lead.
type HeuristicContext struct {
	PlayContext
	FirstPlay bool
	LeadCard  Card
	LastClear ClearKind
}

// FindCPUPlay proposes a legal play for hand, or nil when the player must pass.
// It is greedy and deterministic: it sheds the lowest cards that are legal and
// keeps high cards back. Every proposal is confirmed with IsValidPlay.
func FindCPUPlay(hand []Card, ctx HeuristicContext) []Card {
	if len(hand) == 0 {
		return nil
	}
	groups := groupByRank(hand)
	legal := func(cards []Card) bool {
		return IsValidPlay(cards, ctx.PlayContext) && !TwoBlocked(cards, ctx.LastClear)
	}

	switch {
	case len(ctx.Pile) == 0:
		return leadPlay(hand, groups, ctx, legal)
	case ctx.FourOfAKind.Pending():
		return answerChallenge(hand, groups, ctx, legal)
	}

	if run, ok := EffectiveRun(ctx.PlayContext); ok {
		return answerRun(hand, run, legal)
	}
	return answerUniform(hand, groups, ctx, legal)
}

func leadPlay(hand []Card, groups []rankGroup, ctx HeuristicContext, legal func([]Card) bool) []Card {
	if ctx.FirstPlay && HasCards(hand, []Card{ctx.LeadCard}) {
		for _, g := range groups {
			if g.Rank == ctx.LeadCard.Rank && legal(g.Cards) {
				return cloneCards(g.Cards)
			}
		}
	}
	for _, g := range groups {
		if legal(g.Cards) {
			return cloneCards(g.Cards)
		}
	}
	return nil
}

func answerChallenge(hand []Card, groups []rankGroup, ctx HeuristicContext, legal func([]Card) bool) []Card {
	for _, g := range groups {
		if len(g.Cards) < 4 || Strength(g.Rank) <= Strength(ctx.FourOfAKind.Rank) {
			continue
		}
		if four := g.Cards[:4]; legal(four) {
			return cloneCards(four)
		}
	}
	return playJoker(hand, legal)
}

func answerRun(hand []Card, run Run, legal func([]Card) bool) []Card {
	byStrength := make(map[int][]Card)
	for _, c := range hand {
		if canExtendRun(c) {
			byStrength[Strength(c.Rank)] = append(byStrength[Strength(c.Rank)], c)
		}
	}

	for low := run.Low + 1; low+run.Ranks-1 <= RankAce; low++ {
		candidate := make([]Card, 0, run.Ranks*run.Multiplicity)
		for s := low; s < low+run.Ranks; s++ {
			held := byStrength[s]
			if len(held) < run.Multiplicity {
				candidate = nil
				break
			}
			candidate = append(candidate, held[:run.Multiplicity]...)
		}
		if candidate != nil && legal(candidate) {
			return candidate
		}
	}

	sorted := cloneCards(hand)
	SortHand(sorted)
	for _, c := range sorted {
		single := []Card{c}
		if IsAdjacent(single, run.Last) && legal(single) {
			return single
		}
	}
	return nil
}

func answerUniform(hand []Card, groups []rankGroup, ctx HeuristicContext, legal func([]Card) bool) []Card {
	need := len(ctx.Pile)
	for _, g := range groups {
		if g.Rank == RankJoker || len(g.Cards) < need {
			continue
		}
		if candidate := g.Cards[:need]; legal(candidate) {
			return cloneCards(candidate)
		}
	}
	if containsRank(ctx.Pile, RankJoker) {
		return nil
	}
	return playJoker(hand, legal)
}

func playJoker(hand []Card, legal func([]Card) bool) []Card {
	if !containsRank(hand, RankJoker) {
		return nil
	}
	if joker := []Card{Joker()}; legal(joker) {
		return joker
	}
	return nil
}
