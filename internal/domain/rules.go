package domain

// PlayContext is everything on the table that decides whether a play is legal.
type PlayContext struct {
	Pile        []Card
	TenRule     *TenRule
	PileHistory []PileEntry
	FourOfAKind *FourOfAKindChallenge
	// Trick is the current trick's action log, used to rebuild runs from singles.
	Trick []Action
}

// IsValidPlay reports whether cards may be played onto the table described by ctx.
// The engine and the CPU heuristic both rely on it; rules apply in this order:
//  1. a single joker never lands on a joker;
//  2. an open four-of-a-kind challenge admits only a single joker or a higher four;
//  3. a single joker beats any other non-empty pile;
//  4. the play must be one rank or a run;
//  5. an empty pile takes anything;
//  6. a directed ten-rule takes one rank, same count, strictly higher or lower;
//  7. a run (on the pile or rebuilt from singles) takes a higher run of the same
//     shape, or a single card adjacent to its last card;
//  8. otherwise the play matches the pile's count with a higher rank.
func IsValidPlay(cards []Card, ctx PlayContext) bool {
	if len(cards) == 0 {
		return false
	}
	singleJoker := isSingleJoker(cards)

	if singleJoker && containsRank(ctx.Pile, RankJoker) {
		return false
	}

	if ctx.FourOfAKind.Pending() {
		if singleJoker {
			return true
		}
		return isFourOfAKind(cards) && Strength(cards[0].Rank) > Strength(ctx.FourOfAKind.Rank)
	}

	if singleJoker && len(ctx.Pile) > 0 {
		return true
	}

	uniform := allSameRank(cards)
	if !uniform && !IsRun(cards) {
		return false
	}

	if len(ctx.Pile) == 0 {
		return true
	}

	if ctx.TenRule.Directed() {
		if !uniform || len(cards) != len(ctx.Pile) {
			return false
		}
		played, pile := Strength(cards[0].Rank), Strength(ctx.Pile[0].Rank)
		if ctx.TenRule.Direction == DirectionHigher {
			return played > pile
		}
		return played < pile
	}

	if run, ok := EffectiveRun(ctx); ok {
		if shape, isRun := runShape(cards); isRun {
			return shape.Ranks == run.Ranks && shape.Multiplicity == run.Multiplicity && shape.Low > run.Low
		}
		return IsAdjacent(cards, run.Last)
	}

	if !uniform || len(cards) != len(ctx.Pile) || !allSameRank(ctx.Pile) {
		return false
	}
	return Strength(cards[0].Rank) > Strength(ctx.Pile[0].Rank)
}

// IsAdjacent reports whether cards is a single card one rank above or below last.
// Tens and jokers never qualify.
func IsAdjacent(cards []Card, last Card) bool {
	if len(cards) != 1 {
		return false
	}
	c := cards[0]
	if c.Rank == RankTen || c.IsJoker() {
		return false
	}
	d := Strength(c.Rank) - Strength(last.Rank)
	return d == 1 || d == -1
}

// TwoBlocked reports whether cards include a two after a four-of-a-kind or
// joker clear in the same trick; twos cannot override those.
func TwoBlocked(cards []Card, lastClear ClearKind) bool {
	return lastClear >= ClearFourOfAKind && containsRank(cards, RankTwo)
}
