package domain

import "testing"

func ranksOf(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Rank
	}
	return out
}

func sameRanks(got []Card, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	sorted := cloneCards(got)
	SortHand(sorted)
	for i, c := range sorted {
		if c.Rank != want[i] {
			return false
		}
	}
	return true
}

func TestFindCPUPlay(t *testing.T) {
	c := func(r int) Card { return card(r, SuitClubs) }
	challenge := &FourOfAKindChallenge{Active: true, Rank: 5}

	tests := []struct {
		name string
		hand []Card
		ctx  HeuristicContext
		want []int // nil means pass
	}{
		{
			name: "first play leads the whole group of threes",
			hand: concat(set(3, 2), singles(4, RankAce)),
			ctx:  HeuristicContext{FirstPlay: true, LeadCard: c(3)},
			want: []int{3, 3},
		},
		{
			name: "empty pile leads the lowest group",
			hand: concat(singles(RankKing), set(6, 3), singles(RankTwo)),
			ctx:  HeuristicContext{},
			want: []int{6, 6, 6},
		},
		{
			name: "lowest higher pair",
			hand: concat(set(5, 2), set(9, 2), set(RankQueen, 3)),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: set(7, 2)}},
			want: []int{9, 9},
		},
		{
			name: "splits a larger group to match count",
			hand: concat(singles(4), set(RankQueen, 3)),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: set(8, 2)}},
			want: []int{RankQueen, RankQueen},
		},
		{
			name: "joker when nothing else beats",
			hand: concat(singles(4, 5), []Card{Joker()}),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: singles(RankAce)}},
			want: []int{RankJoker},
		},
		{
			name: "no joker onto a joker",
			hand: concat(singles(4), []Card{Joker()}),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: []Card{Joker()}}},
		},
		{
			name: "pass when nothing beats",
			hand: singles(3, 4),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: singles(RankKing)}},
		},
		{
			name: "two held back after a joker clear",
			hand: singles(RankTwo),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: singles(RankAce)}, LastClear: ClearJoker},
		},
		{
			name: "ten-rule lower",
			hand: singles(3, 6, RankKing),
			ctx: HeuristicContext{PlayContext: PlayContext{
				Pile:    singles(10),
				TenRule: &TenRule{Active: true, Direction: DirectionLower},
			}},
			want: []int{3},
		},
		{
			name: "ten-rule higher",
			hand: singles(3, 6, RankKing),
			ctx: HeuristicContext{PlayContext: PlayContext{
				Pile:    singles(10),
				TenRule: &TenRule{Active: true, Direction: DirectionHigher},
			}},
			want: []int{RankKing},
		},
		{
			name: "challenge answered by lowest higher four",
			hand: concat(set(9, 4), set(7, 4), []Card{Joker()}),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: set(5, 4), FourOfAKind: challenge}},
			want: []int{7, 7, 7, 7},
		},
		{
			name: "challenge answered by joker",
			hand: concat(set(4, 4), []Card{Joker()}),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: set(5, 4), FourOfAKind: challenge}},
			want: []int{RankJoker},
		},
		{
			name: "challenge unanswerable",
			hand: concat(set(4, 4), set(RankAce, 3)),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: set(5, 4), FourOfAKind: challenge}},
		},
		{
			name: "higher run of the same shape",
			hand: concat(singles(3), []Card{card(5, SuitHearts)}, singles(6, 7, RankKing)),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: []Card{card(4, SuitSpades), card(5, SuitSpades), card(6, SuitSpades)}}},
			want: []int{5, 6, 7},
		},
		{
			name: "adjacency single when no run fits",
			hand: singles(3, 7, RankKing),
			ctx:  HeuristicContext{PlayContext: PlayContext{Pile: []Card{card(4, SuitSpades), card(5, SuitSpades), card(6, SuitSpades)}}},
			want: []int{7},
		},
		{
			name: "adjacency on reconstructed run",
			hand: singles(9, RankKing),
			ctx: HeuristicContext{PlayContext: PlayContext{
				Pile:  []Card{card(8, SuitHearts)},
				Trick: []Action{playAction("a", card(6, SuitHearts)), playAction("b", card(7, SuitHearts)), playAction("c", card(8, SuitHearts))},
			}},
			want: []int{9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCPUPlay(tt.hand, tt.ctx)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected pass, got %s", FormatCards(got))
				}
				return
			}
			if !sameRanks(got, tt.want) {
				t.Fatalf("expected ranks %v, got %v", tt.want, ranksOf(got))
			}
			if !HasCards(tt.hand, got) {
				t.Fatalf("proposal %s is not in hand", FormatCards(got))
			}
			if !IsValidPlay(got, tt.ctx.PlayContext) {
				t.Fatalf("proposal %s is not legal", FormatCards(got))
			}
		})
	}
}
