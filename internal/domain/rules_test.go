package domain

import "testing"

func TestIsValidPlay(t *testing.T) {
	c := func(r int) Card { return card(r, SuitClubs) }
	runTrick := []Action{playAction("a", c(3)), playAction("b", c(4)), playAction("c", c(5))}

	tests := []struct {
		name  string
		cards []Card
		ctx   PlayContext
		want  bool
	}{
		{"empty play", nil, PlayContext{}, false},
		{"anything on empty pile", set(9, 3), PlayContext{}, true},
		{"run on empty pile", singles(6, 7, 8), PlayContext{}, true},
		{"mixed on empty pile", singles(6, 8), PlayContext{}, false},

		{"pair beats lower pair", set(8, 2), PlayContext{Pile: set(7, 2)}, true},
		{"single against pair", singles(9), PlayContext{Pile: set(7, 2)}, false},
		{"equal rank", set(7, 2), PlayContext{Pile: []Card{card(7, SuitHearts), card(7, SuitSpades)}}, false},
		{"lower rank", singles(6), PlayContext{Pile: singles(7)}, false},
		{"two beats ace", singles(RankTwo), PlayContext{Pile: singles(RankAce)}, true},

		{"joker on single", []Card{Joker()}, PlayContext{Pile: singles(RankTwo)}, true},
		{"joker on triple", []Card{Joker()}, PlayContext{Pile: set(5, 3)}, true},
		{"joker on run", []Card{Joker()}, PlayContext{Pile: singles(3, 4, 5)}, true},
		{"joker on joker", []Card{Joker()}, PlayContext{Pile: []Card{Joker()}}, false},
		{"two on joker", singles(RankTwo), PlayContext{Pile: []Card{Joker()}}, false},

		{"challenge: higher four", set(6, 4), PlayContext{Pile: set(5, 4), FourOfAKind: &FourOfAKindChallenge{Active: true, Rank: 5}}, true},
		{"challenge: joker", []Card{Joker()}, PlayContext{Pile: set(5, 4), FourOfAKind: &FourOfAKindChallenge{Active: true, Rank: 5}}, true},
		{"challenge: lower four", set(4, 4), PlayContext{Pile: set(5, 4), FourOfAKind: &FourOfAKindChallenge{Active: true, Rank: 5}}, false},
		{"challenge: single two", singles(RankTwo), PlayContext{Pile: set(5, 4), FourOfAKind: &FourOfAKindChallenge{Active: true, Rank: 5}}, false},
		{"challenge: triple", set(RankAce, 3), PlayContext{Pile: set(5, 4), FourOfAKind: &FourOfAKindChallenge{Active: true, Rank: 5}}, false},
		{"resolved challenge is ignored", set(6, 4), PlayContext{Pile: set(5, 4), FourOfAKind: &FourOfAKindChallenge{Rank: 5}}, true},

		{"ten higher", singles(RankJack), PlayContext{Pile: singles(10), TenRule: &TenRule{Active: true, Direction: DirectionHigher}}, true},
		{"ten higher rejects lower", singles(9), PlayContext{Pile: singles(10), TenRule: &TenRule{Active: true, Direction: DirectionHigher}}, false},
		{"ten lower", singles(4), PlayContext{Pile: singles(10), TenRule: &TenRule{Active: true, Direction: DirectionLower}}, true},
		{"ten lower rejects higher", singles(RankKing), PlayContext{Pile: singles(10), TenRule: &TenRule{Active: true, Direction: DirectionLower}}, false},
		{"ten lower rejects count mismatch", set(4, 2), PlayContext{Pile: singles(10), TenRule: &TenRule{Active: true, Direction: DirectionLower}}, false},
		{"ten lower rejects run", singles(3, 4, 5), PlayContext{Pile: set(10, 3), TenRule: &TenRule{Active: true, Direction: DirectionLower}}, false},

		{"higher run", singles(4, 5, 6), PlayContext{Pile: singles(3, 4, 5)}, true},
		{"equal run", []Card{card(3, SuitHearts), card(4, SuitHearts), card(5, SuitHearts)}, PlayContext{Pile: singles(3, 4, 5)}, false},
		{"longer run", singles(4, 5, 6, 7), PlayContext{Pile: singles(3, 4, 5)}, false},
		{"higher double run", concat(set(4, 2), set(5, 2), set(6, 2)), PlayContext{Pile: concat(set(3, 2), set(4, 2), set(5, 2))}, true},
		{"single run against double run", singles(6, 7, 8), PlayContext{Pile: concat(set(3, 2), set(4, 2), set(5, 2))}, false},
		{"adjacent above literal run", singles(6), PlayContext{Pile: singles(3, 4, 5)}, true},
		{"adjacent below literal run", []Card{card(4, SuitHearts)}, PlayContext{Pile: singles(3, 4, 5)}, true},
		{"non-adjacent on literal run", singles(7), PlayContext{Pile: singles(3, 4, 5)}, false},
		{"pair on literal run", set(6, 2), PlayContext{Pile: singles(3, 4, 5)}, false},

		{"reconstructed run: 4", []Card{card(4, SuitHearts)}, PlayContext{Pile: []Card{c(5)}, Trick: runTrick}, true},
		{"reconstructed run: 6", singles(6), PlayContext{Pile: []Card{c(5)}, Trick: runTrick}, true},
		{"reconstructed run: 7", singles(7), PlayContext{Pile: []Card{c(5)}, Trick: runTrick}, false},
		{"reconstructed run: ten never adjacent", singles(10), PlayContext{Pile: singles(9), Trick: []Action{playAction("a", c(7)), playAction("b", c(8)), playAction("c", c(9))}}, false},
		{"no run after a gap", singles(7), PlayContext{Pile: []Card{c(5)}, Trick: []Action{playAction("a", c(3)), passAction("b"), playAction("c", c(4)), playAction("a", c(5))}}, true},
		{"history fallback", singles(6), PlayContext{Pile: []Card{c(5)}, PileHistory: []PileEntry{
			{PlayerID: "a", Cards: singles(3)}, {PlayerID: "b", Cards: singles(4)}, {PlayerID: "c", Cards: singles(5)},
		}}, true},
		{"history fallback adjacency", []Card{card(4, SuitHearts)}, PlayContext{Pile: []Card{c(5)}, PileHistory: []PileEntry{
			{PlayerID: "a", Cards: singles(3)}, {PlayerID: "b", Cards: singles(4)}, {PlayerID: "c", Cards: singles(5)},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPlay(tt.cards, tt.ctx); got != tt.want {
				t.Errorf("IsValidPlay(%s on %s) = %v, want %v", FormatCards(tt.cards), FormatCards(tt.ctx.Pile), got, tt.want)
			}
		})
	}
}

func TestChallengeAdmitsOnlyJokerOrHigherFour(t *testing.T) {
	ctx := PlayContext{Pile: set(8, 4), FourOfAKind: &FourOfAKindChallenge{Active: true, Rank: 8}}
	ranks := []int{3, 4, 5, 6, 7, 8, 9, 10, RankJack, RankQueen, RankKing, RankAce, RankTwo}
	for _, r := range ranks {
		for n := 1; n <= 4; n++ {
			want := n == 4 && Strength(r) > Strength(8)
			if got := IsValidPlay(set(r, n), ctx); got != want {
				t.Errorf("%d x rank %d: got %v, want %v", n, r, got, want)
			}
		}
	}
	if !IsValidPlay([]Card{Joker()}, ctx) {
		t.Errorf("single joker must answer a challenge")
	}
	if IsValidPlay([]Card{Joker(), Joker()}, ctx) {
		t.Errorf("joker pair must not answer a challenge")
	}
}

func TestIsAdjacent(t *testing.T) {
	tests := []struct {
		name string
		play []Card
		last Card
		want bool
	}{
		{"above", singles(6), card(5, SuitClubs), true},
		{"below", singles(4), card(5, SuitClubs), true},
		{"two after ace", singles(RankTwo), card(RankAce, SuitClubs), true},
		{"two steps", singles(7), card(5, SuitClubs), false},
		{"ten", singles(10), card(9, SuitClubs), false},
		{"joker", []Card{Joker()}, card(RankTwo, SuitClubs), false},
		{"pair", set(6, 2), card(5, SuitClubs), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAdjacent(tt.play, tt.last); got != tt.want {
				t.Errorf("IsAdjacent(%s, %s) = %v, want %v", FormatCards(tt.play), tt.last, got, tt.want)
			}
		})
	}
}

func TestTwoBlocked(t *testing.T) {
	two := singles(RankTwo)
	for kind, want := range map[ClearKind]bool{
		ClearNone:        false,
		ClearTwo:         false,
		ClearFourOfAKind: true,
		ClearJoker:       true,
	} {
		if got := TwoBlocked(two, kind); got != want {
			t.Errorf("TwoBlocked after %s = %v, want %v", kind, got, want)
		}
	}
	if TwoBlocked(singles(RankAce), ClearJoker) {
		t.Errorf("only twos are blocked")
	}
}

func TestClearKindOrder(t *testing.T) {
	if !(ClearNone < ClearTwo && ClearTwo < ClearFourOfAKind && ClearFourOfAKind < ClearJoker) {
		t.Fatal("clear kinds out of order")
	}
	if ClearJoker.Max(ClearTwo) != ClearJoker || ClearTwo.Max(ClearFourOfAKind) != ClearFourOfAKind {
		t.Fatal("Max picks the wrong clear")
	}
}
