package bot

import (
	"math/rand"
	"testing"

	"presidents/internal/domain"
)

func c(rank int, suit domain.Suit) domain.Card {
	return domain.Card{Suit: suit, Rank: rank}
}

// tableState puts pile on the table mid-round with player 0 to act.
func tableState(pile []domain.Card, hands ...[]domain.Card) *domain.GameState {
	ids := []string{"bot", "p1", "p2"}
	players := make([]domain.Player, len(hands))
	for i, h := range hands {
		players[i] = domain.Player{ID: ids[i], Hand: h}
	}
	return &domain.GameState{
		Players:      players,
		Pile:         pile,
		PileHistory:  []domain.PileEntry{{PlayerID: "p2", Cards: pile}},
		TrickHistory: []domain.Trick{{Winner: "p2"}},
		CurrentTrick: domain.Trick{Actions: []domain.Action{{Kind: domain.ActionPlay, PlayerID: "p2", Cards: pile}}},
	}
}

func bigHand(extra ...domain.Card) []domain.Card {
	hand := []domain.Card{
		c(3, domain.SuitClubs), c(4, domain.SuitClubs), c(5, domain.SuitClubs),
		c(6, domain.SuitClubs), c(7, domain.SuitClubs),
	}
	return append(hand, extra...)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want BotLevel
		err  bool
	}{
		{"greedy", BotLevelGreedy, false},
		{"", BotLevelGreedy, false},
		{"easy", BotLevelGreedy, false},
		{"Cautious", BotLevelCautious, false},
		{"hard", BotLevelCautious, false},
		{"god", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNewBrain(t *testing.T) {
	if _, err := NewBrain(BotLevel(9), nil); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	b, err := NewBrain(BotLevelCautious, nil)
	if err != nil {
		t.Fatalf("NewBrain failed: %v", err)
	}
	if _, ok := b.(*CautiousBrain); !ok {
		t.Fatalf("expected a cautious brain, got %T", b)
	}
}

func TestGreedyBrainUsesHeuristic(t *testing.T) {
	b := &GreedyBrain{rng: rand.New(rand.NewSource(1))}
	state := tableState([]domain.Card{c(9, domain.SuitHearts)},
		[]domain.Card{c(5, domain.SuitClubs), c(domain.RankJack, domain.SuitClubs), c(domain.RankTwo, domain.SuitClubs)},
		[]domain.Card{c(8, domain.SuitClubs)},
		[]domain.Card{c(4, domain.SuitClubs)},
	)

	move, err := b.CalculateMove(state, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Pass || len(move.Cards) != 1 || move.Cards[0].Rank != domain.RankJack {
		t.Fatalf("expected the lowest beating card J, got %+v", move)
	}

	state.Pile = []domain.Card{domain.Joker()}
	move, _ = b.CalculateMove(state, 0)
	if !move.Pass {
		t.Fatalf("nothing beats a joker, expected pass, got %+v", move)
	}
}

func TestGreedyBrainDirection(t *testing.T) {
	b := &GreedyBrain{rng: rand.New(rand.NewSource(3))}
	seen := map[domain.Direction]bool{}
	for i := 0; i < 32; i++ {
		seen[b.ChooseDirection(nil, 0)] = true
	}
	if !seen[domain.DirectionHigher] || !seen[domain.DirectionLower] || seen[domain.DirectionNone] {
		t.Fatalf("expected both directions only, got %v", seen)
	}
}

func TestCautiousBrainSavesPowerCards(t *testing.T) {
	b := &CautiousBrain{Tuning: DefaultTuning}
	pile := []domain.Card{c(domain.RankAce, domain.SuitHearts)}

	tests := []struct {
		name     string
		hand     []domain.Card
		opponent []domain.Card
		mustPlay bool
		wantPass bool
	}{
		{
			name:     "saves a two with a big hand",
			hand:     bigHand(c(domain.RankTwo, domain.SuitClubs)),
			opponent: bigHand(),
			wantPass: true,
		},
		{
			name:     "spends the two when an opponent is close to out",
			hand:     bigHand(c(domain.RankTwo, domain.SuitClubs)),
			opponent: []domain.Card{c(8, domain.SuitHearts)},
		},
		{
			name:     "spends the two with a small hand",
			hand:     []domain.Card{c(3, domain.SuitClubs), c(domain.RankTwo, domain.SuitClubs)},
			opponent: bigHand(),
		},
		{
			name:     "forced players never save",
			hand:     bigHand(domain.Joker()),
			opponent: bigHand(),
			mustPlay: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := tableState(pile, tt.hand, tt.opponent, bigHand())
			state.MustPlay = tt.mustPlay
			move, err := b.CalculateMove(state, 0)
			if err != nil {
				t.Fatalf("CalculateMove failed: %v", err)
			}
			if move.Pass != tt.wantPass {
				t.Fatalf("pass = %v, want %v (move %+v)", move.Pass, tt.wantPass, move)
			}
			if !move.Pass && domain.Play(state, "bot", move.Cards) == state {
				t.Fatalf("engine rejected the proposal %s", domain.FormatCards(move.Cards))
			}
			if move.Pass && domain.Pass(state, "bot") == state {
				t.Fatalf("engine rejected the pass")
			}
		})
	}
}

func TestCautiousBrainDirection(t *testing.T) {
	b := &CautiousBrain{Tuning: DefaultTuning}
	tens := []domain.Card{c(10, domain.SuitClubs)}

	// Every low card is already played or held, so lower leaves opponents nothing.
	var played []domain.Card
	for r := 3; r <= 9; r++ {
		for _, s := range domain.Suits {
			played = append(played, c(r, s))
		}
	}
	state := tableState(tens, []domain.Card{c(5, domain.SuitHearts)}, bigHand(), bigHand())
	state.TrickHistory = []domain.Trick{{Actions: []domain.Action{{Kind: domain.ActionPlay, PlayerID: "p1", Cards: played}}}}

	if got := b.ChooseDirection(state, 0); got != domain.DirectionLower {
		t.Fatalf("expected lower, got %s", got)
	}

	state.TrickHistory = nil
	if got := b.ChooseDirection(state, 0); got != domain.DirectionHigher {
		t.Fatalf("expected higher with more low cards outstanding, got %s", got)
	}
}

func TestAgentAct(t *testing.T) {
	agent, err := NewAgent("bot", "Bot", BotLevelGreedy, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewAgent failed: %v", err)
	}

	state := tableState([]domain.Card{c(9, domain.SuitHearts)},
		[]domain.Card{c(domain.RankJack, domain.SuitClubs)},
		[]domain.Card{c(4, domain.SuitClubs)},
	)
	action, err := agent.Act(state)
	if err != nil {
		t.Fatalf("Act failed: %v", err)
	}
	if action.Kind != domain.ActionPlay || action.PlayerID != "bot" || len(action.Cards) != 1 {
		t.Fatalf("unexpected action %+v", action)
	}

	locked := tableState(state.Pile, state.Players[0].Hand, state.Players[1].Hand)
	locked.CurrentTrick.Actions = append(locked.CurrentTrick.Actions, domain.Action{Kind: domain.ActionPass, PlayerID: "bot"})
	if action, _ := agent.Act(locked); action.Kind != domain.ActionPass {
		t.Fatalf("agent that already passed this trick should pass, got %+v", action)
	}

	state.TenRule = &domain.TenRule{Active: true}
	action, _ = agent.Act(state)
	if action.Kind != domain.ActionChooseDirection || action.Direction == domain.DirectionNone {
		t.Fatalf("expected a direction choice, got %+v", action)
	}

	stranger := &Agent{ID: "nobody", Strategy: agent.Strategy}
	action, _ = stranger.Act(state)
	if action.Kind != domain.ActionPass {
		t.Fatalf("unseated agent should pass, got %+v", action)
	}
}

func TestGetBotIdentityFallback(t *testing.T) {
	identity := GetBotIdentity(2)
	if identity.UserID == "" || identity.DisplayName == "" {
		t.Fatalf("expected a placeholder identity, got %+v", identity)
	}
	if identity.Level() != BotLevelGreedy {
		t.Fatalf("placeholder should play greedy")
	}
}
