package domain

// Direction is the comparison mode chosen after a ten is played.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionHigher
	DirectionLower
)

func (d Direction) String() string {
	switch d {
	case DirectionHigher:
		return "higher"
	case DirectionLower:
		return "lower"
	default:
		return "none"
	}
}

// ClearKind tags the strongest clearing event seen in the current trick.
// Values are ordered: ClearNone < ClearTwo < ClearFourOfAKind < ClearJoker.
type ClearKind int

const (
	ClearNone ClearKind = iota
	ClearTwo
	ClearFourOfAKind
	ClearJoker
)

func (k ClearKind) String() string {
	switch k {
	case ClearTwo:
		return "two"
	case ClearFourOfAKind:
		return "four_of_a_kind"
	case ClearJoker:
		return "joker"
	default:
		return "none"
	}
}

// Max returns the higher-precedence of k and o.
func (k ClearKind) Max(o ClearKind) ClearKind {
	if o > k {
		return o
	}
	return k
}

// TenRule is active once tens hit the pile. Direction stays DirectionNone until chosen.
type TenRule struct {
	Active    bool      `json:"active"`
	Direction Direction `json:"direction"`
}

// Pending reports whether the ten-rule waits for a direction choice.
func (t *TenRule) Pending() bool {
	return t != nil && t.Active && t.Direction == DirectionNone
}

// Directed reports whether the ten-rule constrains comparisons.
func (t *TenRule) Directed() bool {
	return t != nil && t.Active && t.Direction != DirectionNone
}

// FourOfAKindChallenge is opened by a four-of-a-kind and must be answered by a
// higher four-of-a-kind or a single joker.
type FourOfAKindChallenge struct {
	Active       bool `json:"active"`
	Rank         int  `json:"rank"`
	StarterIndex int  `json:"starter_index"`
}

// Pending reports whether the challenge still awaits an answer.
func (f *FourOfAKindChallenge) Pending() bool {
	return f != nil && f.Active
}

// ActionKind identifies an action submitted to the engine.
type ActionKind int

const (
	ActionPlay ActionKind = iota
	ActionPass
	ActionChooseDirection
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlay:
		return "play"
	case ActionPass:
		return "pass"
	case ActionChooseDirection:
		return "choose_direction"
	default:
		return "unknown"
	}
}

// Action is the transport-level unit applied to a GameState.
// Trick logs reuse it for their play and pass entries.
type Action struct {
	Kind      ActionKind `json:"kind"`
	PlayerID  string     `json:"player_id"`
	Cards     []Card     `json:"cards,omitempty"`
	Direction Direction  `json:"direction,omitempty"`
}

// PileEntry is one card group placed on the pile during the current trick.
type PileEntry struct {
	PlayerID string `json:"player_id"`
	Cards    []Card `json:"cards"`
}

// Trick is the ordered log of actions since the last trick boundary.
type Trick struct {
	Actions []Action `json:"actions"`
	Winner  string   `json:"winner,omitempty"`
}

// Player holds the domain state for a seated player.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hand []Card `json:"hand"`
	// Role is assigned between rounds by the trading phase; the engine never sets it.
	Role string `json:"role,omitempty"`
}

// GameState is the full state of one round. Engine operations never modify a
// GameState in place; they return either the same pointer (rejected) or a new value.
type GameState struct {
	Players            []Player              `json:"players"`
	CurrentPlayerIndex int                   `json:"current_player_index"`
	Pile               []Card                `json:"pile"`
	PileHistory        []PileEntry           `json:"pile_history"`
	FinishedOrder      []string              `json:"finished_order"`
	MustPlay           bool                  `json:"must_play"`
	TenRule            *TenRule              `json:"ten_rule,omitempty"`
	FourOfAKind        *FourOfAKindChallenge `json:"four_of_a_kind,omitempty"`
	LastClear          ClearKind             `json:"last_clear"`
	CurrentTrick       Trick                 `json:"current_trick"`
	TrickHistory       []Trick               `json:"trick_history"`
	LeadCard           Card                  `json:"lead_card"`
}

// CurrentPlayer returns the player whose turn it is, or nil for an empty game.
func (s *GameState) CurrentPlayer() *Player {
	if s == nil || s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.CurrentPlayerIndex]
}

// PlayerIndex returns the seat index of the player with the given id, or -1.
func (s *GameState) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// IsFinished reports whether the player already emptied their hand.
func (s *GameState) IsFinished(id string) bool {
	for _, f := range s.FinishedOrder {
		if f == id {
			return true
		}
	}
	return false
}

// ActivePlayers returns the indexes of players who still hold cards.
func (s *GameState) ActivePlayers() []int {
	var out []int
	for i, p := range s.Players {
		if !s.IsFinished(p.ID) {
			out = append(out, i)
		}
	}
	return out
}

// RoundOver reports whether at most one player still holds cards.
func (s *GameState) RoundOver() bool {
	return len(s.ActivePlayers()) <= 1
}

// Standings returns finished players in order followed by the players still holding cards.
func (s *GameState) Standings() []string {
	out := append([]string{}, s.FinishedOrder...)
	for _, i := range s.ActivePlayers() {
		out = append(out, s.Players[i].ID)
	}
	return out
}

// IsFirstPlay reports whether no card has been played yet this round.
func (s *GameState) IsFirstPlay() bool {
	return len(s.TrickHistory) == 0 && len(s.CurrentTrick.Actions) == 0 &&
		len(s.Pile) == 0 && len(s.PileHistory) == 0
}

// HasPassed reports whether the player passed within the current trick.
func (s *GameState) HasPassed(id string) bool {
	for _, a := range s.CurrentTrick.Actions {
		if a.Kind == ActionPass && a.PlayerID == id {
			return true
		}
	}
	return false
}

// PlayContext returns the pile context the validity oracle needs.
func (s *GameState) PlayContext() PlayContext {
	return PlayContext{
		Pile:        s.Pile,
		TenRule:     s.TenRule,
		PileHistory: s.PileHistory,
		FourOfAKind: s.FourOfAKind,
		Trick:       s.CurrentTrick.Actions,
	}
}

// HeuristicContext returns the context for FindCPUPlay on behalf of the current player.
func (s *GameState) HeuristicContext() HeuristicContext {
	return HeuristicContext{
		PlayContext: s.PlayContext(),
		FirstPlay:   s.IsFirstPlay(),
		LeadCard:    s.LeadCard,
		LastClear:   s.LastClear,
	}
}

// nextActive returns the first player after from who still holds cards.
// It may return from itself when it is the only one left, and -1 when nobody is.
func (s *GameState) nextActive(from int) int {
	n := len(s.Players)
	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if !s.IsFinished(s.Players[i].ID) {
			return i
		}
	}
	return -1
}

// advanceFrom moves the turn to the next active player after from.
func (s *GameState) advanceFrom(from int) {
	if next := s.nextActive(from); next >= 0 {
		s.CurrentPlayerIndex = next
	}
}

func (s *GameState) clone() *GameState {
	out := *s

	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.Hand = cloneCards(p.Hand)
		out.Players[i] = p
	}
	out.Pile = cloneCards(s.Pile)
	out.PileHistory = clonePlays(s.PileHistory)
	out.FinishedOrder = append([]string(nil), s.FinishedOrder...)
	if s.TenRule != nil {
		t := *s.TenRule
		out.TenRule = &t
	}
	if s.FourOfAKind != nil {
		f := *s.FourOfAKind
		out.FourOfAKind = &f
	}
	out.CurrentTrick = cloneTrick(s.CurrentTrick)
	if s.TrickHistory != nil {
		out.TrickHistory = make([]Trick, len(s.TrickHistory))
		for i, t := range s.TrickHistory {
			out.TrickHistory[i] = cloneTrick(t)
		}
	}
	return &out
}

func clonePlays(plays []PileEntry) []PileEntry {
	if plays == nil {
		return nil
	}
	out := make([]PileEntry, len(plays))
	for i, p := range plays {
		out[i] = PileEntry{PlayerID: p.PlayerID, Cards: cloneCards(p.Cards)}
	}
	return out
}

func cloneTrick(t Trick) Trick {
	out := Trick{Winner: t.Winner}
	if t.Actions != nil {
		out.Actions = make([]Action, len(t.Actions))
		for i, a := range t.Actions {
			a.Cards = cloneCards(a.Cards)
			out.Actions[i] = a
		}
	}
	return out
}
