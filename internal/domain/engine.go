package domain

// Apply dispatches an action to Play, Pass or ChooseDirection.
// The returned pointer equals s when the action was rejected.
func Apply(s *GameState, a Action) *GameState {
	switch a.Kind {
	case ActionPlay:
		return Play(s, a.PlayerID, a.Cards)
	case ActionPass:
		return Pass(s, a.PlayerID)
	case ActionChooseDirection:
		return ChooseDirection(s, a.PlayerID, a.Direction)
	default:
		return s
	}
}

// Play submits cards for playerID. It returns s unchanged when the play is
// rejected and a new state otherwise.
func Play(s *GameState, playerID string, cards []Card) *GameState {
	if !s.canAct(playerID) || len(cards) == 0 {
		return s
	}
	idx := s.CurrentPlayerIndex
	if s.HasPassed(playerID) || !HasCards(s.Players[idx].Hand, cards) {
		return s
	}
	if !allSameRank(cards) && !IsRun(cards) {
		return s
	}
	if s.IsFirstPlay() && HasCards(s.Players[idx].Hand, []Card{s.LeadCard}) && !isOpeningPlay(cards, s.LeadCard) {
		return s
	}
	if !IsValidPlay(cards, s.PlayContext()) || TwoBlocked(cards, s.LastClear) {
		return s
	}

	two := containsRank(cards, RankTwo)
	four := isFourOfAKind(cards)
	if !two && four && s.FourOfAKind.Pending() && Strength(cards[0].Rank) <= Strength(s.FourOfAKind.Rank) {
		return s
	}

	next := s.clone()
	played := cloneCards(cards)
	p := &next.Players[idx]
	p.Hand = RemoveCards(p.Hand, played)
	if len(p.Hand) == 0 && !next.IsFinished(p.ID) {
		next.FinishedOrder = append(next.FinishedOrder, p.ID)
	}
	action := Action{Kind: ActionPlay, PlayerID: playerID, Cards: played}
	next.CurrentTrick.Actions = append(next.CurrentTrick.Actions, action)

	switch {
	case two:
		next.clearWithTwo(idx, action)

	case four && next.FourOfAKind.Pending():
		next.LastClear = next.LastClear.Max(ClearFourOfAKind)
		next.winTrick(idx)

	case four:
		next.place(playerID, played)
		next.TenRule = nil
		next.FourOfAKind = &FourOfAKindChallenge{Active: true, Rank: played[0].Rank, StarterIndex: idx}
		next.LastClear = next.LastClear.Max(ClearFourOfAKind)
		next.advanceFrom(idx)
		next.MustPlay = true

	case isSingleJoker(played) && next.FourOfAKind.Pending():
		next.LastClear = ClearJoker
		next.winTrick(idx)

	case isSingleJoker(played):
		next.place(playerID, played)
		next.TenRule = nil
		next.LastClear = ClearJoker
		next.advanceFrom(idx)
		next.MustPlay = false

	case played[0].Rank == RankTen && s.TenRule == nil && !IsRun(s.Pile):
		next.place(playerID, played)
		next.TenRule = &TenRule{Active: true}
		next.MustPlay = false

	default:
		next.place(playerID, played)
		if played[0].Rank != RankTen {
			next.TenRule = nil
		}
		next.advanceFrom(idx)
		next.MustPlay = false
	}
	return next
}

// Pass records a pass for playerID and concludes the trick once every other
// active player has passed since the last play.
func Pass(s *GameState, playerID string) *GameState {
	if !s.canAct(playerID) {
		return s
	}
	idx := s.CurrentPlayerIndex
	if s.mustPlayNow() && !s.HasPassed(playerID) && !s.jokerOnPile() {
		if FindCPUPlay(s.Players[idx].Hand, s.HeuristicContext()) != nil {
			return s
		}
	}

	next := s.clone()
	next.CurrentTrick.Actions = append(next.CurrentTrick.Actions, Action{Kind: ActionPass, PlayerID: playerID})
	next.MustPlay = false
	next.advanceFrom(idx)

	if leader, ok := next.trickLeader(); ok && next.othersPassedSince(leader) {
		next.winTrick(leader)
	}
	return next
}

// ChooseDirection settles a pending ten-rule. playerID must be the player whose
// tens are on the pile; the turn then passes on and the next player must play.
func ChooseDirection(s *GameState, playerID string, dir Direction) *GameState {
	if s == nil || !s.TenRule.Pending() {
		return s
	}
	if dir != DirectionHigher && dir != DirectionLower {
		return s
	}
	cur := s.CurrentPlayer()
	if cur == nil || cur.ID != playerID {
		return s
	}

	next := s.clone()
	next.TenRule = &TenRule{Active: true, Direction: dir}
	next.advanceFrom(s.CurrentPlayerIndex)
	next.MustPlay = true
	return next
}

// canAct checks the preconditions shared by Play and Pass.
func (s *GameState) canAct(playerID string) bool {
	if s == nil || s.RoundOver() || s.TenRule.Pending() {
		return false
	}
	cur := s.CurrentPlayer()
	return cur != nil && cur.ID == playerID && !s.IsFinished(playerID)
}

func (s *GameState) mustPlayNow() bool {
	return s.MustPlay || s.IsFirstPlay()
}

// jokerOnPile reports a lone joker awaiting passes; passing is always allowed then.
func (s *GameState) jokerOnPile() bool {
	return isSingleJoker(s.Pile) && !s.FourOfAKind.Pending()
}

func isOpeningPlay(cards []Card, lead Card) bool {
	for _, c := range cards {
		if c.Rank != RankThree {
			return false
		}
	}
	return HasCards(cards, []Card{lead})
}

func (s *GameState) place(playerID string, cards []Card) {
	s.Pile = cards
	s.PileHistory = append(s.PileHistory, PileEntry{PlayerID: playerID, Cards: cards})
}

// clearWithTwo empties the table and starts a fresh trick led by the two.
func (s *GameState) clearWithTwo(idx int, two Action) {
	s.Pile = nil
	s.PileHistory = nil
	s.CurrentTrick = Trick{Actions: []Action{two}}
	s.TenRule = nil
	s.FourOfAKind = nil
	s.LastClear = ClearTwo
	s.MustPlay = false
	s.advanceFrom(idx)
}

// winTrick archives the current trick with the given winner and hands them the lead.
// A winner who already finished passes the lead to the next active player.
func (s *GameState) winTrick(winner int) {
	s.CurrentTrick.Winner = s.Players[winner].ID
	s.TrickHistory = append(s.TrickHistory, s.CurrentTrick)
	s.CurrentTrick = Trick{}
	s.Pile = nil
	s.PileHistory = nil
	s.TenRule = nil
	s.FourOfAKind = nil
	s.LastClear = ClearNone
	s.MustPlay = true

	if s.IsFinished(s.Players[winner].ID) {
		s.advanceFrom(winner)
	} else {
		s.CurrentPlayerIndex = winner
	}
}

// trickLeader returns the index of the player who made the latest play in the trick.
func (s *GameState) trickLeader() (int, bool) {
	for i := len(s.CurrentTrick.Actions) - 1; i >= 0; i-- {
		if a := s.CurrentTrick.Actions[i]; a.Kind == ActionPlay {
			return s.PlayerIndex(a.PlayerID), true
		}
	}
	return -1, false
}

// othersPassedSince reports whether every active player other than the leader
// passed after the leader's latest play.
func (s *GameState) othersPassedSince(leader int) bool {
	actions := s.CurrentTrick.Actions
	last := -1
	for i := len(actions) - 1; i >= 0; i-- {
		if actions[i].Kind == ActionPlay {
			last = i
			break
		}
	}
	if last < 0 {
		return false
	}

	passed := make(map[string]bool)
	for _, a := range actions[last+1:] {
		if a.Kind == ActionPass {
			passed[a.PlayerID] = true
		}
	}
	leaderID := s.Players[leader].ID
	for _, i := range s.ActivePlayers() {
		id := s.Players[i].ID
		if id != leaderID && !passed[id] {
			return false
		}
	}
	return true
}
