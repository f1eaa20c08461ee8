package app

import "presidents/internal/domain"

// PlayerView is the public part of a seated player. Hand is only filled for the viewer.
type PlayerView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CardCount int           `json:"card_count"`
	Finished  bool          `json:"finished"`
	Hand      []domain.Card `json:"hand,omitempty"`
}

// View is a full snapshot of a game as one player may see it.
type View struct {
	GameID          string        `json:"game_id"`
	Phase           Phase         `json:"phase"`
	Players         []PlayerView  `json:"players"`
	CurrentPlayerID string        `json:"current_player_id"`
	Pile            []domain.Card `json:"pile"`
	MustPlay        bool          `json:"must_play"`
	TenRulePending  bool          `json:"ten_rule_pending"`
	Direction       string        `json:"direction"`
	ChallengeRank   int           `json:"challenge_rank,omitempty"`
	LastClear       string        `json:"last_clear"`
	FinishedOrder   []string      `json:"finished_order"`
	TricksPlayed    int           `json:"tricks_played"`
}

// Snapshot builds the view of game for viewerID. Other players' hands are withheld.
func Snapshot(game *Game, viewerID string) View {
	s := game.State
	v := View{
		GameID:         game.ID.String(),
		Phase:          game.Phase,
		Pile:           s.Pile,
		MustPlay:       s.MustPlay,
		TenRulePending: s.TenRule.Pending(),
		Direction:      domain.DirectionNone.String(),
		LastClear:      s.LastClear.String(),
		FinishedOrder:  s.FinishedOrder,
		TricksPlayed:   len(s.TrickHistory),
	}
	if s.TenRule.Directed() {
		v.Direction = s.TenRule.Direction.String()
	}
	if s.FourOfAKind.Pending() {
		v.ChallengeRank = s.FourOfAKind.Rank
	}
	if cur := s.CurrentPlayer(); cur != nil {
		v.CurrentPlayerID = cur.ID
	}

	v.Players = make([]PlayerView, len(s.Players))
	for i, p := range s.Players {
		pv := PlayerView{ID: p.ID, Name: p.Name, CardCount: len(p.Hand), Finished: s.IsFinished(p.ID)}
		if p.ID == viewerID {
			pv.Hand = p.Hand
		}
		v.Players[i] = pv
	}
	return v
}
