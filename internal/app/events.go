package app

import "presidents/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventGameStarted     EventKind = "game_started"
	EventHandDealt       EventKind = "hand_dealt"
	EventCardPlayed      EventKind = "card_played"
	EventTurnPassed      EventKind = "turn_passed"
	EventTenRulePending  EventKind = "ten_rule_pending"
	EventDirectionChosen EventKind = "direction_chosen"
	EventTrickWon        EventKind = "trick_won"
	EventPlayerFinished  EventKind = "player_finished"
	EventGameEnded       EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID          string         `json:"game_id"`
	Players         []string       `json:"players"`
	FirstTurnUserID string         `json:"first_turn_user_id"`
	LeadCard        domain.Card    `json:"lead_card"`
	MustPlay        bool           `json:"must_play"`
	HandSizes       map[string]int `json:"hand_sizes"`
}

type HandDealtPayload struct {
	UserID string        `json:"user_id"`
	Hand   []domain.Card `json:"hand"`
}

type CardPlayedPayload struct {
	UserID         string        `json:"user_id"`
	Cards          []domain.Card `json:"cards"`
	NextTurnUserID string        `json:"next_turn_user_id"`
	// PileCleared is set when the play left the table empty (a two, or a trick win).
	PileCleared bool `json:"pile_cleared"`
	CardsLeft   int  `json:"cards_left"`
}

type TurnPassedPayload struct {
	UserID         string `json:"user_id"`
	NextTurnUserID string `json:"next_turn_user_id"`
}

type TenRulePendingPayload struct {
	UserID string `json:"user_id"`
}

type DirectionChosenPayload struct {
	UserID         string `json:"user_id"`
	Direction      string `json:"direction"`
	NextTurnUserID string `json:"next_turn_user_id"`
}

type TrickWonPayload struct {
	WinnerID   string `json:"winner_id"`
	LeadUserID string `json:"lead_user_id"`
}

type PlayerFinishedPayload struct {
	UserID string `json:"user_id"`
	Place  int    `json:"place"`
}

type GameEndedPayload struct {
	GameID string `json:"game_id"`
	// Standings lists finishers in order followed by whoever still holds cards.
	Standings []string `json:"standings"`
}
