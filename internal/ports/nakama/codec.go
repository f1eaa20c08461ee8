package nakama

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"presidents/internal/app"
	"presidents/internal/domain"
)

// PlayCardsRequest is the OpPlayCards message body.
type PlayCardsRequest struct {
	Cards []domain.Card `json:"cards"`
}

// ChooseDirectionRequest is the OpChooseDirection message body.
type ChooseDirectionRequest struct {
	Direction string `json:"direction"`
}

// GameErrorEvent is sent privately to the sender of a refused message.
type GameErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SeatView describes one occupied seat in a match snapshot.
type SeatView struct {
	UserID         string `json:"user_id"`
	Seat           int    `json:"seat"`
	IsOwner        bool   `json:"is_owner"`
	IsBot          bool   `json:"is_bot"`
	DisplayName    string `json:"display_name"`
	CardsRemaining int    `json:"cards_remaining"`
}

// MatchSnapshot is the OpMatchState body. Game is only set for a targeted sync.
type MatchSnapshot struct {
	Seats     []string   `json:"seats"`
	OwnerSeat int        `json:"owner_seat"`
	Tick      int64      `json:"tick"`
	Phase     string     `json:"phase"`
	Players   []SeatView `json:"players"`
	Game      *app.View  `json:"game,omitempty"`
}

var eventOpCodes = map[app.EventKind]int64{
	app.EventGameStarted:     OpGameStarted,
	app.EventHandDealt:       OpHandDealt,
	app.EventCardPlayed:      OpCardPlayed,
	app.EventTurnPassed:      OpTurnPassed,
	app.EventTenRulePending:  OpTenRulePending,
	app.EventDirectionChosen: OpDirectionChosen,
	app.EventTrickWon:        OpTrickWon,
	app.EventPlayerFinished:  OpPlayerFinished,
	app.EventGameEnded:       OpGameEnded,
}

func decodePlayCards(data []byte) ([]domain.Card, error) {
	var req PlayCardsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid play request: %w", err)
	}
	if len(req.Cards) == 0 {
		return nil, fmt.Errorf("invalid play request: no cards")
	}
	return req.Cards, nil
}

func decodeDirection(data []byte) (domain.Direction, error) {
	var req ChooseDirectionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return domain.DirectionNone, fmt.Errorf("invalid direction request: %w", err)
	}
	switch strings.ToLower(req.Direction) {
	case "higher":
		return domain.DirectionHigher, nil
	case "lower":
		return domain.DirectionLower, nil
	default:
		return domain.DirectionNone, fmt.Errorf("invalid direction %q", req.Direction)
	}
}

// encodeLabel renders the match label as JSON through a structpb.Struct.
func encodeLabel(phase string, open, players int) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		labelKeyGame:    labelGameName,
		labelKeyPhase:   phase,
		labelKeyOpen:    open,
		labelKeyPlayers: players,
	})
	if err != nil {
		return "", fmt.Errorf("build label: %w", err)
	}
	b, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", fmt.Errorf("marshal label: %w", err)
	}
	return string(b), nil
}
