package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNamePresidents is the authoritative match handler name registered with Nakama.
	MatchNamePresidents = "presidents_match"

	// MaxSeats is the number of seats at one table.
	MaxSeats = 6

	// AutoFillTableSize is how many seats bots fill up to when a human waits alone.
	AutoFillTableSize = 4
)

// Match label keys, queried by the quick-match RPC.
const (
	labelKeyGame    = "game"
	labelKeyPhase   = "phase"
	labelKeyOpen    = "open"
	labelKeyPlayers = "players"

	labelGameName = "presidents"
	phaseLobby    = "lobby"
	phasePlaying  = "playing"
)

// Runtime env keys read by MatchInit.
const (
	envBotsEnabled      = "presidents_bots_enabled"
	envBotMinDelay      = "presidents_bot_min_delay_sec"
	envBotMaxDelay      = "presidents_bot_max_delay_sec"
	envBotAutoFillDelay = "presidents_bot_auto_fill_delay_sec"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame       int64 = 1
	OpPlayCards       int64 = 2
	OpPassTurn        int64 = 3
	OpChooseDirection int64 = 4
	OpRequestSync     int64 = 5

	// Server -> Client events
	OpMatchState      int64 = 100
	OpGameStarted     int64 = 101
	OpHandDealt       int64 = 102 // send privately
	OpCardPlayed      int64 = 103
	OpTurnPassed      int64 = 104
	OpTenRulePending  int64 = 105
	OpDirectionChosen int64 = 106
	OpTrickWon        int64 = 107
	OpPlayerFinished  int64 = 108
	OpGameEnded       int64 = 109
	OpGameError       int64 = 110
)

// Error codes carried by OpGameError.
const (
	errCodeBadRequest = 400
	errCodeForbidden  = 403
	errCodeConflict   = 409
)
