package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"presidents/internal/app"
	"presidents/internal/bot"
	"presidents/internal/config"
	"presidents/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	botIdentitiesPath = "data/bot_identities.json"
	gameConfigPath    = "data/game_config.json"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [MaxSeats]string            `json:"seats"`      // user ids, empty string means the seat is empty
	OwnerSeat            int                         `json:"owner_seat"` // seat of the human allowed to start a round
	Tick                 int64                       `json:"tick"`
	Presences            map[string]runtime.Presence `json:"-"` // UserId -> Presence for targeted messaging
	App                  *app.Service                `json:"-"`
	Game                 *app.Game                   `json:"-"` // nil while in the lobby
	Names                map[string]string           `json:"names"`
	BotsEnabled          bool                        `json:"bots_enabled"`
	BotMinDelay          int                         `json:"bot_min_delay"`
	BotMaxDelay          int                         `json:"bot_max_delay"`
	BotAutoFillDelay     int                         `json:"bot_auto_fill_delay"`
	BotWaitUntil         int64                       `json:"bot_wait_until"` // tick when the current bot acts
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"`
	Bots                 map[string]*bot.Agent       `json:"-"`
	// TurnDuration is how long a human may hold the turn before the server acts for them. Zero disables it.
	TurnDuration int64  `json:"turn_duration"`
	TurnOwner    string `json:"turn_owner"`
	TurnDeadline int64  `json:"turn_deadline"`

	rng *rand.Rand
}

func newMatchState(cfg config.GameConfig, rng *rand.Rand) *MatchState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	svc := app.NewService(rng)
	svc.LeadingSuit = cfg.Suit()
	svc.MinPlayers = cfg.MinPlayers
	svc.MaxPlayers = cfg.MaxPlayers
	return &MatchState{
		OwnerSeat:        -1,
		Presences:        make(map[string]runtime.Presence),
		App:              svc,
		Names:            make(map[string]string),
		BotMinDelay:      cfg.BotMinDelaySeconds,
		BotMaxDelay:      cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: cfg.BotAutoFillDelaySeconds,
		Bots:             make(map[string]*bot.Agent),
		TurnDuration:     int64(cfg.TurnDurationSeconds),
		rng:              rng,
	}
}

// capacity is the number of seats a round may use: the configured table size, at most MaxSeats.
func (ms *MatchState) capacity() int {
	if ms.App == nil || ms.App.MaxPlayers <= 0 || ms.App.MaxPlayers > MaxSeats {
		return MaxSeats
	}
	return ms.App.MaxPlayers
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats[:ms.capacity()] {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !ms.isBot(seat) {
			count++
		}
	}
	return count
}

// isBot reports whether userID is a bot seated by this match or a pool identity.
func (ms *MatchState) isBot(userID string) bool {
	if _, ok := ms.Bots[userID]; ok {
		return true
	}
	return bot.IsBot(userID)
}

func (ms *MatchState) seatOf(userID string) int {
	for i, seat := range ms.Seats {
		if seat != "" && seat == userID {
			return i
		}
	}
	return -1
}

func (ms *MatchState) phase() string {
	if ms.Game != nil {
		return phasePlaying
	}
	return phaseLobby
}

func (ms *MatchState) findFirstHumanSeat() int {
	for i, seat := range ms.Seats {
		if seat != "" && !ms.isBot(seat) {
			return i
		}
	}
	return -1
}

func (ms *MatchState) isHumanSeat(seat int) bool {
	if seat < 0 || seat >= MaxSeats {
		return false
	}
	userID := ms.Seats[seat]
	return userID != "" && !ms.isBot(userID)
}

// shouldTerminateNoHumans returns true when no connected human remains in the match.
func (ms *MatchState) shouldTerminateNoHumans() bool {
	for userID := range ms.Presences {
		if !ms.isBot(userID) {
			return false
		}
	}
	return true
}

func (ms *MatchState) displayName(userID string) string {
	if name, ok := ms.Names[userID]; ok && name != "" {
		return name
	}
	if agent, ok := ms.Bots[userID]; ok && agent.Name != "" {
		return agent.Name
	}
	if name := bot.GetBotDisplayName(userID); name != "" {
		return name
	}
	return userID
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities(botIdentitiesPath); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}

	state := newMatchState(config.GetGameConfig(), nil)

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env[envBotsEnabled]; ok {
		state.BotsEnabled = val == "true"
	}
	readSeconds(env, envBotMinDelay, &state.BotMinDelay)
	readSeconds(env, envBotMaxDelay, &state.BotMaxDelay)
	readSeconds(env, envBotAutoFillDelay, &state.BotAutoFillDelay)
	if state.BotMaxDelay < state.BotMinDelay {
		state.BotMaxDelay = state.BotMinDelay
	}

	label, err := encodeLabel(phaseLobby, state.GetOpenSeatsCount(), 0)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second; bot delays and turn timers count ticks
	return state, tickRate, label
}

func readSeconds(env map[string]string, key string, dst *int) {
	val, ok := env[key]
	if !ok {
		return
	}
	if i, err := strconv.Atoi(val); err == nil && i >= 0 {
		*dst = i
	}
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if matchState.seatOf(userID) >= 0 {
		return state, true, ""
	}
	if matchState.Game != nil {
		return state, false, "Round in progress"
	}

	if matchState.GetOpenSeatsCount() > 0 {
		return state, true, ""
	}
	for _, seat := range matchState.Seats {
		if matchState.isBot(seat) {
			return state, true, ""
		}
	}
	return state, false, "Match full"
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		if name := p.GetUsername(); name != "" {
			matchState.Names[userID] = name
		}

		if seat := matchState.seatOf(userID); seat >= 0 {
			logger.Info("MatchJoin: User %s rejoined seat %d.", userID, seat)
			mh.sendSync(matchState, dispatcher, logger, userID)
			continue
		}

		if !mh.assignSeat(matchState, logger, userID) {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
		}
	}

	if !matchState.isHumanSeat(matchState.OwnerSeat) {
		matchState.OwnerSeat = matchState.findFirstHumanSeat()
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// assignSeat seats userID in the first empty seat, or replaces a bot while in the lobby.
func (mh *matchHandler) assignSeat(state *MatchState, logger runtime.Logger, userID string) bool {
	for i, seat := range state.Seats[:state.capacity()] {
		if seat == "" {
			state.Seats[i] = userID
			return true
		}
	}
	if state.Game != nil {
		return false
	}
	for i, seat := range state.Seats {
		if state.isBot(seat) {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seat, userID, i)
			delete(state.Bots, seat)
			state.Seats[i] = userID
			return true
		}
	}
	return false
}

// MatchLeave is called when one or more players leave the match.
// During a round the seat is kept so the player can rejoin; the turn timer plays for them.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}
		if matchState.Game != nil {
			logger.Debug("MatchLeave: User %s left mid-round, seat %d held.", userID, seat)
			continue
		}
		matchState.Seats[seat] = ""
		delete(matchState.Names, userID)
		logger.Debug("MatchLeave: User %s left, seat %d freed.", userID, seat)
	}

	if matchState.shouldTerminateNoHumans() {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.reassignOwner(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// reassignOwner hands ownership to the first connected human when the owner is gone.
func (mh *matchHandler) reassignOwner(state *MatchState, logger runtime.Logger) {
	if state.isHumanSeat(state.OwnerSeat) {
		if _, connected := state.Presences[state.Seats[state.OwnerSeat]]; connected {
			return
		}
	}
	state.OwnerSeat = -1
	for i, seat := range state.Seats {
		if _, connected := state.Presences[seat]; connected && state.isHumanSeat(i) {
			state.OwnerSeat = i
			logger.Debug("MatchLeave: Owner set to human seat %d.", i)
			return
		}
	}
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpPlayCards:
			mh.handlePlayCards(matchState, dispatcher, logger, msg)
		case OpPassTurn:
			mh.handlePassTurn(matchState, dispatcher, logger, msg)
		case OpChooseDirection:
			mh.handleChooseDirection(matchState, dispatcher, logger, msg)
		case OpRequestSync:
			mh.sendSync(matchState, dispatcher, logger, msg.GetUserId())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}
	mh.processTurnTimer(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil {
		mh.autoFill(state, dispatcher, logger)
		return
	}

	cur := state.Game.State.CurrentPlayer()
	if cur == nil || !state.isBot(cur.ID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if spread := state.BotMaxDelay - state.BotMinDelay; spread > 0 {
			delay += state.rng.Intn(spread + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", cur.ID, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, ok := state.Bots[cur.ID]
	if !ok {
		var err error
		agent, err = bot.NewAgent(cur.ID, cur.Name, bot.BotLevelGreedy, state.rng)
		if err != nil {
			logger.Error("processBots: Failed to create fallback agent: %v", err)
			return
		}
		state.Bots[cur.ID] = agent
	}
	mh.actFor(state, dispatcher, logger, agent)
}

// autoFill seats bots up to AutoFillTableSize once a lone human has waited long enough.
func (mh *matchHandler) autoFill(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.GetHumanPlayerCount() != 1 {
		state.LastSinglePlayerTick = 0
		return
	}
	if state.LastSinglePlayerTick == 0 {
		state.LastSinglePlayerTick = state.Tick
		logger.Debug("processBots: Single player detected, starting auto-fill timer.")
	}
	if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
		return
	}
	state.LastSinglePlayerTick = 0

	target := min(AutoFillTableSize, state.capacity())
	added := 0
	for i := range state.Seats[:state.capacity()] {
		if state.GetOccupiedSeatCount() >= target {
			break
		}
		if state.Seats[i] != "" {
			continue
		}
		identity := bot.GetBotIdentity(i)
		if state.seatOf(identity.UserID) >= 0 {
			continue
		}
		agent, err := identity.Agent(state.rng)
		if err != nil {
			logger.Error("processBots: Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		state.Seats[i] = identity.UserID
		state.Bots[identity.UserID] = agent
		state.Names[identity.UserID] = agent.Name
		added++
		logger.Info("processBots: Added bot %s (%s) to seat %d", agent.Name, identity.UserID, i)
	}
	if added > 0 {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastMatchState(state, dispatcher, logger)
	}
}

// processTurnTimer acts for a human who held the turn past TurnDuration ticks.
func (mh *matchHandler) processTurnTimer(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.TurnDuration <= 0 {
		state.TurnOwner, state.TurnDeadline = "", 0
		return
	}
	cur := state.Game.State.CurrentPlayer()
	if cur == nil || state.isBot(cur.ID) {
		state.TurnOwner, state.TurnDeadline = "", 0
		return
	}
	if state.TurnOwner != cur.ID {
		state.TurnOwner = cur.ID
		state.TurnDeadline = state.Tick + state.TurnDuration
		return
	}
	if state.Tick < state.TurnDeadline {
		return
	}

	logger.Info("processTurnTimer: Turn expired for %s, acting on their behalf.", cur.ID)
	state.TurnOwner, state.TurnDeadline = "", 0
	agent, err := bot.NewAgent(cur.ID, cur.Name, bot.BotLevelGreedy, state.rng)
	if err != nil {
		logger.Error("processTurnTimer: Failed to create agent: %v", err)
		return
	}
	mh.actFor(state, dispatcher, logger, agent)
}

// actFor applies the agent's move, falling back to a pass when the move is refused.
func (mh *matchHandler) actFor(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, agent *bot.Agent) {
	action, err := agent.Act(state.Game.State)
	if err != nil {
		logger.Warn("actFor: %s failed to calculate move: %v", agent.ID, err)
	}

	events, err := state.App.Apply(state.Game, action)
	if err != nil && action.Kind != domain.ActionPass {
		logger.Warn("actFor: %s move %s refused (%v), passing instead", agent.ID, action.Kind, err)
		events, err = state.App.Apply(state.Game, domain.Action{Kind: domain.ActionPass, PlayerID: agent.ID})
	}
	if err != nil {
		logger.Error("actFor: %s could not act: %v", agent.ID, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func (mh *matchHandler) buildSnapshot(state *MatchState) MatchSnapshot {
	players := make([]SeatView, 0, state.GetOccupiedSeatCount())
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		remaining := 0
		if state.Game != nil {
			if idx := state.Game.State.PlayerIndex(userID); idx >= 0 {
				remaining = len(state.Game.State.Players[idx].Hand)
			}
		}
		players = append(players, SeatView{
			UserID:         userID,
			Seat:           i,
			IsOwner:        i == state.OwnerSeat,
			IsBot:          state.isBot(userID),
			DisplayName:    state.displayName(userID),
			CardsRemaining: remaining,
		})
	}
	return MatchSnapshot{
		Seats:     append([]string(nil), state.Seats[:]...),
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Phase:     state.phase(),
		Players:   players,
	}
}

func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	b, err := json.Marshal(mh.buildSnapshot(state))
	if err != nil {
		logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, b, nil, nil, true); err != nil {
		logger.Error("broadcastMatchState: %v", err)
	}
}

// sendSync sends userID the match snapshot plus their private view of the round.
func (mh *matchHandler) sendSync(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	snapshot := mh.buildSnapshot(state)
	if state.Game != nil {
		view := app.Snapshot(state.Game, userID)
		snapshot.Game = &view
	}
	b, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("sendSync: Failed to marshal snapshot: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpMatchState, b, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendSync: %v", err)
	}
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if state.Game != nil {
		mh.sendError(state, dispatcher, logger, senderID, errCodeConflict, "round already in progress")
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, errCodeForbidden, app.ErrNotOwner.Error())
		return
	}

	game, events, err := state.App.StartGame(state.Seats[:], state.Names)
	if err != nil {
		logger.Warn("StartGame: Failed to start game: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}
	state.Game = game
	state.BotWaitUntil = 0
	state.TurnOwner, state.TurnDeadline = "", 0

	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(state, dispatcher, logger, events)

	logger.Info("StartGame: Game %s started with %d players.", game.ID, len(game.State.Players))
}

func (mh *matchHandler) handlePlayCards(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	cards, err := decodePlayCards(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}
	mh.applyAction(state, dispatcher, logger, domain.Action{Kind: domain.ActionPlay, PlayerID: senderID, Cards: cards})
}

func (mh *matchHandler) handlePassTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	mh.applyAction(state, dispatcher, logger, domain.Action{Kind: domain.ActionPass, PlayerID: msg.GetUserId()})
}

func (mh *matchHandler) handleChooseDirection(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	dir, err := decodeDirection(msg.GetData())
	if err != nil {
		mh.sendError(state, dispatcher, logger, senderID, errCodeBadRequest, err.Error())
		return
	}
	mh.applyAction(state, dispatcher, logger, domain.Action{Kind: domain.ActionChooseDirection, PlayerID: senderID, Direction: dir})
}

// applyAction runs a human action through the app service and reports refusals to the sender.
func (mh *matchHandler) applyAction(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, action domain.Action) {
	if state.Game == nil {
		logger.Warn("applyAction: %s sent %s with no round in progress.", action.PlayerID, action.Kind)
		mh.sendError(state, dispatcher, logger, action.PlayerID, errCodeConflict, app.ErrNotPlaying.Error())
		return
	}

	events, err := state.App.Apply(state.Game, action)
	if err != nil {
		logger.Warn("applyAction: User %s failed to %s: %v", action.PlayerID, action.Kind, err)
		mh.sendError(state, dispatcher, logger, action.PlayerID, errorCode(err), err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrNotYourTurn), errors.Is(err, app.ErrNotPlaying):
		return errCodeConflict
	case errors.Is(err, app.ErrUnknownPlayer), errors.Is(err, app.ErrPlayerFinished):
		return errCodeForbidden
	default:
		return errCodeBadRequest
	}
}

func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent encodes an app event and dispatches it to its recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}

	b, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	if ev.Kind == app.EventGameEnded {
		mh.endRound(state, dispatcher, logger)
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for absent recipients (bots, disconnected players) go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, b, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: %v", err)
	}
}

// endRound returns the match to the lobby and frees the seats of players who left mid-round.
func (mh *matchHandler) endRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Game = nil
	state.BotWaitUntil = 0
	state.TurnOwner, state.TurnDeadline = "", 0
	for i, userID := range state.Seats {
		if userID == "" || state.isBot(userID) {
			continue
		}
		if _, connected := state.Presences[userID]; !connected {
			state.Seats[i] = ""
			delete(state.Names, userID)
		}
	}
	mh.reassignOwner(state, logger)
	mh.updateLabel(state, dispatcher, logger)
}

// sendError sends a GameErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	b, err := json.Marshal(GameErrorEvent{Code: code, Message: message})
	if err != nil {
		logger.Error("Failed to marshal GameErrorEvent: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, b, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := encodeLabel(state.phase(), state.GetOpenSeatsCount(), state.GetOccupiedSeatCount())
	if err != nil {
		logger.Error("UpdateLabel: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
