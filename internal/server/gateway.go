package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/planarforge/oracle-server-go/internal/game"
	"github.com/planarforge/oracle-server-go/internal/game/events"
	"github.com/planarforge/oracle-server-go/internal/game/queue"
)

// Options tune the gateway. Zero values take defaults.
type Options struct {
	PingInterval time.Duration
	PongWait     time.Duration
	WriteTimeout time.Duration
	SendBuffer   int

	// JoinTokenHash, when set, requires clients to present the matching
	// join token (bcrypt-verified).
	JoinTokenHash string

	// Defaults for matches created over the admin surface.
	StartingLife int
	OpeningHand  int

	// Decks resolves deck_names in match-creation requests. Nil means
	// requests must carry inline decks.
	Decks DeckResolver
}

func (o *Options) withDefaults() {
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.PongWait <= o.PingInterval {
		o.PongWait = 2 * o.PingInterval
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 10 * time.Second
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 256
	}
}

// session serializes all engine access for one game. The game state is
// single-writer; every mutate or read of it goes through mu.
type session struct {
	gameID string
	mu     sync.Mutex
	dirty  chan struct{}
}

func (s *session) signal() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// Gateway bridges websocket clients and the effect engine. State snapshots
// flow out on every engine event; answers and resolve requests flow in.
type Gateway struct {
	logger   *zap.Logger
	engine   *game.Engine
	opts     Options
	hub      *Hub
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
	runCtx   context.Context
}

// NewGateway creates a gateway over the engine. Run must be started before
// connections are served.
func NewGateway(logger *zap.Logger, engine *game.Engine, opts Options) *Gateway {
	opts.withDefaults()
	return &Gateway{
		logger: logger,
		engine: engine,
		opts:   opts,
		hub:    newHub(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
		runCtx:   context.Background(),
	}
}

// Run drives the hub until the context is cancelled.
func (g *Gateway) Run(ctx context.Context) {
	g.mu.Lock()
	g.runCtx = ctx
	g.mu.Unlock()
	g.hub.run(ctx)
}

func (g *Gateway) context() context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.runCtx
}

// Handler returns the HTTP handler exposing /ws, /games and /healthz.
func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.serveWS)
	mux.HandleFunc("/games", g.handleMatches)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		gateway: g,
		conn:    conn,
		send:    make(chan []byte, g.opts.SendBuffer),
	}
	g.hub.register <- client
	go client.writePump()
	go client.readPump()
}

// handleMessage dispatches one inbound frame. It runs on the client's read
// goroutine.
func (g *Gateway) handleMessage(c *Client, msg clientMessage) {
	switch msg.Type {
	case msgJoinGame:
		g.handleJoin(c, msg)
	case msgCompleteStep:
		g.handleCompleteStep(c, msg)
	case msgResolveText:
		g.handleResolveText(c, msg)
	default:
		g.sendError(c, msg.GameID, "unknown message type "+msg.Type)
	}
}

func (g *Gateway) handleJoin(c *Client, msg clientMessage) {
	if c.joined {
		g.sendError(c, c.gameID, "already joined")
		return
	}
	if msg.GameID == "" || msg.PlayerID == "" {
		g.sendError(c, msg.GameID, "game_id and player_id are required")
		return
	}
	if !verifyJoinToken(g.opts.JoinTokenHash, msg.Token) {
		g.sendError(c, msg.GameID, "invalid join token")
		return
	}
	state, ok := g.engine.Game(msg.GameID)
	if !ok {
		g.sendError(c, msg.GameID, "game not found")
		return
	}
	if state.Player(msg.PlayerID) == nil {
		g.sendError(c, msg.GameID, "player not in game")
		return
	}

	c.gameID = msg.GameID
	c.playerID = msg.PlayerID
	c.joined = true
	sess := g.session(state)
	g.hub.join <- c

	ack, err := json.Marshal(serverMessage{
		Type:   msgJoined,
		GameID: c.gameID,
		Data:   map[string]string{"player_id": c.playerID},
	})
	if err != nil {
		g.logger.Error("failed to marshal join ack", zap.Error(err))
		return
	}

	sess.mu.Lock()
	frames := g.buildFrames(state)
	sess.mu.Unlock()
	frames[c.playerID] = append([][]byte{ack}, frames[c.playerID]...)
	g.deliver(gameFrames{gameID: c.gameID, perPlayer: frames, only: c})

	g.logger.Info("player connected",
		zap.String("game_id", c.gameID),
		zap.String("player_id", c.playerID),
	)
}

func (g *Gateway) handleCompleteStep(c *Client, msg clientMessage) {
	if !c.joined {
		g.sendError(c, msg.GameID, "join a game first")
		return
	}
	if msg.StepID == "" || msg.Answer == nil {
		g.sendError(c, c.gameID, "step_id and answer are required")
		return
	}
	sess := g.sessionByID(c.gameID)
	if sess == nil {
		g.sendError(c, c.gameID, "game not found")
		return
	}

	answer := *msg.Answer
	answer.StepID = msg.StepID
	answer.PlayerID = c.playerID

	ctx := g.context()
	sess.mu.Lock()
	err := g.completeStepLocked(ctx, c, msg.StepID, answer)
	sess.mu.Unlock()
	if err != nil {
		g.sendError(c, c.gameID, err.Error())
		return
	}
	// State frames follow via the event-driven broadcast.
}

func (g *Gateway) handleResolveText(c *Client, msg clientMessage) {
	if !c.joined {
		g.sendError(c, msg.GameID, "join a game first")
		return
	}
	if msg.Text == "" {
		g.sendError(c, c.gameID, "text is required")
		return
	}
	sess := g.sessionByID(c.gameID)
	if sess == nil {
		g.sendError(c, c.gameID, "game not found")
		return
	}

	sess.mu.Lock()
	handled := g.engine.Resolve(g.context(), c.gameID, msg.Text, msg.Trigger.toTriggerItem(), c.playerID, msg.SourceName)
	sess.mu.Unlock()

	g.sendTo(c, serverMessage{
		Type:   msgResolveAck,
		GameID: c.gameID,
		Data:   resolveAck{Handled: handled, Text: msg.Text, SourceName: msg.SourceName},
	})
}

// completeStepLocked enforces the seat check the engine leaves to its
// consumer: only the prompted player may answer a step.
func (g *Gateway) completeStepLocked(ctx context.Context, c *Client, stepID string, answer queue.Answer) error {
	steps, err := g.engine.PendingSteps(ctx, c.gameID)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if step.ID == stepID && step.PlayerID != c.playerID {
			return fmt.Errorf("step %s belongs to another player", stepID)
		}
	}
	return g.engine.CompleteStep(ctx, c.gameID, stepID, answer)
}

// session returns the game's session, creating it (with its event
// subscription and broadcaster) on first use.
func (g *Gateway) session(state *game.GameState) *session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[state.GameID]; ok {
		return s
	}
	s := &session{gameID: state.GameID, dirty: make(chan struct{}, 1)}
	g.sessions[state.GameID] = s
	state.Bus.Subscribe(func(events.Event) { s.signal() })
	go g.broadcaster(s)
	return s
}

func (g *Gateway) sessionByID(gameID string) *session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessions[gameID]
}

func (g *Gateway) dropSession(gameID string) {
	g.mu.Lock()
	delete(g.sessions, gameID)
	g.mu.Unlock()
}

// broadcaster pushes fresh per-player snapshots whenever the game's event
// bus reports a change. Signals are coalesced through the dirty channel.
func (g *Gateway) broadcaster(s *session) {
	ctx := g.context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
			state, ok := g.engine.Game(s.gameID)
			if !ok {
				g.dropSession(s.gameID)
				return
			}
			s.mu.Lock()
			frames := g.buildFrames(state)
			s.mu.Unlock()
			g.deliver(gameFrames{gameID: s.gameID, perPlayer: frames})
		}
	}
}

func (g *Gateway) deliver(frames gameFrames) {
	select {
	case g.hub.deliver <- frames:
	case <-g.context().Done():
	}
}

// buildFrames renders one game_state and one pending_steps frame per seat.
// Callers hold the session lock.
func (g *Gateway) buildFrames(state *game.GameState) map[string][][]byte {
	steps, err := g.engine.PendingSteps(g.context(), state.GameID)
	if err != nil {
		g.logger.Error("failed to list pending steps",
			zap.String("game_id", state.GameID),
			zap.Error(err),
		)
	}

	frames := make(map[string][][]byte, len(state.PlayerOrder))
	for _, playerID := range state.PlayerOrder {
		view := game.BuildGameView(state, playerID)
		stateFrame, err := json.Marshal(serverMessage{Type: msgGameState, GameID: state.GameID, Data: view})
		if err != nil {
			g.logger.Error("failed to marshal game view", zap.Error(err))
			continue
		}

		mine := make([]queue.Step, 0)
		for _, step := range steps {
			if step.PlayerID == playerID {
				mine = append(mine, step)
			}
		}
		stepsFrame, err := json.Marshal(serverMessage{Type: msgPendingSteps, GameID: state.GameID, Data: mine})
		if err != nil {
			g.logger.Error("failed to marshal pending steps", zap.Error(err))
			continue
		}
		frames[playerID] = [][]byte{stateFrame, stepsFrame}
	}
	return frames
}

// sendTo queues one frame for a single client.
func (g *Gateway) sendTo(c *Client, msg serverMessage) {
	frame, err := json.Marshal(msg)
	if err != nil {
		g.logger.Error("failed to marshal message", zap.Error(err))
		return
	}
	g.deliver(gameFrames{
		gameID:    c.gameID,
		perPlayer: map[string][][]byte{c.playerID: {frame}},
		only:      c,
	})
}

func (g *Gateway) sendError(c *Client, gameID, text string) {
	g.sendTo(c, serverMessage{Type: msgError, GameID: gameID, Error: text})
}
