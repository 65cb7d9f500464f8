package room

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Vansh-Raj/HeadBall/game"
	"github.com/Vansh-Raj/HeadBall/protocol"
)

type client struct {
	conn Conn
	name string
	role string
}

// Room runs one match. All match state is owned by the Run goroutine;
// everything else talks to it through Inbox.
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	match          *game.Match
	score          protocol.ScoreSnapshot
	clients        map[string]*client
	controller     string // id of the client driving the player, "" if free
	input          game.Input
	numClients     atomic.Int32
	quit           chan struct{}
	stopOnce       sync.Once

	log     zerolog.Logger
	metrics *Metrics

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last client leaves
}

func New(logger zerolog.Logger, metrics *Metrics) *Room {
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	r := &Room{
		Inbox:          make(chan any, 256),
		tickHz:         protocol.SimTickHz,
		broadcastEvery: broadcastEvery,
		clients:        make(map[string]*client),
		quit:           make(chan struct{}),
		log:            logger,
		metrics:        metrics,
	}
	r.match = game.NewMatch(r)
	return r
}

// Render keeps the score line that goes out with every snapshot.
func (r *Room) Render(player, opponent int) {
	r.score = protocol.ScoreSnapshot{
		Player:   player,
		Opponent: opponent,
		Text:     game.ScoreText(player, opponent),
	}
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// NumClients returns the current number of connected clients. Safe to
// call from any goroutine.
func (r *Room) NumClients() int {
	return int(r.numClients.Load())
}

// Send hands cmd to the room, failing once the room has stopped.
func (r *Room) Send(cmd any) error {
	select {
	case <-r.quit:
		return ErrRoomClosed
	case r.Inbox <- cmd:
		return nil
	}
}

// Join adds c to the room and waits for its id and role.
func (r *Room) Join(c Conn, name string) (JoinResult, error) {
	reply := make(chan JoinResult, 1)
	if err := r.Send(Join{Conn: c, Name: name, Reply: reply}); err != nil {
		return JoinResult{}, err
	}
	select {
	case res := <-reply:
		return res, nil
	case <-r.quit:
		return JoinResult{}, ErrRoomClosed
	}
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	r.log.Info().Msg("room started")
	defer func() { r.log.Info().Msg("room stopped") }()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Room) tick() {
	_, goals := game.Step(r.match, r.input)
	r.metrics.tick()

	for _, g := range goals {
		r.announceGoal(g)
	}
	if r.match.Tick%r.broadcastEvery == 0 {
		r.broadcastState()
	}
}

func (r *Room) announceGoal(g game.Goal) {
	goal := "right goal"
	if g.Scorer == game.SideOpponent {
		goal = "left goal"
	}
	r.log.Info().
		Str("scorer", g.Scorer.String()).
		Int("tick", g.Tick).
		Str("score", r.score.Text).
		Msg(goal)
	r.metrics.goal(g.Scorer)

	b, err := protocol.Encode(protocol.MsgGoal, protocol.Goal{
		Scorer: g.Scorer.String(),
		Tick:   g.Tick,
		Score:  r.score,
	})
	if err != nil {
		r.log.Error().Err(err).Msg("encode goal")
		return
	}
	r.broadcast(b)
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		c.Reply <- r.handleJoin(c)
	case Input:
		if c.PlayerID == "" || c.PlayerID != r.controller {
			return
		}
		r.input = c.Input
	case Leave:
		r.handleLeave(c.PlayerID)
	default:
		r.log.Warn().Msgf("unknown room command %T", cmd)
	}
}

func (r *Room) handleJoin(j Join) JoinResult {
	id := uuid.NewString()
	role := protocol.RoleSpectator
	if r.controller == "" {
		role = protocol.RolePlayer
		r.controller = id
		r.input = game.Input{}
	}
	name := j.Name
	if name == "" {
		name = "Player " + id[:8]
	}
	r.clients[id] = &client{conn: j.Conn, name: name, role: role}
	r.numClients.Store(int32(len(r.clients)))
	r.metrics.clientDelta(role, 1)

	r.log.Info().Str("player", id).Str("name", name).Str("role", role).Msg("client joined")

	welcome, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		PlayerID: id,
		Role:     role,
		TickHz:   r.tickHz,
		Arena:    ArenaLayout(),
	})
	if err == nil {
		err = j.Conn.Send(welcome)
	}
	if err == nil {
		r.sendStateTo(j.Conn)
	}
	return JoinResult{PlayerID: id, Role: role}
}

func (r *Room) handleLeave(playerID string) {
	c, ok := r.clients[playerID]
	if !ok {
		return
	}
	r.removeClient(playerID)
	r.log.Info().Str("player", playerID).Str("role", c.role).Msg("client left")

	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removeClient(playerID string) {
	c, ok := r.clients[playerID]
	if !ok {
		return
	}
	_ = c.conn.Close()
	delete(r.clients, playerID)
	r.numClients.Store(int32(len(r.clients)))
	r.metrics.clientDelta(c.role, -1)

	if playerID == r.controller {
		r.controller = ""
		r.input = game.Input{}
	}
}

func (r *Room) broadcastState() {
	b, err := protocol.Encode(protocol.MsgState, r.buildSnapshot())
	if err != nil {
		r.log.Error().Err(err).Msg("encode state")
		return
	}
	r.broadcast(b)
}

func (r *Room) broadcast(b []byte) {
	var failed []string
	for id, c := range r.clients {
		if err := c.conn.Send(b); err != nil {
			r.log.Warn().Err(err).Str("player", id).Msg("send failed, dropping client")
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.handleLeave(id)
	}
}

func (r *Room) sendStateTo(c Conn) {
	b, err := protocol.Encode(protocol.MsgState, r.buildSnapshot())
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) buildSnapshot() protocol.State {
	m := r.match
	return protocol.State{
		Tick:     m.Tick,
		Player:   bodySnapshot(&m.Player.Body),
		Opponent: bodySnapshot(&m.Opponent.Body),
		Ball:     bodySnapshot(&m.Ball),
		Score:    r.score,
		Cooldown: m.CooldownActive,
	}
}

func bodySnapshot(b *game.Body) protocol.BodySnapshot {
	return protocol.BodySnapshot{
		X:        b.X,
		Y:        b.Y,
		VX:       b.VX,
		VY:       b.VY,
		Grounded: b.Touching.Down,
	}
}

// ArenaLayout describes the static pitch for clients.
func ArenaLayout() protocol.Arena {
	m := game.NewMatch(nil)
	arena := protocol.Arena{
		Width:  game.ArenaWidth,
		Height: game.ArenaHeight,
		Ground: protoRect(m.Ground.Bounds()),
	}
	for i := range m.Posts {
		arena.Posts = append(arena.Posts, protoRect(m.Posts[i].Bounds()))
	}
	for _, z := range m.Zones {
		arena.Zones = append(arena.Zones, protocol.Zone{Rect: protoRect(z.Rect), Scorer: z.Scorer.String()})
	}
	return arena
}

func protoRect(r game.Rect) protocol.Rect {
	return protocol.Rect{X: r.MinX, Y: r.MinY, W: r.Width(), H: r.Height()}
}
