package room

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vansh-Raj/HeadBall/game"
	"github.com/Vansh-Raj/HeadBall/protocol"
)

type fakeConn struct {
	sendCh chan []byte
	closed atomic.Bool
}

func newFakeConn(size int) *fakeConn {
	return &fakeConn{sendCh: make(chan []byte, size)}
}

func (f *fakeConn) Send(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Close() error {
	f.closed.Store(true)
	return nil
}

type errConn struct {
	closed bool
}

func (e *errConn) Send([]byte) error { return errors.New("broken pipe") }
func (e *errConn) Close() error      { e.closed = true; return nil }

func startRoom(t *testing.T) *Room {
	t.Helper()
	r := New(zerolog.Nop(), nil)
	go r.Run()
	t.Cleanup(r.Stop)
	return r
}

func joinRoom(t *testing.T, r *Room, c Conn, name string) JoinResult {
	t.Helper()
	res, err := r.Join(c, name)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if res.PlayerID == "" {
		t.Fatalf("expected player id, got empty")
	}
	return res
}

// nextOfType drains fc until a message of type typ shows up.
func nextOfType[T any](t *testing.T, fc *fakeConn, typ string, within time.Duration) T {
	t.Helper()
	timeout := time.After(within)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.T != typ {
				continue
			}
			out, err := protocol.DecodePayload[T](env)
			if err != nil {
				t.Fatalf("decode %s: %v", typ, err)
			}
			return out
		case <-timeout:
			t.Fatalf("timed out waiting for %q", typ)
		}
	}
}

func TestRoomJoinSendsWelcomeThenState(t *testing.T) {
	r := startRoom(t)
	fc := newFakeConn(64)
	res := joinRoom(t, r, fc, "test")

	if res.Role != protocol.RolePlayer {
		t.Fatalf("first client role = %q, want %q", res.Role, protocol.RolePlayer)
	}

	first := <-fc.sendCh
	env, err := protocol.DecodeEnvelope(first)
	if err != nil || env.T != protocol.MsgWelcome {
		t.Fatalf("first message = %q (%v), want welcome", env.T, err)
	}
	w, err := protocol.DecodePayload[protocol.Welcome](env)
	if err != nil {
		t.Fatalf("decode welcome: %v", err)
	}
	if w.PlayerID != res.PlayerID || w.TickHz != protocol.SimTickHz {
		t.Fatalf("welcome = %+v", w)
	}
	if len(w.Arena.Zones) != 2 || len(w.Arena.Posts) != 4 {
		t.Fatalf("arena layout incomplete: %+v", w.Arena)
	}

	st := nextOfType[protocol.State](t, fc, protocol.MsgState, time.Second)
	if st.Score.Text != "Player: 0 - AI: 0" {
		t.Fatalf("score text = %q", st.Score.Text)
	}
}

func TestRoomSecondClientSpectates(t *testing.T) {
	r := startRoom(t)
	res1 := joinRoom(t, r, newFakeConn(256), "a")
	res2 := joinRoom(t, r, newFakeConn(256), "b")

	if res1.PlayerID == res2.PlayerID {
		t.Fatalf("expected unique player ids, got same: %q", res1.PlayerID)
	}
	if res1.Role != protocol.RolePlayer || res2.Role != protocol.RoleSpectator {
		t.Fatalf("roles = %q, %q", res1.Role, res2.Role)
	}
	if r.NumClients() != 2 {
		t.Fatalf("NumClients = %d, want 2", r.NumClients())
	}
}

func TestRoomControllerSlotFreedOnLeave(t *testing.T) {
	r := startRoom(t)
	fc1 := newFakeConn(256)
	res1 := joinRoom(t, r, fc1, "a")
	joinRoom(t, r, newFakeConn(256), "b")

	if err := r.Send(Leave{PlayerID: res1.PlayerID}); err != nil {
		t.Fatalf("leave: %v", err)
	}
	res3 := joinRoom(t, r, newFakeConn(256), "c")
	if res3.Role != protocol.RolePlayer {
		t.Fatalf("role after controller left = %q, want player", res3.Role)
	}
	if !fc1.closed.Load() {
		t.Fatalf("leaving client's conn was not closed")
	}
}

func TestRoomBroadcastShowsMovement(t *testing.T) {
	r := startRoom(t)
	fc := newFakeConn(256)
	res := joinRoom(t, r, fc, "mover")

	if err := r.Send(Input{PlayerID: res.PlayerID, Input: game.Input{Right: true}}); err != nil {
		t.Fatalf("input: %v", err)
	}

	first := nextOfType[protocol.State](t, fc, protocol.MsgState, time.Second)
	second := nextOfType[protocol.State](t, fc, protocol.MsgState, time.Second)
	for second.Player.X <= first.Player.X && second.Tick < first.Tick+10 {
		second = nextOfType[protocol.State](t, fc, protocol.MsgState, time.Second)
	}
	if second.Player.X <= first.Player.X {
		t.Fatalf("expected x to increase between snapshots: first=%f second=%f", first.Player.X, second.Player.X)
	}
}

func TestRoomIgnoresSpectatorInput(t *testing.T) {
	r := startRoom(t)
	joinRoom(t, r, newFakeConn(256), "player")
	watcher := newFakeConn(256)
	res := joinRoom(t, r, watcher, "watcher")

	if err := r.Send(Input{PlayerID: res.PlayerID, Input: game.Input{Right: true}}); err != nil {
		t.Fatalf("input: %v", err)
	}
	for i := 0; i < 5; i++ {
		st := nextOfType[protocol.State](t, watcher, protocol.MsgState, time.Second)
		if st.Player.X != game.PlayerStartX {
			t.Fatalf("spectator input moved the player to x=%f", st.Player.X)
		}
	}
}

func TestRoomBroadcastRateRoughly30Hz(t *testing.T) {
	r := startRoom(t)
	fc := newFakeConn(256)
	joinRoom(t, r, fc, "rate")

	// Count state messages for ~300ms.
	deadline := time.After(300 * time.Millisecond)
	count := 0

	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err == nil && env.T == protocol.MsgState {
				count++
			}
		case <-deadline:
			// 30Hz for 0.3s => ~9 msgs. Wide range to avoid flakes.
			if count < 3 || count > 16 {
				t.Fatalf("unexpected state broadcast count in 300ms: %d", count)
			}
			return
		}
	}
}

func TestRoomTickAnnouncesGoal(t *testing.T) {
	r := New(zerolog.Nop(), nil)
	fc := newFakeConn(64)
	reply := make(chan JoinResult, 1)
	r.handleCommand(Join{Conn: fc, Name: "striker", Reply: reply})
	<-reply

	r.match.Ball.SetPosition(740, 500)
	r.tick()

	g := nextOfType[protocol.Goal](t, fc, protocol.MsgGoal, time.Second)
	if g.Scorer != "player" || g.Score.Player != 1 || g.Score.Opponent != 0 {
		t.Fatalf("goal = %+v", g)
	}
	if g.Score.Text != "Player: 1 - AI: 0" {
		t.Fatalf("score text = %q", g.Score.Text)
	}

	r.tick()
	st := nextOfType[protocol.State](t, fc, protocol.MsgState, time.Second)
	if !st.Cooldown || st.Score.Player != 1 {
		t.Fatalf("state after goal = %+v", st)
	}
}

func TestRoomDropsClientOnSendFailure(t *testing.T) {
	r := New(zerolog.Nop(), nil)
	r.Code = "DROPME"
	emptied := ""
	r.OnEmpty = func(code string) { emptied = code }

	ec := &errConn{}
	reply := make(chan JoinResult, 1)
	r.handleCommand(Join{Conn: ec, Reply: reply})
	<-reply

	r.tick()
	r.tick()

	if r.NumClients() != 0 || !ec.closed {
		t.Fatalf("broken client kept: clients=%d closed=%v", r.NumClients(), ec.closed)
	}
	if emptied != "DROPME" {
		t.Fatalf("OnEmpty got %q", emptied)
	}
}

func TestRoomSendAfterStop(t *testing.T) {
	r := New(zerolog.Nop(), nil)
	r.Stop()
	r.Stop()

	if err := r.Send(Leave{PlayerID: "x"}); !errors.Is(err, ErrRoomClosed) {
		t.Fatalf("Send after Stop = %v, want ErrRoomClosed", err)
	}
	if _, err := r.Join(newFakeConn(1), "late"); !errors.Is(err, ErrRoomClosed) {
		t.Fatalf("Join after Stop = %v, want ErrRoomClosed", err)
	}
}
