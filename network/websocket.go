package network

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Vansh-Raj/HeadBall/game"
	"github.com/Vansh-Raj/HeadBall/protocol"
	"github.com/Vansh-Raj/HeadBall/room"
)

const maxNameLen = 24

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}

	// Upgrade HTTP -> WebSocket
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade")
		return
	}
	conn := newWSConn(ws)
	go conn.writePump()
	defer conn.Close()

	hello, err := readHello(ws)
	if err != nil {
		s.log.Info().Err(err).Str("room", code).Msg("rejected client")
		_ = conn.Send(protocol.EncodeError(err.Error()))
		return
	}

	rm, res, err := s.join(code, conn, hello.Name)
	if err != nil {
		s.log.Warn().Err(err).Str("room", code).Msg("join")
		_ = conn.Send(protocol.EncodeError("could not join room"))
		return
	}
	log := s.log.With().Str("room", code).Str("player", res.PlayerID).Logger()
	defer func() { _ = rm.Send(room.Leave{PlayerID: res.PlayerID}) }()

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("read")
			}
			return
		}

		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			log.Warn().Err(err).Msg("bad message")
			_ = conn.Send(protocol.EncodeError(err.Error()))
			continue
		}

		switch env.T {
		case protocol.MsgInput:
			in, err := protocol.DecodePayload[protocol.Input](env)
			if err != nil {
				_ = conn.Send(protocol.EncodeError(err.Error()))
				continue
			}
			cmd := room.Input{PlayerID: res.PlayerID, Input: game.Input{
				Left:  in.Left,
				Right: in.Right,
				Up:    in.Up,
				Down:  in.Down,
			}}
			if err := rm.Send(cmd); err != nil {
				return
			}
		default:
			_ = conn.Send(protocol.EncodeError(fmt.Sprintf("unexpected message type %q", env.T)))
		}
	}
}

func readHello(ws *websocket.Conn) (protocol.Hello, error) {
	_, msg, err := ws.ReadMessage()
	if err != nil {
		return protocol.Hello{}, fmt.Errorf("read hello: %w", err)
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, fmt.Errorf("expected %q, got %q", protocol.MsgHello, env.T)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return protocol.Hello{}, err
	}
	if hello.V != protocol.Version {
		return protocol.Hello{}, fmt.Errorf("unsupported protocol version %d", hello.V)
	}
	if r := []rune(hello.Name); len(r) > maxNameLen {
		hello.Name = string(r[:maxNameLen])
	}
	return hello, nil
}

// join retries once when the room shut down between lookup and join.
func (s *Server) join(code string, conn room.Conn, name string) (*room.Room, room.JoinResult, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		rm := s.rooms.GetOrCreateRoom(code)
		res, err := rm.Join(conn, name)
		if err == nil {
			return rm, res, nil
		}
		if !errors.Is(err, room.ErrRoomClosed) {
			return nil, room.JoinResult{}, err
		}
		lastErr = err
	}
	return nil, room.JoinResult{}, fmt.Errorf("join room %s: %w", code, lastErr)
}
