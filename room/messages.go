package room

import (
	"errors"

	"github.com/Vansh-Raj/HeadBall/game"
)

var ErrRoomClosed = errors.New("room closed")

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	PlayerID string
	Role     string
}

// Input: latest key state for a client. Only the controller's counts.
type Input struct {
	PlayerID string
	Input    game.Input
}

// Leave: issued on disconnect
type Leave struct {
	PlayerID string
}
