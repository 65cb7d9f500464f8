package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgGoal    = "goal"
	MsgError   = "error"
)

const (
	SimTickHz     = 60
	ClientInputHz = 60
	BroadcastHz   = 30
)

const Version = 1

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
