package protocol

import "testing"

func TestMessageConstants(t *testing.T) {
	want := map[string]string{
		MsgHello:   "hello",
		MsgInput:   "input",
		MsgWelcome: "welcome",
		MsgState:   "state",
		MsgGoal:    "goal",
		MsgError:   "error",
	}
	for got, w := range want {
		if got != w {
			t.Fatalf("message constant = %q, want %q", got, w)
		}
	}
}

func TestTimingSanity(t *testing.T) {
	if SimTickHz <= 0 || ClientInputHz <= 0 || BroadcastHz <= 0 {
		t.Fatalf("timing constants must be > 0")
	}
	if SimTickHz%BroadcastHz != 0 {
		t.Fatalf("SimTickHz %% BroadcastHz != 0 (%d %% %d)", SimTickHz, BroadcastHz)
	}
}
