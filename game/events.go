package game

import "math"

type EventKind uint8

const (
	GroundContact EventKind = iota
	EntityBallContact
	GoalOverlap
)

func (k EventKind) String() string {
	switch k {
	case GroundContact:
		return "ground_contact"
	case EntityBallContact:
		return "entity_ball_contact"
	case GoalOverlap:
		return "goal_overlap"
	default:
		return "unknown"
	}
}

// Event is something the physics step observed during a tick. Side is
// only meaningful for GoalOverlap.
type Event struct {
	Kind   EventKind
	Entity EntityID
	Side   Side
}

// Goal is a goal that was actually counted.
type Goal struct {
	Tick   int
	Scorer Side
	Score  Score
}

// Dispatch applies a tick's events to the match in order and returns
// the goals that counted. It is the only place events are consumed.
func Dispatch(m *Match, events []Event) []Goal {
	var goals []Goal
	for _, e := range events {
		switch e.Kind {
		case GroundContact:
			if c := m.Character(e.Entity); c != nil {
				c.CanJump = true
			}
		case EntityBallContact:
			if c := m.Character(e.Entity); c != nil {
				Kick(&c.Body, &m.Ball)
			}
		case GoalOverlap:
			if m.HandleGoal(e.Side) {
				goals = append(goals, Goal{Tick: m.Tick, Scorer: e.Side, Score: m.Score})
			}
		}
	}
	return goals
}

// Kick replaces the ball's velocity with KickPower along the line from
// the kicker's centre to the ball's centre. Whatever the ball was doing
// before is discarded.
func Kick(kicker, ball *Body) {
	angle := math.Atan2(ball.Y-kicker.Y, ball.X-kicker.X)
	ball.SetVelocity(math.Cos(angle)*KickPower, math.Sin(angle)*KickPower)
}
