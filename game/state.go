package game

import "fmt"

// Authoritative state of one running match. Everything a tick touches
// lives here so a match can be built, stepped and thrown away in tests.

type EntityID uint8

const (
	EntityPlayer EntityID = iota
	EntityOpponent
	EntityBall
)

func (e EntityID) String() string {
	switch e {
	case EntityPlayer:
		return "player"
	case EntityOpponent:
		return "opponent"
	case EntityBall:
		return "ball"
	default:
		return fmt.Sprintf("entity(%d)", uint8(e))
	}
}

// Side names who scores, not where the goal is: the left zone is where
// the opponent scores.
type Side uint8

const (
	SidePlayer Side = iota
	SideOpponent
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "opponent"
}

// Character is a body that can jump. CanJump is set by ground contact
// and cleared by a jump or a kick-off reset. Characters spawn in the air,
// so it starts false.
type Character struct {
	Body
	CanJump bool
}

// GoalZone is a non-solid overlap region.
type GoalZone struct {
	Rect   Rect
	Scorer Side
}

type Score struct {
	Player   int
	Opponent int
}

// ScoreDisplay is told about every score change.
type ScoreDisplay interface {
	Render(player, opponent int)
}

// ScoreText is the text shown for a score.
func ScoreText(player, opponent int) string {
	return fmt.Sprintf("Player: %d - AI: %d", player, opponent)
}

type Match struct {
	Tick int

	Player   Character
	Opponent Character
	Ball     Body

	Ground Body
	Posts  []Body
	Zones  []GoalZone

	Score          Score
	CooldownActive bool

	timers  timerQueue
	display ScoreDisplay
	world   *world
}

// NewMatch lays out the arena at kick-off and renders the 0-0 score.
// display may be nil.
func NewMatch(display ScoreDisplay) *Match {
	m := &Match{
		Player:   newCharacter(PlayerStartX, PlayerStartY),
		Opponent: newCharacter(OpponentStartX, OpponentStartY),
		Ball: Body{
			X:                  BallStartX,
			Y:                  BallStartY,
			Shape:              CircleShape(BallRadius),
			AllowGravity:       true,
			CollideWorldBounds: true,
			Bounce:             BallBounce,
			DragX:              BallDragX,
		},
		Ground: StaticBody(GroundRect),
		Posts: []Body{
			StaticBody(LeftPostRect),
			StaticBody(LeftCrossbarRect),
			StaticBody(RightPostRect),
			StaticBody(RightCrossbarRect),
		},
		Zones: []GoalZone{
			{Rect: LeftZoneRect, Scorer: SideOpponent},
			{Rect: RightZoneRect, Scorer: SidePlayer},
		},
		display: display,
	}
	m.world = newWorld(m)
	m.renderScore()
	return m
}

func newCharacter(x, y float64) Character {
	return Character{
		Body: Body{
			X:                  x,
			Y:                  y,
			Shape:              RectShape(CharacterWidth, CharacterHeight),
			AllowGravity:       true,
			GravityY:           CharacterGravity,
			CollideWorldBounds: true,
			Bounce:             CharacterBounce,
		},
	}
}

// Character returns the jumping body for id, or nil for the ball.
func (m *Match) Character(id EntityID) *Character {
	switch id {
	case EntityPlayer:
		return &m.Player
	case EntityOpponent:
		return &m.Opponent
	default:
		return nil
	}
}

// SetDisplay swaps the score display and renders the current score on it.
func (m *Match) SetDisplay(d ScoreDisplay) {
	m.display = d
	m.renderScore()
}

func (m *Match) renderScore() {
	if m.display != nil {
		m.display.Render(m.Score.Player, m.Score.Opponent)
	}
}
