package game

import "time"

const (
	ArenaWidth  = 800.0
	ArenaHeight = 600.0

	TickHz = 60
	DT     = 1.0 / TickHz

	WorldGravity     = 300.0 // applies to every body with gravity
	CharacterGravity = 600.0 // extra pull on the two characters

	CharacterWidth  = 48.0
	CharacterHeight = 48.0
	CharacterBounce = 0.2

	BallRadius = 16.0
	BallBounce = 0.8
	BallDragX  = 20.0

	PlayerSpeed  = 200.0
	JumpVelocity = -450.0

	OpponentGain       = 2.0
	OpponentMaxSpeed   = 160.0
	OpponentJumpOffset = 100.0 // ball must be this far above before it jumps

	KickPower = 400.0

	GoalCooldown      = 1000 * time.Millisecond
	GoalCooldownTicks = int(GoalCooldown * TickHz / time.Second)

	PlayerStartX   = 150.0
	PlayerStartY   = 300.0
	OpponentStartX = 650.0
	OpponentStartY = 300.0
	BallStartX     = 400.0
	BallStartY     = 200.0
	BallResetX     = ArenaWidth / 2
	BallResetY     = ArenaHeight / 2
)

// Static layout, expressed as centre + size like the original scene.
var (
	GroundRect = RectAt(400, 590, 800, 20)

	LeftPostRect      = RectAt(30, 480, 10, 200)
	LeftCrossbarRect  = RectAt(60, 380, 70, 10)
	RightPostRect     = RectAt(770, 480, 10, 200)
	RightCrossbarRect = RectAt(740, 380, 70, 10)

	// Left zone: x 30..90, y 380..590. Right zone mirrors it at x 710..770.
	LeftZoneRect  = RectAt(60, 485, 60, 210)
	RightZoneRect = RectAt(740, 485, 60, 210)
)
