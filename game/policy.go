package game

// DriveOpponent is the scripted opponent. It keeps no memory: every tick
// it chases the ball horizontally with a proportional, saturating speed
// and jumps when the ball is well above it and it is standing.
func DriveOpponent(c *Character, ball *Body) {
	c.VX = clamp((ball.X-c.X)*OpponentGain, -OpponentMaxSpeed, OpponentMaxSpeed)

	if ball.Y < c.Y-OpponentJumpOffset && c.CanJump {
		c.VY = JumpVelocity
		c.CanJump = false
	}
}
