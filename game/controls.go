package game

// Input is the key state for one tick. Down is read but unused.
type Input struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
}

// ApplyInput drives the human character. Holding both directions
// cancels out. Up only jumps while CanJump is set.
func ApplyInput(c *Character, in Input) {
	switch {
	case in.Left && !in.Right:
		c.VX = -PlayerSpeed
	case in.Right && !in.Left:
		c.VX = PlayerSpeed
	default:
		c.VX = 0
	}

	if in.Up && c.CanJump {
		c.VY = JumpVelocity
		c.CanJump = false
	}
}
