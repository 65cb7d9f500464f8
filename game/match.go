package game

// HandleGoal runs the Playing -> Cooldown transition for scorer. While
// the cooldown is active it does nothing and returns false, which is
// what keeps a ball sitting in a zone from scoring every tick.
func (m *Match) HandleGoal(scorer Side) bool {
	if m.CooldownActive {
		return false
	}

	m.CooldownActive = true
	m.DelayedCall(GoalCooldown, func() {
		m.CooldownActive = false
	})

	switch scorer {
	case SidePlayer:
		m.Score.Player++
	case SideOpponent:
		m.Score.Opponent++
	}
	m.renderScore()

	m.ResetPositions()
	return true
}

// ResetPositions puts the ball back at the centre, at rest, and the two
// characters on their start spots. Character velocities are left alone;
// both characters are airborne again, so neither may jump until it lands.
func (m *Match) ResetPositions() {
	m.Ball.SetPosition(BallResetX, BallResetY)
	m.Ball.SetVelocity(0, 0)
	m.Player.SetPosition(PlayerStartX, PlayerStartY)
	m.Player.CanJump = false
	m.Opponent.SetPosition(OpponentStartX, OpponentStartY)
	m.Opponent.CanJump = false
}
