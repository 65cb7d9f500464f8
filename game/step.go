package game

// Step advances the match by one tick: due timers, then the two
// controllers, then physics, then the dispatcher. It returns the raw
// events of the tick and the goals that counted.
func Step(m *Match, in Input) ([]Event, []Goal) {
	m.Tick++
	m.runTimers()

	ApplyInput(&m.Player, in)
	DriveOpponent(&m.Opponent, &m.Ball)

	events := m.simulate()
	goals := Dispatch(m, events)
	return events, goals
}
