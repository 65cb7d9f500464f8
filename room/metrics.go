package room

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Vansh-Raj/HeadBall/game"
)

const instrumentationName = "github.com/Vansh-Raj/HeadBall/room"

// Metrics records room activity through the global OTel meter, which is
// a no-op until a provider is installed. A nil *Metrics records nothing.
type Metrics struct {
	goals   metric.Int64Counter
	ticks   metric.Int64Counter
	rooms   metric.Int64UpDownCounter
	clients metric.Int64UpDownCounter
}

func NewMetrics() (*Metrics, error) {
	m := otel.Meter(instrumentationName)
	out := &Metrics{}

	var err error
	out.goals, err = m.Int64Counter(
		"headball.goals",
		metric.WithDescription("Goals counted, by scoring side"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating goals counter: %w", err)
	}

	out.ticks, err = m.Int64Counter(
		"headball.ticks",
		metric.WithDescription("Simulation ticks run across all rooms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ticks counter: %w", err)
	}

	out.rooms, err = m.Int64UpDownCounter(
		"headball.rooms.active",
		metric.WithDescription("Rooms currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rooms counter: %w", err)
	}

	out.clients, err = m.Int64UpDownCounter(
		"headball.clients.connected",
		metric.WithDescription("Clients joined to a room, by role"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating clients counter: %w", err)
	}

	return out, nil
}

func (m *Metrics) goal(scorer game.Side) {
	if m == nil {
		return
	}
	m.goals.Add(context.Background(), 1, metric.WithAttributes(attribute.String("scorer", scorer.String())))
}

func (m *Metrics) tick() {
	if m == nil {
		return
	}
	m.ticks.Add(context.Background(), 1)
}

func (m *Metrics) roomDelta(n int64) {
	if m == nil {
		return
	}
	m.rooms.Add(context.Background(), n)
}

func (m *Metrics) clientDelta(role string, n int64) {
	if m == nil {
		return
	}
	m.clients.Add(context.Background(), n, metric.WithAttributes(attribute.String("role", role)))
}
