package game

import (
	"slices"

	"github.com/jakecoffman/cp"
)

// Collision types and filter categories for the Chipmunk space.
const (
	collCharacter cp.CollisionType = iota + 1
	collBall
	collGround
	collPost
	collZone
	collWall
)

const (
	catCharacter uint = 1 << iota
	catBall
	catGround
	catPost
	catZone
	catWall
)

const (
	characterMass = 10.0
	ballMass      = 1.0
	wallThickness = 100.0
)

// world is the Chipmunk space behind a Match. The Match bodies stay the
// source of truth between ticks: simulate copies them into the space,
// steps it once and copies the result back.
type world struct {
	space  *cp.Space
	bodies [3]*cp.Body // by EntityID
	ground *cp.Shape
	zones  map[*cp.Shape]Side

	events   []Event
	touching [3]Touching
}

func newWorld(m *Match) *world {
	w := &world{
		space: cp.NewSpace(),
		zones: make(map[*cp.Shape]Side),
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: WorldGravity})

	w.ground = w.addStatic(m.Ground.Bounds(), collGround, catGround)
	for i := range m.Posts {
		w.addStatic(m.Posts[i].Bounds(), collPost, catPost)
	}
	t := wallThickness
	for _, r := range []Rect{
		{MinX: -t, MinY: -t, MaxX: 0, MaxY: ArenaHeight + t},
		{MinX: ArenaWidth, MinY: -t, MaxX: ArenaWidth + t, MaxY: ArenaHeight + t},
		{MinX: -t, MinY: -t, MaxX: ArenaWidth + t, MaxY: 0},
		{MinX: -t, MinY: ArenaHeight, MaxX: ArenaWidth + t, MaxY: ArenaHeight + t},
	} {
		w.addStatic(r, collWall, catWall)
	}
	for _, z := range m.Zones {
		s := w.addStatic(z.Rect, collZone, catZone)
		s.SetSensor(true)
		w.zones[s] = z.Scorer
	}

	// Characters only meet the ground, the walls and the ball.
	charMask := catGround | catWall | catBall
	w.addDynamic(EntityPlayer, &m.Player.Body, collCharacter, catCharacter, charMask)
	w.addDynamic(EntityOpponent, &m.Opponent.Body, collCharacter, catCharacter, charMask)
	w.addDynamic(EntityBall, &m.Ball, collBall, catBall, cp.ALL_CATEGORIES)

	w.space.NewCollisionHandler(collCharacter, collGround).PreSolveFunc = w.characterOnGround
	w.space.NewCollisionHandler(collBall, collGround).PreSolveFunc = w.ballOnSolid
	w.space.NewCollisionHandler(collBall, collPost).PreSolveFunc = w.ballOnSolid
	w.space.NewCollisionHandler(collBall, collCharacter).PreSolveFunc = w.ballOnCharacter
	w.space.NewCollisionHandler(collBall, collZone).PreSolveFunc = w.ballInZone
	return w
}

func (w *world) addStatic(r Rect, ct cp.CollisionType, cat uint) *cp.Shape {
	bb := cp.BB{L: r.MinX, B: r.MinY, R: r.MaxX, T: r.MaxY}
	s := w.space.AddShape(cp.NewBox2(w.space.StaticBody, bb, 0))
	s.SetElasticity(1)
	s.SetFriction(0)
	s.SetCollisionType(ct)
	s.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, cat, cp.ALL_CATEGORIES))
	return s
}

// addDynamic creates the Chipmunk side of b. Restitution multiplies, so
// with static elasticity 1 a body bounces by its own Bounce.
func (w *world) addDynamic(id EntityID, b *Body, ct cp.CollisionType, cat, mask uint) {
	var body *cp.Body
	var shape *cp.Shape
	if b.Shape.Kind == ShapeCircle {
		body = cp.NewBody(ballMass, cp.MomentForCircle(ballMass, 0, b.Shape.Radius, cp.Vector{}))
		shape = cp.NewCircle(body, b.Shape.Radius, cp.Vector{})
	} else {
		body = cp.NewBody(characterMass, cp.INFINITY)
		shape = cp.NewBox(body, b.Shape.W, b.Shape.H, 0)
	}
	w.space.AddBody(body)
	w.space.AddShape(shape)
	shape.SetElasticity(b.Bounce)
	shape.SetFriction(0)
	shape.SetCollisionType(ct)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, cat, mask))

	allowGravity, extra, dragX := b.AllowGravity, b.GravityY, b.DragX
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		if allowGravity {
			gravity.Y += extra
		} else {
			gravity = cp.Vector{}
		}
		cp.BodyUpdateVelocity(body, gravity, damping, dt)
		if dragX > 0 {
			v := body.Velocity()
			body.SetVelocity(applyDrag(v.X, dragX*dt), v.Y)
		}
	})
	w.bodies[id] = body
}

func (w *world) entity(b *cp.Body) (EntityID, bool) {
	for id, body := range w.bodies {
		if body == b {
			return EntityID(id), true
		}
	}
	return 0, false
}

func (w *world) characterOnGround(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, _ := arb.Bodies()
	if id, ok := w.entity(a); ok {
		w.touching[id].Down = true
		w.events = append(w.events, Event{Kind: GroundContact, Entity: id})
	}
	return true
}

func (w *world) ballOnSolid(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	ball, solid := arb.Shapes()
	p, bb := ball.Body().Position(), solid.BB()
	t := &w.touching[EntityBall]
	switch {
	case p.Y <= bb.B:
		t.Down = true
	case p.Y >= bb.T:
		t.Up = true
	case p.X < bb.L:
		t.Right = true
	default:
		t.Left = true
	}
	if solid == w.ground {
		w.events = append(w.events, Event{Kind: GroundContact, Entity: EntityBall})
	}
	return true
}

func (w *world) ballOnCharacter(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	_, c := arb.Bodies()
	if id, ok := w.entity(c); ok {
		w.events = append(w.events, Event{Kind: EntityBallContact, Entity: id})
	}
	return true
}

func (w *world) ballInZone(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	_, zone := arb.Shapes()
	if side, ok := w.zones[zone]; ok {
		w.events = append(w.events, Event{Kind: GoalOverlap, Entity: EntityBall, Side: side})
	}
	return true
}

// simulate advances every dynamic body by one tick and reports what the
// colliders saw. Event order: ground contacts, entity/ball contacts,
// goal overlaps.
func (m *Match) simulate() []Event {
	w := m.world
	dynamic := [...]*Body{&m.Player.Body, &m.Opponent.Body, &m.Ball}

	w.events = w.events[:0]
	w.touching = [3]Touching{}
	for id, b := range dynamic {
		w.bodies[id].SetPosition(cp.Vector{X: b.X, Y: b.Y})
		w.bodies[id].SetVelocity(b.VX, b.VY)
	}

	w.space.Step(DT)

	for id, b := range dynamic {
		p, v := w.bodies[id].Position(), w.bodies[id].Velocity()
		b.X, b.Y = p.X, p.Y
		b.VX, b.VY = v.X, v.Y
		b.Touching = w.touching[id]
		clampToBounds(b)
	}

	events := slices.Clone(w.events)
	slices.SortStableFunc(events, func(a, b Event) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return int(a.Entity) - int(b.Entity)
	})
	return events
}

func applyDrag(v, d float64) float64 {
	switch {
	case v > d:
		return v - d
	case v < -d:
		return v + d
	default:
		return 0
	}
}

// clampToBounds keeps a body inside the arena even when the solver
// leaves it a little past a wall.
func clampToBounds(b *Body) {
	if !b.CollideWorldBounds {
		return
	}
	hw, hh := b.Shape.W/2, b.Shape.H/2
	b.X = clamp(b.X, hw, ArenaWidth-hw)
	b.Y = clamp(b.Y, hh, ArenaHeight-hh)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
