package game

type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectAt builds a rect from its centre and size.
func RectAt(cx, cy, w, h float64) Rect {
	return Rect{MinX: cx - w/2, MinY: cy - h/2, MaxX: cx + w/2, MaxY: cy + h/2}
}

func (r Rect) CenterX() float64 { return (r.MinX + r.MaxX) / 2 }
func (r Rect) CenterY() float64 { return (r.MinY + r.MaxY) / 2 }
func (r Rect) Width() float64 { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

type Shape struct {
	Kind   ShapeKind
	W, H   float64 // rect
	Radius float64 // circle
}

func RectShape(w, h float64) Shape { return Shape{Kind: ShapeRect, W: w, H: h} }
func CircleShape(r float64) Shape { return Shape{Kind: ShapeCircle, Radius: r, W: 2 * r, H: 2 * r} }

// Touching records which sides of a body were in contact with a solid
// during the last physics step.
type Touching struct {
	Up, Down, Left, Right bool
}

// Body is a simulated object. X, Y is the centre.
type Body struct {
	X, Y   float64
	VX, VY float64
	Shape  Shape

	AllowGravity       bool
	GravityY           float64 // added on top of WorldGravity
	CollideWorldBounds bool
	Immovable          bool

	Bounce float64
	DragX  float64

	Touching Touching
}

func (b *Body) Bounds() Rect {
	return RectAt(b.X, b.Y, b.Shape.W, b.Shape.H)
}

func (b *Body) SetPosition(x, y float64) {
	b.X, b.Y = x, y
}

func (b *Body) SetVelocity(vx, vy float64) {
	b.VX, b.VY = vx, vy
}

// StaticBody returns an immovable solid occupying r.
func StaticBody(r Rect) Body {
	return Body{
		X:         r.CenterX(),
		Y:         r.CenterY(),
		Shape:     RectShape(r.Width(), r.Height()),
		Immovable: true,
	}
}
