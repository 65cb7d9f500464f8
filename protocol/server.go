package protocol

const (
	RolePlayer    = "player"
	RoleSpectator = "spectator"
)

type Welcome struct {
	PlayerID string `json:"playerId"`
	Role     string `json:"role"`
	TickHz   int    `json:"tickHz"`
	Arena    Arena  `json:"arena"`
}

// Arena is the static layout, enough for a client to draw the pitch and
// the goal zone overlay.
type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ground Rect    `json:"ground"`
	Posts  []Rect  `json:"posts"`
	Zones  []Zone  `json:"zones"`
}

type Rect struct {
	X float64 `json:"x"` // top-left
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Zone struct {
	Rect
	Scorer string `json:"scorer"`
}

type State struct {
	Tick     int           `json:"tick"`
	Player   BodySnapshot  `json:"player"`
	Opponent BodySnapshot  `json:"opponent"`
	Ball     BodySnapshot  `json:"ball"`
	Score    ScoreSnapshot `json:"score"`
	Cooldown bool          `json:"cooldown"`
}

type BodySnapshot struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Grounded bool    `json:"grounded,omitempty"`
}

type ScoreSnapshot struct {
	Player   int    `json:"player"`
	Opponent int    `json:"opponent"`
	Text     string `json:"text"`
}

type Goal struct {
	Scorer string        `json:"scorer"`
	Tick   int           `json:"tick"`
	Score  ScoreSnapshot `json:"score"`
}

type Error struct {
	Message string `json:"message"`
}
