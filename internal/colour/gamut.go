package colour

import "math"

type Point struct {
	X, Y float64
}

// Gamut is the triangle of xy chromaticities a bulb can reproduce.
type Gamut struct {
	Red, Green, Blue Point
}

var DefaultGamut = Gamut{
	Red:   Point{0.6915, 0.3083},
	Green: Point{0.17, 0.7},
	Blue:  Point{0.1532, 0.0475},
}

func (g Gamut) Contains(x, y float64) bool {
	p := Point{x, y}
	d1 := cross(p, g.Red, g.Green)
	d2 := cross(p, g.Green, g.Blue)
	d3 := cross(p, g.Blue, g.Red)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Clamp returns (x, y) unchanged when inside the gamut, otherwise the nearest point on
// its boundary.
func (g Gamut) Clamp(x, y float64) (float64, float64) {
	if g.Contains(x, y) {
		return x, y
	}

	p := Point{x, y}
	candidates := []Point{
		closestOnSegment(p, g.Red, g.Green),
		closestOnSegment(p, g.Green, g.Blue),
		closestOnSegment(p, g.Blue, g.Red),
	}

	best := candidates[0]
	bestDist := distance(p, best)
	for _, c := range candidates[1:] {
		if d := distance(p, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best.X, best.Y
}

func cross(p, a, b Point) float64 {
	return (p.X-b.X)*(a.Y-b.Y) - (a.X-b.X)*(p.Y-b.Y)
}

func closestOnSegment(p, a, b Point) Point {
	abX, abY := b.X-a.X, b.Y-a.Y
	t := ((p.X-a.X)*abX + (p.Y-a.Y)*abY) / (abX*abX + abY*abY)
	t = math.Max(0, math.Min(1, t))
	return Point{a.X + t*abX, a.Y + t*abY}
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
