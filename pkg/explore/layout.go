package explore

import "math"

// DefaultBaseRadius is the base edge length. New nodes are seeded at half of
// it from their parent.
const DefaultBaseRadius = 70.0

// DefaultOrigin is where the seed node is placed: the centre of a 600x600
// frame.
var DefaultOrigin = Point{X: 300, Y: 300}

// Seed places the index-th of total newly created siblings on a circle of
// radius baseRadius/2 around parent, at angle 2π·index/total. It is a pure
// function. Callers never pass total == 0; if they do, parent is returned.
func Seed(parent Point, index, total int, baseRadius float64) Point {
	if total <= 0 {
		return parent
	}
	r := baseRadius / 2
	theta := 2 * math.Pi * float64(index) / float64(total)
	return Point{
		X: parent.X + r*math.Cos(theta),
		Y: parent.Y + r*math.Sin(theta),
	}
}
