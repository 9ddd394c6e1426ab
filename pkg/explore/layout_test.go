package explore

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestSeed(t *testing.T) {
	parent := Point{X: 300, Y: 300}
	sin120 := math.Sqrt(3) / 2

	tests := []struct {
		name         string
		index, total int
		radius       float64
		want         Point
	}{
		{"single child at 0°", 0, 1, 70, Point{335, 300}},
		{"first of three", 0, 3, 70, Point{335, 300}},
		{"second of three at 120°", 1, 3, 70, Point{300 - 17.5, 300 + 35*sin120}},
		{"third of three at 240°", 2, 3, 70, Point{300 - 17.5, 300 - 35*sin120}},
		{"quarter turn", 1, 4, 70, Point{300, 335}},
		{"half turn", 1, 2, 100, Point{250, 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Seed(parent, tt.index, tt.total, tt.radius)
			if !near(got, tt.want) {
				t.Errorf("Seed(%d, %d, %v) = %+v, want %+v", tt.index, tt.total, tt.radius, got, tt.want)
			}
		})
	}
}

func TestSeedRadiusIsHalfBase(t *testing.T) {
	parent := Point{X: -12, Y: 40}
	for i := range 7 {
		p := Seed(parent, i, 7, DefaultBaseRadius)
		d := math.Hypot(p.X-parent.X, p.Y-parent.Y)
		if math.Abs(d-DefaultBaseRadius/2) > eps {
			t.Errorf("index %d: distance %v, want %v", i, d, DefaultBaseRadius/2)
		}
	}
}

func TestSeedDeterministic(t *testing.T) {
	parent := Point{X: 1.5, Y: 2.5}
	a := Seed(parent, 3, 5, 42)
	b := Seed(parent, 3, 5, 42)
	if a != b {
		t.Errorf("Seed not deterministic: %+v != %+v", a, b)
	}
}

func TestSeedZeroTotalReturnsParent(t *testing.T) {
	parent := Point{X: 10, Y: 20}
	if got := Seed(parent, 0, 0, 70); got != parent {
		t.Errorf("Seed(total=0) = %+v, want parent", got)
	}
}
