package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func newQueryShape(half float64) *cp.Shape {
	carrier := cp.NewKinematicBody()
	verts := squarePoints(half)
	return cp.NewPolyShapeRaw(carrier, len(verts), verts, 0)
}

func TestQueryWorldSweep(t *testing.T) {
	// floor spanning the bottom of a 400x400 scene
	qw := NewQueryWorld(400, 400, []Platform{{X: 0, Y: 300, W: 400, H: 100}}, nil)
	shape := newQueryShape(10)

	t.Run("free_motion_reports_no_hit", func(t *testing.T) {
		fraction, hit := qw.Sweep(cp.Vector{X: 200, Y: 100}, cp.Vector{X: 0, Y: 50}, shape, cp.ALL_CATEGORIES)
		if hit {
			t.Fatalf("unexpected hit at fraction %v", fraction)
		}
		if fraction != 1 {
			t.Errorf("fraction = %v, want 1 for free motion", fraction)
		}
	})

	t.Run("falling_square_stops_at_floor", func(t *testing.T) {
		// square bottom at y=210, floor top at y=300, motion 200 down:
		// contact after ~90px of travel -> fraction ~0.45
		fraction, hit := qw.Sweep(cp.Vector{X: 200, Y: 200}, cp.Vector{X: 0, Y: 200}, shape, cp.ALL_CATEGORIES)
		if !hit {
			t.Fatalf("expected a hit sweeping into the floor")
		}
		if fraction < 0.42 || fraction > 0.46 {
			t.Errorf("fraction = %v, want ~0.45", fraction)
		}
	})

	t.Run("overlapping_start_reports_zero_fraction", func(t *testing.T) {
		fraction, hit := qw.Sweep(cp.Vector{X: 200, Y: 310}, cp.Vector{X: 0, Y: 10}, shape, cp.ALL_CATEGORIES)
		if !hit {
			t.Fatalf("expected a hit when starting inside the floor")
		}
		if fraction != 0 {
			t.Errorf("fraction = %v, want 0 when already overlapping", fraction)
		}
	})

	t.Run("nil_shape_reports_no_hit", func(t *testing.T) {
		fraction, hit := qw.Sweep(cp.Vector{}, cp.Vector{X: 0, Y: 10}, nil, cp.ALL_CATEGORIES)
		if hit || fraction != 1 {
			t.Errorf("nil shape: fraction=%v hit=%v, want 1,false", fraction, hit)
		}
	})
}

func TestQueryWorldContactNormal(t *testing.T) {
	qw := NewQueryWorld(400, 400, []Platform{{X: 0, Y: 300, W: 400, H: 100}}, nil)
	shape := newQueryShape(10)

	motion := cp.Vector{X: 0, Y: 200}
	fraction, hit := qw.Sweep(cp.Vector{X: 200, Y: 200}, motion, shape, cp.ALL_CATEGORIES)
	if !hit {
		t.Fatalf("expected a hit sweeping into the floor")
	}
	rest := cp.Vector{X: 200, Y: 200}.Add(motion.Mult(fraction))

	n, ok := qw.ContactNormal(rest, motion, shape, cp.ALL_CATEGORIES)
	if !ok {
		t.Fatalf("expected a contact normal at the resolved position")
	}
	if n.Y > -0.9 || math.Abs(n.X) > 0.2 {
		t.Errorf("normal = %v, want roughly (0, -1) opposing the motion", n)
	}
	if n.Dot(motion) > 0 {
		t.Errorf("normal %v points along the motion %v", n, motion)
	}
}

func TestQueryWorldIntegratedBodySettles(t *testing.T) {
	qw := NewQueryWorld(400, 400, []Platform{{X: 0, Y: 300, W: 400, H: 100}}, nil)
	b := NewPolygonBody(qw, qw.Gravity(), cp.Vector{X: 200, Y: 100}, squarePoints(10), PolygonConfig{
		GravityScale: 1,
		Bounce:       0.2,
		Friction:     0.5,
		Mask:         cp.ALL_CATEGORIES,
	})

	for i := 0; i < 600; i++ {
		b.Step(1.0 / 60.0)
	}

	// settled on the floor: bottom edge near y=300, not fallen through
	if b.Pos.Y < 200 || b.Pos.Y > 295 {
		t.Errorf("body did not settle on the floor, pos=%v", b.Pos)
	}
	if b.Velocity().Length() > 20 {
		t.Errorf("body still moving fast after 10s: %v", b.Velocity())
	}
}
