package obj

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/aeriab/softbody-sandbox/common"
)

// Collision layer categories for shape filters.
const (
	LayerStatic uint = 1 << iota
	LayerBlob
	LayerBody
)

const (
	// sweepStep is the march distance in pixels between overlap samples.
	sweepStep = 2.0
	// sweepBisections refines the first overlapping interval to ~1/256 of it.
	sweepBisections = 8
	// contactProbe nudges the shape along the motion before reading contacts.
	contactProbe = 1.0
)

// Querier is the physics query service consumed by manually integrated
// bodies. Sweep reports the safe fraction of a motion before first contact;
// ContactNormal reports the surface normal at the end of a collided sweep.
type Querier interface {
	Sweep(pos, motion cp.Vector, shape *cp.Shape, mask uint) (float64, bool)
	ContactNormal(pos, motion cp.Vector, shape *cp.Shape, mask uint) (cp.Vector, bool)
}

// Platform is an axis-aligned static box in the scene, in pixels.
type Platform struct {
	X, Y, W, H float64
}

// Ramp is a static triangle in the scene, given as three world points.
type Ramp struct {
	A, B, C cp.Vector
}

// QueryWorld owns the Chipmunk space and the static scene shapes.
type QueryWorld struct {
	space   *cp.Space
	gravity cp.Vector
	width   float64
	height  float64

	platforms []Platform
	ramps     []Ramp
}

// NewQueryWorld builds a space with bounds segments plus the given statics.
func NewQueryWorld(width, height float64, platforms []Platform, ramps []Ramp) *QueryWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	gravity := cp.Vector{X: 0, Y: common.Gravity}
	space.SetGravity(gravity)

	qw := &QueryWorld{
		space:     space,
		gravity:   gravity,
		width:     width,
		height:    height,
		platforms: platforms,
		ramps:     ramps,
	}
	qw.buildStaticShapes(platforms, ramps)
	return qw
}

// Space returns the underlying Chipmunk space.
func (qw *QueryWorld) Space() *cp.Space {
	if qw == nil {
		return nil
	}
	return qw.space
}

// Gravity returns the project-wide gravity vector.
func (qw *QueryWorld) Gravity() cp.Vector {
	if qw == nil {
		return cp.Vector{}
	}
	return qw.gravity
}

// Size returns the scene bounds in pixels.
func (qw *QueryWorld) Size() (float64, float64) {
	if qw == nil {
		return 0, 0
	}
	return qw.width, qw.height
}

// Step advances the space-simulated bodies (the blob) one fixed timestep.
func (qw *QueryWorld) Step(dt float64) {
	if qw == nil || qw.space == nil {
		return
	}
	qw.space.Step(dt)
}

func (qw *QueryWorld) buildStaticShapes(platforms []Platform, ramps []Ramp) {
	if qw == nil || qw.space == nil {
		return
	}

	for _, p := range platforms {
		if p.W <= 0 || p.H <= 0 {
			continue
		}
		bb := cp.BB{L: p.X, B: p.Y, R: p.X + p.W, T: p.Y + p.H}
		shape := cp.NewBox2(qw.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerStatic, cp.ALL_CATEGORIES))
		qw.space.AddShape(shape)
	}

	for _, r := range ramps {
		verts := []cp.Vector{r.A, r.B, r.C}
		shape := cp.NewPolyShapeRaw(qw.space.StaticBody, 3, verts, 0)
		shape.SetFriction(0.8)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerStatic, cp.ALL_CATEGORIES))
		qw.space.AddShape(shape)
	}

	// bounds segments matching the scene size
	if qw.width > 0 && qw.height > 0 {
		thickness := 1.0
		segments := []struct {
			a cp.Vector
			b cp.Vector
		}{
			{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: qw.width, Y: 0}},
			{a: cp.Vector{X: 0, Y: qw.height}, b: cp.Vector{X: qw.width, Y: qw.height}},
			{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: qw.height}},
			{a: cp.Vector{X: qw.width, Y: 0}, b: cp.Vector{X: qw.width, Y: qw.height}},
		}
		for _, seg := range segments {
			shape := cp.NewSegment(qw.space.StaticBody, seg.a, seg.b, thickness)
			shape.SetFriction(0.8)
			shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerStatic, cp.ALL_CATEGORIES))
			qw.space.AddShape(shape)
		}
	}
}

// Sweep marches shape from pos along motion and returns the largest fraction
// in [0,1] the shape can travel before first contact, plus whether a contact
// exists. The shape must not be added to the space.
func (qw *QueryWorld) Sweep(pos, motion cp.Vector, shape *cp.Shape, mask uint) (float64, bool) {
	if qw == nil || qw.space == nil || shape == nil || shape.Body() == nil {
		return 1, false
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerBody, mask))

	if qw.overlapsAt(pos, shape) {
		return 0, true
	}
	dist := motion.Length()
	if dist == 0 {
		return 1, false
	}

	steps := int(math.Ceil(dist / sweepStep))
	prev := 0.0
	for s := 1; s <= steps; s++ {
		t := float64(s) / float64(steps)
		if !qw.overlapsAt(pos.Add(motion.Mult(t)), shape) {
			prev = t
			continue
		}
		lo, hi := prev, t
		for i := 0; i < sweepBisections; i++ {
			mid := (lo + hi) / 2
			if qw.overlapsAt(pos.Add(motion.Mult(mid)), shape) {
				hi = mid
			} else {
				lo = mid
			}
		}
		return lo, true
	}
	return 1, false
}

// ContactNormal places shape at the resolved position, nudged slightly along
// the motion, and returns the deepest contact's surface normal oriented
// against the motion.
func (qw *QueryWorld) ContactNormal(pos, motion cp.Vector, shape *cp.Shape, mask uint) (cp.Vector, bool) {
	if qw == nil || qw.space == nil || shape == nil || shape.Body() == nil {
		return cp.Vector{}, false
	}
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerBody, mask))

	probe := pos
	if motion.LengthSq() > 0 {
		probe = pos.Add(motion.Normalize().Mult(contactProbe))
	}
	shape.Body().SetPosition(probe)
	shape.CacheBB()

	var best cp.Vector
	bestDepth := math.Inf(-1)
	found := false
	qw.space.ShapeQuery(shape, func(_ *cp.Shape, set *cp.ContactPointSet) {
		if set == nil || set.Count == 0 {
			return
		}
		for i := 0; i < set.Count; i++ {
			depth := -set.Points[i].Distance
			if depth > bestDepth {
				bestDepth = depth
				best = set.Normal
				found = true
			}
		}
	})
	if !found {
		return cp.Vector{}, false
	}
	if motion.Dot(best) > 0 {
		best = best.Neg()
	}
	return best, true
}

// Draw paints the static scene geometry.
func (qw *QueryWorld) Draw(screen *ebiten.Image) {
	if qw == nil || screen == nil {
		return
	}
	for _, p := range qw.platforms {
		vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), colornames.Slategray, false)
	}
	for _, r := range qw.ramps {
		fillFan(screen, []cp.Vector{r.A, r.B, r.C}, colornames.Slategray)
	}
}

func (qw *QueryWorld) overlapsAt(pos cp.Vector, shape *cp.Shape) bool {
	body := shape.Body()
	if body == nil {
		return false
	}
	body.SetPosition(pos)
	shape.CacheBB()
	return qw.space.ShapeQuery(shape, func(*cp.Shape, *cp.ContactPointSet) {})
}
