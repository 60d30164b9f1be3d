package obj

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/aeriab/softbody-sandbox/common"
)

// PolygonConfig is the tunable state of a rigid polygon body.
type PolygonConfig struct {
	Fill         color.Color
	GravityScale float64
	Bounce       float64
	Friction     float64
	Mask         uint
}

// PolygonBody is a convex polygon integrated by hand each fixed timestep:
// gravity, a swept move against the query world, and a bounce/friction
// response on contact. It is not simulated by the Chipmunk space; the space
// is only consulted through the Querier.
type PolygonBody struct {
	Pos cp.Vector

	config   PolygonConfig
	points   []cp.Vector
	velocity cp.Vector

	// carrier is a kinematic body never added to the space; it exists so the
	// cached shape has a transform for queries.
	carrier *cp.Body
	shape   *cp.Shape
	world   Querier
	gravity cp.Vector
}

// NewPolygonBody creates a body at pos with the given local points. The
// collision shape is generated immediately when at least 3 points are given.
func NewPolygonBody(world Querier, gravity, pos cp.Vector, points []cp.Vector, config PolygonConfig) *PolygonBody {
	if config.Fill == nil {
		config.Fill = colornames.Coral
	}
	config.Bounce = common.Clamp(config.Bounce, 0, 1)
	config.Friction = common.Clamp(config.Friction, 0, 1)
	b := &PolygonBody{
		Pos:     pos,
		config:  config,
		world:   world,
		gravity: gravity,
	}
	b.SetPoints(points)
	return b
}

// Velocity returns the current velocity.
func (b *PolygonBody) Velocity() cp.Vector {
	if b == nil {
		return cp.Vector{}
	}
	return b.velocity
}

// SetVelocity replaces the current velocity.
func (b *PolygonBody) SetVelocity(v cp.Vector) {
	if b == nil {
		return
	}
	b.velocity = v
}

// Points returns a copy of the local point sequence.
func (b *PolygonBody) Points() []cp.Vector {
	if b == nil {
		return nil
	}
	return append([]cp.Vector(nil), b.points...)
}

// Shape returns the cached collision shape, or nil when fewer than 3 points
// are present.
func (b *PolygonBody) Shape() *cp.Shape {
	if b == nil {
		return nil
	}
	return b.shape
}

// SetPoints replaces the point sequence and regenerates the collision shape.
func (b *PolygonBody) SetPoints(points []cp.Vector) {
	if b == nil {
		return
	}
	b.points = append([]cp.Vector(nil), points...)
	b.regenerateShape()
}

// SetPoint edits a single vertex by index and regenerates the collision
// shape. Out-of-range indices leave all state unchanged.
func (b *PolygonBody) SetPoint(i int, p cp.Vector) {
	if b == nil {
		return
	}
	if i < 0 || i >= len(b.points) {
		log.Printf("polygon body: point index %d out of range [0,%d)", i, len(b.points))
		return
	}
	b.points[i] = p
	b.regenerateShape()
}

func (b *PolygonBody) regenerateShape() {
	if len(b.points) < 3 {
		if b.shape != nil {
			log.Printf("polygon body: %d points, need at least 3; collision shape dropped", len(b.points))
		}
		b.shape = nil
		return
	}
	verts := append([]cp.Vector(nil), b.points...)
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	if b.carrier == nil {
		b.carrier = cp.NewKinematicBody()
	}
	b.shape = cp.NewPolyShapeRaw(b.carrier, len(verts), verts, 0)
	b.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerBody, b.config.Mask))
}

// Step integrates gravity, sweeps the intended motion against the world, and
// commits either the full motion or the safe fraction plus a bounce/friction
// response. A missing query world or collision shape skips the step.
func (b *PolygonBody) Step(dt float64) {
	if b == nil {
		return
	}
	if b.world == nil || b.shape == nil {
		log.Printf("polygon body: query world or collision shape unavailable, skipping step")
		return
	}

	b.velocity = b.velocity.Add(b.gravity.Mult(b.config.GravityScale * dt))
	motion := b.velocity.Mult(dt)

	fraction, hit := b.world.Sweep(b.Pos, motion, b.shape, b.config.Mask)
	if !hit {
		b.Pos = b.Pos.Add(motion)
		return
	}

	b.Pos = b.Pos.Add(motion.Mult(fraction))

	n, ok := b.world.ContactNormal(b.Pos, motion, b.shape, b.config.Mask)
	if !ok {
		b.respondWithoutNormal(motion)
		return
	}

	vn := b.velocity.Dot(n)
	b.velocity = b.velocity.Sub(n.Mult((1 + b.config.Bounce) * vn))
	normalPart := n.Mult(b.velocity.Dot(n))
	tangent := b.velocity.Sub(normalPart)
	b.velocity = normalPart.Add(tangent.Mult(1 - b.config.Friction))
}

// respondWithoutNormal handles collisions where no contact normal could be
// read back: predominantly vertical motion zeroes the vertical velocity and
// strongly damps the horizontal one, anything else kills the velocity.
func (b *PolygonBody) respondWithoutNormal(motion cp.Vector) {
	if motion.LengthSq() == 0 {
		b.velocity = cp.Vector{}
		return
	}
	dir := motion.Normalize()
	if math.Abs(dir.Dot(cp.Vector{X: 0, Y: 1})) > 0.5 {
		b.velocity.Y = 0
		b.velocity.X *= 0.2
		return
	}
	b.velocity = cp.Vector{}
}

// Draw paints the filled polygon with its outline, or a cross marker per
// point when fewer than 3 points exist.
func (b *PolygonBody) Draw(screen *ebiten.Image) {
	if b == nil || screen == nil {
		return
	}

	if len(b.points) < 3 {
		for _, p := range b.points {
			w := b.Pos.Add(p)
			vector.StrokeLine(screen, float32(w.X-3), float32(w.Y), float32(w.X+3), float32(w.Y), 1, colornames.Orange, true)
			vector.StrokeLine(screen, float32(w.X), float32(w.Y-3), float32(w.X), float32(w.Y+3), 1, colornames.Orange, true)
		}
		return
	}

	world := make([]cp.Vector, len(b.points))
	for i, p := range b.points {
		world[i] = b.Pos.Add(p)
	}
	fillFan(screen, world, b.config.Fill)
	strokeLoop(screen, world, 2, colornames.White)
}

func signedArea(verts []cp.Vector) float64 {
	area := 0.0
	for i := range verts {
		j := (i + 1) % len(verts)
		area += verts[i].X*verts[j].Y - verts[j].X*verts[i].Y
	}
	return area / 2
}
