package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"
)

// BlobConfig is the tunable state of a soft-body blob.
type BlobConfig struct {
	Radius    float64
	Segments  int
	CoreMass  float64
	NodeMass  float64
	Stiffness float64
	Damping   float64
	Fill      color.Color
}

// Blob is a deformable body simulated by the Chipmunk space: a ring of small
// circle bodies tied to a core and to each other with damped springs. Forces
// from the applicator land on the core and propagate through the springs.
type Blob struct {
	config BlobConfig

	core  *cp.Body
	nodes []*cp.Body
}

// NewBlob builds the blob's bodies, shapes, and springs and adds them to the
// space.
func NewBlob(space *cp.Space, center cp.Vector, config BlobConfig) *Blob {
	if space == nil {
		return nil
	}
	if config.Segments < 3 {
		config.Segments = 12
	}
	if config.Radius <= 0 {
		config.Radius = 40
	}
	if config.CoreMass <= 0 {
		config.CoreMass = 4
	}
	if config.NodeMass <= 0 {
		config.NodeMass = 0.5
	}
	if config.Stiffness <= 0 {
		config.Stiffness = 400
	}
	if config.Damping <= 0 {
		config.Damping = 8
	}
	if config.Fill == nil {
		config.Fill = colornames.Mediumseagreen
	}

	b := &Blob{config: config}

	coreRadius := config.Radius * 0.25
	core := cp.NewBody(config.CoreMass, cp.MomentForCircle(config.CoreMass, 0, coreRadius, cp.Vector{}))
	core.SetPosition(center)
	coreShape := cp.NewCircle(core, coreRadius, cp.Vector{})
	coreShape.SetFriction(0.5)
	coreShape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerBlob, cp.ALL_CATEGORIES))
	space.AddBody(core)
	space.AddShape(coreShape)
	b.core = core

	n := config.Segments
	nodeRadius := 2 * math.Pi * config.Radius / float64(n) * 0.4
	chord := 2 * config.Radius * math.Sin(math.Pi/float64(n))
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		pos := center.Add(cp.Vector{X: math.Cos(th) * config.Radius, Y: math.Sin(th) * config.Radius})
		node := cp.NewBody(config.NodeMass, cp.MomentForCircle(config.NodeMass, 0, nodeRadius, cp.Vector{}))
		node.SetPosition(pos)
		shape := cp.NewCircle(node, nodeRadius, cp.Vector{})
		shape.SetFriction(0.5)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, LayerBlob, cp.ALL_CATEGORIES))
		space.AddBody(node)
		space.AddShape(shape)
		b.nodes = append(b.nodes, node)
	}

	for i, node := range b.nodes {
		next := b.nodes[(i+1)%n]
		space.AddConstraint(cp.NewDampedSpring(core, node, cp.Vector{}, cp.Vector{}, config.Radius, config.Stiffness, config.Damping))
		space.AddConstraint(cp.NewDampedSpring(node, next, cp.Vector{}, cp.Vector{}, chord, config.Stiffness, config.Damping))
	}

	return b
}

// ApplyForce adds f to the core's force accumulator for the current step.
func (b *Blob) ApplyForce(f cp.Vector) {
	if b == nil || b.core == nil {
		return
	}
	b.core.ApplyForceAtWorldPoint(f, b.core.Position())
}

// Position returns the core's current world position.
func (b *Blob) Position() cp.Vector {
	if b == nil || b.core == nil {
		return cp.Vector{}
	}
	return b.core.Position()
}

// MoveTo teleports the whole blob so the core sits at center, resetting all
// velocities. Used by scene reset.
func (b *Blob) MoveTo(center cp.Vector) {
	if b == nil || b.core == nil {
		return
	}
	offset := center.Sub(b.core.Position())
	b.core.SetPosition(center)
	b.core.SetVelocity(0, 0)
	for _, node := range b.nodes {
		node.SetPosition(node.Position().Add(offset))
		node.SetVelocity(0, 0)
	}
}

// Draw paints the ring of nodes as a filled polygon with an outline.
func (b *Blob) Draw(screen *ebiten.Image) {
	if b == nil || screen == nil || len(b.nodes) < 3 {
		return
	}
	pts := make([]cp.Vector, len(b.nodes))
	for i, node := range b.nodes {
		pts[i] = node.Position()
	}
	fillFan(screen, pts, b.config.Fill)
	strokeLoop(screen, pts, 2, colornames.White)
}
