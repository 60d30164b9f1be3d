package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/aeriab/softbody-sandbox/common"
	"github.com/aeriab/softbody-sandbox/obj"
	"github.com/aeriab/softbody-sandbox/prefabs"
)

type Game struct {
	frames int
	paused bool
	debug  bool

	specName string
	spec     prefabs.SandboxSpec

	input      *obj.Input
	world      *obj.QueryWorld
	blob       *obj.Blob
	applicator *obj.Applicator
	bodies     []*obj.PolygonBody

	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI
}

func NewGame(specName string, debug bool) *Game {
	g := &Game{
		specName: specName,
		debug:    debug,
		input:    obj.NewInput(),
	}

	spec, err := prefabs.LoadSpec[prefabs.SandboxSpec](specName)
	if err != nil {
		log.Printf("failed to load sandbox spec %s: %v; using defaults", specName, err)
		spec = defaultSandboxSpec()
	}
	g.build(spec)

	g.pauseUI = NewPauseUI(g)

	watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		log.Printf("prefab watcher unavailable: %v", err)
	} else {
		g.watcher = watcher
	}

	return g
}

// build constructs the whole scene from a sandbox spec. Called at startup and
// again whenever the watcher reports an edited prefab.
func (g *Game) build(spec prefabs.SandboxSpec) {
	g.spec = spec

	width := spec.Scene.Width
	height := spec.Scene.Height
	if width <= 0 || height <= 0 {
		width, height = common.BaseWidth, common.BaseHeight
	}

	platforms := make([]obj.Platform, 0, len(spec.Scene.Platforms))
	for _, p := range spec.Scene.Platforms {
		platforms = append(platforms, obj.Platform{X: p.X, Y: p.Y, W: p.W, H: p.H})
	}
	ramps := make([]obj.Ramp, 0, len(spec.Scene.Ramps))
	for _, r := range spec.Scene.Ramps {
		if len(r.Points) != 3 {
			log.Printf("ramp needs exactly 3 points, got %d; skipping", len(r.Points))
			continue
		}
		ramps = append(ramps, obj.Ramp{
			A: cp.Vector{X: r.Points[0][0], Y: r.Points[0][1]},
			B: cp.Vector{X: r.Points[1][0], Y: r.Points[1][1]},
			C: cp.Vector{X: r.Points[2][0], Y: r.Points[2][1]},
		})
	}

	g.world = obj.NewQueryWorld(width, height, platforms, ramps)

	g.blob = obj.NewBlob(g.world.Space(), cp.Vector{X: spec.Blob.SpawnX, Y: spec.Blob.SpawnY}, obj.BlobConfig{
		Radius:    spec.Blob.Radius,
		Segments:  spec.Blob.Segments,
		CoreMass:  spec.Blob.CoreMass,
		NodeMass:  spec.Blob.NodeMass,
		Stiffness: spec.Blob.Stiffness,
		Damping:   spec.Blob.Damping,
		Fill:      spec.Blob.Fill.Color,
	})

	g.applicator = obj.NewApplicator(g.input, g.blob, spec.Blob.Power)
	if spec.Blob.Script != "" {
		script, err := prefabs.LoadPowerScript(spec.Blob.Script)
		if err != nil {
			log.Printf("power script disabled: %v", err)
		} else {
			g.applicator.Modulate = script.Eval
		}
	}

	g.bodies = g.bodies[:0]
	for _, ps := range spec.Polygons {
		mask := ps.Mask
		if mask == 0 {
			mask = cp.ALL_CATEGORIES
		}
		points := make([]cp.Vector, 0, len(ps.Points))
		for _, p := range ps.Points {
			points = append(points, cp.Vector{X: p[0], Y: p[1]})
		}
		body := obj.NewPolygonBody(g.world, g.world.Gravity(), cp.Vector{X: ps.SpawnX, Y: ps.SpawnY}, points, obj.PolygonConfig{
			Fill:         ps.Fill.Color,
			GravityScale: ps.GravityScale,
			Bounce:       ps.Bounce,
			Friction:     ps.Friction,
			Mask:         mask,
		})
		g.bodies = append(g.bodies, body)
	}
}

func (g *Game) reset() {
	g.build(g.spec)
}

func (g *Game) reloadSpec() {
	spec, err := prefabs.LoadSpec[prefabs.SandboxSpec](g.specName)
	if err != nil {
		log.Printf("prefab reload failed, keeping current scene: %v", err)
		return
	}
	log.Printf("prefabs changed, rebuilding scene from %s", g.specName)
	g.build(spec)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case _, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			if changed {
				g.reloadSpec()
			}
			return
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()

	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.input.ResetPressed {
		g.reset()
	}
	if g.input.DebugToggled {
		g.debug = !g.debug
	}
	g.drainWatcher()

	dt := common.Dt
	g.applicator.Step(dt)
	g.world.Step(dt)
	for _, b := range g.bodies {
		b.Step(dt)
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	g.world.Draw(screen)
	for _, b := range g.bodies {
		b.Draw(screen)
	}
	g.blob.Draw(screen)

	if g.debug {
		g.world.DebugDraw(screen)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// defaultSandboxSpec is the fallback when no prefab can be loaded.
func defaultSandboxSpec() prefabs.SandboxSpec {
	return prefabs.SandboxSpec{
		Scene: prefabs.SceneSpec{
			Width:  common.BaseWidth,
			Height: common.BaseHeight,
			Platforms: []prefabs.PlatformSpec{
				{X: 0, Y: common.BaseHeight - 40, W: common.BaseWidth, H: 40},
			},
		},
		Blob: prefabs.BlobSpec{
			SpawnX: common.BaseWidth / 4,
			SpawnY: common.BaseHeight / 2,
		},
		Polygons: []prefabs.PolygonSpec{
			{
				SpawnX:       common.BaseWidth / 2,
				SpawnY:       100,
				Points:       [][2]float64{{-24, -24}, {24, -24}, {24, 24}, {-24, 24}},
				GravityScale: 1,
				Bounce:       0.5,
				Friction:     0.2,
			},
		},
	}
}
