package obj

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// fillFan paints a convex polygon given in world coordinates as a triangle
// fan of a single flat color.
func fillFan(screen *ebiten.Image, pts []cp.Vector, fill color.Color) {
	if screen == nil || len(pts) < 3 || fill == nil {
		return
	}
	cr, cg, cb, ca := fill.RGBA()
	fr := float32(cr) / 0xffff
	fg := float32(cg) / 0xffff
	fb := float32(cb) / 0xffff
	fa := float32(ca) / 0xffff

	verts := make([]ebiten.Vertex, len(pts))
	for i, p := range pts {
		verts[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: fr, ColorG: fg, ColorB: fb, ColorA: fa,
		}
	}
	indices := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i < len(pts)-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(verts, indices, whiteSubImage, op)
}

// strokeLoop draws the closed outline of a polygon in world coordinates.
func strokeLoop(screen *ebiten.Image, pts []cp.Vector, width float32, clr color.Color) {
	if screen == nil || len(pts) < 2 {
		return
	}
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}
