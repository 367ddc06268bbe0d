package game

import (
	"image"

	"github.com/fogleman/gg"
)

// DebugFrameSize is the side length in pixels of a rendered debug frame.
const DebugFrameSize = 512

// SetDebug toggles a fighter's debug visualization flags. While enabled
// the snapshot carries the live sphere centers/radii for external
// rendering. The tick goroutine reads these flags, so callers go through
// Engine.SetDebug to serialize with it.
func (f *Fighter) SetDebug(hitboxes, collision bool) {
	f.DebugHitboxes = hitboxes
	f.DebugCollision = collision
}

// RenderDebugFrame draws a top-down view of the snapshot: arena bound,
// collision circles, hurt spheres and live attack spheres. It is the
// server-side stand-in for the in-game debug overlay, served as PNG from
// the debug endpoint.
func RenderDebugFrame(snap *Snapshot) image.Image {
	dc := gg.NewContext(DebugFrameSize, DebugFrameSize)

	dc.SetRGB(0.07, 0.07, 0.1)
	dc.Clear()

	// World-to-pixel mapping: the arena fills 90% of the frame.
	scale := float64(DebugFrameSize) * 0.45 / snap.Arena
	toPx := func(x, z float64) (float64, float64) {
		return DebugFrameSize/2 + x*scale, DebugFrameSize/2 + z*scale
	}

	// Arena bound.
	cx, cy := toPx(0, 0)
	dc.SetRGB(0.3, 0.3, 0.35)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, cy, snap.Arena*scale)
	dc.Stroke()

	for i, f := range snap.Fighters {
		x, y := toPx(f.X, f.Z)

		// Body marker with facing tick.
		if i == 0 {
			dc.SetRGB(0.3, 0.7, 1.0)
		} else {
			dc.SetRGB(1.0, 0.45, 0.3)
		}
		dc.DrawCircle(x, y, 6)
		dc.Fill()

		if f.Debug == nil {
			continue
		}
		dbg := f.Debug

		if dbg.CollisionRadius > 0 {
			dc.SetRGBA(1, 1, 1, 0.35)
			dc.SetLineWidth(1.5)
			dc.DrawCircle(x, y, dbg.CollisionRadius*scale)
			dc.Stroke()
		}

		drawSphere := func(s SphereView, r, g, b float64) {
			if s.Radius <= 0 {
				return
			}
			sx, sy := toPx(s.X, s.Z)
			dc.SetRGBA(r, g, b, 0.6)
			dc.DrawCircle(sx, sy, s.Radius*scale)
			dc.Stroke()
		}
		drawSphere(dbg.Head, 0.2, 1, 0.4)
		drawSphere(dbg.Torso, 0.2, 1, 0.4)
		for _, s := range dbg.Attack {
			drawSphere(s, 1, 0.2, 0.2)
		}
	}

	return dc.Image()
}
