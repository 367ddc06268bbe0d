package game

import "github.com/go-gl/mathgl/mgl64"

// StaticRig is a minimal in-memory Rig for headless matches and tools
// that run without a loaded model. It carries a clip table and nothing
// else, so the skeleton adapter falls through to root-offset heuristics.
type StaticRig struct {
	ClipTable []Clip
}

// NewStaticRig builds a rig whose clip table covers every clip a
// character mapping can request, at stock durations.
func NewStaticRig(clips ClipMapping) *StaticRig {
	durations := map[string]float64{}
	add := func(name string, d float64) {
		if name != "" {
			durations[name] = d
		}
	}

	add(clips.Idle, 2.0)
	add(clips.Walk, 1.0)
	add(clips.Jump, 0.8)
	add(clips.Crouch, 0.4)
	add(clips.CrouchExit, 0.4)
	add(clips.Hit, 0.45)
	add(clips.Death, 1.6)
	add(clips.Win, 2.0)
	for t, candidates := range clips.Attacks {
		d := 0.5
		if t.IsHeavy() {
			d = 0.7
		}
		for _, name := range candidates {
			add(name, d)
		}
	}

	r := &StaticRig{ClipTable: make([]Clip, 0, len(durations))}
	for name, d := range durations {
		r.ClipTable = append(r.ClipTable, Clip{Name: name, Duration: d})
	}
	return r
}

// BoneNames implements Rig; a static rig exposes no skeleton.
func (r *StaticRig) BoneNames() []string { return nil }

// BonePosition implements Rig.
func (r *StaticRig) BonePosition(name string) (mgl64.Vec3, bool) {
	return mgl64.Vec3{}, false
}

// Bounds implements Rig.
func (r *StaticRig) Bounds() (min, max mgl64.Vec3, ok bool) {
	return mgl64.Vec3{}, mgl64.Vec3{}, false
}

// Clips implements Rig.
func (r *StaticRig) Clips() []Clip { return r.ClipTable }
