package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Clip is a named animation with its native duration in seconds.
type Clip struct {
	Name     string
	Duration float64
}

// MinBaseWeight keeps the locomotion layer partially active under any
// one-shot action, so the blend never fully yields control of the root
// (prevents ground-penetration artifacts mid-fade).
const MinBaseWeight = 0.1

// defaultReturnFade is the fade back to locomotion after an action
// completes, when the action did not specify its own fade-out.
const defaultReturnFade = 0.25

// PlayOptions parameterizes a one-shot action animation.
type PlayOptions struct {
	Priority int
	FadeIn   float64
	FadeOut  float64
	// AutoReturn fades back to the locomotion layer on completion.
	AutoReturn bool
	// Duration, when positive, derives the playback rate so the clip fits
	// this real-world duration.
	Duration float64
	// Rate multiplies the playback rate after Duration is applied.
	Rate float64
	// Reverse plays the clip backwards.
	Reverse bool
	// ClampEnd holds the final frame instead of returning to locomotion
	// (death poses).
	ClampEnd bool
	// CancelRatio, when positive, is the progress ratio after which any
	// lower-or-equal priority action may interrupt this one.
	CancelRatio float64
	// OnComplete fires exactly once when playback reaches the clip end.
	OnComplete func()
}

// activeAction is the single one-shot currently owning the action layer.
type activeAction struct {
	clip      Clip
	opts      PlayOptions
	time      float64
	rate      float64
	weight    float64
	fade      *gween.Tween
	fadingOut bool
	done      bool // completion callback already fired
}

// progress returns the elapsed fraction of the playback in [0,1].
func (a *activeAction) progress() float64 {
	if a.clip.Duration <= 0 {
		return 1
	}
	t := a.time
	if a.opts.Reverse {
		t = a.clip.Duration - a.time
	}
	p := t / a.clip.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// AnimationController is the two-layer mixer: an always-evaluated
// locomotion blend (idle/walk) plus at most one one-shot action gated by
// priority and cancel-window rules. It owns playback time, so "finished"
// is a consequence of Update advancing past the clip end, never of
// comparing a wall clock against the duration.
type AnimationController struct {
	clips map[string]Clip

	// Locomotion layer.
	idleWeight float64
	walkWeight float64
	walkRate   float64 // sign encodes forward/backward

	action *activeAction
}

// NewAnimationController builds a controller over the model's clip table.
func NewAnimationController(clips []Clip) *AnimationController {
	table := make(map[string]Clip, len(clips))
	for _, c := range clips {
		table[c.Name] = c
	}
	return &AnimationController{
		clips:      table,
		idleWeight: 1,
	}
}

// HasClip reports whether a named clip exists in the model.
func (c *AnimationController) HasClip(name string) bool {
	_, ok := c.clips[name]
	return ok
}

// ClipDuration returns a clip's native duration, or 0 if missing.
func (c *AnimationController) ClipDuration(name string) float64 {
	return c.clips[name].Duration
}

// SetLocomotion drives the base-layer blend from the normalized speed and
// the signed move direction produced by the motion controller.
func (c *AnimationController) SetLocomotion(speed, moveDir float64) {
	if speed < 0 {
		speed = 0
	} else if speed > 1 {
		speed = 1
	}
	c.walkWeight = speed
	c.idleWeight = 1 - speed
	if c.idleWeight < MinBaseWeight {
		c.idleWeight = MinBaseWeight
	}
	c.walkRate = moveDir * speed
}

// LocomotionWeights exposes the current idle/walk blend for the renderer.
func (c *AnimationController) LocomotionWeights() (idle, walk, walkRate float64) {
	return c.idleWeight, c.walkWeight, c.walkRate
}

// CanInterrupt reports whether a new action of the given priority may take
// over the action layer. Past the active action's cancel window anything
// may interrupt; before it the newcomer needs at least the active
// priority, which is how death and hit reactions always win.
func (c *AnimationController) CanInterrupt(priority int) bool {
	a := c.action
	if a == nil || a.done || a.fadingOut {
		return true
	}
	if a.opts.CancelRatio > 0 && a.progress() > a.opts.CancelRatio {
		return true
	}
	return priority >= a.opts.Priority
}

// PlayOneShot starts an action-layer animation. It refuses to restart an
// action that is still actively playing under the same name, refuses
// missing clips, and refuses when the priority check fails. Returns
// whether playback actually started.
func (c *AnimationController) PlayOneShot(name string, opts PlayOptions) bool {
	clip, ok := c.clips[name]
	if !ok {
		return false
	}
	if a := c.action; a != nil && !a.done && !a.fadingOut && a.clip.Name == name {
		return false
	}
	if !c.CanInterrupt(opts.Priority) {
		return false
	}

	rate := 1.0
	if opts.Duration > 0 && clip.Duration > 0 {
		rate = clip.Duration / opts.Duration
	}
	if opts.Rate > 0 {
		rate *= opts.Rate
	}

	a := &activeAction{
		clip: clip,
		opts: opts,
		rate: rate,
	}
	if opts.Reverse {
		a.time = clip.Duration
	}
	if opts.FadeIn > 0 {
		a.fade = gween.New(0, 1, float32(opts.FadeIn), ease.Linear)
	} else {
		a.weight = 1
	}
	c.action = a
	return true
}

// Update advances the action layer. Clamp-at-end actions are re-clamped
// every call so they can never drift past the final frame or be treated as
// finished twice.
func (c *AnimationController) Update(dt float64) {
	a := c.action
	if a == nil {
		return
	}

	if a.fade != nil {
		w, fadeDone := a.fade.Update(float32(dt))
		a.weight = float64(w)
		if fadeDone {
			a.fade = nil
			if a.fadingOut {
				c.action = nil
				return
			}
		}
	}

	if a.opts.Reverse {
		a.time -= a.rate * dt
	} else {
		a.time += a.rate * dt
	}

	var ended bool
	if a.opts.Reverse {
		ended = a.time <= 0
	} else {
		ended = a.time >= a.clip.Duration
	}

	if a.opts.ClampEnd {
		if a.time < 0 {
			a.time = 0
		} else if a.time > a.clip.Duration {
			a.time = a.clip.Duration
		}
	}

	if ended && !a.done {
		a.done = true
		if a.opts.OnComplete != nil {
			a.opts.OnComplete()
		}
		if a.opts.ClampEnd {
			return // stays active, holding the pose
		}
		if a.opts.AutoReturn {
			fade := a.opts.FadeOut
			if fade <= 0 {
				fade = defaultReturnFade
			}
			a.fadingOut = true
			a.fade = gween.New(float32(a.weight), 0, float32(fade), ease.Linear)
		} else {
			c.action = nil
		}
	}
}

// ActionState returns the active action's name and progress ratio.
func (c *AnimationController) ActionState() (name string, progress float64, ok bool) {
	if c.action == nil {
		return "", 0, false
	}
	return c.action.clip.Name, c.action.progress(), true
}

// ActionWeight exposes the action layer's blend weight for the renderer.
func (c *AnimationController) ActionWeight() float64 {
	if c.action == nil {
		return 0
	}
	return c.action.weight
}

// ActionDone reports whether the active action finished but is still
// resident (clamped death poses).
func (c *AnimationController) ActionDone() bool {
	return c.action != nil && c.action.done
}

// StopAction drops the active action immediately. Used on match reset.
func (c *AnimationController) StopAction() {
	c.action = nil
}
