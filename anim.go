package lightbox

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenOpts configures a single property tween.
type TweenOpts struct {
	// Duration is the tween length in seconds.
	Duration float32
	// Delay defers the first update by this many seconds. The start value
	// is captured when the tween is issued, not when the delay elapses.
	Delay float32
	// Ease is the easing function; nil means ease.Linear.
	Ease ease.TweenFunc
	// OnComplete fires once, from Update, after the final value is written.
	OnComplete func()
}

type activeTween struct {
	field      *float64
	tween      *gween.Tween
	delay      float32
	onComplete func()
}

// AnimationController is an explicit tween scheduler. It is injected into
// the ViewportController rather than living in package state; each instance
// owns its tweens, and issuing a tween on a field kills any tween already
// writing that field (kill-on-supersede, no partial merging).
//
// All methods must be called from the render loop's logical thread.
type AnimationController struct {
	tweens []activeTween
}

// NewAnimationController creates an empty controller.
func NewAnimationController() *AnimationController {
	return &AnimationController{}
}

// Tween starts animating *field to the target value. Any in-flight tween on
// the same field is superseded. A non-positive duration writes the target
// immediately and fires OnComplete before returning.
func (a *AnimationController) Tween(field *float64, to float64, opts TweenOpts) {
	a.KillTweensOf(field)

	if opts.Duration <= 0 {
		*field = to
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return
	}

	fn := opts.Ease
	if fn == nil {
		fn = ease.Linear
	}
	a.tweens = append(a.tweens, activeTween{
		field:      field,
		tween:      gween.New(float32(*field), float32(to), opts.Duration, fn),
		delay:      opts.Delay,
		onComplete: opts.OnComplete,
	})
}

// KillTweensOf removes any in-flight tweens on the given fields without
// firing their completion callbacks. The fields keep their current values.
func (a *AnimationController) KillTweensOf(fields ...*float64) {
	for _, f := range fields {
		for i := 0; i < len(a.tweens); {
			if a.tweens[i].field == f {
				a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
			} else {
				i++
			}
		}
	}
}

// KillAll removes every in-flight tween without firing completions.
func (a *AnimationController) KillAll() {
	a.tweens = a.tweens[:0]
}

// Active returns the number of in-flight tweens.
func (a *AnimationController) Active() int {
	return len(a.tweens)
}

// Update advances all tweens by dt seconds and writes their values.
// Completion callbacks fire after the slice is compacted, so a callback may
// freely issue new tweens or kill others.
func (a *AnimationController) Update(dt float32) {
	var completed []func()

	for i := 0; i < len(a.tweens); {
		t := &a.tweens[i]
		step := dt
		if t.delay > 0 {
			if t.delay >= step {
				t.delay -= step
				i++
				continue
			}
			step -= t.delay
			t.delay = 0
		}

		val, finished := t.tween.Update(step)
		*t.field = float64(val)
		if finished {
			if t.onComplete != nil {
				completed = append(completed, t.onComplete)
			}
			a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
		} else {
			i++
		}
	}

	for _, fn := range completed {
		fn()
	}
}
