// Package physics holds the two routines the platformer needs: a
// fixed-timestep integrator and an axis-aligned overlap test.
package physics

import "time"

// Box is an axis-aligned rectangle with its origin at the top-left corner.
// Y grows downward, matching screen rows.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x coordinate just past the box.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate just past the box.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// Shrink returns the box with margin removed from every side. A box never
// shrinks below zero size.
func (b Box) Shrink(margin float64) Box {
	w := max(b.W-2*margin, 0)
	h := max(b.H-2*margin, 0)
	return Box{X: b.CenterX() - w/2, Y: b.Y + (b.H-h)/2, W: w, H: h}
}

// Overlap reports whether a and b intersect after both are shrunk by margin.
// Margin 0 is a strict test; a positive margin forgives grazing contact.
// Touching edges do not overlap.
func Overlap(a, b Box, margin float64) bool {
	if margin > 0 {
		a, b = a.Shrink(margin), b.Shrink(margin)
	}
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	return a.X < b.Right() && b.X < a.Right() &&
		a.Y < b.Bottom() && b.Y < a.Bottom()
}

// Params are the integration constants, in cells and seconds.
type Params struct {
	Gravity      float64
	MaxFallSpeed float64
}

// Body is a moving box.
type Body struct {
	Box
	VX, VY   float64
	Grounded bool
}

// Integrate advances the body by dt seconds under gravity. Surfaces are
// one-way: the body lands on a surface's top edge only when falling onto it
// from above, and passes through it otherwise.
func (b *Body) Integrate(dt float64, p Params, surfaces []Box) {
	b.VY += p.Gravity * dt
	if p.MaxFallSpeed > 0 && b.VY > p.MaxFallSpeed {
		b.VY = p.MaxFallSpeed
	}

	b.X += b.VX * dt
	prevBottom := b.Bottom()
	b.Y += b.VY * dt
	b.Grounded = false

	if b.VY < 0 {
		return
	}

	// Land on the highest surface crossed this step.
	landed := -1
	for i, s := range surfaces {
		if b.Right() <= s.X || b.X >= s.Right() {
			continue
		}
		if prevBottom > s.Y || b.Bottom() < s.Y {
			continue
		}
		if landed < 0 || s.Y < surfaces[landed].Y {
			landed = i
		}
	}
	if landed >= 0 {
		b.Y = surfaces[landed].Y - b.H
		b.VY = 0
		b.Grounded = true
	}
}

// Stepper converts variable frame time into whole fixed steps.
type Stepper struct {
	Step time.Duration
	acc  time.Duration
}

// Advance accumulates dt and calls fn once per whole step with the step
// length in seconds. The remainder carries into the next call. It returns the
// number of steps run.
func (s *Stepper) Advance(dt time.Duration, fn func(dt float64)) int {
	if s.Step <= 0 || dt <= 0 {
		return 0
	}
	s.acc += dt
	n := 0
	for s.acc >= s.Step {
		s.acc -= s.Step
		fn(s.Step.Seconds())
		n++
	}
	return n
}

// Reset drops any accumulated remainder.
func (s *Stepper) Reset() {
	s.acc = 0
}
