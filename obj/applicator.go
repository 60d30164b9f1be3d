package obj

import "github.com/jakecoffman/cp"

// DefaultPower is the base applicator force magnitude per second of input.
const DefaultPower = 60000.0

// ForceReceiver accepts a force applied at its center of mass.
type ForceReceiver interface {
	ApplyForce(f cp.Vector)
}

// Applicator turns the four directional booleans into a force on an
// externally-owned deformable body each fixed timestep. The horizontal
// component is ±Power·dt, the vertical one ±2·Power·dt; opposing directions
// cancel.
type Applicator struct {
	Power float64

	// Modulate, when set, scales Power by a per-frame multiplier given the
	// elapsed simulation time. Used by scripted prefabs.
	Modulate func(elapsed float64) float64

	input   *Input
	body    ForceReceiver
	elapsed float64
}

func NewApplicator(input *Input, body ForceReceiver, power float64) *Applicator {
	if power <= 0 {
		power = DefaultPower
	}
	return &Applicator{Power: power, input: input, body: body}
}

// Step applies the current directional force to the body.
func (a *Applicator) Step(dt float64) {
	if a == nil || a.input == nil || a.body == nil {
		return
	}
	a.elapsed += dt

	power := a.Power
	if a.Modulate != nil {
		power *= a.Modulate(a.elapsed)
	}

	var f cp.Vector
	if a.input.Left {
		f.X -= power * dt
	}
	if a.input.Right {
		f.X += power * dt
	}
	if a.input.Up {
		f.Y -= 2 * power * dt
	}
	if a.input.Down {
		f.Y += 2 * power * dt
	}
	a.body.ApplyForce(f)
}
