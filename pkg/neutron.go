package triplet

import (
	"golang.org/x/exp/maps"

	"gonum.org/v1/gonum/spatial/r3"
)

// Neutron is the ray state threaded through the simulation. Positions are
// meters, velocities m/s, time seconds. Weight is the Monte Carlo statistical
// weight, not a physical property of the ray.
type Neutron struct {
	Position r3.Vec
	Velocity r3.Vec
	Spin     r3.Vec
	Time     float64
	Weight   float64
	// User is the extension block declared by the host configuration.
	// Slots are addressed by index; names are resolved once at setup
	// through a UserVarSchema, never in the per-ray path.
	User []float64
}

// Speed returns the magnitude of the velocity.
func (n *Neutron) Speed() float64 {
	return r3.Norm(n.Velocity)
}

// Kinematics is the restorable part of the ray state. The user extension
// block is deliberately not included: values written there survive a
// restore, which is how a non-perturbing detector reports its readout.
type Kinematics struct {
	Position r3.Vec
	Velocity r3.Vec
	Spin     r3.Vec
	Time     float64
	Weight   float64
}

// Kinematics captures the current kinematic state.
func (n *Neutron) Kinematics() Kinematics {
	return Kinematics{
		Position: n.Position,
		Velocity: n.Velocity,
		Spin:     n.Spin,
		Time:     n.Time,
		Weight:   n.Weight,
	}
}

// SetKinematics restores a previously captured state bit for bit.
func (n *Neutron) SetKinematics(k Kinematics) {
	n.Position = k.Position
	n.Velocity = k.Velocity
	n.Spin = k.Spin
	n.Time = k.Time
	n.Weight = k.Weight
}

// Outcome is the terminal classification of a ray after a detector pass.
type Outcome int

const (
	Absorbed Outcome = iota
	Scattered
)

func (o Outcome) String() string {
	if o == Scattered {
		return "scattered"
	}
	return "absorbed"
}

// UserVarSchema maps user variable names to slot indices in Neutron.User.
// The host declares the names once; components resolve the slots they need
// at construction time.
type UserVarSchema struct {
	slots map[string]int
}

// NewUserVarSchema builds a schema from an ordered name list. Empty names
// are skipped and the first occurrence of a duplicate wins, so resolved
// handles stay stable.
func NewUserVarSchema(names []string) UserVarSchema {
	slots := make(map[string]int, len(names))
	idx := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, taken := slots[name]; taken {
			continue
		}
		slots[name] = idx
		idx++
	}
	return UserVarSchema{slots: slots}
}

// Slot resolves a name to its index in the extension block.
func (s UserVarSchema) Slot(name string) (int, bool) {
	idx, found := s.slots[name]
	return idx, found
}

// Slots returns a copy of the full name-to-slot assignment.
func (s UserVarSchema) Slots() map[string]int {
	return maps.Clone(s.slots)
}

// Len returns the number of declared slots, the required length of
// Neutron.User.
func (s UserVarSchema) Len() int {
	return len(s.slots)
}
