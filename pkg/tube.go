package triplet

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tube is the static description of one position-sensitive tube: geometry,
// anode resistivity and fill gas. Immutable once the assembly is built.
type Tube struct {
	Radius      float64 // m
	Length      float64 // m
	Resistivity float64 // ohm/m of anode wire
	Pressure    float64 // atm of He-3
	DeadLength  float64 // m of reduced sensitivity at each end
	Frame       Frame
}

// Resistance returns the anode resistance of the whole tube.
func (t Tube) Resistance() float64 {
	return t.Resistivity * t.Length
}

// tiltsFromAxis returns the tilt pair (about X, then about Z) whose frame
// maps the local Y axis onto the given direction. The direction need not be
// normalized. A zero vector yields zero tilts.
func tiltsFromAxis(axis r3.Vec) (tiltX, tiltZ float64) {
	tiltX = math.Atan2(axis.Z, axis.Y)
	tiltZ = math.Atan2(-axis.X, math.Hypot(axis.Y, axis.Z))
	return tiltX, tiltZ
}
