package triplet

import "math"

// He-3 absorbs with a cross section proportional to 1/speed, referenced to
// 5333 barn at 2200 m/s. At STP that gives 14.33 absorptions per atmosphere
// per meter of path for a reference-speed neutron. Because the cylinder test
// returns ray parameters in time units, the path a reference neutron covers
// in |t1-t0| is |t1-t0|*vRef and the ray's own speed cancels out of the
// exponent entirely.
const (
	vRef        = 2200.0 // m/s
	absorptionK = 14.33  // 1/(atm*m) at vRef
)

// transmission returns the probability that a neutron crosses the chord
// [t0,t1] of a tube filled at the given pressure without being absorbed.
func transmission(pressure, t0, t1 float64) float64 {
	return math.Exp(-absorptionK * pressure * math.Abs(t1-t0) * vRef)
}

// axialFraction maps the chord midpoint of a hit to a fractional position
// along the tube, 0 at one readout end and 1 at the other. Tube 1 is
// mirrored: the serpentine wiring runs its wire coordinate opposite to the
// outer tubes, so increasing local Y means decreasing fraction there.
// Values outside [0,1] are returned as-is; the caller downgrades them to a
// miss.
func axialFraction(h Hit, length float64) float64 {
	y := h.Pos.Y + h.Vel.Y*(h.T0+h.T1)/2
	f := y / length
	if h.Tube == 1 {
		return 0.5 - f
	}
	return 0.5 + f
}

// smootherstep is the quintic ramp 6x^5-15x^4+10x^3 with zero first and
// second derivative at both ends, clamped outside [0,1].
func smootherstep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * x * (x*(x*6-15) + 10)
}

// endEffect returns the sensitivity multiplier at fractional position ty for
// a tube with the given dead length at each end. Sensitivity ramps from zero
// at the tube ends to full at one dead length in. A zero dead length is the
// identity.
func endEffect(ty, deadLength, length float64) float64 {
	if deadLength <= 0 {
		return 1
	}
	d := deadLength / length
	return smootherstep(ty/d) * smootherstep((1-ty)/d)
}
