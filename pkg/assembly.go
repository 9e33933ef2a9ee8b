package triplet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Assembly is the electrical and geometric description of the three tubes
// wired in series: tube 0, connector 0, tube 1, connector 1, tube 2, with a
// lead resistance at each outer end. TotalResistance is computed once in
// NewAssembly and never mutated afterwards.
type Assembly struct {
	Tubes           [3]Tube
	ConnR           [2]float64
	LeadR           [2]float64
	TotalResistance float64

	ordering OrderingCode
}

// Hit is the first tube intersection found in traversal order. T0 and T1 are
// the entry and exit ray parameters of the cylinder test, Pos and Vel the ray
// expressed in the hit tube's local frame.
type Hit struct {
	Tube int
	T0   float64
	T1   float64
	Pos  r3.Vec
	Vel  r3.Vec
}

// NewAssembly resolves the detector configuration into an immutable tube
// assembly. Aggregate parameters override the per-tube ones when set above
// zero: length, radius and resistivity replace the three per-tube values,
// and resistance fixes every tube's total anode resistance regardless of any
// resistivity given.
func NewAssembly(cfg DetectorConfig) (*Assembly, error) {
	a := &Assembly{
		ConnR:    cfg.ConnR,
		LeadR:    cfg.LeadR,
		ordering: cfg.Ordering.Code,
	}

	for i, tc := range cfg.Tubes {
		length := tc.Length
		offset := r3.Vec{X: tc.Offset[0], Y: tc.Offset[1], Z: tc.Offset[2]}

		var frame Frame
		switch cfg.Orientation.Code {
		case OrientEndpoints:
			axis := r3.Vec{X: tc.Endpoint[0], Y: tc.Endpoint[1], Z: tc.Endpoint[2]}
			if length == 0 {
				length = r3.Norm(axis)
			}
			tiltX, tiltZ := tiltsFromAxis(axis)
			frame = NewFrame(offset, tiltX, tiltZ)
		default:
			frame = NewFrame(offset, tc.TiltX*math.Pi/180, tc.TiltZ*math.Pi/180)
		}

		if cfg.Length > 0 {
			length = cfg.Length
		}
		radius := tc.Radius
		if cfg.Radius > 0 {
			radius = cfg.Radius
		}
		if length <= 0 {
			return nil, &ErrBadGeometry{Detector: cfg.Name, Reason: fmt.Sprintf("tube %d has length %v", i, length)}
		}
		if radius <= 0 {
			return nil, &ErrBadGeometry{Detector: cfg.Name, Reason: fmt.Sprintf("tube %d has radius %v", i, radius)}
		}

		rho := tc.Resistivity
		if cfg.Resistivity > 0 {
			rho = cfg.Resistivity
		}
		if cfg.Resistance > 0 {
			rho = cfg.Resistance / length
		}

		a.Tubes[i] = Tube{
			Radius:      radius,
			Length:      length,
			Resistivity: rho,
			Pressure:    tc.Pressure,
			DeadLength:  tc.DeadLength,
			Frame:       frame,
		}
	}

	for i := range a.Tubes {
		a.TotalResistance += a.Tubes[i].Resistance()
	}
	a.TotalResistance += a.ConnR[0] + a.ConnR[1] + a.LeadR[0] + a.LeadR[1]
	if a.TotalResistance <= 0 {
		return nil, &ErrBadGeometry{Detector: cfg.Name, Reason: "total series resistance is not positive"}
	}

	return a, nil
}

// ChainBefore returns the series resistance between the right readout
// terminal and the near end of tube i: the right lead plus every full tube
// and connector preceding i in wiring order.
func (a *Assembly) ChainBefore(i int) float64 {
	r := a.LeadR[0]
	for j := 0; j < i; j++ {
		r += a.Tubes[j].Resistance() + a.ConnR[j]
	}
	return r
}

// FirstHit walks the tubes in the configured traversal order and returns the
// first one the ray intersects ahead of its origin. In shortcut order the
// middle tube is tested first and without any frame transform, matching the
// common case of an untilted center tube at the assembly origin. Overlapping
// tube volumes are not detected; traversal order decides the winner.
func (a *Assembly) FirstHit(pos, vel r3.Vec) (Hit, bool) {
	if a.ordering == OrderShortcut {
		if h, ok := a.testTube(1, pos, vel); ok {
			return h, true
		}
		for _, i := range [2]int{0, 2} {
			lp, lv := a.Tubes[i].Frame.ToLocal(pos, vel)
			if h, ok := a.testTube(i, lp, lv); ok {
				return h, true
			}
		}
		return Hit{}, false
	}

	for i := range a.Tubes {
		lp, lv := a.Tubes[i].Frame.ToLocal(pos, vel)
		if h, ok := a.testTube(i, lp, lv); ok {
			return h, true
		}
	}
	return Hit{}, false
}

// testTube runs the cylinder test for tube i on a ray already in local
// coordinates. Intersections entirely behind the ray origin do not count.
func (a *Assembly) testTube(i int, lp, lv r3.Vec) (Hit, bool) {
	t0, t1, ok := CylinderIntersect(lp, lv, a.Tubes[i].Radius, a.Tubes[i].Length)
	if !ok || t1 <= 0 {
		return Hit{}, false
	}
	return Hit{Tube: i, T0: t0, T1: t1, Pos: lp, Vel: lv}, true
}
