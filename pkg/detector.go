package triplet

import "fmt"

// Sentinel values reported for a ray no tube detects.
const (
	missCharge = -1.0
	missT0     = -2.0
	missT1     = -1.0
)

// Detector is one triplet instance: the resolved assembly, its histogram,
// the charge divider and the user-variable handles. All state is owned by
// the instance; two detectors never share anything.
type Detector struct {
	name      string
	asm       *Assembly
	hist      *Histogram
	divider   ChargeDivider
	restore   bool
	leftSlot  int
	rightSlot int
	timeSlot  int
}

// NewDetector builds a detector from its configuration and the host's
// user-variable schema. Output slot names are resolved to integer handles
// here, once; a configured name missing from the schema is a fatal setup
// error, raised before any ray is traced. rnd feeds the quantized charge
// model and may be nil for the continuous one.
func NewDetector(cfg DetectorConfig, schema UserVarSchema, rnd Rand) (*Detector, error) {
	asm, err := NewAssembly(cfg)
	if err != nil {
		return nil, err
	}
	divider, err := newChargeDivider(cfg, asm, rnd)
	if err != nil {
		return nil, err
	}

	d := &Detector{
		name:    cfg.Name,
		asm:     asm,
		hist:    NewHistogram(cfg.Channels),
		divider: divider,
		restore: cfg.RestoreNeutron,
	}
	if d.leftSlot, err = resolveSlot(cfg.Name, schema, cfg.LeftVar); err != nil {
		return nil, err
	}
	if d.rightSlot, err = resolveSlot(cfg.Name, schema, cfg.RightVar); err != nil {
		return nil, err
	}
	if d.timeSlot, err = resolveSlot(cfg.Name, schema, cfg.TimeVar); err != nil {
		return nil, err
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Detector %s ready: %d channels, total resistance %.4f ohm",
			cfg.Name, cfg.Channels, asm.TotalResistance)
		logger.Info(message, "detector")
	}
	return d, nil
}

// resolveSlot turns a configured slot name into a handle. An empty name
// disables the slot (-1).
func resolveSlot(detector string, schema UserVarSchema, name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	idx, found := schema.Slot(name)
	if !found {
		return 0, &ErrMissingUserVar{Detector: detector, Slot: name}
	}
	return idx, nil
}

// Name returns the detector instance name.
func (d *Detector) Name() string {
	return d.name
}

// Assembly returns the resolved tube assembly.
func (d *Detector) Assembly() *Assembly {
	return d.asm
}

// Histogram returns the position histogram. Read it only after tracing has
// finished.
func (d *Detector) Histogram() *Histogram {
	return d.hist
}

// ProcessNeutron runs one ray through the detector and classifies it:
// Scattered on detection, Absorbed otherwise. With the restore flag set the
// ray's kinematic state afterwards is bit-identical to the state before the
// call, whatever the outcome; values written to user-variable slots remain
// either way.
func (d *Detector) ProcessNeutron(n *Neutron) Outcome {
	if !d.restore {
		return d.trace(n)
	}
	saved := n.Kinematics()
	outcome := d.trace(n)
	n.SetKinematics(saved)
	return outcome
}

func (d *Detector) trace(n *Neutron) Outcome {
	h, ok := d.asm.FirstHit(n.Position, n.Velocity)
	if !ok {
		d.miss(n)
		return Absorbed
	}

	tube := d.asm.Tubes[h.Tube]
	ty := axialFraction(h, tube.Length)
	if ty < 0 || ty > 1 {
		// Midpoint approximation landed outside the wire. Same terminal
		// values as a geometric miss.
		d.miss(n)
		return Absorbed
	}

	if tube.Pressure > 0 && h.T1 != h.T0 {
		n.Weight *= 1 - transmission(tube.Pressure, h.T0, h.T1)
	}
	n.Weight *= endEffect(ty, tube.DeadLength, tube.Length)

	d.hist.AddHit(d.hist.Channel(h.Tube, ty), n.Weight)

	left, right := d.divider.Divide(h.Tube, ty)
	d.writeSlots(n, left, right, (h.T0+h.T1)/2)

	if configuration.Verbosity > 3 {
		message := fmt.Sprintf("Hit tube %d ty %.4f charges %.2f/%.2f weight %g",
			h.Tube, ty, left, right, n.Weight)
		logger.Info(message, "detector")
	}
	return Scattered
}

func (d *Detector) miss(n *Neutron) {
	d.writeSlots(n, missCharge, missCharge, (missT0+missT1)/2)
}

func (d *Detector) writeSlots(n *Neutron, left, right, t float64) {
	if d.leftSlot >= 0 {
		n.User[d.leftSlot] = left
	}
	if d.rightSlot >= 0 {
		n.User[d.rightSlot] = right
	}
	if d.timeSlot >= 0 {
		n.User[d.timeSlot] = t
	}
}
