package triplet

import "math"

// Rand is the uniform source consumed by the quantized divider. *rand.Rand
// satisfies it; tests substitute a fixed sequence.
type Rand interface {
	Float64() float64
}

// ChargeDivider converts the fractional axial position of a hit into the
// signal seen at the two readout ends of the series chain.
type ChargeDivider interface {
	Divide(tube int, ty float64) (left, right float64)
}

// newChargeDivider selects the divider implementation from the configured
// charge model. The quantized model validates its pulse-height interval here,
// once, before any tracing.
func newChargeDivider(cfg DetectorConfig, asm *Assembly, rnd Rand) (ChargeDivider, error) {
	if cfg.ChargeModel.Code == ChargeQuantized {
		if cfg.PulseThreshold < 0 || cfg.PulseLevels <= cfg.PulseThreshold {
			return nil, &ErrBadPulseRange{
				Detector:  cfg.Name,
				Threshold: cfg.PulseThreshold,
				Levels:    cfg.PulseLevels,
			}
		}
		return &quantizedDivider{
			asm:       asm,
			rnd:       rnd,
			threshold: cfg.PulseThreshold,
			levels:    cfg.PulseLevels,
		}, nil
	}
	return &continuousDivider{asm: asm}, nil
}

// continuousDivider reports the resistance split itself. The right signal is
// the series resistance from the hit point to the right terminal: the right
// lead, all full tubes and connectors before the hit tube, and the hit
// tube's wire up to the hit point. Left is everything else, so the two
// always sum to the assembly's total resistance.
type continuousDivider struct {
	asm *Assembly
}

func (d *continuousDivider) Divide(tube int, ty float64) (left, right float64) {
	right = d.asm.ChainBefore(tube) + ty*d.asm.Tubes[tube].Resistance()
	left = d.asm.TotalResistance - right
	return left, right
}

// quantizedDivider draws one integer pulse height uniformly from
// [threshold, levels) and splits it by the continuous resistance ratio,
// truncating the right share. left = height - right exactly, so no charge
// is created or lost to rounding.
type quantizedDivider struct {
	asm       *Assembly
	rnd       Rand
	threshold int
	levels    int
}

func (d *quantizedDivider) Divide(tube int, ty float64) (left, right float64) {
	height := d.threshold + int(d.rnd.Float64()*float64(d.levels-d.threshold))
	ratio := (d.asm.ChainBefore(tube) + ty*d.asm.Tubes[tube].Resistance()) / d.asm.TotalResistance
	right = math.Floor(float64(height) * ratio)
	left = float64(height) - right
	return left, right
}
