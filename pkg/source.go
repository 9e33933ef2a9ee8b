package triplet

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// Neutron speed in m/s for a wavelength of 1 angstrom.
const speedPerAngstrom = 3956.034

// Source emits neutrons from a rectangular patch at z = -distance, each
// aimed at a uniform point inside a focusing window on the assembly plane.
// Wavelengths follow a Gaussian around lambda0, rejected until positive.
// One Source per worker, each with its own random stream; Emit is not safe
// for concurrent use on a single instance.
type Source struct {
	distance float64
	posX     distuv.Uniform
	posY     distuv.Uniform
	aimX     distuv.Uniform
	aimY     distuv.Uniform
	lambda   distuv.Normal
	nvars    int
}

// NewSource builds an emitter over the given random source. The schema
// sizes the user-variable block of every emitted neutron.
func NewSource(cfg SourceConfig, schema UserVarSchema, src rand.Source) *Source {
	return &Source{
		distance: cfg.Distance,
		posX:     distuv.Uniform{Min: -cfg.Width / 2, Max: cfg.Width / 2, Src: src},
		posY:     distuv.Uniform{Min: -cfg.Height / 2, Max: cfg.Height / 2, Src: src},
		aimX:     distuv.Uniform{Min: -cfg.TargetWidth / 2, Max: cfg.TargetWidth / 2, Src: src},
		aimY:     distuv.Uniform{Min: -cfg.TargetHeight / 2, Max: cfg.TargetHeight / 2, Src: src},
		lambda:   distuv.Normal{Mu: cfg.Lambda0, Sigma: cfg.DLambda, Src: src},
		nvars:    schema.Len(),
	}
}

// Emit draws one neutron with unit statistical weight at time zero.
func (s *Source) Emit() Neutron {
	speed := speedPerAngstrom / s.wavelength()
	start := r3.Vec{X: s.posX.Rand(), Y: s.posY.Rand(), Z: -s.distance}
	target := r3.Vec{X: s.aimX.Rand(), Y: s.aimY.Rand()}
	dir := r3.Unit(r3.Sub(target, start))
	return Neutron{
		Position: start,
		Velocity: r3.Scale(speed, dir),
		Weight:   1,
		User:     make([]float64, s.nvars),
	}
}

func (s *Source) wavelength() float64 {
	if s.lambda.Sigma <= 0 {
		return s.lambda.Mu
	}
	l := s.lambda.Rand()
	for l <= 0 {
		l = s.lambda.Rand()
	}
	return l
}
