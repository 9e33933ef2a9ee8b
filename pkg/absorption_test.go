package triplet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

// ---------------------------------------------------------------------------
// transmission
// ---------------------------------------------------------------------------

func TestTransmission(t *testing.T) {
	t.Parallel()

	t.Run("no gas means full transmission", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, transmission(0, 1.0, 2.0), 1e-15)
	})

	t.Run("zero chord means full transmission", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, transmission(6, 1.5, 1.5), 1e-15)
	})

	t.Run("known value", func(t *testing.T) {
		t.Parallel()
		// 6 atm over a 10 us chord: exp(-14.33*6*1e-5*2200) = exp(-1.89156).
		assert.InDelta(t, 0.15086, transmission(6, 0, 1e-5), 1e-4)
	})

	t.Run("symmetric in the chord endpoints", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, transmission(6, 1.0, 3.0), transmission(6, 3.0, 1.0))
	})

	t.Run("longer chords absorb more", func(t *testing.T) {
		t.Parallel()
		short := transmission(6, 0, 1e-6)
		long := transmission(6, 0, 1e-5)
		assert.Greater(t, short, long)
	})
}

// ---------------------------------------------------------------------------
// axialFraction
// ---------------------------------------------------------------------------

func TestAxialFraction(t *testing.T) {
	t.Parallel()

	t.Run("tube center maps to one half", func(t *testing.T) {
		t.Parallel()
		h := Hit{Tube: 0, T0: 1, T1: 2, Pos: r3.Vec{}, Vel: r3.Vec{Z: 1}}
		assert.InDelta(t, 0.5, axialFraction(h, 0.3), 1e-12)
	})

	t.Run("middle tube is mirrored", func(t *testing.T) {
		t.Parallel()
		pos := r3.Vec{Y: 0.06}
		outer := Hit{Tube: 0, Pos: pos}
		middle := Hit{Tube: 1, Pos: pos}
		last := Hit{Tube: 2, Pos: pos}
		assert.InDelta(t, 0.7, axialFraction(outer, 0.3), 1e-12)
		assert.InDelta(t, 0.3, axialFraction(middle, 0.3), 1e-12)
		assert.InDelta(t, 0.7, axialFraction(last, 0.3), 1e-12)
	})

	t.Run("chord midpoint sets the height", func(t *testing.T) {
		t.Parallel()
		// y at the midpoint of [1,2] with vy=0.1 is 0.15, the tube top.
		h := Hit{Tube: 0, T0: 1, T1: 2, Vel: r3.Vec{Y: 0.1}}
		assert.InDelta(t, 1.0, axialFraction(h, 0.3), 1e-12)
	})

	t.Run("out of range passes through for the caller", func(t *testing.T) {
		t.Parallel()
		h := Hit{Tube: 0, Pos: r3.Vec{Y: 0.2}}
		assert.Greater(t, axialFraction(h, 0.3), 1.0)
	})
}

// ---------------------------------------------------------------------------
// smootherstep / endEffect
// ---------------------------------------------------------------------------

func TestSmootherstep(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, smootherstep(-0.5))
	assert.Equal(t, 0.0, smootherstep(0))
	assert.Equal(t, 1.0, smootherstep(1))
	assert.Equal(t, 1.0, smootherstep(7))
	assert.InDelta(t, 0.5, smootherstep(0.5), 1e-12)
	assert.InDelta(t, 0.103515625, smootherstep(0.25), 1e-12)

	// Monotone on the ramp.
	prev := 0.0
	for _, x := range []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9} {
		s := smootherstep(x)
		assert.Greater(t, s, prev)
		prev = s
	}
}

func TestEndEffect(t *testing.T) {
	t.Parallel()

	t.Run("zero dead length is the identity", func(t *testing.T) {
		t.Parallel()
		for _, ty := range []float64{0, 0.001, 0.5, 0.999, 1} {
			assert.Equal(t, 1.0, endEffect(ty, 0, 0.3))
			assert.Equal(t, 1.0, endEffect(ty, -0.01, 0.3))
		}
	})

	t.Run("full sensitivity away from the ends", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 1.0, endEffect(0.5, 0.03, 0.3), 1e-12)
	})

	t.Run("zero at the very ends", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.0, endEffect(0, 0.03, 0.3), 1e-12)
		assert.InDelta(t, 0.0, endEffect(1, 0.03, 0.3), 1e-12)
	})

	t.Run("half sensitivity half a dead length in", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.5, endEffect(0.05, 0.03, 0.3), 1e-12)
	})

	t.Run("symmetric about the center", func(t *testing.T) {
		t.Parallel()
		for _, ty := range []float64{0.01, 0.05, 0.08, 0.2} {
			assert.InDelta(t, endEffect(ty, 0.03, 0.3), endEffect(1-ty, 0.03, 0.3), 1e-12)
		}
	})
}
