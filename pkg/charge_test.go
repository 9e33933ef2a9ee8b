package triplet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand replays a fixed sequence of uniforms, wrapping around.
type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// ---------------------------------------------------------------------------
// continuous divider
// ---------------------------------------------------------------------------

func TestContinuousDivider(t *testing.T) {
	t.Parallel()
	asm, err := NewAssembly(testDetectorConfig())
	require.NoError(t, err)
	divider, err := newChargeDivider(testDetectorConfig(), asm, nil)
	require.NoError(t, err)

	t.Run("sums to the total resistance everywhere", func(t *testing.T) {
		t.Parallel()
		for tube := 0; tube < 3; tube++ {
			for _, ty := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
				left, right := divider.Divide(tube, ty)
				assert.InDelta(t, asm.TotalResistance, left+right, 1e-9)
			}
		}
	})

	t.Run("known splits", func(t *testing.T) {
		t.Parallel()
		left, right := divider.Divide(0, 0)
		assert.InDelta(t, 1.0, right, 1e-12) // just the right lead
		assert.InDelta(t, 362.0, left, 1e-12)

		left, right = divider.Divide(1, 0.5)
		assert.InDelta(t, 181.5, right, 1e-12)
		assert.InDelta(t, 181.5, left, 1e-12)

		left, right = divider.Divide(2, 1)
		assert.InDelta(t, 362.0, right, 1e-12)
		assert.InDelta(t, 1.0, left, 1e-12)
	})

	t.Run("right signal grows along the wire", func(t *testing.T) {
		t.Parallel()
		prev := -1.0
		for tube := 0; tube < 3; tube++ {
			for _, ty := range []float64{0, 0.5, 1} {
				_, right := divider.Divide(tube, ty)
				assert.Greater(t, right, prev)
				prev = right
			}
		}
	})
}

// ---------------------------------------------------------------------------
// quantized divider
// ---------------------------------------------------------------------------

func quantizedConfig() DetectorConfig {
	cfg := testDetectorConfig()
	cfg.ChargeModel = ChargeModel{Name: "quantized", Code: ChargeQuantized}
	cfg.PulseThreshold = 100
	cfg.PulseLevels = 1024
	return cfg
}

func TestQuantizedDivider(t *testing.T) {
	t.Parallel()

	t.Run("threshold pulse splits in integers", func(t *testing.T) {
		t.Parallel()
		cfg := quantizedConfig()
		asm, err := NewAssembly(cfg)
		require.NoError(t, err)
		divider, err := newChargeDivider(cfg, asm, &seqRand{vals: []float64{0}})
		require.NoError(t, err)

		left, right := divider.Divide(1, 0.5)
		assert.InDelta(t, 50.0, right, 1e-12)
		assert.InDelta(t, 50.0, left, 1e-12)
	})

	t.Run("odd pulse height still splits exactly", func(t *testing.T) {
		t.Parallel()
		cfg := quantizedConfig()
		asm, err := NewAssembly(cfg)
		require.NoError(t, err)
		// u*(1024-100) = 1.5, so the drawn height is 101.
		divider, err := newChargeDivider(cfg, asm, &seqRand{vals: []float64{1.5 / 924.0}})
		require.NoError(t, err)

		left, right := divider.Divide(1, 0.5)
		assert.InDelta(t, 50.0, right, 1e-12)
		assert.InDelta(t, 51.0, left, 1e-12)
	})

	t.Run("integer charge conservation across the range", func(t *testing.T) {
		t.Parallel()
		cfg := quantizedConfig()
		asm, err := NewAssembly(cfg)
		require.NoError(t, err)
		rnd := &seqRand{vals: []float64{0, 0.25, 0.5, 0.75, 0.9999}}
		divider, err := newChargeDivider(cfg, asm, rnd)
		require.NoError(t, err)

		for tube := 0; tube < 3; tube++ {
			for _, ty := range []float64{0, 0.3, 0.5, 0.8, 1} {
				left, right := divider.Divide(tube, ty)
				assert.Equal(t, math.Trunc(left), left)
				assert.Equal(t, math.Trunc(right), right)
				assert.GreaterOrEqual(t, left, 0.0)
				assert.GreaterOrEqual(t, right, 0.0)
				sum := left + right
				assert.GreaterOrEqual(t, sum, 100.0)
				assert.Less(t, sum, 1024.0)
			}
		}
	})

	t.Run("near the right terminal almost everything is right", func(t *testing.T) {
		t.Parallel()
		cfg := quantizedConfig()
		asm, err := NewAssembly(cfg)
		require.NoError(t, err)
		divider, err := newChargeDivider(cfg, asm, &seqRand{vals: []float64{0}})
		require.NoError(t, err)

		left, right := divider.Divide(0, 0)
		// ratio 1/363 of a height-100 pulse truncates to zero.
		assert.InDelta(t, 0.0, right, 1e-12)
		assert.InDelta(t, 100.0, left, 1e-12)
	})
}

func TestQuantizedDividerBadRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		threshold int
		levels    int
	}{
		{"negative threshold", -1, 1024},
		{"levels at threshold", 100, 100},
		{"levels below threshold", 100, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := quantizedConfig()
			cfg.PulseThreshold = tc.threshold
			cfg.PulseLevels = tc.levels
			asm, err := NewAssembly(cfg)
			require.NoError(t, err)

			_, err = newChargeDivider(cfg, asm, &seqRand{vals: []float64{0}})
			var bad *ErrBadPulseRange
			require.ErrorAs(t, err, &bad)
			assert.Equal(t, tc.threshold, bad.Threshold)
			assert.Equal(t, tc.levels, bad.Levels)
		})
	}
}
