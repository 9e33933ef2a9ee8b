package triplet

import (
	"math"
	"sync/atomic"
)

// Histogram accumulates per-channel detection statistics: event count,
// summed ray weight and summed squared weight. Updates are lock-free atomic
// adds so rays may be traced from any number of goroutines. Summation order
// across rays is not fixed, so float totals reproduce only within epsilon.
type Histogram struct {
	channels int
	band     int
	counts   []uint64
	weights  []uint64 // float64 bit patterns
	squares  []uint64 // float64 bit patterns
}

// NewHistogram allocates a zeroed histogram with the given channel count.
// The channel space splits into three equal bands of channels/3 bins, one
// per tube in wiring order.
func NewHistogram(channels int) *Histogram {
	return &Histogram{
		channels: channels,
		band:     channels / 3,
		counts:   make([]uint64, channels),
		weights:  make([]uint64, channels),
		squares:  make([]uint64, channels),
	}
}

// Channels returns the configured channel count.
func (h *Histogram) Channels() int {
	return h.channels
}

// Channel maps a tube index and fractional axial position to a channel:
// the in-band bin floor(band*ty) offset by the tube's own band.
func (h *Histogram) Channel(tube int, ty float64) int {
	return int(float64(h.band)*ty) + tube*h.band
}

// AddHit records one detection with statistical weight w in the given
// channel. Out-of-range channels are skipped silently, never fatal.
func (h *Histogram) AddHit(channel int, w float64) {
	if channel < 0 || channel >= h.channels {
		return
	}
	atomic.AddUint64(&h.counts[channel], 1)
	atomicAddFloat64(&h.weights[channel], w)
	atomicAddFloat64(&h.squares[channel], w*w)
}

// atomicAddFloat64 adds v to the float64 stored in cell as bits, retrying
// the compare-and-swap until no concurrent writer interferes.
func atomicAddFloat64(cell *uint64, v float64) {
	for {
		old := atomic.LoadUint64(cell)
		next := math.Float64bits(math.Float64frombits(old) + v)
		if atomic.CompareAndSwapUint64(cell, old, next) {
			return
		}
	}
}

// Counts returns a copy of the per-channel event counts.
func (h *Histogram) Counts() []uint64 {
	out := make([]uint64, h.channels)
	for i := range h.counts {
		out[i] = atomic.LoadUint64(&h.counts[i])
	}
	return out
}

// Weights returns a copy of the per-channel weight sums.
func (h *Histogram) Weights() []float64 {
	out := make([]float64, h.channels)
	for i := range h.weights {
		out[i] = math.Float64frombits(atomic.LoadUint64(&h.weights[i]))
	}
	return out
}

// SquaredWeights returns a copy of the per-channel squared-weight sums.
func (h *Histogram) SquaredWeights() []float64 {
	out := make([]float64, h.channels)
	for i := range h.squares {
		out[i] = math.Float64frombits(atomic.LoadUint64(&h.squares[i]))
	}
	return out
}
