package triplet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatRoundTrip(t *testing.T) {
	t.Parallel()
	m := MonitorData{
		Component: "triplet0",
		Title:     "PSD triplet position histogram",
		XLabel:    "Channel",
		YLabel:    "Intensity",
		XVar:      "ch",
		XMin:      0,
		XMax:      6,
		Counts:    []uint64{0, 1, 2, 3, 4, 5},
		Weights:   []float64{0, 0.5, 1.25, 2, 0.125, 3},
		Squares:   []float64{0, 0.25, 0.8, 1.5, 0.015625, 2.25},
	}

	filename := filepath.Join(t.TempDir(), "monitor.dat")
	require.NoError(t, WriteDat(m, filename))

	back, err := ReadDat(filename)
	require.NoError(t, err)

	assert.Equal(t, m.Component, back.Component)
	assert.Equal(t, m.Title, back.Title)
	assert.Equal(t, m.XLabel, back.XLabel)
	assert.Equal(t, m.YLabel, back.YLabel)
	assert.Equal(t, m.XVar, back.XVar)
	assert.Equal(t, m.XMin, back.XMin)
	assert.Equal(t, m.XMax, back.XMax)
	assert.Equal(t, m.Counts, back.Counts)

	require.Len(t, back.Weights, len(m.Weights))
	for i := range m.Weights {
		assert.InDelta(t, m.Weights[i], back.Weights[i], 1e-12)
	}
	// Squares pass through a sqrt on the way out and a square on the way
	// back, so only equality up to rounding survives.
	require.Len(t, back.Squares, len(m.Squares))
	for i := range m.Squares {
		assert.InDelta(t, m.Squares[i], back.Squares[i], 1e-12)
	}
}

func TestReadDatSkipsJunk(t *testing.T) {
	t.Parallel()
	filename := filepath.Join(t.TempDir(), "junk.dat")
	content := "# component: triplet0\n" +
		"# some stray remark without a colon\n" +
		"# unknown_key: whatever\n" +
		"\n" +
		"0.5 1.5 0.2 3\n" +
		"this row is not numbers\n" +
		"1.5 2.5 0.3 4\n"
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))

	m, err := ReadDat(filename)
	require.NoError(t, err)
	assert.Equal(t, "triplet0", m.Component)
	assert.Equal(t, []uint64{3, 4}, m.Counts)
	require.Len(t, m.Weights, 2)
	assert.InDelta(t, 1.5, m.Weights[0], 1e-12)
	assert.InDelta(t, 2.5, m.Weights[1], 1e-12)
}

func TestWriteDatBadPath(t *testing.T) {
	t.Parallel()
	err := WriteDat(MonitorData{Counts: []uint64{1}, Weights: []float64{1}, Squares: []float64{1}},
		filepath.Join(t.TempDir(), "missing", "monitor.dat"))
	var open *ErrOpenFile
	assert.ErrorAs(t, err, &open)
}

func TestReadDatMissingFile(t *testing.T) {
	t.Parallel()
	_, err := ReadDat(filepath.Join(t.TempDir(), "nope.dat"))
	var open *ErrOpenFile
	assert.ErrorAs(t, err, &open)
}

func TestMonitorOutput(t *testing.T) {
	t.Parallel()
	d, err := NewDetector(wiredConfig(), testSchema(), nil)
	require.NoError(t, err)

	m := d.MonitorOutput()
	assert.Equal(t, "triplet0", m.Component)
	assert.Equal(t, "ch", m.XVar)
	assert.Equal(t, 0.0, m.XMin)
	assert.Equal(t, 300.0, m.XMax)
	assert.Len(t, m.Counts, 300)
	assert.Len(t, m.Weights, 300)
	assert.Len(t, m.Squares, 300)
}
