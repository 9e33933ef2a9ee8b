package triplet

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// MonitorData is one exported position histogram: the labeling any writer
// needs plus the three parallel channel arrays.
type MonitorData struct {
	Component string
	Title     string
	XLabel    string
	YLabel    string
	XVar      string
	XMin      float64
	XMax      float64
	Counts    []uint64
	Weights   []float64
	Squares   []float64
}

// MonitorOutput assembles the export record for the detector histogram.
// Call it after tracing has finished.
func (d *Detector) MonitorOutput() MonitorData {
	return MonitorData{
		Component: d.name,
		Title:     "PSD triplet position histogram",
		XLabel:    "Channel",
		YLabel:    "Intensity",
		XVar:      "ch",
		XMin:      0,
		XMax:      float64(d.hist.Channels()),
		Counts:    d.hist.Counts(),
		Weights:   d.hist.Weights(),
		Squares:   d.hist.SquaredWeights(),
	}
}

// WriteDat writes the histogram in the plain-text monitor format: hash
// header lines followed by one row per channel holding bin center,
// intensity, error estimate and event count.
func WriteDat(m MonitorData, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# Date: %s\n", time.Now().Format(time.ANSIC))
	fmt.Fprintf(w, "# type: array_1d(%d)\n", len(m.Counts))
	fmt.Fprintf(w, "# component: %s\n", m.Component)
	fmt.Fprintf(w, "# title: %s\n", m.Title)
	fmt.Fprintf(w, "# xlabel: %s\n", m.XLabel)
	fmt.Fprintf(w, "# ylabel: %s\n", m.YLabel)
	fmt.Fprintf(w, "# xvar: %s\n", m.XVar)
	fmt.Fprintf(w, "# xlimits: %g %g\n", m.XMin, m.XMax)
	fmt.Fprintf(w, "# variables: %s I I_err N\n", m.XVar)
	width := (m.XMax - m.XMin) / float64(len(m.Counts))
	for i := range m.Counts {
		x := m.XMin + (float64(i)+0.5)*width
		fmt.Fprintf(w, "%g %g %g %d\n", x, m.Weights[i], math.Sqrt(m.Squares[i]), m.Counts[i])
	}
	return w.Flush()
}

// ReadDat parses a file written by WriteDat. Unknown header keys are
// ignored; malformed data rows are skipped.
func ReadDat(filename string) (MonitorData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return MonitorData{}, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	var m MonitorData
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, value, found := strings.Cut(strings.TrimPrefix(line, "#"), ":")
			if !found {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.TrimSpace(key) {
			case "component":
				m.Component = value
			case "title":
				m.Title = value
			case "xlabel":
				m.XLabel = value
			case "ylabel":
				m.YLabel = value
			case "xvar":
				m.XVar = value
			case "xlimits":
				fmt.Sscanf(value, "%g %g", &m.XMin, &m.XMax)
			}
			continue
		}
		var x, intensity, errEst float64
		var count uint64
		if _, err := fmt.Sscanf(line, "%g %g %g %d", &x, &intensity, &errEst, &count); err != nil {
			continue
		}
		m.Weights = append(m.Weights, intensity)
		m.Squares = append(m.Squares, errEst*errEst)
		m.Counts = append(m.Counts, count)
	}
	return m, scanner.Err()
}
