package triplet

import (
	"encoding/json"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// Circle is one wireframe circle: center, tube-axis direction and radius in
// assembly coordinates.
type Circle struct {
	Center [3]float64 `json:"center"`
	Axis   [3]float64 `json:"axis"`
	Radius float64    `json:"radius"`
}

// Line is one wireframe segment between two assembly-frame points.
type Line struct {
	From [3]float64 `json:"from"`
	To   [3]float64 `json:"to"`
}

// Wireframe is the drawable outline of a tube assembly. Rendering is left
// to an external viewer; this package only emits the primitives.
type Wireframe struct {
	Circles []Circle `json:"circles"`
	Lines   []Line   `json:"lines"`
}

// Wireframe outlines the three tubes: two end circles and four
// axis-parallel edges per tube, all mapped to assembly coordinates.
func (a *Assembly) Wireframe() Wireframe {
	var w Wireframe
	for i := range a.Tubes {
		t := &a.Tubes[i]
		half := t.Length / 2
		axis := t.Frame.DirToGlobal(r3.Vec{Y: 1})
		for _, y := range [2]float64{-half, half} {
			w.Circles = append(w.Circles, Circle{
				Center: vecToArray(t.Frame.PointToGlobal(r3.Vec{Y: y})),
				Axis:   vecToArray(axis),
				Radius: t.Radius,
			})
		}
		for _, e := range [4]r3.Vec{{X: t.Radius}, {X: -t.Radius}, {Z: t.Radius}, {Z: -t.Radius}} {
			w.Lines = append(w.Lines, Line{
				From: vecToArray(t.Frame.PointToGlobal(r3.Vec{X: e.X, Y: -half, Z: e.Z})),
				To:   vecToArray(t.Frame.PointToGlobal(r3.Vec{X: e.X, Y: half, Z: e.Z})),
			})
		}
	}
	return w
}

// WriteFile serializes the wireframe to an indented JSON file.
func (w Wireframe) WriteFile(filename string) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return &ErrOpenFile{Filename: filename, Err: err}
	}
	return nil
}

func vecToArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
