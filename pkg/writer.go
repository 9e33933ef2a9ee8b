package triplet

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
	"golang.org/x/exp/maps"
)

// Writer persists one simulation run to HDF5: run info and parameters under
// /Run, the position histogram under /Monitor, the resolved assembly and its
// wireframe under /Geometry. Built at finalization, written once, single
// threaded.
type Writer struct {
	File           *hdf5.File
	Filename       string
	RunGroup       *hdf5.Group
	MonitorGroup   *hdf5.Group
	GeometryGroup  *hdf5.Group
	RunInfoTable   *hdf5.Dataset
	RunParamsTable *hdf5.Dataset
	UserVarsTable  *hdf5.Dataset
	MonitorMeta    *hdf5.Dataset
	CountsArray    *hdf5.Dataset
	WeightsArray   *hdf5.Dataset
	SquaresArray   *hdf5.Dataset
	TubesTable     *hdf5.Dataset
	CirclesTable   *hdf5.Dataset
	LinesTable     *hdf5.Dataset
}

// RunParams are the scalar run parameters written next to the run info.
// Fields are picked up by reflection over the hdf5 tags.
type RunParams struct {
	NEvents         float64 `hdf5:"nevents"`
	Seed            float64 `hdf5:"seed"`
	Channels        float64 `hdf5:"nchan"`
	TotalResistance float64 `hdf5:"total_resistance"`
	PulseThreshold  float64 `hdf5:"pulse_threshold"`
	PulseLevels     float64 `hdf5:"pulse_levels"`
}

func NewWriter(filename string, nChannels int) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	if configuration.UseBlosc {
		blosc_version, blosc_date, err := hdf5.RegisterBlosc()
		fmt.Println("Blosc version: ", blosc_version, " date: ", blosc_date)
		if err != nil {
			logger.Error(err.Error())
		}
	}

	writer := &Writer{}
	fmt.Println("hdf5writer: Creating file: ", filename)
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.MonitorGroup = createGroup(writer.File, "Monitor")
	writer.GeometryGroup = createGroup(writer.File, "Geometry")
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.RunParamsTable = createTable(writer.RunGroup, "parameters", RunParamsHDF5{})
	writer.UserVarsTable = createTable(writer.RunGroup, "userVars", UserVarHDF5{})
	writer.MonitorMeta = createTable(writer.MonitorGroup, "metadata", MonitorMetaHDF5{})
	writer.CountsArray = create1dArray(writer.MonitorGroup, "counts", nChannels, hdf5.T_NATIVE_UINT64)
	writer.WeightsArray = create1dArray(writer.MonitorGroup, "intensity", nChannels, hdf5.T_NATIVE_DOUBLE)
	writer.SquaresArray = create1dArray(writer.MonitorGroup, "intensity_sq", nChannels, hdf5.T_NATIVE_DOUBLE)
	writer.TubesTable = createTable(writer.GeometryGroup, "tubes", TubeInfoHDF5{})
	writer.CirclesTable = createTable(writer.GeometryGroup, "circles", WireframeCircleHDF5{})
	writer.LinesTable = createTable(writer.GeometryGroup, "lines", WireframeLineHDF5{})
	return writer
}

// WriteRun records the run number, the scalar parameters and the
// user-variable slot assignment.
func (w *Writer) WriteRun(runNumber int, params RunParams, schema UserVarSchema) {
	writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(runNumber)}, 0)
	w.writeRunParameters(params)
	w.writeUserVars(schema)
}

func (w *Writer) writeRunParameters(params RunParams) {
	t := reflect.TypeOf(params)
	n := t.NumField()
	entries := make([]RunParamsHDF5, n)

	fieldsToWrite := 0
	for i := 0; i < n; i++ {
		f := t.Field(i)
		paramName := f.Tag.Get("hdf5")
		if f.Type.Kind() != reflect.Float64 {
			continue
		}
		value := reflect.ValueOf(params).Field(i).Interface().(float64)
		entries[fieldsToWrite] = RunParamsHDF5{
			paramStr: convertToHdf5String(paramName),
			value:    value,
		}
		fieldsToWrite++
	}
	toWrite := entries[:fieldsToWrite]
	writeArrayToTable(w.RunParamsTable, &toWrite, 0)
}

func (w *Writer) writeUserVars(schema UserVarSchema) {
	slots := schema.Slots()
	names := maps.Keys(slots)
	sort.Slice(names, func(i, j int) bool {
		return slots[names[i]] < slots[names[j]]
	})

	// The array MUST be allocated at creation, if not, HDF5 will panic
	// doing appends will not work
	entries := make([]UserVarHDF5, len(names))
	for i, name := range names {
		entries[i] = UserVarHDF5{
			name: convertToHdf5String(name),
			slot: int32(slots[name]),
		}
	}
	writeArrayToTable(w.UserVarsTable, &entries, 0)
}

// WriteMonitor stores the histogram metadata and the three channel arrays.
func (w *Writer) WriteMonitor(m MonitorData) {
	writeEntryToTable(w.MonitorMeta, MonitorMetaHDF5{
		component: convertToHdf5String(m.Component),
		title:     convertToHdf5String(m.Title),
		xlabel:    convertToHdf5String(m.XLabel),
		ylabel:    convertToHdf5String(m.YLabel),
		xvar:      convertToHdf5String(m.XVar),
		xmin:      m.XMin,
		xmax:      m.XMax,
		nchan:     int32(len(m.Counts)),
	}, 0)

	counts := m.Counts
	weights := m.Weights
	squares := m.Squares
	writeArrayToTable(w.CountsArray, &counts, 0)
	writeArrayToTable(w.WeightsArray, &weights, 0)
	writeArrayToTable(w.SquaresArray, &squares, 0)
}

// WriteGeometry stores the resolved tubes and the wireframe primitives.
func (w *Writer) WriteGeometry(asm *Assembly) {
	tubes := make([]TubeInfoHDF5, len(asm.Tubes))
	for i, t := range asm.Tubes {
		tubes[i] = TubeInfoHDF5{
			tube:        int32(i),
			length:      t.Length,
			radius:      t.Radius,
			resistivity: t.Resistivity,
			pressure:    t.Pressure,
			dead_length: t.DeadLength,
		}
	}
	writeArrayToTable(w.TubesTable, &tubes, 0)

	wf := asm.Wireframe()
	circles := make([]WireframeCircleHDF5, len(wf.Circles))
	for i, c := range wf.Circles {
		circles[i] = WireframeCircleHDF5{
			cx: c.Center[0], cy: c.Center[1], cz: c.Center[2],
			ax: c.Axis[0], ay: c.Axis[1], az: c.Axis[2],
			radius: c.Radius,
		}
	}
	writeArrayToTable(w.CirclesTable, &circles, 0)

	lines := make([]WireframeLineHDF5, len(wf.Lines))
	for i, l := range wf.Lines {
		lines[i] = WireframeLineHDF5{
			x0: l.From[0], y0: l.From[1], z0: l.From[2],
			x1: l.To[0], y1: l.To[1], z1: l.To[2],
		}
	}
	writeArrayToTable(w.LinesTable, &lines, 0)
}

func (w *Writer) Close() error {
	fmt.Println("Closing file hdf writer ", w.Filename)
	var errs []error

	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.RunParamsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run params table: %w", err))
	}
	if err := w.UserVarsTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing user vars table: %w", err))
	}
	if err := w.MonitorMeta.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing monitor metadata table: %w", err))
	}
	if err := w.CountsArray.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing counts array: %w", err))
	}
	if err := w.WeightsArray.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing intensity array: %w", err))
	}
	if err := w.SquaresArray.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing squared intensity array: %w", err))
	}
	if err := w.TubesTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing tubes table: %w", err))
	}
	if err := w.CirclesTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing circles table: %w", err))
	}
	if err := w.LinesTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing lines table: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.MonitorGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing monitor group: %w", err))
	}
	if err := w.GeometryGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing geometry group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
