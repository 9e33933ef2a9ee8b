package triplet

import "fmt"

// ErrMissingUserVar represents a detector output slot that does not exist on
// the neutron user-variable schema. Raised once, at setup, before tracing.
type ErrMissingUserVar struct {
	Detector string
	Slot     string
}

func (e *ErrMissingUserVar) Error() string {
	return fmt.Sprintf("detector %q: user variable %q not declared on the neutron schema", e.Detector, e.Slot)
}

// ErrBadGeometry represents an assembly parameter that cannot describe a
// physical tube triplet.
type ErrBadGeometry struct {
	Detector string
	Reason   string
}

func (e *ErrBadGeometry) Error() string {
	return fmt.Sprintf("detector %q: bad geometry: %s", e.Detector, e.Reason)
}

// ErrBadPulseRange represents a quantized divider configured with an empty
// pulse-height interval.
type ErrBadPulseRange struct {
	Detector  string
	Threshold int
	Levels    int
}

func (e *ErrBadPulseRange) Error() string {
	return fmt.Sprintf("detector %q: pulse threshold %d must be below levels %d", e.Detector, e.Threshold, e.Levels)
}

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}
