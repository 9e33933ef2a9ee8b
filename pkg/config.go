package triplet

import (
	"encoding/json"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type Configuration struct {
	NEvents          int            `json:"nevents"`
	Verbosity        int            `json:"verbosity"`
	Seed             int64          `json:"seed"`
	RunNumber        int            `json:"run_number"`
	NumWorkers       int            `json:"num_workers"`
	FileOut          string         `json:"file_out"`
	MonitorFile      string         `json:"monitor_file"`
	WireframeFile    string         `json:"wireframe_file"`
	WriteData        bool           `json:"write_data"`
	NoDB             bool           `json:"no_db"`
	Host             string         `json:"host"`
	User             string         `json:"user"`
	Passwd           string         `json:"pass"`
	DBName           string         `json:"dbname"`
	UseBlosc         bool           `json:"use_blosc"`
	CompressionLevel int            `json:"compression_level"`
	BloscAlgorithm   BloscAlgorithm `json:"blosc_algorithm"`
	BloscShuffle     BloscShuffle   `json:"blosc_shuffle"`
	UserVars         []string       `json:"user_vars"`
	Source           SourceConfig   `json:"source"`
	Detector         DetectorConfig `json:"detector"`
}

// SourceConfig describes the rectangular neutron source patch and the
// focusing window on the detector plane.
type SourceConfig struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Distance     float64 `json:"distance"`
	TargetWidth  float64 `json:"target_width"`
	TargetHeight float64 `json:"target_height"`
	Lambda0      float64 `json:"lambda0"`
	DLambda      float64 `json:"dlambda"`
}

// DetectorConfig is the full parameter surface of one triplet detector.
// The aggregate Length/Radius/Resistance/Resistivity values override the
// corresponding per-tube values for all three tubes when set > 0.
type DetectorConfig struct {
	Name           string          `json:"name"`
	Channels       int             `json:"nchan"`
	Ordering       OrderingPolicy  `json:"ordering"`
	Orientation    OrientationMode `json:"orientation"`
	ChargeModel    ChargeModel     `json:"charge_model"`
	PulseThreshold int             `json:"pulse_threshold"`
	PulseLevels    int             `json:"pulse_levels"`
	Tubes          [3]TubeConfig   `json:"tubes"`
	ConnR          [2]float64      `json:"connector_resistance"`
	LeadR          [2]float64      `json:"lead_resistance"`
	Length         float64         `json:"length"`
	Radius         float64         `json:"radius"`
	Resistance     float64         `json:"resistance"`
	Resistivity    float64         `json:"resistivity"`
	RestoreNeutron bool            `json:"restore_neutron"`
	LeftVar        string          `json:"left_var"`
	RightVar       string          `json:"right_var"`
	TimeVar        string          `json:"time_var"`
}

// TubeConfig holds one tube's geometry and electrical parameters. Tilt
// angles are degrees; offsets and endpoints are meters in the assembly
// frame of the middle tube.
type TubeConfig struct {
	Length      float64    `json:"length"`
	Radius      float64    `json:"radius"`
	Resistivity float64    `json:"resistivity"`
	Pressure    float64    `json:"pressure"`
	DeadLength  float64    `json:"dead_length"`
	TiltX       float64    `json:"tilt_x"`
	TiltZ       float64    `json:"tilt_z"`
	Offset      [3]float64 `json:"offset"`
	Endpoint    [3]float64 `json:"endpoint"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

type OrderingPolicy struct {
	Name string
	Code OrderingCode
}

type OrderingCode int

const (
	OrderShortcut OrderingCode = iota
	OrderStrict
)

var orderingStrings = []string{
	"shortcut",
	"strict",
}

func (o OrderingPolicy) String() string {
	if o.Code < OrderShortcut || o.Code > OrderStrict {
		return "UNKNOWN"
	}
	return orderingStrings[o.Code]
}

func (o OrderingPolicy) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *OrderingPolicy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range orderingStrings {
		if v == s {
			*o = OrderingPolicy{Name: s, Code: OrderingCode(i)}
			return nil
		}
	}
	return fmt.Errorf("invalid OrderingPolicy: %s", s)
}

type OrientationMode struct {
	Name string
	Code OrientationCode
}

type OrientationCode int

const (
	OrientAngles OrientationCode = iota
	OrientEndpoints
)

var orientationStrings = []string{
	"angles",
	"endpoints",
}

func (o OrientationMode) String() string {
	if o.Code < OrientAngles || o.Code > OrientEndpoints {
		return "UNKNOWN"
	}
	return orientationStrings[o.Code]
}

func (o OrientationMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *OrientationMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range orientationStrings {
		if v == s {
			*o = OrientationMode{Name: s, Code: OrientationCode(i)}
			return nil
		}
	}
	return fmt.Errorf("invalid OrientationMode: %s", s)
}

type ChargeModel struct {
	Name string
	Code ChargeCode
}

type ChargeCode int

const (
	ChargeContinuous ChargeCode = iota
	ChargeQuantized
)

var chargeModelStrings = []string{
	"continuous",
	"quantized",
}

func (c ChargeModel) String() string {
	if c.Code < ChargeContinuous || c.Code > ChargeQuantized {
		return "UNKNOWN"
	}
	return chargeModelStrings[c.Code]
}

func (c ChargeModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ChargeModel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range chargeModelStrings {
		if v == s {
			*c = ChargeModel{Name: s, Code: ChargeCode(i)}
			return nil
		}
	}
	return fmt.Errorf("invalid ChargeModel: %s", s)
}

type BloscAlgorithm struct {
	Name string
	Code hdf5.BloscFilter
}

const (
	BLOSC_BLOSCLZ = hdf5.BLOSC_BLOSCLZ
	BLOSC_LZ4     = hdf5.BLOSC_LZ4
	BLOSC_LZ4HC   = hdf5.BLOSC_LZ4HC
	BLOSC_SNAPPY  = hdf5.BLOSC_SNAPPY
	BLOSC_ZLIB    = hdf5.BLOSC_ZLIB
	BLOSC_ZSTD    = hdf5.BLOSC_ZSTD
)

var bloscAlgorithmStrings = []string{
	"blosclz",
	"lz4",
	"lz4hc",
	"snappy",
	"zlib",
	"zstd",
}

func (b BloscAlgorithm) String() string {
	if b.Code < BLOSC_BLOSCLZ || b.Code > BLOSC_ZSTD {
		return "UNKNOWN"
	}
	return bloscAlgorithmStrings[b.Code]
}

func (b BloscAlgorithm) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BloscAlgorithm) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range bloscAlgorithmStrings {
		if v == s {
			*b = BloscAlgorithm{Name: s, Code: hdf5.BloscFilter(i)}
			return nil
		}
	}
	return fmt.Errorf("invalid BloscAlgorithm: %s", s)
}

type BloscShuffle struct {
	Name string
	Code hdf5.BloscShuffle
}

const (
	BLOSC_NOSHUFFLE  = hdf5.BLOSC_NOSHUFFLE
	BLOSC_SHUFFLE    = hdf5.BLOSC_SHUFFLE
	BLOSC_BITSHUFFLE = hdf5.BLOSC_BITSHUFFLE
)

var bloscShuffleStrings = []string{
	"no-shuffle",
	"byte-shuffle",
	"bit-shuffle",
}

func (b BloscShuffle) String() string {
	if b.Code < BLOSC_NOSHUFFLE || b.Code > BLOSC_BITSHUFFLE {
		return "UNKNOWN"
	}
	return bloscShuffleStrings[b.Code]
}

func (b BloscShuffle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *BloscShuffle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range bloscShuffleStrings {
		if v == s {
			*b = BloscShuffle{Name: s, Code: hdf5.BloscShuffle(i)}
			return nil
		}
	}
	return fmt.Errorf("invalid BloscShuffle: %s", s)
}
