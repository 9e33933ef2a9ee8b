package triplet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// String-coded enums
// ---------------------------------------------------------------------------

func TestOrderingPolicyJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(OrderingPolicy{Name: "strict", Code: OrderStrict})
	require.NoError(t, err)
	assert.Equal(t, `"strict"`, string(data))

	var o OrderingPolicy
	require.NoError(t, json.Unmarshal([]byte(`"shortcut"`), &o))
	assert.Equal(t, OrderShortcut, o.Code)
	assert.Equal(t, "shortcut", o.Name)

	err = json.Unmarshal([]byte(`"sideways"`), &o)
	assert.ErrorContains(t, err, "invalid OrderingPolicy")
}

func TestOrientationModeJSON(t *testing.T) {
	t.Parallel()

	var o OrientationMode
	require.NoError(t, json.Unmarshal([]byte(`"endpoints"`), &o))
	assert.Equal(t, OrientEndpoints, o.Code)

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `"endpoints"`, string(data))

	err = json.Unmarshal([]byte(`"euler"`), &o)
	assert.ErrorContains(t, err, "invalid OrientationMode")
}

func TestChargeModelJSON(t *testing.T) {
	t.Parallel()

	var c ChargeModel
	require.NoError(t, json.Unmarshal([]byte(`"quantized"`), &c))
	assert.Equal(t, ChargeQuantized, c.Code)

	err := json.Unmarshal([]byte(`"analog"`), &c)
	assert.ErrorContains(t, err, "invalid ChargeModel")
}

func TestEnumZeroValues(t *testing.T) {
	t.Parallel()
	// A configuration that never mentions the enums gets the shortcut
	// traversal, angle orientation and continuous charge model.
	var cfg DetectorConfig
	require.NoError(t, json.Unmarshal([]byte(`{"nchan": 128}`), &cfg))
	assert.Equal(t, 128, cfg.Channels)
	assert.Equal(t, OrderShortcut, cfg.Ordering.Code)
	assert.Equal(t, OrientAngles, cfg.Orientation.Code)
	assert.Equal(t, ChargeContinuous, cfg.ChargeModel.Code)
}

// ---------------------------------------------------------------------------
// DetectorConfig
// ---------------------------------------------------------------------------

func TestDetectorConfigJSON(t *testing.T) {
	t.Parallel()
	doc := `{
		"name": "bank3",
		"nchan": 384,
		"ordering": "strict",
		"orientation": "endpoints",
		"charge_model": "quantized",
		"pulse_threshold": 200,
		"pulse_levels": 2048,
		"tubes": [
			{"length": 0.25, "radius": 0.0127, "resistivity": 366, "pressure": 10, "dead_length": 0.008,
			 "offset": [-0.028, 0, 0], "endpoint": [0, 0.25, 0]},
			{"length": 0.25, "radius": 0.0127, "resistivity": 366, "pressure": 10, "dead_length": 0.008,
			 "endpoint": [0, 0.25, 0]},
			{"length": 0.25, "radius": 0.0127, "resistivity": 366, "pressure": 10, "dead_length": 0.008,
			 "offset": [0.028, 0, 0], "endpoint": [0, 0.25, 0]}
		],
		"connector_resistance": [0.4, 0.6],
		"lead_resistance": [1.2, 1.3],
		"resistance": 91.5,
		"restore_neutron": true,
		"left_var": "l",
		"right_var": "r",
		"time_var": "t"
	}`

	var cfg DetectorConfig
	require.NoError(t, json.Unmarshal([]byte(doc), &cfg))

	assert.Equal(t, "bank3", cfg.Name)
	assert.Equal(t, 384, cfg.Channels)
	assert.Equal(t, OrderStrict, cfg.Ordering.Code)
	assert.Equal(t, OrientEndpoints, cfg.Orientation.Code)
	assert.Equal(t, ChargeQuantized, cfg.ChargeModel.Code)
	assert.Equal(t, 200, cfg.PulseThreshold)
	assert.Equal(t, 2048, cfg.PulseLevels)
	assert.Equal(t, [2]float64{0.4, 0.6}, cfg.ConnR)
	assert.Equal(t, [2]float64{1.2, 1.3}, cfg.LeadR)
	assert.Equal(t, 91.5, cfg.Resistance)
	assert.True(t, cfg.RestoreNeutron)
	assert.Equal(t, "l", cfg.LeftVar)

	assert.Equal(t, 0.25, cfg.Tubes[1].Length)
	assert.Equal(t, 10.0, cfg.Tubes[2].Pressure)
	assert.Equal(t, [3]float64{-0.028, 0, 0}, cfg.Tubes[0].Offset)
	assert.Equal(t, [3]float64{0, 0.25, 0}, cfg.Tubes[1].Endpoint)

	// And the whole thing survives a marshal/unmarshal cycle.
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	var back DetectorConfig
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}

func TestConfigurationJSON(t *testing.T) {
	t.Parallel()
	doc := `{
		"nevents": 500000,
		"seed": 77,
		"num_workers": 4,
		"user_vars": ["psd_left", "psd_right", "psd_time"],
		"source": {"width": 0.02, "height": 0.1, "distance": 2, "lambda0": 4, "dlambda": 0.2},
		"detector": {"name": "triplet0", "nchan": 300}
	}`

	var cfg Configuration
	require.NoError(t, json.Unmarshal([]byte(doc), &cfg))
	assert.Equal(t, 500000, cfg.NEvents)
	assert.Equal(t, int64(77), cfg.Seed)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, []string{"psd_left", "psd_right", "psd_time"}, cfg.UserVars)
	assert.Equal(t, 2.0, cfg.Source.Distance)
	assert.Equal(t, "triplet0", cfg.Detector.Name)
	assert.Equal(t, 300, cfg.Detector.Channels)
}
