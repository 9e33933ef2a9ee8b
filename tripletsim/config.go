package main

import (
	"encoding/json"
	"fmt"
	"os"

	triplet "github.com/neutron-exp/tripletsim_go/pkg"
)

func LoadConfiguration(filename string) (triplet.Configuration, error) {
	var config triplet.Configuration

	// Set default values
	config.NEvents = 1000000
	config.Verbosity = 0
	config.Seed = 1234
	config.RunNumber = 0
	config.NumWorkers = 1
	config.FileOut = "triplet.h5"
	config.MonitorFile = "triplet.dat"
	config.WireframeFile = ""
	config.WriteData = true
	config.NoDB = true
	config.Host = "localhost"
	config.User = "tripletreader"
	config.Passwd = "readonly"
	config.DBName = "TRIPLETDB"
	config.UseBlosc = false
	config.CompressionLevel = 4
	config.UserVars = []string{"psd_left", "psd_right", "psd_time"}

	config.Source.Width = 0.02
	config.Source.Height = 0.10
	config.Source.Distance = 2.0
	config.Source.TargetWidth = 0.09
	config.Source.TargetHeight = 0.28
	config.Source.Lambda0 = 4.0
	config.Source.DLambda = 0.2

	config.Detector.Name = "triplet0"
	config.Detector.Channels = 300
	config.Detector.Ordering = triplet.OrderingPolicy{Name: "shortcut", Code: triplet.OrderShortcut}
	config.Detector.Orientation = triplet.OrientationMode{Name: "angles", Code: triplet.OrientAngles}
	config.Detector.ChargeModel = triplet.ChargeModel{Name: "continuous", Code: triplet.ChargeContinuous}
	config.Detector.PulseThreshold = 100
	config.Detector.PulseLevels = 1024
	for i := range config.Detector.Tubes {
		config.Detector.Tubes[i].Length = 0.3
		config.Detector.Tubes[i].Radius = 0.0127
		config.Detector.Tubes[i].Resistivity = 366.0
		config.Detector.Tubes[i].Pressure = 6.0
		config.Detector.Tubes[i].DeadLength = 0.012
	}
	config.Detector.Tubes[0].Offset = [3]float64{-0.028, 0, 0}
	config.Detector.Tubes[2].Offset = [3]float64{0.028, 0, 0}
	config.Detector.ConnR = [2]float64{0.5, 0.5}
	config.Detector.LeadR = [2]float64{1.0, 1.0}
	config.Detector.RestoreNeutron = false
	config.Detector.LeftVar = "psd_left"
	config.Detector.RightVar = "psd_right"
	config.Detector.TimeVar = "psd_time"

	// Every parameter has a default, so the simulation runs without a file.
	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config triplet.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Monitor file: %s", config.MonitorFile), "config")
	logger.Info(fmt.Sprintf("Wireframe file: %s", config.WireframeFile), "config")
	logger.Info(fmt.Sprintf("Events: %d", config.NEvents), "config")
	logger.Info(fmt.Sprintf("Seed: %d", config.Seed), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Use blosc: %t", config.UseBlosc), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("User variables: %v", config.UserVars), "config")
	logger.Info(fmt.Sprintf("Source: %g x %g m at %g m, window %g x %g m", config.Source.Width,
		config.Source.Height, config.Source.Distance, config.Source.TargetWidth, config.Source.TargetHeight), "config")
	logger.Info(fmt.Sprintf("Wavelength: %g +- %g AA", config.Source.Lambda0, config.Source.DLambda), "config")
	logger.Info(fmt.Sprintf("Detector: %s", config.Detector.Name), "config")
	logger.Info(fmt.Sprintf("Channels: %d", config.Detector.Channels), "config")
	logger.Info(fmt.Sprintf("Ordering: %s", config.Detector.Ordering), "config")
	logger.Info(fmt.Sprintf("Orientation: %s", config.Detector.Orientation), "config")
	logger.Info(fmt.Sprintf("Charge model: %s", config.Detector.ChargeModel), "config")
	logger.Info(fmt.Sprintf("Pulse threshold: %d", config.Detector.PulseThreshold), "config")
	logger.Info(fmt.Sprintf("Pulse levels: %d", config.Detector.PulseLevels), "config")
	for i, tube := range config.Detector.Tubes {
		logger.Info(fmt.Sprintf("Tube %d: length %g m, radius %g m, resistivity %g ohm/m, pressure %g atm, dead length %g m",
			i, tube.Length, tube.Radius, tube.Resistivity, tube.Pressure, tube.DeadLength), "config")
	}
	logger.Info(fmt.Sprintf("Connector resistance: %v ohm", config.Detector.ConnR), "config")
	logger.Info(fmt.Sprintf("Lead resistance: %v ohm", config.Detector.LeadR), "config")
	logger.Info(fmt.Sprintf("Restore neutron: %t", config.Detector.RestoreNeutron), "config")
}
