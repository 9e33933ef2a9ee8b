package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	triplet "github.com/neutron-exp/tripletsim_go/pkg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var dbConn *sqlx.DB
var configuration triplet.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	nEvents := flag.Int("n", 0, "Override number of rays to trace")
	seed := flag.Int64("seed", 0, "Override random seed")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *nEvents > 0 {
		configuration.NEvents = *nEvents
	}
	if *seed != 0 {
		configuration.Seed = *seed
	}
	triplet.SetConfiguration(configuration)
	triplet.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 && *configFilename != "" {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
	}
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	if !configuration.NoDB {
		dbConn, err = triplet.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connection to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()

		err = triplet.LoadCalibration(dbConn, configuration.RunNumber, &configuration.Detector)
		if err != nil {
			message := fmt.Errorf("Error loading tube calibration: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		triplet.SetConfiguration(configuration)
	}

	schema := triplet.NewUserVarSchema(configuration.UserVars)
	detector, err := triplet.NewDetector(configuration.Detector, schema, newLockedRand(configuration.Seed))
	if err != nil {
		message := fmt.Errorf("Error building detector: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}

	start := time.Now()
	jobs := make(chan WorkerData, 100)
	results := make(chan BatchResult, 100)

	numWorkers := configuration.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	for w := 1; w <= numWorkers; w++ {
		go worker(w, detector, schema, jobs, results)
	}
	go sendBatchesToWorkers(configuration.NEvents, jobs)

	nBatches := (configuration.NEvents + batchSize - 1) / batchSize
	emitted, detected := 0, 0
	var intensity float64
	for i := 0; i < nBatches; i++ {
		res := <-results
		emitted += res.Emitted
		detected += res.Detected
		intensity += res.Weight
		if res.Error {
			message := fmt.Sprintf("batch %d aborted after %d rays", res.Batch, res.Emitted)
			logger.Error(message)
		}
	}
	duration := time.Since(start)

	fmt.Println("Total rays traced: ", emitted)
	fmt.Printf("Total time: %d ms\n", duration.Milliseconds())

	printSummary(detector, detected, intensity)

	if configuration.MonitorFile != "" {
		if err := triplet.WriteDat(detector.MonitorOutput(), configuration.MonitorFile); err != nil {
			logger.Error(fmt.Sprintf("Error writing monitor file: %v", err))
		}
	}
	if configuration.WireframeFile != "" {
		wireframe := detector.Assembly().Wireframe()
		if err := wireframe.WriteFile(configuration.WireframeFile); err != nil {
			logger.Error(fmt.Sprintf("Error writing wireframe file: %v", err))
		}
	}
	if configuration.WriteData {
		writeHDF5(detector, schema)
	}
}

func printSummary(detector *triplet.Detector, detected int, intensity float64) {
	hist := detector.Histogram()
	weights := hist.Weights()
	centers := make([]float64, len(weights))
	for i := range centers {
		centers[i] = float64(i) + 0.5
	}
	message := fmt.Sprintf("Detected %d rays, integrated intensity %g", detected, intensity)
	logger.Info(message, "main")

	total := floats.Sum(weights)
	if total > 0 {
		mean := stat.Mean(centers, weights)
		sigma := math.Sqrt(stat.Variance(centers, weights))
		message = fmt.Sprintf("Histogram: sum %g, mean channel %.2f, sigma %.2f", total, mean, sigma)
		logger.Info(message, "main")
	}
}

func writeHDF5(detector *triplet.Detector, schema triplet.UserVarSchema) {
	writer := triplet.NewWriter(configuration.FileOut, detector.Histogram().Channels())
	params := triplet.RunParams{
		NEvents:         float64(configuration.NEvents),
		Seed:            float64(configuration.Seed),
		Channels:        float64(detector.Histogram().Channels()),
		TotalResistance: detector.Assembly().TotalResistance,
		PulseThreshold:  float64(configuration.Detector.PulseThreshold),
		PulseLevels:     float64(configuration.Detector.PulseLevels),
	}
	writer.WriteRun(configuration.RunNumber, params, schema)
	writer.WriteMonitor(detector.MonitorOutput())
	writer.WriteGeometry(detector.Assembly())
	if err := writer.Close(); err != nil {
		logger.Error(fmt.Sprintf("Error closing hdf5 file: %v", err))
	}
}
