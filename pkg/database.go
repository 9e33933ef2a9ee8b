package triplet

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

// TubeCalibrationEntry is one row of the TubeCalibration table: measured
// electrical and gas parameters of a tube, valid for a run-number interval.
type TubeCalibrationEntry struct {
	TubeID      int     `db:"TubeID"`
	Resistivity float64 `db:"Resistivity"`
	Pressure    float64 `db:"Pressure"`
	DeadLength  float64 `db:"DeadLength"`
}

// LoadCalibration overwrites the per-tube resistivity, pressure and dead
// length in cfg with the calibration rows valid for the given run number.
// Tubes without a row keep their configured values.
func LoadCalibration(dbConn *sqlx.DB, runNumber int, cfg *DetectorConfig) error {
	entries, err := getTubeCalibrationFromDB(dbConn, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting tube calibration from database: %w", err)
		logger.Error(errMessage.Error())
		return errMessage
	}
	for _, entry := range entries {
		if entry.TubeID < 0 || entry.TubeID >= len(cfg.Tubes) {
			if configuration.Verbosity > 0 {
				message := fmt.Sprintf("Ignoring calibration row for unknown tube %d", entry.TubeID)
				logger.Info(message, "database")
			}
			continue
		}
		cfg.Tubes[entry.TubeID].Resistivity = entry.Resistivity
		cfg.Tubes[entry.TubeID].Pressure = entry.Pressure
		cfg.Tubes[entry.TubeID].DeadLength = entry.DeadLength
	}
	return nil
}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

func getTubeCalibrationFromDB(db *sqlx.DB, runNumber int) ([]TubeCalibrationEntry, error) {
	query := "SELECT TubeID, Resistivity, Pressure, DeadLength FROM TubeCalibration WHERE MinRun <= %d and MaxRun >= %d ORDER BY TubeID"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading tube calibration for run %d from database", runNumber)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}

	var entries []TubeCalibrationEntry
	for rows.Next() {
		result := TubeCalibrationEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		entries = append(entries, result)
	}
	return entries, nil
}
