package models

import "fjacquet/spendlens/internal/logging"

// IngestStats counts what happened to the records of one ingestion batch.
type IngestStats struct {
	Records    int // records handed to the normalizer
	Accepted   int // transactions produced
	Rejected   int // records dropped for missing date or amount
	Overridden int // categories taken from the override map
	Other      int // transactions that fell through to "Other"
}

// AcceptanceRate returns the share of accepted records as a percentage.
func (s IngestStats) AcceptanceRate() float64 {
	if s.Records == 0 {
		return 0.0
	}
	return float64(s.Accepted) / float64(s.Records) * 100.0
}

// LogSummary logs the counters at info level.
func (s IngestStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}
	logger.Info("Ingestion summary",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: "records", Value: s.Records},
		logging.Field{Key: "accepted", Value: s.Accepted},
		logging.Field{Key: logging.FieldRejected, Value: s.Rejected},
		logging.Field{Key: "overridden", Value: s.Overridden},
		logging.Field{Key: "other", Value: s.Other},
		logging.Field{Key: "acceptance_rate", Value: s.AcceptanceRate()},
	)
}
