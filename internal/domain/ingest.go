package domain

import "time"

// FetchSummary holds statistics about one ingestion cycle.
type FetchSummary struct {
	Skipped          bool          `json:"skipped,omitempty"`
	SourcesProcessed int           `json:"sourcesProcessed"`
	NewEntries       int           `json:"newEntries"`
	SuccessCount     int           `json:"successCount"`
	ErrorCount       int           `json:"errorCount"`
	Duration         time.Duration `json:"durationNs"`
}

// SourceResult is the outcome of fetching a single source.
type SourceResult struct {
	SourceID      int64  `json:"sourceId"`
	Success       bool   `json:"success"`
	NewEntryCount int    `json:"newEntryCount"`
	Trimmed       int64  `json:"trimmed,omitempty"`
	Err           error  `json:"-"`
	Error         string `json:"error,omitempty"`
}
