package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumDishes int           // Number of dishes to create
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	LogFile   string        // Optional log file, stdout only when empty
	Verbose   bool          // Log every request
}

// Report holds the counters of a smoke run.
type Report struct {
	Created   int
	Read      int
	Patched   int
	Listed    int
	Deleted   int
	Gone      int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// healthResponse mirrors GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}
