package config

import "time"

// WorkerConfig defines settings for the background reconciliation
// worker.  All values come from environment variables with defaults
// matching production behavior: sweep every minute, examine at most
// 25 requests per cycle, and only consider requests pending for ten
// minutes or more.
type WorkerConfig struct {
	Disabled   bool          // RECONCILER_DISABLED=1 turns the worker off
	Interval   time.Duration // time between sweep cycles
	BatchLimit int           // max stale requests examined per cycle
	StaleAfter time.Duration // pending age before a request counts as stale
}

// LoadWorkerConfig reads environment variables to build a
// WorkerConfig.  Defaults are used when variables are not set or are
// invalid.
func LoadWorkerConfig() WorkerConfig {
	cfg := WorkerConfig{
		Disabled:   getenv("RECONCILER_DISABLED", "") == "1",
		Interval:   time.Duration(atoi(getenv("RECONCILER_INTERVAL_MS", "60000"))) * time.Millisecond,
		BatchLimit: atoi(getenv("RECONCILER_BATCH", "25")),
		StaleAfter: time.Duration(atoi(getenv("ALLOCATION_STALE_MINUTES", "10"))) * time.Minute,
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.BatchLimit <= 0 {
		cfg.BatchLimit = 25
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 10 * time.Minute
	}
	return cfg
}
