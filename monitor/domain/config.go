package domain

const (
	MinIntervalMs     uint64 = 200
	MaxIntervalMs     uint64 = 10000
	DefaultIntervalMs uint64 = 1000
)

// RefreshConfig controls the refresh loop. IntervalMs is always inside
// [MinIntervalMs, MaxIntervalMs].
type RefreshConfig struct {
	IntervalMs uint64 `json:"interval_ms" yaml:"interval_ms"`
	Paused     bool   `json:"paused" yaml:"paused"`
}

func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{IntervalMs: DefaultIntervalMs}
}

func ClampInterval(ms uint64) uint64 {
	if ms < MinIntervalMs {
		return MinIntervalMs
	}
	if ms > MaxIntervalMs {
		return MaxIntervalMs
	}
	return ms
}
