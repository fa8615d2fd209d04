package controller

import "time"

// Options tunes the controller's timers and odds.
type Options struct {
	CountdownInterval    time.Duration // how often one second of preparation time is spent
	DisasterWindowMin    time.Duration // earliest disaster onset
	DisasterWindowMax    time.Duration // latest disaster onset, exclusive
	EventChance          float64       // per state change during preparation
	DiscoveryChance      float64       // per completed action, unless the action sets its own
	SurvivalTickInterval time.Duration // length of a survival day
}

// DefaultOptions returns the standard game pacing.
func DefaultOptions() Options {
	return Options{
		CountdownInterval:    time.Second,
		DisasterWindowMin:    180 * time.Second,
		DisasterWindowMax:    420 * time.Second,
		EventChance:          0.1,
		DiscoveryChance:      0.25,
		SurvivalTickInterval: 10 * time.Second,
	}
}
