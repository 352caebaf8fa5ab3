// Package config carries the typed, shared-read-only configuration
// the search core and playout simulator consume. Defaults mirror the
// original implementation's config crate.
package config

// Config holds every tunable the core reads. Instances are shared
// read-only across all search workers; cloning the pointer is cheap
// and never mutated after construction.
type Config struct {
	Threads int
	Log     bool

	UCT     UCTConfig
	Playout PlayoutConfig
	Timer   TimerConfig
}

// UCTConfig configures the Search Tree Node's expansion threshold.
type UCTConfig struct {
	ExpandAfter int
}

// PlayoutConfig configures the Playout Simulator's move-selection
// policy.
type PlayoutConfig struct {
	NoSelfAtariCutoff   int
	AtariCheck          bool
	LadderCheck         bool
	UsePatterns         bool
	PatternProbability  float64
	LastMovesForHeuristics int
	PlayInMiddleOfEye   bool
}

// TimerConfig configures the external timer's scaling constant; the
// timer itself lives outside the core.
type TimerConfig struct {
	C float64
}

// Default returns the configuration matching the original
// implementation's defaults.
func Default() *Config {
	return &Config{
		Threads: 1,
		Log:     false,
		UCT: UCTConfig{
			ExpandAfter: 1,
		},
		Playout: PlayoutConfig{
			NoSelfAtariCutoff:      7,
			AtariCheck:             true,
			LadderCheck:            false,
			UsePatterns:            true,
			PatternProbability:     0.9,
			LastMovesForHeuristics: 3,
			PlayInMiddleOfEye:      false,
		},
		Timer: TimerConfig{C: 0.5},
	}
}

// SetThreads sets the worker count for parallel search (at least 1).
func (c *Config) SetThreads(n int) *Config {
	if n < 1 {
		n = 1
	}
	c.Threads = n
	return c
}

// SetLog toggles diagnostic logging.
func (c *Config) SetLog(enabled bool) *Config {
	c.Log = enabled
	return c
}

// SetExpandAfter sets the minimum visit count before a node expands.
func (c *Config) SetExpandAfter(n int) *Config {
	c.UCT.ExpandAfter = n
	return c
}

// Clone returns an independent copy, useful when a caller wants a
// shared baseline with a few options overridden.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
