package aivss

// assessConfig holds the resolved configuration for an assessment run.
type assessConfig struct {
	workers           int
	threatMultipliers map[string]float64
}

// Option configures an assessment run.
type Option func(*assessConfig)

// WithWorkers sets the number of concurrent scoring workers (default: NumCPU).
func WithWorkers(n int) Option {
	return func(c *assessConfig) {
		c.workers = n
	}
}

// WithThreatMultipliers overrides or extends the builtin threat signal table.
// Values must be in [0, 1] and actively_attacked must stay at 1.0.
func WithThreatMultipliers(table map[string]float64) Option {
	return func(c *assessConfig) {
		c.threatMultipliers = table
	}
}
