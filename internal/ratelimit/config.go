package ratelimit

// Config bounds how often one user may invoke bot commands.
// Zero PerMinute means no limit.
type Config struct {
	PerMinute int `yaml:"per_minute" json:"per_minute"`
	Burst     int `yaml:"burst"      json:"burst"`
}

// Enabled returns true if a limit is configured.
func (c Config) Enabled() bool {
	return c.PerMinute > 0
}

func (c Config) burst() int {
	if c.Burst > 0 {
		return c.Burst
	}
	return c.PerMinute
}
