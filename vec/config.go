package vec

import "github.com/ic-timon/algs4/vec/alloc"

// Config holds vector construction parameters.
type Config struct {
	Allocator       alloc.Allocator // nil keeps elements on the Go heap
	InitialCapacity int             // rounded up along the doubling sequence 1, 2, 4, ...
	ShrinkOnPop     bool            // halve capacity once Pop or Remove leave it a quarter full
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.InitialCapacity < 0 {
		c.InitialCapacity = 0
	}
	return c
}
