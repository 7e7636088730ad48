package evotune

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBounds() Bounds {
	return Bounds{{Name: "x", Min: 0, Max: 1}}
}

func TestConfigValidate(t *testing.T) {
	base := Config{
		PopulationSize: 4,
		EliteFraction:  0.5,
		CrossoverRate:  0.7,
		MutationRate:   0.1,
		Bounds:         validBounds(),
	}
	assert.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"population too small", func(c *Config) { c.PopulationSize = 1 }},
		{"elite fraction zero", func(c *Config) { c.EliteFraction = 0 }},
		{"elite fraction above one", func(c *Config) { c.EliteFraction = 1.1 }},
		{"crossover rate negative", func(c *Config) { c.CrossoverRate = -0.1 }},
		{"crossover rate above one", func(c *Config) { c.CrossoverRate = 1.5 }},
		{"mutation rate negative", func(c *Config) { c.MutationRate = -1 }},
		{"mutation rate above one", func(c *Config) { c.MutationRate = 2 }},
		{"mutation sigma negative", func(c *Config) { c.MutationSigma = -0.5 }},
		{"workers negative", func(c *Config) { c.EvalWorkers = -1 }},
		{"no bounds", func(c *Config) { c.Bounds = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			cfg.Bounds = validBounds()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultMutationSigma, c.mutationSigma())
	assert.Greater(t, c.evalWorkers(), 0, "zero workers should fall back to a positive default")

	c.MutationSigma = 0.3
	c.EvalWorkers = 2
	assert.Equal(t, 0.3, c.mutationSigma())
	assert.Equal(t, 2, c.evalWorkers())
}
