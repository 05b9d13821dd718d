// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"testing"
)

func TestNew(t *testing.T) {
	c := New()

	if c.FragmentsMinSize != 100 {
		t.Errorf("New().FragmentsMinSize = %d, want 100", c.FragmentsMinSize)
	}
	if c.RegionPoolSize != 10 {
		t.Errorf("New().RegionPoolSize = %d, want 10", c.RegionPoolSize)
	}
	if c.WobbleWeight != 0.2 {
		t.Errorf("New().WobbleWeight = %v, want 0.2", c.WobbleWeight)
	}
	if c.FidelityLegacy {
		t.Error("New().FidelityLegacy = true, want false")
	}
	if c.FidelityFallback != 0.85 {
		t.Errorf("New().FidelityFallback = %v, want 0.85", c.FidelityFallback)
	}

	if err := c.Validate(); err != nil {
		t.Errorf("New().Validate() = %v, want nil", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	type change func(*Config)

	tests := []struct {
		name    string
		change  change
		wantErr bool
	}{
		{
			"defaults pass",
			func(c *Config) {},
			false,
		},
		{
			"zero fragment size",
			func(c *Config) { c.FragmentsMinSize = 0 },
			true,
		},
		{
			"negative end margin",
			func(c *Config) { c.ScanMinFromEnds = -2 },
			true,
		},
		{
			"empty region pool",
			func(c *Config) { c.RegionPoolSize = 0 },
			true,
		},
		{
			"primer window under its minimum",
			func(c *Config) { c.PrimerWindow = 8 },
			true,
		},
		{
			"wobble weight at 1",
			func(c *Config) { c.WobbleWeight = 1 },
			true,
		},
		{
			"negative weight",
			func(c *Config) { c.WeightRisk = -0.1 },
			true,
		},
		{
			"all weights zero",
			func(c *Config) {
				c.WeightOverhang = 0
				c.WeightUpstream = 0
				c.WeightDownstream = 0
				c.WeightRisk = 0
				c.WeightContext = 0
			},
			true,
		},
		{
			"greedy floor above 1",
			func(c *Config) { c.GreedyFloor = 1.5 },
			true,
		},
		{
			"prune ratio at 0",
			func(c *Config) { c.BnbPruneRatio = 0 },
			true,
		},
		{
			"cooling at 1",
			func(c *Config) { c.AnnealCooling = 1 },
			true,
		},
		{
			"single junction weight alone is fine",
			func(c *Config) {
				c.WeightUpstream = 0
				c.WeightDownstream = 0
				c.WeightRisk = 0
				c.WeightContext = 0
			},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.change(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
