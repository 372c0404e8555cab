package sa

import "testing"

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.IterationsPerTemp = 0 }},
		{"zero initial temp", func(c *Config) { c.InitialTemp = 0 }},
		{"zero final temp", func(c *Config) { c.FinalTemp = 0 }},
		{"floor above initial", func(c *Config) { c.FinalTemp = c.InitialTemp * 2 }},
		{"floor equals initial", func(c *Config) { c.FinalTemp = c.InitialTemp }},
		{"alpha zero", func(c *Config) { c.Alpha = 0 }},
		{"alpha one", func(c *Config) { c.Alpha = 1 }},
		{"negative shift", func(c *Config) { c.MaxIdleShift = -1 }},
		{"unknown representation", func(c *Config) { c.Representation = "genetic" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
