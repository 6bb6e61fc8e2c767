package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:             "development",
		Port:            "8460",
		DBPassword:      "secure-password",
		DBSSLMode:       "disable",
		AdminJWTSecret:  "secure-secret-at-least-32-chars-long",
		RedisURL:        "localhost:6379",
		ReportDir:       "reports",
		AnalysisWorkers: 8,
		Thresholds:      DefaultThresholds(),
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Zero workers", func(c *Config) { c.AnalysisWorkers = 0 }, true},
		{"Missing report dir", func(c *Config) { c.ReportDir = "" }, true},
		{"Production with default admin secret", func(c *Config) {
			c.Env = "production"
			c.AdminJWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short admin secret", func(c *Config) {
			c.Env = "production"
			c.AdminJWTSecret = "short"
		}, true},
		{"Production with weak DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production on sqlite skips DB password check", func(c *Config) {
			c.Env = "production"
			c.DBPassword = ""
			c.SQLitePath = "observatory.db"
		}, false},
		{"Prod alias is strict too", func(c *Config) {
			c.Env = "prod"
			c.AdminJWTSecret = "short"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Thresholds)
		expectError bool
	}{
		{"Defaults are valid", func(th *Thresholds) {}, false},
		{"Zero timing samples", func(th *Thresholds) { th.TimingMinSamples = 0 }, true},
		{"Long window shorter than short", func(th *Thresholds) { th.DeltaWindowLong = th.DeltaWindowShort - 1 }, true},
		{"Non-increasing buckets", func(th *Thresholds) { th.FastBucketSecs = th.InstantBucketSecs }, true},
		{"Burst size of one", func(th *Thresholds) { th.BurstMinSize = 1 }, true},
		{"Negative burst window", func(th *Thresholds) { th.BurstWindowSecs = -1 }, true},
		{"Repetition above one", func(th *Thresholds) { th.ScriptedRepetition = 1.2 }, true},
		{"Decision floor at one", func(th *Thresholds) { th.DecisionFloor = 1.0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)

			err := th.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultThresholds_BucketOrdering(t *testing.T) {
	th := DefaultThresholds()
	assert.Less(t, th.InstantBucketSecs, th.FastBucketSecs)
	assert.Less(t, th.FastBucketSecs, th.MediumBucketSecs)
	assert.Less(t, th.DeltaWindowShort, th.DeltaWindowLong)
}
