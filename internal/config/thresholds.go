package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Thresholds collects the tunable analysis constants in one place. Defaults
// mirror the empirically tuned values the scoring rules were calibrated with;
// they can be overridden per deployment but are not exposed over the API.
type Thresholds struct {
	// Timing analysis.
	TimingMinSamples   int     `mapstructure:"TIMING_MIN_SAMPLES"`
	DeltaWindowShort   float64 `mapstructure:"DELTA_WINDOW_SHORT"`
	DeltaWindowLong    float64 `mapstructure:"DELTA_WINDOW_LONG"`
	InstantBucketSecs  float64 `mapstructure:"INSTANT_BUCKET_SECS"`
	FastBucketSecs     float64 `mapstructure:"FAST_BUCKET_SECS"`
	MediumBucketSecs   float64 `mapstructure:"MEDIUM_BUCKET_SECS"`
	AIFastInstantRatio float64 `mapstructure:"AI_FAST_INSTANT_RATIO"`
	AIFastMedianSecs   float64 `mapstructure:"AI_FAST_MEDIAN_SECS"`
	HumanSlowRatio     float64 `mapstructure:"HUMAN_SLOW_RATIO"`
	HumanSlowMedian    float64 `mapstructure:"HUMAN_SLOW_MEDIAN_SECS"`

	// Activity-hour analysis.
	HoursMinSamples      int     `mapstructure:"HOURS_MIN_SAMPLES"`
	UniformityAIFloor    float64 `mapstructure:"UNIFORMITY_AI_FLOOR"`
	NightRatioAIFloor    float64 `mapstructure:"NIGHT_RATIO_AI_FLOOR"`
	NightRatioHumanCeil  float64 `mapstructure:"NIGHT_RATIO_HUMAN_CEIL"`
	UniformityHumanCeil  float64 `mapstructure:"UNIFORMITY_HUMAN_CEIL"`
	TimezoneDominantMin  float64 `mapstructure:"TIMEZONE_DOMINANT_MIN"`
	TimezoneSuppressMax  float64 `mapstructure:"TIMEZONE_SUPPRESS_MAX"`
	TimezoneHumanDiscount float64 `mapstructure:"TIMEZONE_HUMAN_DISCOUNT"`

	// Stylometry.
	StyleMinChars int `mapstructure:"STYLE_MIN_CHARS"`
	StyleMinWords int `mapstructure:"STYLE_MIN_WORDS"`

	// Burst detection.
	BurstWindowSecs float64 `mapstructure:"BURST_WINDOW_SECS"`
	BurstMinSize    int     `mapstructure:"BURST_MIN_SIZE"`

	// Graph analysis.
	GraphMinNodes      int `mapstructure:"GRAPH_MIN_NODES"`
	BetweennessExactMax int `mapstructure:"BETWEENNESS_EXACT_MAX"`
	BetweennessPivots  int `mapstructure:"BETWEENNESS_PIVOTS"`

	// Anomaly detection.
	AnomalyMinAccounts int `mapstructure:"ANOMALY_MIN_ACCOUNTS"`

	// Aggregation.
	DecisionFloor      float64 `mapstructure:"DECISION_FLOOR"`
	ScriptedRepetition float64 `mapstructure:"SCRIPTED_REPETITION"`
}

func setThresholdDefaults() {
	viper.SetDefault("THRESHOLDS.TIMING_MIN_SAMPLES", 3)
	viper.SetDefault("THRESHOLDS.DELTA_WINDOW_SHORT", 86400.0)
	viper.SetDefault("THRESHOLDS.DELTA_WINDOW_LONG", 604800.0)
	viper.SetDefault("THRESHOLDS.INSTANT_BUCKET_SECS", 60.0)
	viper.SetDefault("THRESHOLDS.FAST_BUCKET_SECS", 600.0)
	viper.SetDefault("THRESHOLDS.MEDIUM_BUCKET_SECS", 3600.0)
	viper.SetDefault("THRESHOLDS.AI_FAST_INSTANT_RATIO", 0.3)
	viper.SetDefault("THRESHOLDS.AI_FAST_MEDIAN_SECS", 300.0)
	viper.SetDefault("THRESHOLDS.HUMAN_SLOW_RATIO", 0.5)
	viper.SetDefault("THRESHOLDS.HUMAN_SLOW_MEDIAN_SECS", 1800.0)

	viper.SetDefault("THRESHOLDS.HOURS_MIN_SAMPLES", 10)
	viper.SetDefault("THRESHOLDS.UNIFORMITY_AI_FLOOR", 0.85)
	viper.SetDefault("THRESHOLDS.NIGHT_RATIO_AI_FLOOR", 0.12)
	viper.SetDefault("THRESHOLDS.NIGHT_RATIO_HUMAN_CEIL", 0.05)
	viper.SetDefault("THRESHOLDS.UNIFORMITY_HUMAN_CEIL", 0.7)
	viper.SetDefault("THRESHOLDS.TIMEZONE_DOMINANT_MIN", 0.25)
	viper.SetDefault("THRESHOLDS.TIMEZONE_SUPPRESS_MAX", 0.15)
	viper.SetDefault("THRESHOLDS.TIMEZONE_HUMAN_DISCOUNT", 0.7)

	viper.SetDefault("THRESHOLDS.STYLE_MIN_CHARS", 200)
	viper.SetDefault("THRESHOLDS.STYLE_MIN_WORDS", 50)

	viper.SetDefault("THRESHOLDS.BURST_WINDOW_SECS", 60.0)
	viper.SetDefault("THRESHOLDS.BURST_MIN_SIZE", 5)

	viper.SetDefault("THRESHOLDS.GRAPH_MIN_NODES", 10)
	viper.SetDefault("THRESHOLDS.BETWEENNESS_EXACT_MAX", 1000)
	viper.SetDefault("THRESHOLDS.BETWEENNESS_PIVOTS", 500)

	viper.SetDefault("THRESHOLDS.ANOMALY_MIN_ACCOUNTS", 50)

	viper.SetDefault("THRESHOLDS.DECISION_FLOOR", 0.4)
	viper.SetDefault("THRESHOLDS.SCRIPTED_REPETITION", 0.9)
}

// DefaultThresholds returns the calibrated defaults without going through viper.
// Analyzer constructors and tests use this directly.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TimingMinSamples:   3,
		DeltaWindowShort:   86400,
		DeltaWindowLong:    604800,
		InstantBucketSecs:  60,
		FastBucketSecs:     600,
		MediumBucketSecs:   3600,
		AIFastInstantRatio: 0.3,
		AIFastMedianSecs:   300,
		HumanSlowRatio:     0.5,
		HumanSlowMedian:    1800,

		HoursMinSamples:       10,
		UniformityAIFloor:     0.85,
		NightRatioAIFloor:     0.12,
		NightRatioHumanCeil:   0.05,
		UniformityHumanCeil:   0.7,
		TimezoneDominantMin:   0.25,
		TimezoneSuppressMax:   0.15,
		TimezoneHumanDiscount: 0.7,

		StyleMinChars: 200,
		StyleMinWords: 50,

		BurstWindowSecs: 60,
		BurstMinSize:    5,

		GraphMinNodes:       10,
		BetweennessExactMax: 1000,
		BetweennessPivots:   500,

		AnomalyMinAccounts: 50,

		DecisionFloor:      0.4,
		ScriptedRepetition: 0.9,
	}
}

// Validate rejects threshold combinations that would make the analyzers degenerate.
func (t *Thresholds) Validate() error {
	if t.TimingMinSamples < 1 {
		return errors.New("TIMING_MIN_SAMPLES must be at least 1")
	}
	if t.DeltaWindowShort <= 0 || t.DeltaWindowLong < t.DeltaWindowShort {
		return errors.New("delta windows must be positive and long >= short")
	}
	if t.InstantBucketSecs >= t.FastBucketSecs || t.FastBucketSecs >= t.MediumBucketSecs {
		return errors.New("timing buckets must be strictly increasing")
	}
	if t.BurstMinSize < 2 {
		return errors.New("BURST_MIN_SIZE must be at least 2")
	}
	if t.BurstWindowSecs <= 0 {
		return errors.New("BURST_WINDOW_SECS must be positive")
	}
	if t.ScriptedRepetition <= 0 || t.ScriptedRepetition > 1 {
		return errors.New("SCRIPTED_REPETITION must be in (0, 1]")
	}
	if t.DecisionFloor < 0 || t.DecisionFloor >= 1 {
		return errors.New("DECISION_FLOOR must be in [0, 1)")
	}
	return nil
}
