// Package timing computes response-latency and activity-hour signals for one
// author from parsed post/comment timestamps.
package timing

import (
	"sort"
	"time"

	"observatory/internal/config"
	"observatory/internal/models"
)

// Timing patterns.
const (
	PatternAIFast    = "AI_FAST"
	PatternHumanSlow = "HUMAN_SLOW"
	PatternMixed     = "MIXED"
	PatternUnclear   = "UNCLEAR"
)

// Sample is one comment by the author on another account's post.
type Sample struct {
	CommentAt time.Time
	PostAt    time.Time
}

// Result holds the latency statistics and pattern call for one author.
// Insufficient marks a below-threshold sample count; the numeric fields are
// meaningless in that case and must not be read as zeros.
type Result struct {
	Insufficient bool
	Quality      models.Quality
	SampleCount  int

	Mean   float64
	Median float64
	Min    float64
	Max    float64

	InstantRatio float64
	FastRatio    float64
	MediumRatio  float64
	SlowRatio    float64

	Pattern    string
	Confidence float64
}

// Analyzer computes latency statistics under a fixed threshold set.
type Analyzer struct {
	th config.Thresholds
}

// NewAnalyzer creates a timing analyzer.
func NewAnalyzer(th config.Thresholds) *Analyzer {
	return &Analyzer{th: th}
}

// deltas returns response latencies in seconds inside (0, window]. The lower
// bound is strict: a comment stamped at exactly the post's time is excluded.
func deltas(samples []Sample, window float64) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		d := s.CommentAt.Sub(s.PostAt).Seconds()
		if d > 0 && d <= window {
			out = append(out, d)
		}
	}
	return out
}

// Analyze computes latency statistics over the short window and classifies
// the timing pattern over the long window.
func (a *Analyzer) Analyze(samples []Sample) Result {
	short := deltas(samples, a.th.DeltaWindowShort)
	if len(short) < a.th.TimingMinSamples {
		return Result{Insufficient: true, Quality: models.QualityInsufficient, SampleCount: len(short)}
	}

	sorted := append([]float64(nil), short...)
	sort.Float64s(sorted)

	res := Result{
		SampleCount: len(sorted),
		Quality:     quality(len(sorted)),
		Mean:        mean(sorted),
		Median:      median(sorted),
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
	}

	n := float64(len(sorted))
	for _, d := range sorted {
		switch {
		case d < a.th.InstantBucketSecs:
			res.InstantRatio++
		case d < a.th.FastBucketSecs:
			res.FastRatio++
		case d < a.th.MediumBucketSecs:
			res.MediumRatio++
		default:
			res.SlowRatio++
		}
	}
	res.InstantRatio /= n
	res.FastRatio /= n
	res.MediumRatio /= n
	res.SlowRatio /= n

	res.Pattern, res.Confidence = a.classify(samples)
	return res
}

// classify applies the ordered pattern rules over the long window.
func (a *Analyzer) classify(samples []Sample) (string, float64) {
	long := deltas(samples, a.th.DeltaWindowLong)
	if len(long) < a.th.TimingMinSamples {
		return PatternUnclear, 0.3
	}

	sorted := append([]float64(nil), long...)
	sort.Float64s(sorted)
	med := median(sorted)

	var instant, slow float64
	for _, d := range sorted {
		if d < a.th.InstantBucketSecs {
			instant++
		}
		if d >= a.th.MediumBucketSecs {
			slow++
		}
	}
	n := float64(len(sorted))
	instant /= n
	slow /= n

	switch {
	case instant > a.th.AIFastInstantRatio && med < a.th.AIFastMedianSecs:
		return PatternAIFast, 0.8
	case slow > a.th.HumanSlowRatio && med > a.th.HumanSlowMedian:
		return PatternHumanSlow, 0.8
	case instant > 0.1 && slow > 0.3:
		return PatternMixed, 0.5
	default:
		return PatternUnclear, 0.3
	}
}

func quality(n int) models.Quality {
	switch {
	case n >= 30:
		return models.QualityHigh
	case n >= 10:
		return models.QualityMedium
	default:
		return models.QualityLow
	}
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// median expects xs sorted.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}
