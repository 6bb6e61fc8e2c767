package timing

import (
	"math"
	"time"

	"observatory/internal/config"
	"observatory/internal/models"
)

// Activity-hour patterns.
const (
	PatternAIUniform   = "AI_UNIFORM"
	PatternHumanSleeps = "HUMAN_SLEEPS"
	PatternUSTimezone  = "US_TIMEZONE"
	PatternEUTimezone  = "EU_TIMEZONE"
)

// Hour windows in UTC. The US evening window wraps midnight.
var (
	nightHours       = map[int]bool{2: true, 3: true, 4: true, 5: true}
	usEveningHours   = map[int]bool{23: true, 0: true, 1: true, 2: true, 3: true}
	euAfternoonHours = map[int]bool{12: true, 13: true, 14: true, 15: true, 16: true}
)

// HoursResult is the activity-hour distribution call for one author.
type HoursResult struct {
	Insufficient bool
	Quality      models.Quality
	SampleCount  int

	// Uniformity is the Shannon entropy of the 24-bin hour histogram
	// normalized by log2(24): 1.0 means perfectly even activity.
	Uniformity       float64
	NightRatio       float64
	USEveningRatio   float64
	EUAfternoonRatio float64
	PeakHour         int

	Pattern    string
	Confidence float64
}

// HoursAnalyzer classifies the hour-of-day activity distribution.
type HoursAnalyzer struct {
	th config.Thresholds
}

// NewHoursAnalyzer creates an activity-hour analyzer.
func NewHoursAnalyzer(th config.Thresholds) *HoursAnalyzer {
	return &HoursAnalyzer{th: th}
}

// Analyze computes the hour histogram over all of the author's activity
// timestamps, hour-of-day taken in UTC.
func (a *HoursAnalyzer) Analyze(stamps []time.Time) HoursResult {
	if len(stamps) < a.th.HoursMinSamples {
		return HoursResult{Insufficient: true, Quality: models.QualityInsufficient, SampleCount: len(stamps)}
	}

	var histogram [24]int
	for _, t := range stamps {
		histogram[t.UTC().Hour()]++
	}

	n := float64(len(stamps))
	res := HoursResult{
		SampleCount: len(stamps),
		Quality:     quality(len(stamps)),
	}

	var entropy float64
	peak := 0
	for h, count := range histogram {
		if count == 0 {
			continue
		}
		p := float64(count) / n
		entropy -= p * math.Log2(p)
		if count > histogram[peak] {
			peak = h
		}
		if nightHours[h] {
			res.NightRatio += p
		}
		if usEveningHours[h] {
			res.USEveningRatio += p
		}
		if euAfternoonHours[h] {
			res.EUAfternoonRatio += p
		}
	}
	res.Uniformity = entropy / math.Log2(24)
	res.PeakHour = peak

	res.Pattern, res.Confidence = a.classify(res)
	return res
}

func (a *HoursAnalyzer) classify(r HoursResult) (string, float64) {
	switch {
	case r.Uniformity > a.th.UniformityAIFloor && r.NightRatio > a.th.NightRatioAIFloor:
		return PatternAIUniform, 0.8
	case r.NightRatio < a.th.NightRatioHumanCeil && r.Uniformity < a.th.UniformityHumanCeil:
		return PatternHumanSleeps, 0.8
	case r.USEveningRatio > a.th.TimezoneDominantMin && r.EUAfternoonRatio < a.th.TimezoneSuppressMax:
		return PatternUSTimezone, 0.6
	case r.EUAfternoonRatio > a.th.TimezoneDominantMin && r.USEveningRatio < a.th.TimezoneSuppressMax:
		return PatternEUTimezone, 0.6
	default:
		return PatternMixed, 0.4
	}
}
