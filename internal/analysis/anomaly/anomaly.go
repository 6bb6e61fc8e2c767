// Package anomaly scores accounts by how far their behavioral profile sits
// from the population. Each account contributes a fixed-width feature vector;
// the detector standardizes every feature across the population and scores an
// account by its mean absolute deviation, min-max rescaled to [0,1].
package anomaly

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"observatory/internal/config"
)

// FeatureCount is the fixed vector width.
const FeatureCount = 8

// flagQuantile marks roughly the most deviant tenth of the population.
const flagQuantile = 0.9

// Sample is one account's feature vector.
type Sample struct {
	Account  string
	Features []float64
}

// Vector assembles the canonical feature vector: response-time shape,
// vocabulary richness, activity-hour shape, and activity volume.
func Vector(avgResp, minResp, respStd, vocabRichness, hourUniformity, nightRatio float64, texts, interactions int) []float64 {
	return []float64{
		avgResp,
		minResp,
		respStd,
		vocabRichness,
		hourUniformity,
		nightRatio,
		float64(texts),
		float64(interactions),
	}
}

// Result is one account's anomaly outcome. Score is population-relative:
// 0 for the most ordinary account, 1 for the most deviant.
type Result struct {
	Score     float64 `json:"anomaly_score"`
	Raw       float64 `json:"raw_deviation"`
	IsAnomaly bool    `json:"is_anomaly"`
}

// Detector scores populations of account feature vectors.
type Detector struct {
	th config.Thresholds
}

// NewDetector creates an anomaly detector.
func NewDetector(th config.Thresholds) *Detector {
	return &Detector{th: th}
}

// Score standardizes each feature column and scores every account. ok is
// false when the population is too small for deviation to mean anything.
func (d *Detector) Score(samples []Sample) (map[string]Result, bool) {
	if len(samples) < d.th.AnomalyMinAccounts {
		return nil, false
	}

	n := len(samples)
	column := make([]float64, n)
	means := make([]float64, FeatureCount)
	stds := make([]float64, FeatureCount)
	for f := 0; f < FeatureCount; f++ {
		for i, s := range samples {
			column[i] = s.Features[f]
		}
		means[f] = stat.Mean(column, nil)
		stds[f] = math.Sqrt(stat.PopVariance(column, nil))
	}

	raw := make([]float64, n)
	for i, s := range samples {
		var total float64
		for f := 0; f < FeatureCount; f++ {
			if stds[f] == 0 {
				continue
			}
			total += math.Abs((s.Features[f] - means[f]) / stds[f])
		}
		raw[i] = total / FeatureCount
	}

	minRaw, maxRaw := raw[0], raw[0]
	for _, v := range raw {
		minRaw = math.Min(minRaw, v)
		maxRaw = math.Max(maxRaw, v)
	}

	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)
	cutoff := stat.Quantile(flagQuantile, stat.Empirical, sorted, nil)

	out := make(map[string]Result, n)
	for i, s := range samples {
		var score float64
		if maxRaw > minRaw {
			score = (raw[i] - minRaw) / (maxRaw - minRaw)
		}
		out[s.Account] = Result{
			Score:     math.Round(score*10000) / 10000,
			Raw:       math.Round(raw[i]*10000) / 10000,
			IsAnomaly: maxRaw > minRaw && raw[i] > cutoff,
		}
	}
	return out, true
}
