package signature

import (
	"math"
	"sort"
	"strings"

	"observatory/internal/analysis/stylometry"
)

// FamilyUnknown is returned when no family clears the attribution floor.
const FamilyUnknown = "UNKNOWN"

// openingSampleSize caps how many texts are checked for opening patterns.
const openingSampleSize = 20

// Attribution is the outcome of matching one author against the registry.
type Attribution struct {
	Family     string             `json:"family"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
	Margin     float64            `json:"margin"`
}

// Matcher scores authors against a compiled signature registry.
type Matcher struct {
	registry *Registry
}

// NewMatcher creates a matcher over the registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// Match scores every family and picks a winner by score and margin. A nil
// feature vector (corpus below the stylometric minimum) yields UNKNOWN with
// zero confidence.
func (m *Matcher) Match(f *stylometry.Features, texts []string) Attribution {
	if f == nil {
		return Attribution{Family: FamilyUnknown, Scores: map[string]float64{}}
	}

	corpus := strings.ToLower(stylometry.CleanCorpus(texts))
	scores := make(map[string]float64, len(m.registry.names))
	for _, name := range m.registry.names {
		scores[name] = m.scoreFamily(m.registry.families[name], f, corpus, texts)
	}
	return decide(scores)
}

// scoreFamily combines style-range fit, marker presence, negative-marker
// penalties, and opening-pattern hits into a weighted average.
func (m *Matcher) scoreFamily(sig *Signature, f *stylometry.Features, corpus string, texts []string) float64 {
	var score, factors float64

	features := map[string]float64{
		"avg_sentence_length": f.AvgSentenceLength,
		"vocab_richness":      f.VocabRichness,
		"first_person_ratio":  f.FirstPersonRatio,
		"question_ratio":      f.QuestionRatio,
	}
	for key, band := range sig.Style {
		val, ok := features[key]
		if !ok {
			continue
		}
		switch {
		case val >= band.Min && val <= band.Max:
			score += 1.0
		case val < band.Min:
			score += math.Max(0, 1-(band.Min-val)/band.Min)
		default:
			score += math.Max(0, 1-(val-band.Max)/band.Max)
		}
		factors++
	}

	// Marker presence saturates at 5 distinct hits and outweighs style fit.
	var markers int
	for _, marker := range sig.Markers {
		if strings.Contains(corpus, strings.ToLower(marker)) {
			markers++
		}
	}
	score += math.Min(float64(markers)/5, 1.0) * 1.5
	factors += 1.5

	var negatives int
	for _, marker := range sig.NegativeMarkers {
		if strings.Contains(corpus, strings.ToLower(marker)) {
			negatives++
		}
	}
	if negatives > 0 {
		score -= math.Min(float64(negatives)/3, 0.5)
		factors += 0.5
	}

	score += math.Min(float64(countOpenings(sig, texts))/3, 1.0)
	factors++

	if factors == 0 {
		return 0
	}
	return math.Round(math.Max(0, score/factors)*1000) / 1000
}

// countOpenings counts sampled texts whose first characters match any of the
// family's opening patterns. At most one hit per text.
func countOpenings(sig *Signature, texts []string) int {
	sample := texts
	if len(sample) > openingSampleSize {
		sample = sample[:openingSampleSize]
	}
	var hits int
	for _, t := range sample {
		trimmed := strings.TrimSpace(t)
		for _, re := range sig.openings {
			if re.MatchString(trimmed) {
				hits++
				break
			}
		}
	}
	return hits
}

// decide picks the top-scoring family and maps score plus lead margin onto
// a confidence tier. A weak winner degrades to UNKNOWN.
func decide(scores map[string]float64) Attribution {
	type ranked struct {
		name  string
		score float64
	}
	order := make([]ranked, 0, len(scores))
	for name, s := range scores {
		order = append(order, ranked{name, s})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		return order[i].name < order[j].name
	})

	if len(order) == 0 {
		return Attribution{Family: FamilyUnknown, Scores: scores}
	}

	top := order[0]
	margin := top.score
	if len(order) > 1 {
		margin = top.score - order[1].score
	}

	a := Attribution{
		Family: strings.ToUpper(top.name),
		Scores: scores,
		Margin: math.Round(margin*1000) / 1000,
	}
	switch {
	case top.score >= 0.7 && margin >= 0.15:
		a.Confidence = 0.8
	case top.score >= 0.5 && margin >= 0.1:
		a.Confidence = 0.6
	case top.score >= 0.4:
		a.Confidence = 0.4
	default:
		a.Confidence = 0.2
		a.Family = FamilyUnknown
	}
	return a
}
