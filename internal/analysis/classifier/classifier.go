// Package classifier fuses per-analyzer signals into the terminal verdict.
// Each contributing analyzer emits zero or more (label, confidence) pairs;
// the fused call is a smoothed confidence-mass comparison. Deterministic bot
// fingerprints override the probabilistic path entirely.
package classifier

import (
	"math"
	"regexp"
	"strings"

	"observatory/internal/analysis/stylometry"
	"observatory/internal/analysis/timing"
	"observatory/internal/config"
	"observatory/internal/models"
)

// Signal labels.
const (
	labelAI    = "AI"
	labelHuman = "HUMAN"
)

// Stylometric signal cut points. These are empirically tuned companions to
// the analyzer thresholds in config.Thresholds, kept together here because
// they only exist to map feature extremes onto evidence pairs.
const (
	emojiDensityHumanFloor = 2.0

	vocabRichnessAIFloor  = 0.65
	vocabRichnessHumanCap = 0.35

	burstinessHumanFloor = 0.1
	burstinessAICap      = -0.3

	sentenceCVHumanFloor = 0.8
	sentenceCVAICap      = 0.3

	perplexityAICap      = 0.3
	perplexityHumanFloor = 0.7

	phraseRepAIFloor  = 0.15
	phraseRepHumanCap = 0.03

	longPhraseRepAIFloor = 0.05

	bigramEntropyAICap      = 0.4
	bigramEntropyHumanFloor = 0.7

	bulletRatioAIFloor   = 0.15
	numberedRatioAIFloor = 0.1

	posEntropyAICap = 0.5

	// Emoji bots answer in single-digit seconds.
	emojiBotMeanLatencySecs = 10

	scriptedBotConfidence = 0.95
)

// Input carries everything known about one author at fusion time. Nil
// pointers mark analyzers that did not produce a result; that is different
// from a result full of zeros.
type Input struct {
	Timing *timing.Result
	Hours  *timing.HoursResult
	Style  *stylometry.Features

	// Raw bodies for the deterministic bot fingerprints.
	PostBodies    []string
	CommentBodies []string
}

// Outcome is the fused verdict with its supporting evidence.
type Outcome struct {
	Verdict    models.Verdict
	Confidence float64
	Evidence   []models.Evidence
	AIScore    float64
	HumanScore float64
}

// Classifier fuses signals under a fixed threshold set.
type Classifier struct {
	th config.Thresholds
}

// New creates a classifier.
func New(th config.Thresholds) *Classifier {
	return &Classifier{th: th}
}

// Classify runs the deterministic overrides and then the weighted-evidence
// decision.
func (c *Classifier) Classify(in Input) Outcome {
	if out, ok := c.override(in); ok {
		return out
	}

	signals := c.collect(in)
	if len(signals) == 0 {
		return Outcome{Verdict: models.VerdictUnknown}
	}

	var aiScore, humanScore float64
	for _, s := range signals {
		switch s.Label {
		case labelAI:
			aiScore += s.Contribution
		case labelHuman:
			humanScore += s.Contribution
		}
	}

	// Smoothed mass ratio: the +1 keeps a single weak signal from claiming
	// certainty, and grows monotonically as corroborating mass is added.
	total := aiScore + humanScore + 1
	aiRatio := aiScore / total
	humanRatio := humanScore / total

	out := Outcome{
		Evidence:   signals,
		AIScore:    round2(aiScore),
		HumanScore: round2(humanScore),
	}
	switch {
	case aiScore > humanScore && aiRatio > c.th.DecisionFloor:
		out.Verdict = models.VerdictAIAgent
		out.Confidence = round2(math.Min(1, 1.5*aiRatio))
	case humanScore > aiScore && humanRatio > c.th.DecisionFloor:
		out.Verdict = models.VerdictHumanOperator
		out.Confidence = round2(math.Min(1, 1.5*humanRatio))
	default:
		out.Verdict = models.VerdictMixed
		out.Confidence = 0.4
	}
	return out
}

// collect walks the signal vocabulary in a fixed order.
func (c *Classifier) collect(in Input) []models.Evidence {
	var signals []models.Evidence
	add := func(signal, label string, conf float64) {
		signals = append(signals, models.Evidence{Signal: signal, Label: label, Contribution: conf})
	}

	if t := in.Timing; t != nil && !t.Insufficient {
		switch t.Pattern {
		case timing.PatternAIFast:
			add("response_timing", labelAI, t.Confidence)
		case timing.PatternHumanSlow:
			add("response_timing", labelHuman, t.Confidence)
		}
	}

	if h := in.Hours; h != nil && !h.Insufficient {
		switch h.Pattern {
		case timing.PatternAIUniform:
			add("activity_hours", labelAI, h.Confidence)
		case timing.PatternHumanSleeps:
			add("activity_hours", labelHuman, h.Confidence)
		case timing.PatternUSTimezone, timing.PatternEUTimezone:
			add("activity_hours", labelHuman, h.Confidence*c.th.TimezoneHumanDiscount)
		}
	}

	f := in.Style
	if f == nil {
		return signals
	}

	if f.EmojiDensity > emojiDensityHumanFloor {
		add("emoji_density", labelHuman, 0.6)
	}

	switch {
	case f.VocabRichness > vocabRichnessAIFloor:
		add("vocab_richness", labelAI, 0.5)
	case f.VocabRichness < vocabRichnessHumanCap:
		add("vocab_richness", labelHuman, 0.4)
	}

	switch {
	case f.Burstiness > burstinessHumanFloor:
		add("burstiness", labelHuman, 0.6)
	case f.Burstiness < burstinessAICap:
		add("burstiness", labelAI, 0.7)
	}

	switch {
	case f.SentenceCV > sentenceCVHumanFloor:
		add("sentence_cv", labelHuman, 0.5)
	case f.SentenceCV < sentenceCVAICap:
		add("sentence_cv", labelAI, 0.5)
	}

	switch {
	case f.PerplexityScore < perplexityAICap:
		add("perplexity", labelAI, 0.6)
	case f.PerplexityScore > perplexityHumanFloor:
		add("perplexity", labelHuman, 0.5)
	}

	switch {
	case f.PhraseRepetition > phraseRepAIFloor:
		add("phrase_repetition", labelAI, 0.5)
	case f.PhraseRepetition < phraseRepHumanCap:
		add("phrase_repetition", labelHuman, 0.4)
	}

	if f.LongPhraseRepetition > longPhraseRepAIFloor {
		add("long_phrase_repetition", labelAI, 0.6)
	}

	switch {
	case f.BigramEntropy < bigramEntropyAICap:
		add("bigram_entropy", labelAI, 0.5)
	case f.BigramEntropy > bigramEntropyHumanFloor:
		add("bigram_entropy", labelHuman, 0.4)
	}

	if f.BulletRatio > bulletRatioAIFloor || f.NumberedRatio > numberedRatioAIFloor {
		add("formatting_density", labelAI, 0.5)
	}

	if f.POS != nil && f.POS.BigramEntropy > 0 && f.POS.BigramEntropy < posEntropyAICap {
		add("pos_entropy", labelAI, 0.4)
	}

	return signals
}

var mintTemplateRe = regexp.MustCompile(`"p":"mbc-20"|"op":"mint"`)

// override applies the deterministic bot fingerprints that trump the
// weighted decision.
func (c *Classifier) override(in Input) (Outcome, bool) {
	if f := in.Style; f != nil && f.PhraseRepetition > c.th.ScriptedRepetition {
		return scripted("phrase_repetition"), true
	}
	if allMintTemplates(in.PostBodies) {
		return scripted("mint_template"), true
	}
	if allEmojiComments(in.CommentBodies) &&
		in.Timing != nil && !in.Timing.Insufficient && in.Timing.Mean < emojiBotMeanLatencySecs {
		return scripted("emoji_reflex"), true
	}
	return Outcome{}, false
}

func scripted(signal string) Outcome {
	return Outcome{
		Verdict:    models.VerdictScriptedBot,
		Confidence: scriptedBotConfidence,
		Evidence:   []models.Evidence{{Signal: signal, Label: labelAI, Contribution: scriptedBotConfidence}},
	}
}

// allMintTemplates reports whether every post body is a structured minting
// command. An account that only ever mints is a script, whatever else it
// looks like.
func allMintTemplates(posts []string) bool {
	if len(posts) == 0 {
		return false
	}
	for _, p := range posts {
		if !mintTemplateRe.MatchString(p) {
			return false
		}
	}
	return true
}

// allEmojiComments reports whether every comment is emoji or trivially short.
func allEmojiComments(comments []string) bool {
	if len(comments) == 0 {
		return false
	}
	for _, body := range comments {
		if stylometry.EmojiOnly(body) || len(strings.TrimSpace(body)) < 5 {
			continue
		}
		return false
	}
	return true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
