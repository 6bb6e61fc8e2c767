package classifier

import (
	"testing"

	"observatory/internal/analysis/stylometry"
	"observatory/internal/analysis/timing"
	"observatory/internal/config"
	"observatory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fuse() *Classifier {
	return New(config.DefaultThresholds())
}

// neutralFeatures sits inside every signal's dead zone so tests can flip one
// signal at a time.
func neutralFeatures() *stylometry.Features {
	return &stylometry.Features{
		VocabRichness:    0.5,
		Burstiness:       0.0,
		SentenceCV:       0.5,
		PerplexityScore:  0.5,
		PhraseRepetition: 0.05,
		BigramEntropy:    0.5,
	}
}

func aiFast() *timing.Result {
	return &timing.Result{Pattern: timing.PatternAIFast, Confidence: 0.8, Mean: 20}
}

func TestClassify_NoSignalsIsUnknown(t *testing.T) {
	out := fuse().Classify(Input{})
	assert.Equal(t, models.VerdictUnknown, out.Verdict)
	assert.Zero(t, out.Confidence)
	assert.Empty(t, out.Evidence)
}

func TestClassify_InsufficientAnalyzersContributeNothing(t *testing.T) {
	out := fuse().Classify(Input{
		Timing: &timing.Result{Insufficient: true},
		Hours:  &timing.HoursResult{Insufficient: true},
	})
	assert.Equal(t, models.VerdictUnknown, out.Verdict)
}

func TestClassify_SingleTimingSignal(t *testing.T) {
	out := fuse().Classify(Input{Timing: aiFast()})
	assert.Equal(t, models.VerdictAIAgent, out.Verdict)
	assert.InDelta(t, 0.67, out.Confidence, 1e-9)
	require.Len(t, out.Evidence, 1)
	assert.Equal(t, "response_timing", out.Evidence[0].Signal)
}

func TestClassify_HumanSide(t *testing.T) {
	f := neutralFeatures()
	f.VocabRichness = 0.3
	f.Burstiness = 0.2

	out := fuse().Classify(Input{
		Timing: &timing.Result{Pattern: timing.PatternHumanSlow, Confidence: 0.8, Mean: 5000},
		Hours:  &timing.HoursResult{Pattern: timing.PatternHumanSleeps, Confidence: 0.8},
		Style:  f,
	})
	assert.Equal(t, models.VerdictHumanOperator, out.Verdict)
	assert.Equal(t, 1.0, out.Confidence)
	assert.Greater(t, out.HumanScore, out.AIScore)
}

func TestClassify_BalancedSignalsAreMixed(t *testing.T) {
	out := fuse().Classify(Input{
		Timing: aiFast(),
		Hours:  &timing.HoursResult{Pattern: timing.PatternHumanSleeps, Confidence: 0.8},
	})
	assert.Equal(t, models.VerdictMixed, out.Verdict)
	assert.Equal(t, 0.4, out.Confidence)
}

func TestClassify_TimezoneSignalIsDiscounted(t *testing.T) {
	out := fuse().Classify(Input{
		Hours: &timing.HoursResult{Pattern: timing.PatternUSTimezone, Confidence: 0.6},
	})
	require.Len(t, out.Evidence, 1)
	assert.Equal(t, "activity_hours", out.Evidence[0].Signal)
	assert.InDelta(t, 0.42, out.Evidence[0].Contribution, 1e-9)
	// One discounted signal is not enough mass to call the account.
	assert.Equal(t, models.VerdictMixed, out.Verdict)
}

func TestClassify_MoreAgreementNeverLowersConfidence(t *testing.T) {
	base := neutralFeatures()
	base.Burstiness = -0.6

	more := neutralFeatures()
	more.Burstiness = -0.6
	more.LongPhraseRepetition = 0.06

	withTwo := fuse().Classify(Input{Timing: aiFast(), Style: base})
	withThree := fuse().Classify(Input{Timing: aiFast(), Style: more})

	require.Equal(t, models.VerdictAIAgent, withTwo.Verdict)
	require.Equal(t, models.VerdictAIAgent, withThree.Verdict)
	assert.GreaterOrEqual(t, withThree.Confidence, withTwo.Confidence)
	assert.Len(t, withThree.Evidence, len(withTwo.Evidence)+1)
}

func TestClassify_OpposingSignalLowersConfidenceOrFlips(t *testing.T) {
	unanimous := neutralFeatures()
	unanimous.Burstiness = -0.6

	opposed := neutralFeatures()
	opposed.Burstiness = -0.6
	opposed.EmojiDensity = 3.0

	before := fuse().Classify(Input{Timing: aiFast(), Style: unanimous})
	after := fuse().Classify(Input{Timing: aiFast(), Style: opposed})

	require.Equal(t, models.VerdictAIAgent, before.Verdict)
	if after.Verdict == models.VerdictAIAgent {
		assert.Less(t, after.Confidence, before.Confidence)
	} else {
		assert.Equal(t, models.VerdictMixed, after.Verdict)
	}
}

func TestClassify_RepetitionOverride(t *testing.T) {
	f := neutralFeatures()
	f.PhraseRepetition = 0.95
	// Human-looking signals do not matter once the override trips.
	f.EmojiDensity = 5.0
	f.Burstiness = 0.4

	out := fuse().Classify(Input{
		Timing: &timing.Result{Pattern: timing.PatternHumanSlow, Confidence: 0.8, Mean: 4000},
		Style:  f,
	})
	assert.Equal(t, models.VerdictScriptedBot, out.Verdict)
	assert.Equal(t, 0.95, out.Confidence)
	require.Len(t, out.Evidence, 1)
	assert.Equal(t, "phrase_repetition", out.Evidence[0].Signal)
}

func TestClassify_MintTemplateOverride(t *testing.T) {
	mint := []string{
		`{"p":"mbc-20","op":"mint","tick":"moon","amt":"1000"}`,
		`{"p":"mbc-20","op":"mint","tick":"moon","amt":"1000"}`,
	}
	out := fuse().Classify(Input{PostBodies: mint})
	assert.Equal(t, models.VerdictScriptedBot, out.Verdict)

	mixed := append(mint, "an actual sentence about something")
	out = fuse().Classify(Input{PostBodies: mixed})
	assert.NotEqual(t, models.VerdictScriptedBot, out.Verdict)
}

func TestClassify_EmojiReflexOverride(t *testing.T) {
	comments := []string{"🚀🚀🚀", "🔥", "gm"}

	fast := fuse().Classify(Input{Timing: &timing.Result{Mean: 4}, CommentBodies: comments})
	assert.Equal(t, models.VerdictScriptedBot, fast.Verdict)

	slow := fuse().Classify(Input{Timing: &timing.Result{Mean: 50}, CommentBodies: comments})
	assert.NotEqual(t, models.VerdictScriptedBot, slow.Verdict)

	wordy := fuse().Classify(Input{
		Timing:        &timing.Result{Mean: 4},
		CommentBodies: []string{"🚀🚀🚀", "this one actually says something"},
	})
	assert.NotEqual(t, models.VerdictScriptedBot, wordy.Verdict)
}

func TestClassify_FastUniformLowVarianceAuthor(t *testing.T) {
	f := neutralFeatures()
	f.VocabRichness = 0.3
	f.Burstiness = -0.6
	f.PhraseRepetition = 0

	out := fuse().Classify(Input{Timing: aiFast(), Style: f})
	assert.Equal(t, models.VerdictAIAgent, out.Verdict)
	assert.GreaterOrEqual(t, out.Confidence, 0.6)
}
