package stylometry

import (
	"strings"
	"testing"

	"observatory/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractor() *Extractor {
	return NewExtractor(config.DefaultThresholds(), nil)
}

func TestExtract_NilBelowMinimumCorpus(t *testing.T) {
	e := extractor()

	assert.Nil(t, e.Extract(nil))
	assert.Nil(t, e.Extract([]string{"too short"}))
	// Long enough in characters but URLs are stripped first.
	assert.Nil(t, e.Extract([]string{strings.Repeat("https://example.com/a ", 30)}))
}

func TestExtract_BurstinessUniformSentencesIsMinusOne(t *testing.T) {
	e := extractor()

	// Every sentence is exactly five words: stdev 0, burstiness (0-m)/(0+m) = -1.
	sentence := "the cat sat right here. "
	f := e.Extract([]string{strings.Repeat(sentence, 20)})
	require.NotNil(t, f)
	assert.Equal(t, -1.0, f.Burstiness)
	assert.Zero(t, f.SentenceLengthStd)
}

func TestExtract_VariedSentencesHavePositiveBurstinessShift(t *testing.T) {
	e := extractor()

	text := "Go. I left early because the rain would not stop falling on the old tin roof of the station. " +
		"Why. Nobody asked me anything about the seventeen different reasons this mattered to anyone at all. " +
		"Sure. We talked for hours and hours about everything that had happened since the last winter storm."
	f := e.Extract([]string{text, text})
	require.NotNil(t, f)
	assert.Greater(t, f.Burstiness, -1.0)
	assert.Greater(t, f.SentenceCV, 0.5)
}

func TestExtract_PhraseRepetitionApproachesOne(t *testing.T) {
	e := extractor()

	// The same three words over and over: almost every distinct trigram repeats.
	f := e.Extract([]string{strings.Repeat("buy the token. ", 40)})
	require.NotNil(t, f)
	assert.Greater(t, f.PhraseRepetition, 0.9)
	assert.Greater(t, f.WordRepetition, 0.9)
}

func TestExtract_DiverseTextLowRepetition(t *testing.T) {
	e := extractor()

	text := "Yesterday the harbor smelled of diesel and kelp while gulls argued over scraps near the fish market. " +
		"A violinist practiced scales beneath the bridge and two strangers debated the merits of canal boats. " +
		"Later the fog rolled across the breakwater swallowing masts lanterns and the last ferry of the evening."
	f := e.Extract([]string{text})
	require.NotNil(t, f)
	assert.Less(t, f.PhraseRepetition, 0.05)
	assert.Greater(t, f.VocabRichness, 0.6)
	assert.Greater(t, f.HapaxRatio, 0.5)
}

func TestExtract_StructuralRatios(t *testing.T) {
	e := extractor()

	text := `# Overview
Here are the main considerations for this approach today and tomorrow.
- first point about the design
- second point about the rollout
- third point about the metrics
1. numbered step one
2. numbered step two
Closing thoughts follow after the list ends and the summary begins here.`
	f := e.Extract([]string{text, text})
	require.NotNil(t, f)
	// 8 non-empty lines per copy: 1 header, 3 bullets, 2 numbered.
	assert.InDelta(t, 3.0/8.0, f.BulletRatio, 1e-9)
	assert.InDelta(t, 2.0/8.0, f.NumberedRatio, 1e-9)
	assert.InDelta(t, 1.0/8.0, f.HeaderRatio, 1e-9)
}

func TestExtract_CodeBlocksCountedAndStripped(t *testing.T) {
	e := extractor()

	text := "Some prose before the example shows how the pieces fit together nicely.\n" +
		"```\nfunc main() { panic(\"nope\") }\n```\n" +
		"And more prose after the example continues the explanation in detail " +
		"with enough words to clear the corpus minimum for extraction to run today."
	f := e.Extract([]string{text, text})
	require.NotNil(t, f)
	assert.Equal(t, 2, f.CodeBlockCount)
}

func TestExtract_PerplexityScoreNeutralForTinyCorpus(t *testing.T) {
	f := &Features{}
	f.computePerplexity([]string{"a", "b", "c"})
	assert.Equal(t, 0.5, f.PerplexityScore)
	assert.Zero(t, f.Perplexity)
}

func TestExtract_PerplexityBounded(t *testing.T) {
	e := extractor()

	f := e.Extract([]string{strings.Repeat("alpha beta gamma delta epsilon zeta eta theta iota kappa ", 10)})
	require.NotNil(t, f)
	assert.GreaterOrEqual(t, f.PerplexityScore, 0.0)
	assert.LessOrEqual(t, f.PerplexityScore, 1.0)
	assert.Greater(t, f.Perplexity, 1.0)
}

func TestRounded_FourDecimalPlaces(t *testing.T) {
	f := &Features{VocabRichness: 0.123456789, Burstiness: -0.98765432}
	r := f.Rounded()
	assert.Equal(t, 0.1235, r["vocab_richness"])
	assert.Equal(t, -0.9877, r["burstiness"])
}

type stubTagger struct {
	tags map[string][]string
}

func (s stubTagger) Tag(text string) ([]string, error) {
	return s.tags[text], nil
}

func TestPOSFeatures_KeyBigramsAndEntropy(t *testing.T) {
	tagger := stubTagger{tags: map[string][]string{
		"a": {"DT", "NN", "VBZ", "RB"},
		"b": {"PRP", "VBP", "IN", "DT", "JJ", "NN"},
	}}

	f := posFeatures(tagger, []string{"a", "b"})
	require.NotNil(t, f)

	// det>noun appears twice of 9 transitions (text boundaries are joined).
	assert.InDelta(t, 2.0/9.0, f.BigramRatios["det_noun"], 1e-9)
	assert.InDelta(t, 1.0/9.0, f.BigramRatios["noun_verb"], 1e-9)
	assert.InDelta(t, 1.0/9.0, f.BigramRatios["pron_verb"], 1e-9)
	assert.Greater(t, f.BigramEntropy, 0.0)
	assert.InDelta(t, 0.3, f.ClassRatios["noun"], 1e-9)
}

func TestPOSFeatures_NilWhenNothingTagged(t *testing.T) {
	assert.Nil(t, posFeatures(stubTagger{}, []string{"a"}))
}

func TestEmojiOnly(t *testing.T) {
	assert.True(t, EmojiOnly("🚀🚀🔥"))
	assert.True(t, EmojiOnly("🚀 !!"))
	assert.False(t, EmojiOnly("to the moon 🚀"))
	assert.False(t, EmojiOnly("plain words"))
	assert.False(t, EmojiOnly(""))
}
