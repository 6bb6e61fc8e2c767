// Package stylometry extracts lexical and structural features from an
// author's text corpus. All features are deterministic functions of the
// tokenized text.
package stylometry

import (
	"math"
	"strings"

	"observatory/internal/config"
)

// Features is the stylometric vector for one author. A nil *Features means
// the corpus was too small to measure.
type Features struct {
	WordCount     int `json:"word_count"`
	SentenceCount int `json:"sentence_count"`
	TextCount     int `json:"text_count"`

	VocabRichness     float64 `json:"vocab_richness"`
	AvgWordLength     float64 `json:"avg_word_length"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	SentenceLengthStd float64 `json:"sentence_length_std"`
	SentenceCV        float64 `json:"sentence_cv"`
	// Burstiness is (std-mean)/(std+mean) over sentence lengths: -1 for
	// perfectly uniform sentences, positive for human-like variance.
	Burstiness float64 `json:"burstiness"`

	BigramEntropy  float64 `json:"bigram_entropy"`
	TrigramEntropy float64 `json:"trigram_entropy"`

	WordRepetition       float64 `json:"word_repetition"`
	PhraseRepetition     float64 `json:"phrase_repetition"`
	LongPhraseRepetition float64 `json:"long_phrase_repetition"`

	Perplexity      float64 `json:"perplexity"`
	PerplexityScore float64 `json:"perplexity_score"`

	FirstPersonRatio float64 `json:"first_person_ratio"`
	QuestionRatio    float64 `json:"question_ratio"`
	EmojiDensity     float64 `json:"emoji_density"`

	BulletRatio     float64 `json:"bullet_ratio"`
	NumberedRatio   float64 `json:"numbered_ratio"`
	HeaderRatio     float64 `json:"header_ratio"`
	CodeBlockCount  int     `json:"code_block_count"`
	EmphasisDensity float64 `json:"emphasis_density"`

	HapaxRatio     float64 `json:"hapax_ratio"`
	LexicalEntropy float64 `json:"lexical_entropy"`
	YuleK          float64 `json:"yule_k"`
	LexicalScore   float64 `json:"lexical_score"`

	// POS is nil when no tagger is available; absence of the signal is
	// distinct from zero values.
	POS *POSFeatures `json:"pos,omitempty"`
}

// Extractor computes stylometric features under a fixed threshold set.
type Extractor struct {
	th     config.Thresholds
	tagger POSTagger
}

// NewExtractor creates a stylometric extractor. tagger may be nil.
func NewExtractor(th config.Thresholds, tagger POSTagger) *Extractor {
	return &Extractor{th: th, tagger: tagger}
}

// Extract computes the feature vector over the author's texts. Returns nil if
// the cleaned corpus is below the minimum size.
func (e *Extractor) Extract(texts []string) *Features {
	cleanedItems := make([]string, 0, len(texts))
	codeBlocks := 0
	for _, t := range texts {
		cleaned, blocks := cleanText(t)
		codeBlocks += blocks
		if strings.TrimSpace(cleaned) != "" {
			cleanedItems = append(cleanedItems, cleaned)
		}
	}
	corpus := strings.Join(cleanedItems, "\n")

	words := tokenizeWords(corpus)
	if len(corpus) < e.th.StyleMinChars || len(words) < e.th.StyleMinWords {
		return nil
	}

	sentences := splitSentences(corpus)
	lengths := sentenceLengths(sentences)

	f := &Features{
		WordCount:      len(words),
		SentenceCount:  len(sentences),
		TextCount:      len(texts),
		CodeBlockCount: codeBlocks,
	}

	f.computeLexical(words)
	f.computeSentenceShape(lengths)
	f.computeNgrams(words)
	f.computePerplexity(words)
	f.FirstPersonRatio = firstPersonRatio(words)
	f.QuestionRatio = questionRatio(corpus, len(sentences))
	f.EmojiDensity = emojiDensity(texts)
	f.computeStructure(texts)

	if e.tagger != nil {
		f.POS = posFeatures(e.tagger, cleanedItems)
	}

	return f
}

// Rounded returns the ratio features rounded to 4 decimal places for stable
// stored output. Combination always uses the raw values.
func (f *Features) Rounded() map[string]float64 {
	round := func(x float64) float64 { return math.Round(x*10000) / 10000 }
	out := map[string]float64{
		"vocab_richness":         round(f.VocabRichness),
		"avg_sentence_length":    round(f.AvgSentenceLength),
		"sentence_cv":            round(f.SentenceCV),
		"burstiness":             round(f.Burstiness),
		"bigram_entropy":         round(f.BigramEntropy),
		"trigram_entropy":        round(f.TrigramEntropy),
		"word_repetition":        round(f.WordRepetition),
		"phrase_repetition":      round(f.PhraseRepetition),
		"long_phrase_repetition": round(f.LongPhraseRepetition),
		"perplexity_score":       round(f.PerplexityScore),
		"first_person_ratio":     round(f.FirstPersonRatio),
		"question_ratio":         round(f.QuestionRatio),
		"emoji_density":          round(f.EmojiDensity),
		"bullet_ratio":           round(f.BulletRatio),
		"numbered_ratio":         round(f.NumberedRatio),
		"header_ratio":           round(f.HeaderRatio),
		"emphasis_density":       round(f.EmphasisDensity),
		"hapax_ratio":            round(f.HapaxRatio),
		"lexical_entropy":        round(f.LexicalEntropy),
		"yule_k":                 round(f.YuleK),
		"lexical_score":          round(f.LexicalScore),
	}
	if f.POS != nil {
		out["pos_bigram_entropy"] = round(f.POS.BigramEntropy)
	}
	return out
}
