package stylometry

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

func (f *Features) computeLexical(words []string) {
	counts := make(map[string]int, len(words))
	var totalLen int
	for _, w := range words {
		counts[w]++
		totalLen += len(w)
	}
	n := float64(len(words))
	distinct := float64(len(counts))

	f.VocabRichness = distinct / n
	f.AvgWordLength = float64(totalLen) / n
	f.WordRepetition = 1 - f.VocabRichness

	// Hapax ratio: share of distinct words used exactly once.
	var hapax int
	freqSpectrum := make(map[int]int)
	var entropy float64
	for _, c := range counts {
		if c == 1 {
			hapax++
		}
		freqSpectrum[c]++
		p := float64(c) / n
		entropy -= p * math.Log2(p)
	}
	f.HapaxRatio = float64(hapax) / distinct
	if distinct > 1 {
		f.LexicalEntropy = entropy / math.Log2(distinct)
	}

	// Yule's K: repeat-rate measure, higher for repetitive vocabularies.
	var m2 float64
	for freq, vm := range freqSpectrum {
		m2 += float64(vm) * float64(freq) * float64(freq)
	}
	f.YuleK = 1e4 * (m2 - n) / (n * n)

	f.LexicalScore = clamp01(0.4*f.VocabRichness + 0.3*f.LexicalEntropy + 0.3*f.HapaxRatio)
}

func (f *Features) computeSentenceShape(lengths []float64) {
	if len(lengths) == 0 {
		return
	}
	mean := stat.Mean(lengths, nil)
	std := math.Sqrt(stat.PopVariance(lengths, nil))

	f.AvgSentenceLength = mean
	f.SentenceLengthStd = std
	if mean > 0 {
		f.SentenceCV = std / mean
	}
	if std+mean > 0 {
		f.Burstiness = (std - mean) / (std + mean)
	}
}

func (f *Features) computeNgrams(words []string) {
	f.BigramEntropy = ngramEntropy(words, 2)
	f.TrigramEntropy = ngramEntropy(words, 3)
	f.PhraseRepetition = ngramRepetition(words, 3)
	f.LongPhraseRepetition = ngramRepetition(words, 4)
}

// ngramEntropy is the Shannon entropy of the n-gram distribution normalized
// by log2 of the distinct n-gram count.
func ngramEntropy(words []string, n int) float64 {
	counts := ngramCounts(words, n)
	total := len(words) - n + 1
	if len(counts) <= 1 || total <= 0 {
		return 0
	}
	var entropy float64
	for _, c := range counts {
		p := float64(c) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(float64(len(counts)))
}

// ngramRepetition is the fraction of distinct n-grams that occur more than once.
func ngramRepetition(words []string, n int) float64 {
	counts := ngramCounts(words, n)
	if len(counts) == 0 {
		return 0
	}
	var repeated int
	for _, c := range counts {
		if c > 1 {
			repeated++
		}
	}
	return float64(repeated) / float64(len(counts))
}

func ngramCounts(words []string, n int) map[string]int {
	if len(words) < n {
		return nil
	}
	counts := make(map[string]int)
	for i := 0; i+n <= len(words); i++ {
		counts[strings.Join(words[i:i+n], " ")]++
	}
	return counts
}

// computePerplexity approximates text predictability via add-one-smoothed
// unigram cross-entropy. The raw perplexity is log-rescaled so the observed
// range (roughly 8 to 1024) maps onto [0,1].
func (f *Features) computePerplexity(words []string) {
	if len(words) < 20 {
		f.PerplexityScore = 0.5
		return
	}
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	n := float64(len(words))
	v := float64(len(counts))

	var crossEntropy float64
	for _, w := range words {
		p := (float64(counts[w]) + 1) / (n + v)
		crossEntropy -= math.Log2(p)
	}
	crossEntropy /= n

	f.Perplexity = math.Pow(2, crossEntropy)
	f.PerplexityScore = clamp01((math.Log2(f.Perplexity) - 3) / 7)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
