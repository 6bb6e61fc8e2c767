package stylometry

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	urlRe        = regexp.MustCompile(`https?://\S+`)
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
)

// cleanText strips fenced code blocks, inline code spans, and URLs before
// tokenization. Returns the cleaned text and the fenced block count.
func cleanText(text string) (string, int) {
	blocks := len(fencedCodeRe.FindAllString(text, -1))
	cleaned := fencedCodeRe.ReplaceAllString(text, " ")
	cleaned = inlineCodeRe.ReplaceAllString(cleaned, " ")
	cleaned = urlRe.ReplaceAllString(cleaned, " ")
	return cleaned, blocks
}

// CleanCorpus joins the texts after stripping code and URLs. Consumers that
// scan for marker phrases use this so they see the same corpus the feature
// extraction sees.
func CleanCorpus(texts []string) string {
	cleaned := make([]string, 0, len(texts))
	for _, t := range texts {
		c, _ := cleanText(t)
		if strings.TrimSpace(c) != "" {
			cleaned = append(cleaned, c)
		}
	}
	return strings.Join(cleaned, "\n")
}

// tokenizeWords lowercases and splits into contiguous alphanumeric runs.
func tokenizeWords(text string) []string {
	var words []string
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			words = append(words, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		words = append(words, b.String())
	}
	return words
}

// splitSentences splits on sentence punctuation runs and keeps fragments
// longer than 3 characters.
func splitSentences(text string) []string {
	parts := sentenceRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); len(s) > 3 {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// sentenceLengths returns per-sentence word counts.
func sentenceLengths(sentences []string) []float64 {
	lengths := make([]float64, len(sentences))
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
	}
	return lengths
}

var firstPersonWords = map[string]bool{
	"i": true, "me": true, "my": true, "mine": true, "myself": true,
	"we": true, "our": true, "ours": true, "us": true,
}

func firstPersonRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	var n int
	for _, w := range words {
		if firstPersonWords[w] {
			n++
		}
	}
	return float64(n) / float64(len(words))
}

func questionRatio(text string, sentenceCount int) float64 {
	if sentenceCount == 0 {
		return 0
	}
	r := float64(strings.Count(text, "?")) / float64(sentenceCount)
	if r > 1 {
		r = 1
	}
	return r
}
