package stylometry

import (
	"math"
	"strings"
)

// POSTagger tags a text with Penn Treebank part-of-speech tags. Implemented
// by the prose adapter; nil when the capability is disabled.
type POSTagger interface {
	Tag(text string) ([]string, error)
}

// POSFeatures holds part-of-speech patterning features. The six bigram
// ratios cover transitions that separate templated from spontaneous prose.
type POSFeatures struct {
	BigramRatios  map[string]float64 `json:"bigram_ratios"`
	ClassRatios   map[string]float64 `json:"class_ratios"`
	BigramEntropy float64            `json:"bigram_entropy"`
}

// tagClass folds Penn Treebank tags into coarse word classes.
func tagClass(tag string) string {
	switch {
	case strings.HasPrefix(tag, "NN"):
		return "noun"
	case strings.HasPrefix(tag, "VB"):
		return "verb"
	case strings.HasPrefix(tag, "JJ"):
		return "adj"
	case strings.HasPrefix(tag, "RB"):
		return "adv"
	case tag == "DT":
		return "det"
	case tag == "IN":
		return "prep"
	case strings.HasPrefix(tag, "PRP"):
		return "pron"
	default:
		return "other"
	}
}

var keyBigrams = map[string][2]string{
	"noun_verb": {"noun", "verb"},
	"adj_noun":  {"adj", "noun"},
	"verb_adv":  {"verb", "adv"},
	"det_noun":  {"det", "noun"},
	"prep_det":  {"prep", "det"},
	"pron_verb": {"pron", "verb"},
}

// posFeatures tags each text and aggregates class-level bigram statistics.
// A tagger error on one text skips that text; a fully failed pass returns nil.
func posFeatures(tagger POSTagger, texts []string) *POSFeatures {
	var classes []string
	for _, t := range texts {
		tags, err := tagger.Tag(t)
		if err != nil {
			continue
		}
		for _, tag := range tags {
			classes = append(classes, tagClass(tag))
		}
	}
	if len(classes) < 2 {
		return nil
	}

	classCounts := make(map[string]int)
	for _, c := range classes {
		classCounts[c]++
	}

	bigramCounts := make(map[string]int)
	for i := 0; i+1 < len(classes); i++ {
		bigramCounts[classes[i]+">"+classes[i+1]]++
	}
	totalBigrams := float64(len(classes) - 1)

	f := &POSFeatures{
		BigramRatios: make(map[string]float64, len(keyBigrams)),
		ClassRatios:  make(map[string]float64, len(classCounts)),
	}

	n := float64(len(classes))
	for class, count := range classCounts {
		f.ClassRatios[class] = float64(count) / n
	}
	for name, pair := range keyBigrams {
		f.BigramRatios[name] = float64(bigramCounts[pair[0]+">"+pair[1]]) / totalBigrams
	}

	var entropy float64
	for _, c := range bigramCounts {
		p := float64(c) / totalBigrams
		entropy -= p * math.Log2(p)
	}
	if len(bigramCounts) > 1 {
		f.BigramEntropy = entropy / math.Log2(float64(len(bigramCounts)))
	}

	return f
}
