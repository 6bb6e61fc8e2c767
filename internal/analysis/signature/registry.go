// Package signature attributes an author's writing to a model family by
// matching marker phrases, opening-line patterns, and stylometric ranges
// against per-family fingerprints. Attribution is independent of the
// human/machine verdict: a confident family match is still only a style
// resemblance.
package signature

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed signatures.yaml
var signaturesYAML []byte

// StyleRange is an inclusive [min, max] band for one stylometric feature.
type StyleRange struct {
	Min float64
	Max float64
}

// UnmarshalYAML accepts the two-element list form used in signatures.yaml.
func (r *StyleRange) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("style range needs exactly 2 values, got %d", len(pair))
	}
	if pair[0] > pair[1] {
		return fmt.Errorf("style range min %v exceeds max %v", pair[0], pair[1])
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// Signature is one family's fingerprint as loaded from signatures.yaml.
type Signature struct {
	OpeningPatterns []string              `yaml:"opening_patterns"`
	Markers         []string              `yaml:"markers"`
	NegativeMarkers []string              `yaml:"negative_markers"`
	Style           map[string]StyleRange `yaml:"style"`

	openings []*regexp.Regexp
}

// Registry holds the compiled family signatures in stable name order.
type Registry struct {
	families map[string]*Signature
	names    []string
}

// LoadRegistry parses and compiles the embedded signature set.
func LoadRegistry() (*Registry, error) {
	families := make(map[string]*Signature)
	if err := yaml.Unmarshal(signaturesYAML, &families); err != nil {
		return nil, fmt.Errorf("parse signatures: %w", err)
	}

	names := make([]string, 0, len(families))
	for name, sig := range families {
		sig.openings = make([]*regexp.Regexp, 0, len(sig.OpeningPatterns))
		for _, p := range sig.OpeningPatterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("family %s: compile %q: %w", name, p, err)
			}
			sig.openings = append(sig.openings, re)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Registry{families: families, names: names}, nil
}

// Families returns the family names in sorted order.
func (r *Registry) Families() []string {
	return r.names
}
