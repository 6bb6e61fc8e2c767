package stylometry

import (
	prose "github.com/jdkato/prose/v2"
)

// ProseTagger tags text with prose's Penn Treebank model.
type ProseTagger struct{}

// NewProseTagger returns the prose-backed tagger.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag returns the tag sequence for text.
func (p *ProseTagger) Tag(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}
	toks := doc.Tokens()
	tags := make([]string, 0, len(toks))
	for _, tok := range toks {
		tags = append(tags, tok.Tag)
	}
	return tags, nil
}
