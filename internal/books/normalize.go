package books

import (
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/bookprep/internal/table"
)

// Normalizer maps a source table onto the fixed Book schema
type Normalizer struct {
	mapping Mapping
	synth   *Synthesizer
}

// NewNormalizer creates a normalizer. A nil synth gets a randomly seeded one.
func NewNormalizer(mapping Mapping, synth *Synthesizer) *Normalizer {
	if synth == nil {
		synth = NewSynthesizer(nil)
	}
	return &Normalizer{
		mapping: mapping,
		synth:   synth,
	}
}

// Normalize returns one Book per source row, in source order
func (n *Normalizer) Normalize(t *table.SourceTable) ([]Book, error) {
	resolved := n.mapping.Resolve(t)

	byTarget := make(map[string]Resolution, len(resolved))
	for _, r := range resolved {
		byTarget[r.Target] = r
		slog.Debug("Resolved field", "target", r.Target, "source", r.Source, "default", r.Default)
	}

	for _, target := range []string{"Title", "Author", "Genre", "Description", "CoverUrl"} {
		if _, ok := byTarget[target]; !ok {
			return nil, fmt.Errorf("mapping has no rule for %s", target)
		}
	}

	books := make([]Book, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		books = append(books, Book{
			Title:       byTarget["Title"].Value(t, row),
			Author:      byTarget["Author"].Value(t, row),
			ISBN:        n.synth.ISBN(),
			Genre:       byTarget["Genre"].Value(t, row),
			Description: byTarget["Description"].Value(t, row),
			CoverURL:    byTarget["CoverUrl"].Value(t, row),
			RentalPrice: n.synth.RentalPrice(),
			Copies:      n.synth.Copies(),
		})
	}

	return books, nil
}
