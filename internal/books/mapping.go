package books

import (
	"github.com/lehigh-university-libraries/bookprep/internal/table"
)

// FieldRule describes how one output field is filled from a source table.
// Candidates are tried in order and the first column present wins.
// With no hit, Positional falls back to the first column of the table,
// otherwise Default is used.
type FieldRule struct {
	Target     string
	Candidates []string
	Positional bool
	Default    string
}

// Mapping is an ordered set of rules, one per copied output field
type Mapping []FieldRule

// DefaultMapping resolves the best-books style datasets
// (Book, Author, Description, Genres, Avg_Rating, Num_Ratings, URL).
var DefaultMapping = Mapping{
	{Target: "Title", Candidates: []string{"Book"}, Positional: true},
	{Target: "Author", Candidates: []string{"Author"}, Default: DefaultAuthor},
	{Target: "Genre", Candidates: []string{"Genres", "Genre"}, Default: DefaultGenre},
	{Target: "Description", Candidates: []string{"Description"}, Default: DefaultDescription},
	{Target: "CoverUrl", Candidates: []string{"ImgUrl", "image_url", "cover", "URL", "image"}, Default: PlaceholderCover},
}

// Resolution records which source column feeds a target field.
// Index is -1 when no column was found and Default applies to every row.
type Resolution struct {
	Target  string `json:"target" yaml:"target"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Index   int    `json:"-" yaml:"-"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Resolve decides, once per table, the source column of every rule
func (m Mapping) Resolve(t *table.SourceTable) []Resolution {
	resolved := make([]Resolution, 0, len(m))
	for _, rule := range m {
		r := Resolution{Target: rule.Target, Index: -1, Default: rule.Default}
		for _, c := range rule.Candidates {
			if idx := t.Index(c); idx >= 0 {
				r.Source, r.Index = c, idx
				break
			}
		}
		if r.Index < 0 && rule.Positional && len(t.Columns) > 0 {
			r.Source, r.Index = t.Columns[0], 0
		}
		resolved = append(resolved, r)
	}
	return resolved
}

// Value returns the resolved cell for row, or the default when the cell is missing
func (r Resolution) Value(t *table.SourceTable, row int) string {
	if v := t.Cell(row, r.Index); v != "" {
		return v
	}
	return r.Default
}
