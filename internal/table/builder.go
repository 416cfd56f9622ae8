package table

import (
	"sort"
	"strings"

	"github.com/jsondict/jsondict/internal/model"
)

// groupKeyWidth is how many leading level columns identify a row during
// deduplication.
const groupKeyWidth = 3

// Build transforms one section's flat records into a table ready to persist
// as a sheet. Level cells beyond a record's depth and the empty
// documentation cells are filled with the layout's placeholder; the
// required flag defaults to the affirmative token on every row. Rows
// sharing their leading key cells collapse to the first occurrence and the
// result is sorted by those cells. Sections with no records yield nil: they
// get no sheet.
func Build(name string, records []model.Record, layout Layout) *model.SectionTable {
	if len(records) == 0 {
		return nil
	}

	depth := 0
	for _, r := range records {
		if d := r.Depth(); d > depth {
			depth = d
		}
	}

	rows := make([]model.Row, 0, len(records))
	for _, r := range records {
		levels := make([]string, depth)
		for i := range levels {
			if i < len(r.KeyPath) {
				levels[i] = r.KeyPath[i]
			} else {
				levels[i] = layout.Placeholder
			}
		}

		// A null leaf has no example; it shows the placeholder.
		example := r.Example
		if example == nil {
			example = layout.Placeholder
		}

		rows = append(rows, model.Row{
			Levels:   levels,
			Example:  example,
			TypeName: r.TypeName,
			Docs: model.DocFields{
				Unit:         layout.Placeholder,
				Meaning:      layout.Placeholder,
				Required:     layout.RequiredYes,
				Observations: layout.Placeholder,
				MinBound:     layout.Placeholder,
				MaxBound:     layout.Placeholder,
			},
		})
	}

	return &model.SectionTable{
		Name:    name,
		Depth:   depth,
		Columns: layout.Headers(depth),
		Rows:    Dedup(rows, depth),
	}
}

// Dedup collapses rows sharing their leading key cells, keeping the first
// occurrence's values for every other cell, and returns the survivors
// sorted lexicographically by those key cells. The key spans the first
// three level columns, or all of them for shallower tables. Applying Dedup
// to its own output returns the same rows.
func Dedup(rows []model.Row, depth int) []model.Row {
	width := groupKeyWidth
	if depth < width {
		width = depth
	}

	seen := make(map[string]bool, len(rows))
	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		key := strings.Join(row.Levels[:width], "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		for k := 0; k < width; k++ {
			if out[i].Levels[k] != out[j].Levels[k] {
				return out[i].Levels[k] < out[j].Levels[k]
			}
		}
		return false
	})

	return out
}
