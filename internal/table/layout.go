package table

import (
	"fmt"
	"strings"
)

// FixedLevelCount is how many key-depth columns have fixed human labels.
// Deeper columns keep their generic rank names.
const FixedLevelCount = 6

// Layout holds every text label written into generated sheets. The labels
// are a contract with the humans who fill the dictionary in; defaults are
// the conventional Portuguese set and any of them can be overridden from
// the configuration file.
type Layout struct {
	// LevelLabels names the first six key-depth columns, shallowest first.
	LevelLabels []string

	// GenericLevelFormat is the printf format for key columns deeper than
	// the fixed six, with one %d verb for the rank.
	GenericLevelFormat string

	// Example is the example-value column header.
	Example string

	// Type is the type-name column header.
	Type string

	// Unit is the unit column header.
	Unit string

	// Meaning is the meaning column header.
	Meaning string

	// Required is the required-flag column header.
	Required string

	// Observations is the observations column header.
	Observations string

	// MinBound is the minimum-bound column header.
	MinBound string

	// MaxBound is the maximum-bound column header.
	MaxBound string

	// RequiredYes is the affirmative required token, written on every
	// generated row and colored green by the styler.
	RequiredYes string

	// RequiredNo is the negative required token, colored red by the styler.
	RequiredNo string

	// Placeholder fills empty cells.
	Placeholder string

	// KeyPrefix identifies key columns by header prefix during styling.
	KeyPrefix string

	// IndexSheet is the index sheet name.
	IndexSheet string

	// IndexKey is the key column header on the index sheet.
	IndexKey string
}

// DefaultLayout returns the conventional Portuguese labels.
func DefaultLayout() Layout {
	return Layout{
		LevelLabels: []string{
			"Chave primária",
			"Chave secundária",
			"Chave terciária",
			"Chave quaternária",
			"Chave quinária",
			"Chave senária",
		},
		GenericLevelFormat: "Chave nível %d",
		Example:            "Exemplo",
		Type:               "Tipo",
		Unit:               "Unidade",
		Meaning:            "Significado",
		Required:           "Obrigatório",
		Observations:       "Observações",
		MinBound:           "Limite Mínimo",
		MaxBound:           "Limite Máximo",
		RequiredYes:        "SIM",
		RequiredNo:         "NÃO",
		Placeholder:        "---",
		KeyPrefix:          "Chave",
		IndexSheet:         "Chaves Principais",
		IndexKey:           "Chave",
	}
}

// LevelLabel returns the header for one key-depth rank (1-based). Ranks
// beyond the fixed labels use the generic rank format.
func (l Layout) LevelLabel(rank int) string {
	if rank >= 1 && rank <= len(l.LevelLabels) {
		return l.LevelLabels[rank-1]
	}
	return fmt.Sprintf(l.GenericLevelFormat, rank)
}

// Headers returns the ordered column headers for a section table of the
// given depth: the level columns by ascending rank, then example, type,
// unit, meaning, required flag, observations, and the two bounds.
func (l Layout) Headers(depth int) []string {
	headers := make([]string, 0, depth+8)
	for rank := 1; rank <= depth; rank++ {
		headers = append(headers, l.LevelLabel(rank))
	}
	return append(headers,
		l.Example,
		l.Type,
		l.Unit,
		l.Meaning,
		l.Required,
		l.Observations,
		l.MinBound,
		l.MaxBound,
	)
}

// IndexHeaders returns the index sheet's column headers.
func (l Layout) IndexHeaders() []string {
	return []string{l.IndexKey, l.Type}
}

// IsKeyColumn reports whether a header names a key column, which gets
// vertical run merging during styling.
func (l Layout) IsKeyColumn(header string) bool {
	return strings.HasPrefix(header, l.KeyPrefix)
}
