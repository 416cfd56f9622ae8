package table

import (
	"reflect"
	"testing"

	"github.com/jsondict/jsondict/internal/model"
)

// record builds a test record from a dotted path.
func record(path []string, typeName string, example any) model.Record {
	return model.Record{KeyPath: path, TypeName: typeName, Example: example}
}

// TestBuildHeaders tests column naming and ordering.
func TestBuildHeaders(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()

	t.Run("depth one uses the primary key label", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"id"}, model.TypeInt, int64(1)),
		}, layout)

		want := []string{
			"Chave primária",
			"Exemplo", "Tipo", "Unidade", "Significado",
			"Obrigatório", "Observações", "Limite Mínimo", "Limite Máximo",
		}
		if !reflect.DeepEqual(table.Columns, want) {
			t.Errorf("columns = %v, want %v", table.Columns, want)
		}
	})

	t.Run("six fixed labels then generic rank names", func(t *testing.T) {
		t.Parallel()

		deep := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
		table := Build("deep", []model.Record{
			record(deep, model.TypeString, "v"),
		}, layout)

		wantLevels := []string{
			"Chave primária", "Chave secundária", "Chave terciária",
			"Chave quaternária", "Chave quinária", "Chave senária",
			"Chave nível 7", "Chave nível 8",
		}
		if !reflect.DeepEqual(table.Columns[:8], wantLevels) {
			t.Errorf("level columns = %v, want %v", table.Columns[:8], wantLevels)
		}
		if table.Depth != 8 {
			t.Errorf("depth = %d, want 8", table.Depth)
		}
	})

	t.Run("depth is the deepest record", func(t *testing.T) {
		t.Parallel()

		table := Build("mixed", []model.Record{
			record([]string{"a"}, model.TypeInt, int64(1)),
			record([]string{"b", "c", "d"}, model.TypeString, "x"),
		}, layout)

		if table.Depth != 3 {
			t.Errorf("depth = %d, want 3", table.Depth)
		}
		if len(table.Columns) != 3+8 {
			t.Errorf("expected 11 columns, got %d", len(table.Columns))
		}
	})
}

// TestBuildRows tests placeholder padding and documentation defaults.
func TestBuildRows(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()

	t.Run("shallow rows pad deeper levels with the placeholder", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"id"}, model.TypeInt, int64(1)),
			record([]string{"address", "city", "zip"}, model.TypeString, "123"),
		}, layout)

		row := findRow(t, table, "id")
		want := []string{"id", "---", "---"}
		if !reflect.DeepEqual(row.Levels, want) {
			t.Errorf("levels = %v, want %v", row.Levels, want)
		}
	})

	t.Run("documentation cells default to placeholder and required to SIM", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"id"}, model.TypeInt, int64(7)),
		}, layout)

		row := table.Rows[0]
		if row.Docs.Required != "SIM" {
			t.Errorf("required = %q, want SIM", row.Docs.Required)
		}
		for name, got := range map[string]string{
			"unit":         row.Docs.Unit,
			"meaning":      row.Docs.Meaning,
			"observations": row.Docs.Observations,
			"min":          row.Docs.MinBound,
			"max":          row.Docs.MaxBound,
		} {
			if got != "---" {
				t.Errorf("%s = %q, want placeholder", name, got)
			}
		}
	})

	t.Run("example keeps its native type", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"score"}, model.TypeFloat, 1.5),
		}, layout)

		if table.Rows[0].Example != 1.5 {
			t.Errorf("example = %v (%T), want 1.5 (float64)",
				table.Rows[0].Example, table.Rows[0].Example)
		}
	})

	t.Run("null example becomes the placeholder", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"ghost"}, model.TypeNull, nil),
		}, layout)

		if table.Rows[0].Example != "---" {
			t.Errorf("example = %v, want placeholder", table.Rows[0].Example)
		}
	})

	t.Run("no records yields no table", func(t *testing.T) {
		t.Parallel()

		if table := Build("empty", nil, layout); table != nil {
			t.Errorf("expected nil table, got %v", table)
		}
	})
}

// TestDedup tests the leading-key grouping contract.
func TestDedup(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()

	t.Run("first occurrence wins for identical leading keys", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"a", "b", "c", "d1"}, model.TypeInt, int64(1)),
			record([]string{"a", "b", "c", "d2"}, model.TypeString, "later"),
		}, layout)

		if len(table.Rows) != 1 {
			t.Fatalf("expected 1 row after dedup, got %d", len(table.Rows))
		}
		row := table.Rows[0]
		if row.Example != int64(1) || row.TypeName != model.TypeInt {
			t.Errorf("expected first occurrence to win, got %v %q", row.Example, row.TypeName)
		}
		if row.Levels[3] != "d1" {
			t.Errorf("expected first row's deeper cells, got %q", row.Levels[3])
		}
	})

	t.Run("distinct leading keys survive", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"a", "b", "c1"}, model.TypeInt, int64(1)),
			record([]string{"a", "b", "c2"}, model.TypeInt, int64(2)),
		}, layout)

		if len(table.Rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(table.Rows))
		}
	})

	t.Run("rows come out sorted by their key cells", func(t *testing.T) {
		t.Parallel()

		table := Build("user", []model.Record{
			record([]string{"zebra"}, model.TypeInt, int64(1)),
			record([]string{"alpha"}, model.TypeInt, int64(2)),
			record([]string{"mike"}, model.TypeInt, int64(3)),
		}, layout)

		got := []string{table.Rows[0].Levels[0], table.Rows[1].Levels[0], table.Rows[2].Levels[0]}
		want := []string{"alpha", "mike", "zebra"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("row order = %v, want %v", got, want)
		}
	})

	t.Run("padded placeholders participate in the key", func(t *testing.T) {
		t.Parallel()

		// Both records pad to ("a", "---", "---") and collapse.
		table := Build("user", []model.Record{
			record([]string{"a"}, model.TypeInt, int64(1)),
			record([]string{"a"}, model.TypeString, "dup"),
			record([]string{"a", "b", "c"}, model.TypeInt, int64(3)),
		}, layout)

		if len(table.Rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(table.Rows))
		}
	})

	t.Run("dedup is idempotent", func(t *testing.T) {
		t.Parallel()

		rows := []model.Row{
			{Levels: []string{"b", "x", "---"}, Example: int64(1)},
			{Levels: []string{"a", "y", "---"}, Example: int64(2)},
			{Levels: []string{"b", "x", "---"}, Example: int64(3)},
		}

		once := Dedup(rows, 3)
		twice := Dedup(once, 3)

		if !reflect.DeepEqual(once, twice) {
			t.Errorf("dedup not idempotent:\nonce:  %v\ntwice: %v", once, twice)
		}
	})
}

// TestLayoutHelpers tests label lookups shared with the workbook writer.
func TestLayoutHelpers(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()

	t.Run("LevelLabel covers fixed and generic ranks", func(t *testing.T) {
		t.Parallel()

		if got := layout.LevelLabel(1); got != "Chave primária" {
			t.Errorf("rank 1 = %q", got)
		}
		if got := layout.LevelLabel(6); got != "Chave senária" {
			t.Errorf("rank 6 = %q", got)
		}
		if got := layout.LevelLabel(7); got != "Chave nível 7" {
			t.Errorf("rank 7 = %q", got)
		}
	})

	t.Run("IndexHeaders lists key and type", func(t *testing.T) {
		t.Parallel()

		want := []string{"Chave", "Tipo"}
		if got := layout.IndexHeaders(); !reflect.DeepEqual(got, want) {
			t.Errorf("IndexHeaders() = %v, want %v", got, want)
		}
	})

	t.Run("IsKeyColumn matches level headers and not fixed ones", func(t *testing.T) {
		t.Parallel()

		for _, header := range []string{"Chave primária", "Chave nível 9", "Chave"} {
			if !layout.IsKeyColumn(header) {
				t.Errorf("expected %q to be a key column", header)
			}
		}
		for _, header := range []string{"Tipo", "Exemplo", "Obrigatório"} {
			if layout.IsKeyColumn(header) {
				t.Errorf("expected %q not to be a key column", header)
			}
		}
	})
}

// findRow returns the first row whose primary key cell equals key.
func findRow(t *testing.T, table *model.SectionTable, key string) model.Row {
	t.Helper()
	for _, row := range table.Rows {
		if row.Levels[0] == key {
			return row
		}
	}
	t.Fatalf("row %q not found", key)
	return model.Row{}
}
