package model

import (
	"testing"
)

// TestRecordDepth tests Record.Depth.
func TestRecordDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record Record
		want   int
	}{
		{name: "single segment", record: Record{KeyPath: []string{"id"}}, want: 1},
		{name: "nested path", record: Record{KeyPath: []string{"user", "address", "zip"}}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.record.Depth(); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestRowCells verifies the fixed cell order used for sheet writing.
func TestRowCells(t *testing.T) {
	t.Parallel()

	row := Row{
		Levels:   []string{"user", "id", "---"},
		Example:  int64(42),
		TypeName: TypeInt,
		Docs: DocFields{
			Unit:         "---",
			Meaning:      "---",
			Required:     "SIM",
			Observations: "---",
			MinBound:     "---",
			MaxBound:     "---",
		},
	}

	cells := row.Cells()
	want := []any{"user", "id", "---", int64(42), TypeInt, "---", "---", "SIM", "---", "---", "---"}

	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(cells))
	}
	for i := range want {
		if cells[i] != want[i] {
			t.Errorf("cell %d: expected %v, got %v", i, want[i], cells[i])
		}
	}
}

// TestRowPath tests placeholder trimming in the drift path.
func TestRowPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		levels []string
		want   string
	}{
		{name: "full depth", levels: []string{"user", "address", "zip"}, want: "user.address.zip"},
		{name: "padded levels are trimmed", levels: []string{"user", "---", "---"}, want: "user"},
		{name: "single level", levels: []string{"id"}, want: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := Row{Levels: tt.levels}
			if got := row.Path("---"); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSectionTableFieldCount tests FieldCount.
func TestSectionTableFieldCount(t *testing.T) {
	t.Parallel()

	table := &SectionTable{
		Name: "user",
		Rows: []Row{{}, {}, {}},
	}
	if got := table.FieldCount(); got != 3 {
		t.Errorf("FieldCount() = %d, want 3", got)
	}
}

// TestDictionary tests the dictionary aggregate helpers.
func TestDictionary(t *testing.T) {
	t.Parallel()

	t.Run("NewDictionary stamps paths and time", func(t *testing.T) {
		t.Parallel()

		dict := NewDictionary("data/input_model.json", "data/input_model.xlsx")
		if dict.SourcePath != "data/input_model.json" {
			t.Errorf("unexpected source path %q", dict.SourcePath)
		}
		if dict.OutputPath != "data/input_model.xlsx" {
			t.Errorf("unexpected output path %q", dict.OutputPath)
		}
		if dict.GeneratedAt.IsZero() {
			t.Error("expected GeneratedAt to be set")
		}
		if dict.Tables == nil {
			t.Error("expected Tables to be initialized")
		}
	})

	t.Run("AddTable and counts", func(t *testing.T) {
		t.Parallel()

		dict := NewDictionary("a.json", "a.xlsx")
		dict.AddTable(&SectionTable{Name: "user", Rows: []Row{{}, {}}})
		dict.AddTable(&SectionTable{Name: "order", Rows: []Row{{}}})

		if got := dict.SectionCount(); got != 2 {
			t.Errorf("SectionCount() = %d, want 2", got)
		}
		if got := dict.FieldCount(); got != 3 {
			t.Errorf("FieldCount() = %d, want 3", got)
		}
	})

	t.Run("Table lookup", func(t *testing.T) {
		t.Parallel()

		dict := NewDictionary("a.json", "a.xlsx")
		dict.AddTable(&SectionTable{Name: "user"})

		if dict.Table("user") == nil {
			t.Error("expected to find table user")
		}
		if dict.Table("missing") != nil {
			t.Error("expected nil for missing table")
		}
	})

	t.Run("AddIndexEntry keeps order", func(t *testing.T) {
		t.Parallel()

		dict := NewDictionary("a.json", "a.xlsx")
		dict.AddIndexEntry("zebra", TypeDict)
		dict.AddIndexEntry("alpha", TypeList)
		dict.AddIndexEntry("note", TypeString)

		if len(dict.Index) != 3 {
			t.Fatalf("expected 3 index entries, got %d", len(dict.Index))
		}
		if dict.Index[0].Key != "zebra" || dict.Index[2].Key != "note" {
			t.Errorf("index order not preserved: %v", dict.Index)
		}
		if dict.Index[1].TypeName != TypeList {
			t.Errorf("expected list type, got %q", dict.Index[1].TypeName)
		}
	})
}
