package flatten

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/jsondict/jsondict/internal/model"
)

// section parses src and returns its records, failing the test on error.
func section(t *testing.T, src string) []model.Record {
	t.Helper()
	records, err := Section(gjson.Parse(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return records
}

// pathOf joins a record's key path for compact assertions.
func pathOf(r model.Record) string {
	return strings.Join(r.KeyPath, ".")
}

// TestSectionObjects tests recursive flattening of plain objects.
func TestSectionObjects(t *testing.T) {
	t.Parallel()

	t.Run("record count equals scalar leaves for list-free objects", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{
			"id": 1,
			"name": "box",
			"dims": {"w": 10.5, "h": 2, "deep": {"unit": "cm"}}
		}`)

		if len(records) != 5 {
			t.Fatalf("expected 5 records, got %d", len(records))
		}
	})

	t.Run("paths and order follow the document", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"z": 1, "a": {"b": 2, "c": 3}, "m": 4}`)

		want := []string{"z", "a.b", "a.c", "m"}
		if len(records) != len(want) {
			t.Fatalf("expected %d records, got %d", len(want), len(records))
		}
		for i, w := range want {
			if got := pathOf(records[i]); got != w {
				t.Errorf("record %d: expected path %q, got %q", i, w, got)
			}
		}
	})

	t.Run("every record has a non-empty path and a known type name", func(t *testing.T) {
		t.Parallel()

		known := map[string]bool{
			model.TypeString: true,
			model.TypeInt:    true,
			model.TypeFloat:  true,
			model.TypeBool:   true,
			model.TypeList:   true,
			model.TypeDict:   true,
			model.TypeNull:   true,
		}

		records := section(t, `{
			"s": "x", "i": 7, "f": 1.25, "b": true, "n": null,
			"tags": ["a", "b"],
			"nested": {"deep": {"leaf": false}}
		}`)

		for _, r := range records {
			if len(r.KeyPath) == 0 {
				t.Error("record with empty key path")
			}
			if !known[r.TypeName] {
				t.Errorf("record %q has unknown type name %q", pathOf(r), r.TypeName)
			}
		}
	})

	t.Run("empty objects produce no records", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"empty": {}, "nested": {"also": {}}}`)
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})
}

// TestSectionArrays tests the first-element-only array rules.
func TestSectionArrays(t *testing.T) {
	t.Parallel()

	t.Run("array of objects recurses under the same path", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"items": [{"id": 1}, {"id": 2}]}`)

		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		r := records[0]
		if got := pathOf(r); got != "items.id" {
			t.Errorf("expected path items.id, got %q", got)
		}
		if r.TypeName != model.TypeInt {
			t.Errorf("expected type int, got %q", r.TypeName)
		}
		if r.Example != int64(1) {
			t.Errorf("expected example 1 from the first element, got %v", r.Example)
		}
	})

	t.Run("array of strings emits one list record with the first string", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"tags": ["x", "y", "z"]}`)

		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		r := records[0]
		if r.TypeName != model.TypeList {
			t.Errorf("expected type list, got %q", r.TypeName)
		}
		if r.Example != "x" {
			t.Errorf("expected example \"x\", got %v", r.Example)
		}
	})

	t.Run("array with number first element emits nothing", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"values": [1, 2, 3]}`)
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("array with nested array first element emits nothing", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"matrix": [[1, 2], [3, 4]]}`)
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("empty array emits nothing", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"values": []}`)
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("only the first element's shape is documented", func(t *testing.T) {
		t.Parallel()

		records := section(t, `{"items": [{"id": 1}, {"id": 2, "extra": "unseen"}]}`)

		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if got := pathOf(records[0]); got != "items.id" {
			t.Errorf("expected only items.id, got %q", got)
		}
	})
}

// TestSectionDispatch tests the top-level section rules.
func TestSectionDispatch(t *testing.T) {
	t.Parallel()

	t.Run("section array of objects walks the first element", func(t *testing.T) {
		t.Parallel()

		records, err := Section(gjson.Parse(`[{"id": 1}, {"id": 2}]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || pathOf(records[0]) != "id" {
			t.Errorf("expected single id record, got %v", records)
		}
	})

	t.Run("empty section array produces no records", func(t *testing.T) {
		t.Parallel()

		records, err := Section(gjson.Parse(`[]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("scalar section produces no records", func(t *testing.T) {
		t.Parallel()

		records, err := Section(gjson.Parse(`"note"`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected no records, got %v", records)
		}
	})

	t.Run("section array of strings fails", func(t *testing.T) {
		t.Parallel()

		_, err := Section(gjson.Parse(`["a", "b"]`))
		if err == nil {
			t.Error("expected error for array of strings at section level")
		}
	})
}

// TestTypeName tests the type classification, including the raw-literal
// int/float split.
func TestTypeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "string", json: `{"v": "x"}`, want: model.TypeString},
		{name: "dotless number is int", json: `{"v": 5}`, want: model.TypeInt},
		{name: "negative int", json: `{"v": -12}`, want: model.TypeInt},
		{name: "decimal number is float", json: `{"v": 1.5}`, want: model.TypeFloat},
		{name: "trailing zero decimal is float", json: `{"v": 2.0}`, want: model.TypeFloat},
		{name: "exponent notation is float", json: `{"v": 1e3}`, want: model.TypeFloat},
		{name: "uppercase exponent is float", json: `{"v": 2E2}`, want: model.TypeFloat},
		{name: "true is bool", json: `{"v": true}`, want: model.TypeBool},
		{name: "false is bool", json: `{"v": false}`, want: model.TypeBool},
		{name: "null", json: `{"v": null}`, want: model.TypeNull},
		{name: "object is dict", json: `{"v": {"a": 1}}`, want: model.TypeDict},
		{name: "array is list", json: `{"v": [1]}`, want: model.TypeList},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := gjson.Parse(tt.json).Get("v")
			if got := TypeName(v); got != tt.want {
				t.Errorf("TypeName(%s) = %q, want %q", tt.json, got, tt.want)
			}
		})
	}
}

// TestExample tests native-type example extraction.
func TestExample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want any
	}{
		{name: "string", json: `{"v": "hi"}`, want: "hi"},
		{name: "int as int64", json: `{"v": 42}`, want: int64(42)},
		{name: "float as float64", json: `{"v": 1.5}`, want: 1.5},
		{name: "exponent as float64", json: `{"v": 1e3}`, want: 1000.0},
		{name: "bool", json: `{"v": true}`, want: true},
		{name: "null is nil", json: `{"v": null}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := gjson.Parse(tt.json).Get("v")
			if got := Example(v); got != tt.want {
				t.Errorf("Example(%s) = %v (%T), want %v (%T)", tt.json, got, got, tt.want, tt.want)
			}
		})
	}
}
