package model

// Type names assigned to flattened values. The names double as the fixed
// keys of the styling palette, so they stay short and stable.
const (
	// TypeString marks string leaves.
	TypeString = "str"

	// TypeInt marks whole-number leaves (no mantissa dot or exponent in the
	// JSON literal).
	TypeInt = "int"

	// TypeFloat marks fractional or exponent-notation number leaves.
	TypeFloat = "float"

	// TypeBool marks boolean leaves.
	TypeBool = "bool"

	// TypeList marks arrays. A flattened record only carries it for the
	// list-of-strings rule; index entries carry it for any top-level array.
	TypeList = "list"

	// TypeDict marks objects. Flattened records never carry it (objects are
	// recursed into); index entries carry it for top-level objects.
	TypeDict = "dict"

	// TypeNull marks JSON null leaves.
	TypeNull = "null"
)

// Record is one flattened schema field: the path of keys that reaches a
// documentable leaf, the leaf's inferred type name, and an example value
// taken from the document. Records are transient; they only live long
// enough to build a SectionTable.
type Record struct {
	// KeyPath is the ordered key segments from the section root to the
	// leaf. Never empty. Array indices are not part of the path.
	KeyPath []string `json:"key_path"`

	// TypeName is one of the Type* constants.
	TypeName string `json:"type_name"`

	// Example is the leaf value encountered in the document: string, int64,
	// float64, bool, or nil for JSON null. For the list-of-strings rule it
	// is the array's first string element.
	Example any `json:"example"`
}

// Depth returns the number of key segments in the record's path.
func (r Record) Depth() int {
	return len(r.KeyPath)
}
