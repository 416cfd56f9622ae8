package flatten

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jsondict/jsondict/internal/model"
)

// Section flattens one top-level section value into flat records.
//
// Objects are walked recursively. A non-empty array stands in for its first
// element: the section documents the first element's shape and nothing else.
// Empty arrays and scalar sections produce no records, so they get no sheet.
// A non-empty array whose first element is not an object cannot be walked
// and fails the run.
func Section(value gjson.Result) ([]model.Record, error) {
	switch {
	case value.IsObject():
		return walk(value, nil), nil
	case value.IsArray():
		arr := value.Array()
		if len(arr) == 0 {
			return nil, nil
		}
		if first := arr[0]; first.IsObject() {
			return walk(first, nil), nil
		}
		return nil, fmt.Errorf("cannot flatten section: array's first element is %s, not an object", TypeName(arr[0]))
	default:
		return nil, nil
	}
}

// walk applies the traversal rules to one object, extending path with each
// key:
//
//   - object values are recursed into and emit no record of their own;
//   - a non-empty array is inspected through its first element only: an
//     object recurses under the same path (array indices never reach the
//     path), a string emits one "list" record exampled by that string, and
//     anything else emits nothing;
//   - empty arrays emit nothing;
//   - scalars emit one record typed and exampled by their value.
//
// Iteration follows the document's own key order.
func walk(obj gjson.Result, path []string) []model.Record {
	records := make([]model.Record, 0)
	obj.ForEach(func(key, value gjson.Result) bool {
		keyPath := extend(path, key.String())
		switch {
		case value.IsObject():
			records = append(records, walk(value, keyPath)...)
		case value.IsArray():
			arr := value.Array()
			if len(arr) == 0 {
				return true
			}
			switch first := arr[0]; {
			case first.IsObject():
				records = append(records, walk(first, keyPath)...)
			case first.Type == gjson.String:
				records = append(records, model.Record{
					KeyPath:  keyPath,
					TypeName: model.TypeList,
					Example:  first.String(),
				})
			}
		default:
			records = append(records, model.Record{
				KeyPath:  keyPath,
				TypeName: TypeName(value),
				Example:  Example(value),
			})
		}
		return true
	})
	return records
}

// TypeName classifies a JSON value under the fixed type-name set shared
// with the styling palette. Numbers split into "int" and "float" by their
// raw literal, matching how a decoder with distinct integer and float types
// would read them.
func TypeName(v gjson.Result) string {
	switch {
	case v.IsObject():
		return model.TypeDict
	case v.IsArray():
		return model.TypeList
	case v.Type == gjson.String:
		return model.TypeString
	case v.Type == gjson.Number:
		if isFloatLiteral(v.Raw) {
			return model.TypeFloat
		}
		return model.TypeInt
	case v.Type == gjson.True, v.Type == gjson.False:
		return model.TypeBool
	default:
		return model.TypeNull
	}
}

// Example extracts a scalar example value with its native Go type: string,
// int64, float64, bool, or nil for JSON null.
func Example(v gjson.Result) any {
	switch v.Type {
	case gjson.String:
		return v.String()
	case gjson.Number:
		if isFloatLiteral(v.Raw) {
			return v.Float()
		}
		return v.Int()
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// isFloatLiteral reports whether a raw JSON number literal denotes a
// fractional value: a mantissa dot or an exponent marker.
func isFloatLiteral(raw string) bool {
	return strings.ContainsAny(raw, ".eE")
}

// extend returns a fresh path slice with segment appended. Each record owns
// its path; recursion must not alias a shared backing array.
func extend(path []string, segment string) []string {
	keyPath := make([]string, 0, len(path)+1)
	keyPath = append(keyPath, path...)
	return append(keyPath, segment)
}
