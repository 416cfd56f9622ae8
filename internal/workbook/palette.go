package workbook

import "github.com/jsondict/jsondict/internal/model"

// Fill colors applied by the styling pass. The type colors mark the
// inferred type of each documented field; the yes/no colors mark the
// required flag.
const (
	// ColorInt is yellow.
	ColorInt = "FFFF00"

	// ColorFloat is orange.
	ColorFloat = "FFA500"

	// ColorString is light blue.
	ColorString = "ADD8E6"

	// ColorList is light green.
	ColorList = "90EE90"

	// ColorDict is light gray.
	ColorDict = "D3D3D3"

	// ColorBool is pink.
	ColorBool = "FFC0CB"

	// ColorYes is the green fill of affirmative required flags.
	ColorYes = "00FF00"

	// ColorNo is the red fill of negative required flags.
	ColorNo = "FF0000"
)

// typeFills maps type names to fill colors. Null has no entry: unmapped
// names keep the unfilled base style.
var typeFills = map[string]string{
	model.TypeInt:    ColorInt,
	model.TypeFloat:  ColorFloat,
	model.TypeString: ColorString,
	model.TypeList:   ColorList,
	model.TypeDict:   ColorDict,
	model.TypeBool:   ColorBool,
}

// TypeFill returns the fill color for a type name and whether the name is
// mapped at all.
func TypeFill(typeName string) (string, bool) {
	color, ok := typeFills[typeName]
	return color, ok
}
