package config

// SourceConfig holds per-input-file configuration, keyed by the file's base
// name in the configuration file. It lets one config file drive a mixed set
// of inputs, e.g. envelope-wrapped exports next to plain schema files.
type SourceConfig struct {
	// Mode overrides the content mode for this source ("direct" or
	// "envelope"). Empty means the global mode applies.
	Mode string `yaml:"mode,omitempty"`

	// Index overrides the index-sheet decision for this source.
	// Unset (nil) keeps the mode-derived behavior.
	Index *bool `yaml:"index,omitempty"`

	// History overrides snapshot persistence for this source.
	// Unset (nil) keeps the global setting.
	History *bool `yaml:"history,omitempty"`

	// SkipSections lists top-level keys to leave out of the workbook
	// entirely. Skipped sections get neither a sheet nor an index row.
	SkipSections []string `yaml:"skipSections,omitempty"`
}

// Labels overrides the workbook text written into generated sheets. The
// sheet text is a contract with the humans who fill the dictionary in, so
// every label ships with the conventional Portuguese default and can be
// swapped wholesale (e.g. for an English workbook) without touching code.
// Empty fields keep their defaults.
type Labels struct {
	// Levels renames the six fixed key-depth columns, shallowest first.
	// When set, exactly six entries are required; key depths beyond six
	// always use the generic rank label.
	Levels []string `yaml:"levels,omitempty"`

	// GenericLevel is the printf format for key columns deeper than six,
	// with one %d verb for the depth rank. Default "Chave nível %d".
	GenericLevel string `yaml:"genericLevel,omitempty"`

	// Example is the example-value column header. Default "Exemplo".
	Example string `yaml:"example,omitempty"`

	// Type is the type-name column header. Default "Tipo".
	Type string `yaml:"type,omitempty"`

	// Unit is the unit column header. Default "Unidade".
	Unit string `yaml:"unit,omitempty"`

	// Meaning is the meaning column header. Default "Significado".
	Meaning string `yaml:"meaning,omitempty"`

	// Required is the required-flag column header. Default "Obrigatório".
	Required string `yaml:"required,omitempty"`

	// Observations is the observations column header. Default "Observações".
	Observations string `yaml:"observations,omitempty"`

	// MinBound is the minimum-bound column header. Default "Limite Mínimo".
	MinBound string `yaml:"minBound,omitempty"`

	// MaxBound is the maximum-bound column header. Default "Limite Máximo".
	MaxBound string `yaml:"maxBound,omitempty"`

	// RequiredYes is the affirmative required-flag token written on every
	// generated row and colored green by the styler. Default "SIM".
	RequiredYes string `yaml:"requiredYes,omitempty"`

	// RequiredNo is the negative required-flag token colored red by the
	// styler. Default "NÃO".
	RequiredNo string `yaml:"requiredNo,omitempty"`

	// Placeholder fills empty cells. Default "---".
	Placeholder string `yaml:"placeholder,omitempty"`

	// KeyPrefix identifies key columns during styling: any column whose
	// header starts with this prefix gets vertical run merging.
	// Default "Chave".
	KeyPrefix string `yaml:"keyPrefix,omitempty"`

	// IndexSheet is the index sheet name. Default "Chaves Principais".
	IndexSheet string `yaml:"indexSheet,omitempty"`

	// IndexKey is the key column header on the index sheet. Default "Chave".
	IndexKey string `yaml:"indexKey,omitempty"`
}

// File represents the structure of the .jsondict.yaml configuration file.
type File struct {
	// Defaults contains source configuration applied to every input unless
	// overridden in the source-specific configuration.
	Defaults SourceConfig `yaml:"defaults,omitempty"`

	// Sources maps input file base names (e.g. "output_model.json") to
	// their source-specific configurations.
	Sources map[string]SourceConfig `yaml:"sources,omitempty"`

	// Labels overrides the workbook text defaults.
	Labels Labels `yaml:"labels,omitempty"`
}

// GetSourceConfig returns the configuration for one input file, identified
// by its base name. It merges the source-specific configuration with the
// defaults: scalar overrides win field by field, unset pointers fall
// through.
func (cf *File) GetSourceConfig(baseName string) SourceConfig {
	result := cf.Defaults

	if sourceConfig, ok := cf.Sources[baseName]; ok {
		if sourceConfig.Mode != "" {
			result.Mode = sourceConfig.Mode
		}
		if sourceConfig.Index != nil {
			result.Index = sourceConfig.Index
		}
		if sourceConfig.History != nil {
			result.History = sourceConfig.History
		}
		if len(sourceConfig.SkipSections) > 0 {
			result.SkipSections = sourceConfig.SkipSections
		}
	}

	return result
}
