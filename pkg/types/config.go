// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MembersConfig holds the key-member selection thresholds used by the
// gallery views.
type MembersConfig struct {
	// MinWeight selects members whose total weight exceeds it (default 11).
	MinWeight int `json:"min_weight" yaml:"min_weight" mapstructure:"min_weight" validate:"min=0"`

	// NameContains selects members whose name contains any of these
	// substrings regardless of weight (default ["Unidentified"]).
	NameContains []string `json:"name_contains" yaml:"name_contains" mapstructure:"name_contains"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// PipelineConfig groups the settings for one pipeline run.
type PipelineConfig struct {
	// Input is the JSON array of captioned records
	// (default "extracted_names_metadata.json").
	Input string `json:"input" yaml:"input" mapstructure:"input" validate:"required"`

	// OutDir receives processed_data.json, adjacency_matrix.json,
	// d3_data.json and members.json (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir" mapstructure:"out_dir" validate:"required"`

	// NamesFile is an optional YAML alias table and keep-set. The built-in
	// table is used when empty.
	NamesFile string `json:"names_file,omitempty" yaml:"names_file,omitempty" mapstructure:"names_file"`

	// TopK is how many nodes get the distinguished group (default 5).
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k" validate:"min=0"`

	// Fields are the record fields scanned for names
	// (default names, title, description).
	Fields []string `json:"fields" yaml:"fields" mapstructure:"fields" validate:"min=1,dive,required"`

	Members MembersConfig `json:"members" yaml:"members" mapstructure:"members"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
