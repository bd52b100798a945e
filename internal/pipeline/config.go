// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator"

	"github.com/pdiddy/archive-network/internal/gallery"
	"github.com/pdiddy/archive-network/internal/names"
	"github.com/pdiddy/archive-network/internal/network"
	"github.com/pdiddy/archive-network/pkg/types"
)

// DefaultInput is the record file read when none is configured.
const DefaultInput = "extracted_names_metadata.json"

// Defaults returns the configuration used when no file, flag or
// environment variable overrides a setting.
func Defaults() types.PipelineConfig {
	return types.PipelineConfig{
		Input:  DefaultInput,
		OutDir: ".",
		TopK:   network.DefaultTopK,
		Fields: slices.Clone(types.DefaultSearchFields),
		Members: types.MembersConfig{
			MinWeight:    gallery.DefaultMinWeight,
			NameContains: slices.Clone(gallery.DefaultNameContains),
		},
		Log: types.LogConfig{Level: "info"},
	}
}

var validate = validator.New()

// Validate checks cfg for missing paths and out-of-range values.
func Validate(cfg types.PipelineConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadNames returns the name table at path, or the built-in table when
// path is empty.
func LoadNames(path string) (*names.Table, error) {
	if path == "" {
		return names.Default()
	}
	return names.Load(path)
}
