// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Fred Hampton", 20, "Fred Hampton"},
		{"Kwame Ture F.K.A. Stokely Carmichael", 10, "Kwame T..."},
		{"Zoë Zoë Zoë", 8, "Zoë Z..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.n))
	}
}

func TestLoadConfigFlagsOverrideDefaults(t *testing.T) {
	require.NoError(t, normalizeCmd.Flags().Set("top-k", "3"))
	t.Cleanup(func() { _ = normalizeCmd.Flags().Set("top-k", "5") })

	cfg, err := loadConfig(normalizeCmd)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, "extracted_names_metadata.json", cfg.Input)
	assert.Equal(t, []string{"names", "title", "description"}, cfg.Fields)
	assert.Equal(t, 11, cfg.Members.MinWeight)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	require.NoError(t, normalizeCmd.Flags().Set("top-k", "-1"))
	t.Cleanup(func() { _ = normalizeCmd.Flags().Set("top-k", "5") })

	_, err := loadConfig(normalizeCmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	line := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(line, "archive-network "+version+" "), line)
	assert.Contains(t, line, runtime.Version())
	assert.Contains(t, line, runtime.GOOS+"/"+runtime.GOARCH)
}
