package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.Printer.BlankLineBeforeLabels)
	require.Equal(t, ",\t", cfg.Printer.OperandSeparator)
	require.Equal(t, 2, cfg.Diagnostics.ContextLines)
}

func TestLoadNonExistentFallsBackToDefault(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, ".sparcoptrc")

	contents := `
[printer]
blank_line_before_labels = false
operand_separator = ", "

[diagnostics]
context_lines = 5
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Printer.BlankLineBeforeLabels)
	require.Equal(t, ", ", cfg.Printer.OperandSeparator)
	require.Equal(t, 5, cfg.Diagnostics.ContextLines)
}

func TestLoadInvalidTOMLIsError(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "invalid.toml")

	invalid := `
[printer]
blank_line_before_labels = "not a bool"
`
	require.NoError(t, os.WriteFile(path, []byte(invalid), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
