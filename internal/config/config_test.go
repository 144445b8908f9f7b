package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OUDON/sigen/internal/config"
)

func TestLoadFromReader_AppliesDefaultsOverYAMLOverride(t *testing.T) {
	yaml := []byte(`
input: ./slices
output: ./out.swc
scale_xy: 2.5
`)
	cfg, err := config.LoadFromReader("yaml", yaml)
	require.NoError(t, err)
	assert.Equal(t, "./slices", cfg.Input)
	assert.Equal(t, "./out.swc", cfg.Output)
	assert.Equal(t, 2.5, cfg.ScaleXY)
	assert.Equal(t, 1.0, cfg.ScaleZ) // default, not overridden
}

func TestValidate_RejectsMissingInput(t *testing.T) {
	cfg := &config.Config{Output: "out.swc", ScaleXY: 1, ScaleZ: 1}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveScale(t *testing.T) {
	cfg := &config.Config{Input: "in", Output: "out.swc", ScaleXY: 0, ScaleZ: 1}
	assert.Error(t, cfg.Validate())
}
