package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, 1, cfg.Version)
	assert.False(t, cfg.Chains.EnableCardano)
	assert.False(t, cfg.Chains.EnableHederaAlias)
	assert.Equal(t, uint32(0), cfg.Derivation.DefaultAccount)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := config.Defaults()
	cfg.Chains.EnableCardano = true
	cfg.Derivation.AddressGap = 5

	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Chains.EnableCardano)
	assert.Equal(t, 5, loaded.Derivation.AddressGap)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/etc/keyforge", config.ExpandHome("/etc/keyforge"))
	expanded := config.ExpandHome("~/.keyforge")
	assert.NotEqual(t, "~/.keyforge", expanded)
}
