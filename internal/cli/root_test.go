package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyforge-hd/keyforge/internal/config"
)

func saveGlobals(t *testing.T) func() {
	t.Helper()
	origCmdCtx := cmdCtx
	origHomeDir := homeDir
	origOutputFormat := outputFormat
	origVerbose := verbose
	return func() {
		cmdCtx = origCmdCtx
		homeDir = origHomeDir
		outputFormat = origOutputFormat
		verbose = origVerbose
	}
}

func TestInitGlobals_DefaultConfig(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir := t.TempDir()
	homeDir = tmpDir
	outputFormat = ""
	verbose = false

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	require.NoError(t, initGlobals(cmd))
	require.NotNil(t, cmdCtx)
	assert.Equal(t, tmpDir, cmdCtx.Cfg.Home)
	assert.False(t, cmdCtx.JSON)
}

func TestInitGlobals_OutputFormatFlag(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	homeDir = t.TempDir()
	outputFormat = "json"
	verbose = false

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	require.NoError(t, initGlobals(cmd))
	assert.True(t, cmdCtx.JSON)
}

func TestInitGlobals_EnvHome(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir := t.TempDir()
	homeDir = ""
	t.Setenv("KEYFORGE_HOME", tmpDir)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	require.NoError(t, initGlobals(cmd))
	assert.Equal(t, tmpDir, cmdCtx.Cfg.Home)
}

func TestCleanup_NilContext(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	cmdCtx = nil
	assert.NotPanics(t, cleanup)
}

func TestChainOptions(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Chains.EnableCardano = true

	opts := chainOptions(cfg)
	assert.True(t, opts.EnableCardano)
	assert.False(t, opts.EnableHederaAlias)
}

func TestExecute_AccountLifecycle(t *testing.T) {
	restore := saveGlobals(t)
	defer restore()

	tmpDir := t.TempDir()

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(append([]string{"--home", tmpDir}, args...))
		err := rootCmd.Execute()
		return out.String(), err
	}

	_, err := run("account", "create", "primary",
		"--mnemonic", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	require.NoError(t, err)

	out, err := run("account", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "primary")

	_, err = run("group", "create", "primary", "personal")
	require.NoError(t, err)

	out, err = run("group", "list", "primary")
	require.NoError(t, err)
	assert.Contains(t, out, "personal")

	_, err = run("wallet", "add-blockchains", "primary", "personal", "bitcoin", "ethereum")
	require.NoError(t, err)

	out, err = run("chains")
	require.NoError(t, err)
	assert.Contains(t, out, "bitcoin")
}
