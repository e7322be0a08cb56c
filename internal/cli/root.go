// Package cli implements the keyforge command-line interface: a cobra
// command tree over the hierarchy service, one file per entity the way
// the command set of original_source/src/cli/hierarchy is laid out.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keyforge-hd/keyforge/internal/chain"
	"github.com/keyforge-hd/keyforge/internal/config"
	"github.com/keyforge-hd/keyforge/internal/store"
	kferrors "github.com/keyforge-hd/keyforge/pkg/errors"
)

var (
	homeDir      string
	outputFormat string
	verbose      bool

	cmdCtx *CommandContext
)

// BuildInfo carries build-time version metadata injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var buildInfo BuildInfo //nolint:gochecknoglobals // set once by Execute

var rootCmd = &cobra.Command{
	Use:   "keyforge",
	Short: "A multi-chain HD key derivation and hierarchy engine",
	Long: `keyforge derives deterministic keys and addresses for twenty
blockchains from a single BIP-39 mnemonic, and organizes the results into
accounts, wallet groups, wallets, address groups, and subwallets.

Example:
  keyforge account create main --generate --words 24
  keyforge group create main personal
  keyforge wallet add-blockchains main personal bitcoin ethereum solana`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initGlobals(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command with info available to the version command.
func Execute(info BuildInfo) error {
	buildInfo = info
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// ExitCode maps err to the process exit code per pkg/errors' taxonomy.
func ExitCode(err error) int {
	return kferrors.ExitCode(err)
}

func chainOptions(cfg *config.Config) chain.Options {
	return chain.Options{
		EnableCardano:     cfg.Chains.EnableCardano,
		EnableHederaAlias: cfg.Chains.EnableHederaAlias,
	}
}

func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv("KEYFORGE_HOME")
	}
	if home == "" {
		home = config.DefaultHome()
	}
	if strings.HasPrefix(home, "~/") {
		if userHome, err := os.UserHomeDir(); err == nil {
			home = filepath.Join(userHome, home[2:])
		}
	}

	cfg, err := config.Load(config.Path(home))
	if err != nil {
		cfg = config.Defaults()
		cfg.Home = home
		cfg.Store.DataFile = filepath.Join(home, "store.json")
		cfg.Logging.File = filepath.Join(home, "keyforge.log")
	}
	if homeDir != "" {
		cfg.Home = home
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logLevel := config.ParseLogLevel(cfg.Logging.Level)
	logger, err := config.NewLogger(logLevel, config.ExpandHome(cfg.Logging.File))
	if err != nil {
		logger = config.NullLogger()
	}

	dataFile := config.ExpandHome(cfg.Store.DataFile)
	st, err := store.Load(dataFile)
	if err != nil {
		return err
	}

	cmdCtx = NewCommandContext(cfg, logger, st, outputFormat == "json")
	SetCmdContext(cmd, cmdCtx)
	return nil
}

func cleanup() {
	if cmdCtx == nil {
		return
	}
	if err := cmdCtx.Store.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save store: %v\n", err)
	}
	if cmdCtx.Log != nil {
		if err := cmdCtx.Log.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close logger: %v\n", err)
		}
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("keyforge version %s\n", buildInfo.Version)
		cmd.Printf("  commit: %s\n", buildInfo.Commit)
		cmd.Printf("  built:  %s\n", buildInfo.Date)
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "keyforge data directory (default: ~/.keyforge)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
