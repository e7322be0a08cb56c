package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/keyforge-hd/keyforge/internal/config"
	"github.com/keyforge-hd/keyforge/internal/hierarchy"
	"github.com/keyforge-hd/keyforge/internal/store"
)

type contextKey string

const cmdCtxKey contextKey = "keyforge-cmd-ctx"

// SetCmdContext stores ctx in cmd's context tree.
func SetCmdContext(cmd *cobra.Command, ctx *CommandContext) {
	cmd.SetContext(context.WithValue(cmd.Context(), cmdCtxKey, ctx))
}

// GetCmdContext retrieves the CommandContext stored by SetCmdContext, or
// nil if none was set.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	c := cmd.Context()
	if c == nil {
		return nil
	}
	ctx, _ := c.Value(cmdCtxKey).(*CommandContext)
	return ctx
}

// CommandContext holds the dependencies every hierarchy subcommand needs:
// configuration, a logger, the backing store, and the service built over
// it. Constructed once in PersistentPreRunE and torn down (store flushed,
// logger closed) in PersistentPostRun.
type CommandContext struct {
	Cfg     *config.Config
	Log     *config.Logger
	Store   *store.Store
	Service *hierarchy.Service
	JSON    bool
}

// NewCommandContext wires a Service over st using cfg's chain feature flags.
func NewCommandContext(cfg *config.Config, logger *config.Logger, st *store.Store, jsonOutput bool) *CommandContext {
	return &CommandContext{
		Cfg:     cfg,
		Log:     logger,
		Store:   st,
		Service: hierarchy.New(st, chainOptions(cfg)),
		JSON:    jsonOutput,
	}
}
