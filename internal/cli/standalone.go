package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keyforge-hd/keyforge/internal/chain"
)

var (
	standaloneChain   string
	standaloneLabel   string
	standaloneNotes   string
	standalonePrivKey string
)

var standaloneCmd = &cobra.Command{
	Use:   "standalone",
	Short: "Manage standalone wallets imported from a raw private key",
}

var standaloneImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a standalone wallet from a private key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := GetCmdContext(cmd)
		w, err := ctx.Service.ImportStandaloneWallet(standalonePrivKey, chain.ID(standaloneChain), standaloneLabel, standaloneNotes)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, w)
	},
}

var standaloneListCmd = &cobra.Command{
	Use:   "list",
	Short: "List standalone wallets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := GetCmdContext(cmd)
		wallets := ctx.Service.ListStandaloneWallets()
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), wallets)
		}
		for _, w := range wallets {
			cmd.Printf("%-6d %-10s %-44s %s\n", w.ID, w.Blockchain, w.Address, w.Label)
		}
		return nil
	},
}

var standaloneRemoveCmd = &cobra.Command{
	Use:   "remove <wallet-id>",
	Short: "Remove a standalone wallet, proving ownership with its private key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return ctx.Service.RemoveStandaloneWallet(id, standalonePrivKey)
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	standaloneImportCmd.Flags().StringVar(&standaloneChain, "chain", "", "blockchain identifier")
	standaloneImportCmd.Flags().StringVar(&standaloneLabel, "label", "", "label for the wallet")
	standaloneImportCmd.Flags().StringVar(&standaloneNotes, "notes", "", "optional free-text notes")
	standaloneImportCmd.Flags().StringVar(&standalonePrivKey, "private-key", "", "raw private key, hex encoded")

	standaloneRemoveCmd.Flags().StringVar(&standalonePrivKey, "private-key", "", "private key proving ownership")

	standaloneCmd.AddCommand(standaloneImportCmd, standaloneListCmd, standaloneRemoveCmd)
	rootCmd.AddCommand(standaloneCmd)
}
