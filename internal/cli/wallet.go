package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keyforge-hd/keyforge/internal/chain"
)

var (
	walletLabel        string
	walletAccountIndex uint32
	walletAddressIndex uint32
	walletPath         string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets within a wallet group",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <account> <group> <blockchain>",
	Short: "Derive and add a single base wallet",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		var accountIdx, addressIdx *uint32
		if cmd.Flags().Changed("account-index") {
			accountIdx = &walletAccountIndex
		}
		if cmd.Flags().Changed("address-index") {
			addressIdx = &walletAddressIndex
		}
		w, err := ctx.Service.AddWallet(args[0], args[1], chain.ID(args[2]), walletLabel, accountIdx, addressIdx, walletPath)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, w)
	},
}

var walletAddBlockchainsCmd = &cobra.Command{
	Use:   "add-blockchains <account> <group> <blockchain...>",
	Short: "Add a base wallet for each blockchain not already present in the group",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		ids := make([]chain.ID, 0, len(args)-2)
		for _, a := range args[2:] {
			ids = append(ids, chain.ID(a))
		}
		added, err := ctx.Service.AddBlockchains(args[0], args[1], ids)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, added)
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list <wallet-group-id>",
	Short: "List base wallets in a wallet group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		wallets := ctx.Service.ListWallets(id)
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), wallets)
		}
		for _, w := range wallets {
			cmd.Printf("%-6d %-10s %-44s %s\n", w.ID, w.Blockchain, w.Address, w.Label)
		}
		return nil
	},
}

var walletShowCmd = &cobra.Command{
	Use:   "show <wallet-id>",
	Short: "Show a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		w, err := ctx.Service.GetWallet(id)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, w)
	},
}

var (
	removeWalletMnemonic   string
	removeWalletPassphrase string
)

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <wallet-id>",
	Short: "Remove a wallet, proving ownership with its account's mnemonic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return ctx.Service.RemoveWallet(id, removeWalletMnemonic, removeWalletPassphrase)
	},
}

var walletSetLabelCmd = &cobra.Command{
	Use:   "set-label <wallet-id> <label>",
	Short: "Set a wallet's label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return ctx.Service.SetLabel(id, args[1])
	},
}

var walletSetNotesCmd = &cobra.Command{
	Use:   "set-notes <wallet-id> <notes>",
	Short: "Set a wallet's notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return ctx.Service.SetNotes(id, args[1])
	},
}

var walletSetDataCmd = &cobra.Command{
	Use:   "set-data <wallet-id> <key> <value>",
	Short: "Upsert a key in a wallet's additional_data map",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return ctx.Service.SetAdditionalData(id, args[1], args[2])
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	walletAddCmd.Flags().StringVar(&walletLabel, "label", "", "label for the wallet")
	walletAddCmd.Flags().StringVar(&walletPath, "path", "", "explicit derivation path override")
	walletAddCmd.Flags().Uint32Var(&walletAccountIndex, "account-index", 0, "override the wallet group's account index")
	walletAddCmd.Flags().Uint32Var(&walletAddressIndex, "address-index", 0, "override the default address index (0)")

	removeWalletCmdFlags()

	walletCmd.AddCommand(
		walletAddCmd, walletAddBlockchainsCmd, walletListCmd, walletShowCmd, walletRemoveCmd,
		walletSetLabelCmd, walletSetNotesCmd, walletSetDataCmd,
	)
	rootCmd.AddCommand(walletCmd)
}

func removeWalletCmdFlags() {
	walletRemoveCmd.Flags().StringVar(&removeWalletMnemonic, "mnemonic", "", "mnemonic proving ownership of the wallet's account")
	walletRemoveCmd.Flags().StringVar(&removeWalletPassphrase, "passphrase", "", "optional BIP-39 passphrase")
}
