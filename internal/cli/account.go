package cli

import (
	"github.com/spf13/cobra"

	"github.com/keyforge-hd/keyforge/internal/bip39"
)

var (
	accountMnemonic   string
	accountPassphrase string
	accountGenerate   bool
	accountWords      int
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage master accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a master account from a mnemonic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		name := args[0]

		mnemonic := accountMnemonic
		if accountGenerate {
			generated, err := bip39.Generate(accountWords)
			if err != nil {
				return err
			}
			mnemonic = generated
			cmd.Printf("Generated mnemonic (write it down, it will not be shown again):\n  %s\n\n", mnemonic)
		}

		acct, err := ctx.Service.CreateAccount(name, mnemonic, accountPassphrase)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, acct)
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List master accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := GetCmdContext(cmd)
		accounts := ctx.Service.ListAccounts()
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), accounts)
		}
		for _, a := range accounts {
			cmd.Printf("%-24s  groups=%d\n", a.Name, a.NextWalletGroupIdx)
		}
		return nil
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a master account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		acct, err := ctx.Service.GetAccount(args[0])
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, acct)
	},
}

var removeAccountMnemonic string

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a master account and everything beneath it",
	Long:  "Removal requires the account's mnemonic as proof of ownership.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		return ctx.Service.RemoveAccount(args[0], removeAccountMnemonic, accountPassphrase)
	},
}

func renderAccount(cmd *cobra.Command, ctx *CommandContext, a any) error {
	if ctx.JSON {
		return writeJSON(cmd.OutOrStdout(), a)
	}
	cmd.Printf("%+v\n", a)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	accountCreateCmd.Flags().StringVar(&accountMnemonic, "mnemonic", "", "existing mnemonic phrase to import")
	accountCreateCmd.Flags().BoolVar(&accountGenerate, "generate", false, "generate a new mnemonic instead of importing one")
	accountCreateCmd.Flags().IntVar(&accountWords, "words", 24, "word count for --generate (12/15/18/21/24)")
	accountCreateCmd.Flags().StringVar(&accountPassphrase, "passphrase", "", "optional BIP-39 passphrase")

	accountRemoveCmd.Flags().StringVar(&removeAccountMnemonic, "mnemonic", "", "mnemonic proving ownership of the account")
	accountRemoveCmd.Flags().StringVar(&accountPassphrase, "passphrase", "", "optional BIP-39 passphrase")

	accountCmd.AddCommand(accountCreateCmd, accountListCmd, accountShowCmd, accountRemoveCmd)
	rootCmd.AddCommand(accountCmd)
}
