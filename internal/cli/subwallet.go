package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var subwalletLabel string

var subwalletCmd = &cobra.Command{
	Use:   "subwallet",
	Short: "Manage subwallets within an address group",
}

var subwalletAddCmd = &cobra.Command{
	Use:   "add <address-group-id>",
	Short: "Derive the next subwallet in an address group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		agID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		var addressIdx *uint32
		if cmd.Flags().Changed("address-index") {
			addressIdx = &subwalletAddressIndex
		}
		w, err := ctx.Service.AddSubwallet(agID, subwalletLabel, addressIdx)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, w)
	},
}

var subwalletAddressIndex uint32

var subwalletListCmd = &cobra.Command{
	Use:   "list <address-group-id>",
	Short: "List subwallets in an address group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		agID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		wallets := ctx.Service.ListSubwallets(agID)
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), wallets)
		}
		for _, w := range wallets {
			cmd.Printf("%-6d %-44s %-20s %s\n", w.ID, w.Address, w.DerivationPath, w.Label)
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	subwalletAddCmd.Flags().StringVar(&subwalletLabel, "label", "", "label for the subwallet")
	subwalletAddCmd.Flags().Uint32Var(&subwalletAddressIndex, "address-index", 0, "override the auto-computed address index")

	subwalletCmd.AddCommand(subwalletAddCmd, subwalletListCmd)
	rootCmd.AddCommand(subwalletCmd)
}
