package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var addressGroupCmd = &cobra.Command{
	Use:   "address-group",
	Short: "Manage address groups within a wallet",
}

var addressGroupCreateCmd = &cobra.Command{
	Use:   "create <wallet-id> <name>",
	Short: "Create an address group under a wallet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		walletID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		ag, err := ctx.Service.CreateAddressGroup(walletID, args[1])
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, ag)
	},
}

var addressGroupListCmd = &cobra.Command{
	Use:   "list <wallet-id>",
	Short: "List address groups under a wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		walletID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		groups := ctx.Service.ListAddressGroups(walletID)
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), groups)
		}
		for _, g := range groups {
			cmd.Printf("%-6d %-24s index=%d\n", g.ID, g.Name, g.AddressGroupIndex)
		}
		return nil
	},
}

var addressGroupShowCmd = &cobra.Command{
	Use:   "show <address-group-id>",
	Short: "Show an address group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		ag, err := ctx.Service.GetAddressGroup(id)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, ag)
	},
}

var addressGroupRemoveCmd = &cobra.Command{
	Use:   "remove <address-group-id>",
	Short: "Remove an empty address group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}
		return ctx.Service.RemoveAddressGroup(id)
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	addressGroupCmd.AddCommand(addressGroupCreateCmd, addressGroupListCmd, addressGroupShowCmd, addressGroupRemoveCmd)
	rootCmd.AddCommand(addressGroupCmd)
}
