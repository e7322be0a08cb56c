package cli

import (
	"github.com/spf13/cobra"
)

var groupDescription string

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage wallet groups within an account",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <account> <name>",
	Short: "Create a wallet group under an account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		group, err := ctx.Service.CreateWalletGroup(args[0], args[1], groupDescription)
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, group)
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list <account>",
	Short: "List wallet groups under an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		groups, err := ctx.Service.ListWalletGroups(args[0])
		if err != nil {
			return err
		}
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), groups)
		}
		for _, g := range groups {
			cmd.Printf("%-6d %-24s account_index=%d\n", g.ID, g.Name, g.AccountIndex)
		}
		return nil
	},
}

var groupShowCmd = &cobra.Command{
	Use:   "show <account> <name>",
	Short: "Show a wallet group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		group, err := ctx.Service.GetWalletGroup(args[0], args[1])
		if err != nil {
			return err
		}
		return renderAccount(cmd, ctx, group)
	},
}

var groupRenameCmd = &cobra.Command{
	Use:   "rename <account> <name> <new-name>",
	Short: "Rename a wallet group",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		group, err := ctx.Service.GetWalletGroup(args[0], args[1])
		if err != nil {
			return err
		}
		return ctx.Service.RenameWalletGroup(group.ID, args[2])
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <account> <name>",
	Short: "Remove an empty wallet group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		group, err := ctx.Service.GetWalletGroup(args[0], args[1])
		if err != nil {
			return err
		}
		return ctx.Service.RemoveWalletGroup(group.ID)
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "optional free-text description")

	groupCmd.AddCommand(groupCreateCmd, groupListCmd, groupShowCmd, groupRenameCmd, groupRemoveCmd)
	rootCmd.AddCommand(groupCmd)
}
