package cli

import (
	"github.com/spf13/cobra"

	"github.com/keyforge-hd/keyforge/internal/chain"
)

var chainsListCmd = &cobra.Command{
	Use:   "chains",
	Short: "List every supported blockchain and its maximum hierarchy depth",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := GetCmdContext(cmd)
		ids := chain.AllChains()
		if ctx.JSON {
			type row struct {
				ID                chain.ID `json:"id"`
				MaxHierarchyDepth int      `json:"max_hierarchy_depth"`
			}
			rows := make([]row, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, row{ID: id, MaxHierarchyDepth: id.MaxHierarchyDepth()})
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		}
		for _, id := range ids {
			cmd.Printf("%-16s max_depth=%d\n", id, id.MaxHierarchyDepth())
		}
		return nil
	},
}

var addressValidateChain string

var addressValidateCmd = &cobra.Command{
	Use:   "validate-address <address>",
	Short: "Validate an address against a blockchain's codec",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := GetCmdContext(cmd)
		codec, err := chain.Get(chain.ID(addressValidateChain), chainOptions(ctx.Cfg))
		if err != nil {
			return err
		}
		ok := codec.ValidateAddress(args[0])
		if ctx.JSON {
			return writeJSON(cmd.OutOrStdout(), map[string]bool{"valid": ok})
		}
		if ok {
			cmd.Println("valid")
		} else {
			cmd.Println("invalid")
		}
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	addressValidateCmd.Flags().StringVar(&addressValidateChain, "chain", "", "blockchain identifier")

	rootCmd.AddCommand(chainsListCmd, addressValidateCmd)
}
