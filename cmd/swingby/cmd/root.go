package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
)

// Execute runs the swingby CLI. Cancelling ctx aborts in-flight requests.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. Each call returns an independent tree
// with its own configuration.
func NewRootCmd() *cobra.Command {
	a := newApp()

	rootCmd := &cobra.Command{
		Use:   "swingby",
		Short: "Query Swingby bridge nodes and the staking API",
		Long: `swingby talks to a Swingby bridge node and to the Swingby staking-insights API.

Configuration is read, in order of precedence, from flags, SWINGBY_* environment
variables (a .env file in the working directory is loaded first), a swingby.yaml
config file and built-in defaults.

Examples:
  swingby node status --node-url https://testnet-node.swingby.network
  swingby node query --status COMPLETED --page-size 10
  swingby node swap tbnb1dedxffvl324ggfdpxl0gw5hwylc848ztuy7g7c 1.1 BTC BTC.B
  swingby stakes floats
  swingby stakes leaderboard --memo 2024-10 -o yaml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	a.bindFlags(rootCmd)

	rootCmd.AddCommand(newNodeCmd(a))
	rootCmd.AddCommand(newStakesCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "swingby v%s\n", version)
		},
	}
}
