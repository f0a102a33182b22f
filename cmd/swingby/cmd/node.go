package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/zenGate-Global/swingby-connector-go/node"
)

func newNodeCmd(a *app) *cobra.Command {
	nodeCmd := &cobra.Command{
		Use:   "node",
		Short: "Query a Swingby bridge node",
	}

	nodeCmd.AddCommand(
		nodeGetCmd(a, "status", "Show node state and network metadata",
			(*node.Client).GetStatus),
		nodeGetCmd(a, "addresses", "List the TSS addresses of the node",
			(*node.Client).GetTSSAddresses),
		nodeGetCmd(a, "stakes", "List all stakes on the network",
			(*node.Client).GetStakes),
		nodeGetCmd(a, "fees", "Show bridge and miner fees per currency",
			(*node.Client).GetSwapFees),
		nodeGetCmd(a, "stats", "Show network and node swap statistics",
			(*node.Client).GetSwapStats),
		nodeGetCmd(a, "kvstore", "Dump the debug key/value store (testnet only)",
			(*node.Client).GetKVStore),
		newPeersCmd(a),
		newQueryCmd(a),
		newCalculateCmd(a),
		newCreateCmd(a),
		newSwapCmd(a),
	)

	return nodeCmd
}

// nodeGetCmd builds a command for a node call that takes no arguments.
func nodeGetCmd(
	a *app,
	use, short string,
	call func(*node.Client, context.Context) (any, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := call(client, cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
}

func newPeersCmd(a *app) *cobra.Command {
	var nodeType string

	cmd := &cobra.Command{
		Use:   "peers",
		Short: "List peers connected to the node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.GetPeers(cmd.Context(), nodeType)
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().StringVar(&nodeType, "type", node.NodeTypeNormal, "peer type (normal|signer)")

	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var (
		params node.QuerySwapsParams
		extra  map[string]string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Search swaps",
		Long: `Search swaps on the node. Only filters that are set are sent.

Examples:
  swingby node query --status COMPLETED --page-size 10
  swingby node query --in-address tb1q... --sort 1
  swingby node query --extra hash=abc`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			params.Extra = anyMap(extra)
			res, err := client.QuerySwaps(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&params.InHash, "in-hash", "", "inbound transaction hash")
	flags.StringVar(&params.OutHash, "out-hash", "", "outbound transaction hash")
	flags.StringVar(&params.ToChain, "to-chain", "", "destination chain")
	flags.StringVar(&params.FromChain, "from-chain", "", "source chain")
	flags.StringVar(&params.InAddress, "in-address", "", "inbound address")
	flags.StringVar(&params.OutAddress, "out-address", "", "outbound address")
	flags.StringVar(&params.Status, "status", "", "swap status")
	flags.IntVar(&params.PageSize, "page-size", 0, "results per page")
	flags.IntVar(&params.Page, "page", 0, "page number")
	flags.IntVar(&params.Sort, "sort", 0, "1 sorts from old to new")
	flags.StringVar(&params.OrInHash, "or-in-hash", "", "match inbound hash OR other filters")
	flags.StringVar(&params.OrOutHash, "or-out-hash", "", "match outbound hash OR other filters")
	flags.StringToStringVar(&extra, "extra", nil, "additional query parameters (key=value)")

	return cmd
}

func anyMap(m map[string]string) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
