package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zenGate-Global/swingby-connector-go/stakes"
)

func newStakesCmd(a *app) *cobra.Command {
	stakesCmd := &cobra.Command{
		Use:   "stakes",
		Short: "Query the Swingby staking API",
	}

	stakesCmd.AddCommand(
		newLeaderboardCmd(a, "leaderboard", "Show the staking leaderboard",
			(*stakes.Client).GetLeaderboard),
		newLeaderboardCmd(a, "rewards-leaderboard", "Show the staking rewards leaderboard",
			(*stakes.Client).GetRewardsLeaderboard),
		newMemoFilterCmd(a, "holders", "List token holders",
			(*stakes.Client).GetHolders),
		newMemoFilterCmd(a, "payout", "Show the unsigned rewards payout",
			(*stakes.Client).GetPayout),
		newAddressCmd(a, "rewards-history", "List rewards paid to an address",
			(*stakes.Client).GetRewardsHistory),
		newAddressCmd(a, "token-balance", "Show the token balance of an address",
			(*stakes.Client).GetTokenBalance),
		newFloatsCmd(a),
		newPlatformStatusCmd(a),
		newWeeklyMemoCmd(a),
		newStakesListCmd(a),
		newTokenInfoCmd(a),
	)

	return stakesCmd
}

func newLeaderboardCmd(
	a *app,
	use, short string,
	call func(*stakes.Client, context.Context, stakes.LeaderboardParams) (any, error),
) *cobra.Command {
	var params stakes.LeaderboardParams

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := call(a.stakesClient(), cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().StringVar(&params.Memo, "memo", "", "weekly memo, empty for the current week")
	cmd.Flags().IntVar(&params.Page, "page", stakes.DefaultPage, "page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", stakes.DefaultPageSize, "results per page")

	return cmd
}

func newMemoFilterCmd(
	a *app,
	use, short string,
	call func(*stakes.Client, context.Context, string) (any, error),
) *cobra.Command {
	var memo string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := call(a.stakesClient(), cmd.Context(), memo)
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().StringVar(&memo, "memo", "", "weekly memo")

	return cmd
}

func newAddressCmd(
	a *app,
	use, short string,
	call func(*stakes.Client, context.Context, string) (any, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <address>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := call(a.stakesClient(), cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
}

func newFloatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "floats",
		Short: "Show network float balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.stakesClient().GetFloats(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
}

func newPlatformStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "platform-status",
		Short: "Show whether the platform is online",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.stakesClient().GetPlatformStatus(cmd.Context())
			if err != nil {
				return err
			}

			switch status {
			case stakes.PlatformOnline:
				notice(cmd, "Platform is %s", success(status.String()))
			default:
				notice(cmd, "Platform is %s", warning(status.String()))
			}
			return a.render(cmd, map[string]any{
				"status": int(status),
				"state":  status.String(),
			})
		},
	}
}

func newWeeklyMemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "memo",
		Short: "Print the current weekly memo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			memo, err := a.stakesClient().GetWeeklyMemo(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), memo)
			return err
		},
	}
}

func newStakesListCmd(a *app) *cobra.Command {
	var params stakes.StakesParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List network stakes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.stakesClient().GetStakes(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().StringVar(&params.Address, "address", "", "staker address")
	cmd.Flags().StringVar(&params.Memo, "memo", "", "weekly memo")

	return cmd
}

func newTokenInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token-info",
		Short: "Show Swingby token information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.stakesClient().GetTokenInfo(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
}
