package cmd

import (
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zenGate-Global/swingby-connector-go/internal/addrcheck"
	"github.com/zenGate-Global/swingby-connector-go/node"
)

const swapArgsUsage = "<address_to> <amount> <currency_from> <currency_to>"

// swapParamsFromArgs parses the positional arguments shared by calculate,
// create and swap.
func swapParamsFromArgs(args []string, extra map[string]string) (node.SwapParams, error) {
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return node.SwapParams{}, fmt.Errorf("invalid amount %q: %w", args[1], err)
	}
	if !amount.IsPositive() {
		return node.SwapParams{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	return node.SwapParams{
		AddressTo:    args[0],
		Amount:       amount,
		CurrencyFrom: strings.ToUpper(args[2]),
		CurrencyTo:   strings.ToUpper(args[3]),
		Extra:        anyMap(extra),
	}, nil
}

func newCalculateCmd(a *app) *cobra.Command {
	var extra map[string]string

	cmd := &cobra.Command{
		Use:   "calculate " + swapArgsUsage,
		Short: "Calculate the receive amount, fees and nonce of a swap",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := swapParamsFromArgs(args, extra)
			if err != nil {
				return err
			}
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.CalculateSwap(cmd.Context(), params)
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().StringToStringVar(&extra, "extra", nil, "additional body fields (key=value)")

	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		extra map[string]string
		nonce int64
	)

	cmd := &cobra.Command{
		Use:   "create " + swapArgsUsage,
		Short: "Create a swap from a previous calculation",
		Long: `Create a swap record. The amount must be the send_amount and --nonce the
nonce returned by "swingby node calculate".`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := swapParamsFromArgs(args, extra)
			if err != nil {
				return err
			}
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.CreateSwap(cmd.Context(), node.CreateSwapParams{
				SwapParams: params,
				Nonce:      nonce,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().Int64Var(&nonce, "nonce", 0, "nonce returned by calculate")
	cmd.Flags().StringToStringVar(&extra, "extra", nil, "additional body fields (key=value)")
	_ = cmd.MarkFlagRequired("nonce")

	return cmd
}

func newSwapCmd(a *app) *cobra.Command {
	var (
		extra            map[string]string
		skipAddressCheck bool
		quiet            bool
	)

	cmd := &cobra.Command{
		Use:   "swap " + swapArgsUsage,
		Short: "Calculate and create a swap in one step",
		Long: `Calculate a swap and create it with the calculated amount and nonce.

The payout address is checked offline first for BTC and ERC20 destinations.
Use --testnet=false for mainnet addresses.

Example:
  swingby node swap tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx 0.01 BTC.B BTC`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := swapParamsFromArgs(args, extra)
			if err != nil {
				return err
			}
			client, err := a.nodeClient()
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(2,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetVisibility(!quiet),
				progressbar.OptionSetWidth(30),
				progressbar.OptionSetDescription("[cyan][1/2][reset] Checking payout address..."),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)

			if skipAddressCheck {
				notice(cmd, "%s payout address check skipped", warning("!"))
			} else if err := addrcheck.Check(
				params.CurrencyTo,
				params.AddressTo,
				a.settings.Testnet,
			); err != nil {
				_ = bar.Clear()
				return err
			}
			_ = bar.Add(1)

			bar.Describe("[cyan][2/2][reset] Calculating and creating swap...")
			res, err := client.Swap(cmd.Context(), params)
			if err != nil {
				_ = bar.Clear()
				return err
			}
			_ = bar.Add(1)
			bar.Describe("[green][✓][reset] Swap created")
			_ = bar.Finish()
			notice(cmd, "")

			if addr, ok := res["addressIn"].(string); ok && addr != "" {
				notice(cmd, "Send %s to %s", highlight(params.CurrencyFrom), success(addr))
			}
			return a.render(cmd, res)
		},
	}
	cmd.Flags().StringToStringVar(&extra, "extra", nil, "additional body fields (key=value)")
	cmd.Flags().BoolVar(&skipAddressCheck, "skip-address-check", false, "do not validate the payout address")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}
