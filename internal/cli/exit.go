package cli

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
)

var exitTokenOut string

// exitCmd estimates the token amounts released for burning an exact number of
// shares, proportionally or routed to a single token.
var exitCmd = &cobra.Command{
	Use:   "exit <shares-in>",
	Short: "Estimate tokens released for burning shares",
	Long: `Estimate the token amounts released for burning an exact number of pool
shares. By default the exit is proportional; with --token-out the entire
withdrawal is routed to one token and charged the swap fee on the non-weight
portion.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		pool, err := loadPool(ctx)
		if err != nil {
			return err
		}

		tolerance, err := resolveSlippage(cmd)
		if err != nil {
			return err
		}

		sharesIn, ok := math.NewIntFromString(args[0])
		if !ok {
			return fmt.Errorf("invalid shares amount %q", args[0])
		}

		result, err := calc.ComputeExit(pool, sharesIn, exitTokenOut, tolerance)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var exitExactAmounts []string

// exitExactOutCmd estimates the shares burned for exact target outputs.
var exitExactOutCmd = &cobra.Command{
	Use:   "exit-exact-out",
	Short: "Estimate shares burned for exact token outputs",
	Long: `Estimate the pool shares burned to withdraw exact token amounts, together
with a slippage-adjusted maximum burn. Amounts are given in native token units
as repeated --amount token=value flags; omitted tokens contribute zero.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		pool, err := loadPool(ctx)
		if err != nil {
			return err
		}

		tolerance, err := resolveSlippage(cmd)
		if err != nil {
			return err
		}

		amountsOut, err := parseAmounts(pool, exitExactAmounts)
		if err != nil {
			return err
		}

		result, err := calc.ComputeExitExactOut(pool, amountsOut, tolerance)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	exitCmd.Flags().StringVar(&exitTokenOut, "token-out", "", "route the entire withdrawal to this token")
	exitExactOutCmd.Flags().StringArrayVar(&exitExactAmounts, "amount", nil, "token amount as token=value (repeatable)")
	rootCmd.AddCommand(exitCmd)
	rootCmd.AddCommand(exitExactOutCmd)
}
