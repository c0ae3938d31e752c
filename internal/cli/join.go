package cli

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
)

var joinAmounts []string

// joinCmd estimates the shares minted for an exact-in deposit.
var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Estimate shares minted for a deposit",
	Long: `Estimate the pool shares minted for depositing exact token amounts,
together with the price impact and a slippage-adjusted minimum. Amounts are
given in native token units as repeated --amount token=value flags; omitted
tokens contribute zero.`,
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

		amountsIn, err := parseAmounts(pool, joinAmounts)
		if err != nil {
			return err
		}

		result, err := calc.ComputeJoin(pool, amountsIn, tolerance)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	joinCmd.Flags().StringArrayVar(&joinAmounts, "amount", nil, "token amount as token=value (repeatable)")
	rootCmd.AddCommand(joinCmd)
}

// parseAmounts builds an amount vector in pool token order from repeated
// token=value pairs.
func parseAmounts(pool amm.PoolState, pairs []string) (amm.AmountVector, error) {
	amounts := amm.NewAmountVector(pool.NumTokens())
	for _, pair := range pairs {
		token, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --amount %q: expected token=value", pair)
		}
		idx, ok := pool.IndexOf(token)
		if !ok {
			return nil, fmt.Errorf("%w: %s", amm.ErrInvalidToken, token)
		}
		amount, ok := math.NewIntFromString(value)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q for token %s", value, token)
		}
		amounts[idx] = amount
	}
	return amounts, nil
}
