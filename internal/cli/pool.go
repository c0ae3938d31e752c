package cli

import (
	"github.com/spf13/cobra"
)

// poolCmd prints the resolved pool snapshot together with its liquidity value
// and per-share amounts, which is useful for sanity-checking a snapshot before
// quoting against it.
var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Show pool state and liquidity value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		pool, err := loadPool(ctx)
		if err != nil {
			return err
		}

		value, err := calc.ComputeLiquidityValue(pool)
		if err != nil {
			return err
		}

		return printJSON(struct {
			Pool          any    `json:"pool"`
			VirtualShares string `json:"virtual_shares"`
			PoolValue     string `json:"pool_value"`
		}{
			Pool:          pool,
			VirtualShares: pool.VirtualShares().String(),
			PoolValue:     value.String(),
		})
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)
}
