package cli

import (
	"github.com/spf13/cobra"
)

// spotPriceCmd quotes the marginal price between two pool tokens.
var spotPriceCmd = &cobra.Command{
	Use:   "spot-price <token-in> <token-out>",
	Short: "Quote the marginal price of token-in denominated in token-out",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		pool, err := loadPool(ctx)
		if err != nil {
			return err
		}

		price, err := calc.ComputeSpotPrice(pool, args[0], args[1])
		if err != nil {
			return err
		}

		return printJSON(struct {
			TokenIn   string `json:"token_in"`
			TokenOut  string `json:"token_out"`
			SpotPrice string `json:"spot_price"`
		}{
			TokenIn:   args[0],
			TokenOut:  args[1],
			SpotPrice: price.String(),
		})
	},
}

func init() {
	rootCmd.AddCommand(spotPriceCmd)
}
