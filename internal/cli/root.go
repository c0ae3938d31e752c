package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Zen-Maxi/balancer-sdk/internal/config"
	"github.com/Zen-Maxi/balancer-sdk/internal/fetcher"
	"github.com/Zen-Maxi/balancer-sdk/internal/logger"
	"github.com/Zen-Maxi/balancer-sdk/pkg/amm"
	"github.com/Zen-Maxi/balancer-sdk/pkg/engine"
)

var (
	// Global flags
	stateFile string
	poolID    string
	slippage  string
)

// calc is the shared math engine; it is stateless so a single value serves
// every command.
var calc = engine.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "poolcalc",
	Short: "Weighted pool math calculator",
	Long: `poolcalc estimates spot prices, liquidity values, joins and exits for
constant-weighted AMM pools. Pool state is read either from a local JSON
snapshot (--state) or live from the Balancer Vault (--pool-id, configured
through environment variables).`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&stateFile, "state", "", "path to a pool state JSON snapshot")
	rootCmd.PersistentFlags().StringVar(&poolID, "pool-id", "", "32-byte hex pool ID to fetch live from the Vault")
	rootCmd.PersistentFlags().StringVar(&slippage, "slippage", "", "slippage tolerance as a decimal fraction (default 0.01, or DEFAULT_SLIPPAGE in live mode)")
}

func initLogging() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found. Relying on OS environment variables.")
	}
	logger.Initialize(os.Getenv("LOG_LEVEL"))
}

// loadPool resolves the pool snapshot for a command invocation: a local JSON
// file when --state is given, otherwise a live Vault read of --pool-id.
func loadPool(ctx context.Context) (amm.PoolState, error) {
	if stateFile != "" {
		return loadPoolFromFile(stateFile)
	}
	if poolID == "" {
		return amm.PoolState{}, errors.New("either --state or --pool-id is required")
	}

	if err := config.LoadConfig(); err != nil {
		return amm.PoolState{}, err
	}

	client, err := ethclient.DialContext(ctx, config.EthRPC)
	if err != nil {
		return amm.PoolState{}, fmt.Errorf("dialing %s: %w", config.EthRPC, err)
	}
	defer client.Close()

	retriever, err := fetcher.NewPoolRetriever(client, config.VaultAddress)
	if err != nil {
		return amm.PoolState{}, err
	}

	queryCtx, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()
	return retriever.GetPool(queryCtx, poolID)
}

func loadPoolFromFile(path string) (amm.PoolState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return amm.PoolState{}, fmt.Errorf("reading pool state: %w", err)
	}
	var pool amm.PoolState
	if err := json.Unmarshal(data, &pool); err != nil {
		return amm.PoolState{}, fmt.Errorf("parsing pool state: %w", err)
	}
	if err := pool.Validate(); err != nil {
		return amm.PoolState{}, err
	}
	return pool, nil
}

// resolveSlippage turns the --slippage flag into a decimal, falling back to
// the configured default in live mode and 1% otherwise.
func resolveSlippage(cmd *cobra.Command) (math.LegacyDec, error) {
	if cmd.Flags().Changed("slippage") {
		value, err := math.LegacyNewDecFromStr(slippage)
		if err != nil {
			return math.LegacyDec{}, fmt.Errorf("invalid --slippage %q: %w", slippage, err)
		}
		return value, nil
	}
	if stateFile == "" && !config.DefaultSlippage.IsNil() {
		return config.DefaultSlippage, nil
	}
	return math.LegacyNewDecWithPrec(1, 2), nil
}

// printJSON writes a result to stdout; everything else goes to the logger on
// stderr so output stays machine-readable.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Minute)
}
