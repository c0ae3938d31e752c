package config

import (
	"github.com/rs/zerolog/log"
)

// Endpoint configuration loaded from environment variables.
// These are populated at startup by the LoadConfig function.
var (
	// EthRPC is the JSON-RPC endpoint of the Ethereum node to read pools from.
	EthRPC string
	// VaultAddress is the address of the Balancer Vault contract.
	VaultAddress string
)

// loadEndpointConfig loads endpoint configuration from environment variables.
// This function is called by LoadConfig() in General.go.
func loadEndpointConfig() error {
	log.Info().Msg("Loading endpoint configuration from environment variables...")

	var err error

	EthRPC, err = getEnv("ETH_RPC")
	if err != nil {
		return err
	}

	VaultAddress, err = getEnv("VAULT_ADDRESS")
	if err != nil {
		return err
	}

	log.Debug().
		Str("EthRPC", EthRPC).
		Str("VaultAddress", VaultAddress).
		Msg("Endpoint configuration loaded successfully.")

	return nil
}
