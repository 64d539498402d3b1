// Package config selects the immutable runtime configuration for the Blink
// server from the environment. Configuration is resolved once at startup and
// passed into components explicitly; nothing reads the environment after
// FromEnv returns, so tests can construct both networks in one process.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/stellar/go/network"

	"github.com/stellar-blinks/blink-server-go/errors"
)

// BlinkVersion is the Blinks specification version advertised in the
// x-action-version header on every response.
const BlinkVersion = "2.4"

// Network names accepted in STELLAR_NETWORK.
const (
	NetworkTestnet = "testnet"
	NetworkMainnet = "mainnet"
)

// NetworkConfig pins one Stellar network: its Horizon base URL, the network
// passphrase used by wallets to hash the transaction, and the CAIP-2
// blockchain identifier sent in the x-blockchain-ids header.
type NetworkConfig struct {
	Name         string
	HorizonURL   string
	Passphrase   string
	BlockchainID string
}

var stellarNetworks = map[string]NetworkConfig{
	NetworkTestnet: {
		Name:         NetworkTestnet,
		HorizonURL:   "https://horizon-testnet.stellar.org",
		Passphrase:   network.TestNetworkPassphrase,
		BlockchainID: "stellar:2",
	},
	NetworkMainnet: {
		Name:         NetworkMainnet,
		HorizonURL:   "https://horizon.stellar.org",
		Passphrase:   network.PublicNetworkPassphrase,
		BlockchainID: "stellar:1",
	},
}

// Config is the complete server configuration.
type Config struct {
	Network    NetworkConfig
	Port       int
	CORSOrigin string
}

// Network returns the configuration for a named Stellar network.
func Network(name string) (NetworkConfig, error) {
	nc, ok := stellarNetworks[name]
	if !ok {
		return NetworkConfig{}, errors.New(errors.INVALID_INPUT,
			fmt.Sprintf("unknown Stellar network %q (want %s or %s)", name, NetworkTestnet, NetworkMainnet), nil)
	}
	return nc, nil
}

// FromEnv builds a Config from the process environment.
//
//	STELLAR_NETWORK  testnet | mainnet  (default testnet)
//	PORT             listening port     (default 3001)
//	CORS_ORIGIN      allowed origin     (default *)
func FromEnv() (Config, error) {
	name := os.Getenv("STELLAR_NETWORK")
	if name == "" {
		name = NetworkTestnet
	}
	nc, err := Network(name)
	if err != nil {
		return Config{}, err
	}

	port := 3001
	if raw := os.Getenv("PORT"); raw != "" {
		port, err = strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, errors.New(errors.INVALID_INPUT,
				fmt.Sprintf("invalid PORT %q", raw), err)
		}
	}

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}

	return Config{
		Network:    nc,
		Port:       port,
		CORSOrigin: origin,
	}, nil
}
