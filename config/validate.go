package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go"
)

var validClusters = map[string]bool{
	"mainnet-beta": true,
	"devnet":       true,
	"testnet":      true,
	"localnet":     true,
}

var validCommitments = map[string]bool{
	"processed": true,
	"confirmed": true,
	"finalized": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that all configuration values are acceptable and returns
// the first error encountered, or nil if valid.
func Validate(cfg Config) error {
	if err := validateURL(cfg.Solana.RPCURL, "http", "https"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRPCURL, err)
	}
	if cfg.Solana.WSURL != "" {
		if err := validateURL(cfg.Solana.WSURL, "ws", "wss"); err != nil {
			return fmt.Errorf("%w: websocket: %w", ErrInvalidRPCURL, err)
		}
	}

	if !validClusters[strings.ToLower(cfg.Solana.Cluster)] {
		return ErrInvalidCluster
	}
	if !validCommitments[strings.ToLower(cfg.Solana.Commitment)] {
		return ErrInvalidCommitment
	}

	if _, err := solana.PublicKeyFromBase58(cfg.Solana.ProgramID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidProgramID, cfg.Solana.ProgramID)
	}

	if cfg.App.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.App.ConfirmTimeout <= 0 || cfg.App.PollInterval <= 0 {
		return ErrInvalidTimeout
	}
	if !validLogLevels[strings.ToLower(cfg.App.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

func validateURL(raw string, schemes ...string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	for _, s := range schemes {
		if u.Scheme == s {
			if u.Host == "" {
				return fmt.Errorf("missing host in %q", raw)
			}
			return nil
		}
	}
	return fmt.Errorf("unsupported scheme %q", u.Scheme)
}
