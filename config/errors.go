package config

import "errors"

var (
	// ErrInvalidRPCURL indicates the RPC endpoint URL is missing or malformed.
	ErrInvalidRPCURL = errors.New("config: invalid rpc url")

	// ErrInvalidCluster indicates the cluster name is not recognized.
	ErrInvalidCluster = errors.New("config: invalid cluster (must be \"mainnet-beta\", \"devnet\", \"testnet\", or \"localnet\")")

	// ErrInvalidProgramID indicates the program id is not a valid public key.
	ErrInvalidProgramID = errors.New("config: invalid program id")

	// ErrInvalidCommitment indicates the commitment level is not recognized.
	ErrInvalidCommitment = errors.New("config: invalid commitment (must be \"processed\", \"confirmed\", or \"finalized\")")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidTimeout indicates a timeout or interval is not positive.
	ErrInvalidTimeout = errors.New("config: timeouts must be positive")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
