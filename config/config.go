// Package config loads and validates the SoDap client configuration. Values
// come from a YAML file, overridable through SODAP_-prefixed environment
// variables; unset values fall back to devnet defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable of the SoDap client.
type Config struct {
	Solana struct {
		// RPCURL is the JSON-RPC endpoint of the Solana node.
		RPCURL string `mapstructure:"rpc_url"`

		// WSURL is the websocket endpoint, used for subscriptions.
		WSURL string `mapstructure:"ws_url"`

		// Cluster names the network the endpoints belong to.
		Cluster string `mapstructure:"cluster"`

		// Commitment is the confirmation level for reads and sends.
		Commitment string `mapstructure:"commitment"`

		// ProgramID is the deployed SoDap program address.
		ProgramID string `mapstructure:"program_id"`
	} `mapstructure:"solana"`

	App struct {
		// DataDir holds the ledger database and keystore files.
		DataDir string `mapstructure:"data_dir"`

		// ConfirmTimeout bounds how long a submission waits for confirmation.
		ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`

		// PollInterval is the delay between confirmation status polls.
		PollInterval time.Duration `mapstructure:"poll_interval"`

		// LogLevel selects the minimum level emitted.
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`
}

// DefaultConfig returns the devnet defaults.
func DefaultConfig() Config {
	var cfg Config
	cfg.Solana.RPCURL = "https://api.devnet.solana.com"
	cfg.Solana.WSURL = "wss://api.devnet.solana.com"
	cfg.Solana.Cluster = "devnet"
	cfg.Solana.Commitment = "confirmed"
	cfg.Solana.ProgramID = "4eLJ3QGiNrPN6UUr2fNxq6tUZqFdBMVpXkL2MhsKNriv"
	cfg.App.DataDir = defaultDataDir()
	cfg.App.ConfirmTimeout = 90 * time.Second
	cfg.App.PollInterval = 2 * time.Second
	cfg.App.LogLevel = "info"
	return cfg
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sodap"
	}
	return filepath.Join(home, ".sodap")
}

// Load reads config.yaml from dir, applies SODAP_ environment overrides, and
// validates the result. A missing file is fine: defaults plus environment
// apply. An empty dir loads from the current directory.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("SODAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("solana.rpc_url", def.Solana.RPCURL)
	v.SetDefault("solana.ws_url", def.Solana.WSURL)
	v.SetDefault("solana.cluster", def.Solana.Cluster)
	v.SetDefault("solana.commitment", def.Solana.Commitment)
	v.SetDefault("solana.program_id", def.Solana.ProgramID)
	v.SetDefault("app.data_dir", def.App.DataDir)
	v.SetDefault("app.confirm_timeout", def.App.ConfirmTimeout)
	v.SetDefault("app.poll_interval", def.App.PollInterval)
	v.SetDefault("app.log_level", def.App.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a specific config file instead of searching a directory.
func LoadFile(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	return Load(filepath.Dir(path))
}

// LedgerPath returns the location of the local ledger database.
func (c Config) LedgerPath() string {
	return filepath.Join(c.App.DataDir, "ledger.db")
}

// KeystorePath returns the location of the encrypted wallet keystore.
func (c Config) KeystorePath() string {
	return filepath.Join(c.App.DataDir, "keystore")
}
