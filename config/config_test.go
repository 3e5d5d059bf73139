package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.devnet.solana.com", cfg.Solana.RPCURL)
	assert.Equal(t, "devnet", cfg.Solana.Cluster)
	assert.Equal(t, "confirmed", cfg.Solana.Commitment)
	assert.Equal(t, 90*time.Second, cfg.App.ConfirmTimeout)
	assert.Equal(t, 2*time.Second, cfg.App.PollInterval)
	assert.NotEmpty(t, cfg.App.DataDir)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Solana.RPCURL, cfg.Solana.RPCURL)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
solana:
  rpc_url: http://localhost:8899
  ws_url: ws://localhost:8900
  cluster: localnet
  commitment: finalized
app:
  data_dir: /tmp/sodap-test
  confirm_timeout: 30s
  poll_interval: 1s
  log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", cfg.Solana.RPCURL)
	assert.Equal(t, "localnet", cfg.Solana.Cluster)
	assert.Equal(t, "finalized", cfg.Solana.Commitment)
	assert.Equal(t, 30*time.Second, cfg.App.ConfirmTimeout)
	assert.Equal(t, "/tmp/sodap-test", cfg.App.DataDir)

	// File values merge with defaults for keys the file omits.
	assert.Equal(t, DefaultConfig().Solana.ProgramID, cfg.Solana.ProgramID)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SODAP_SOLANA_RPC_URL", "https://rpc.example.com")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://rpc.example.com", cfg.Solana.RPCURL)
}

func TestLoad_InvalidFileRejected(t *testing.T) {
	dir := t.TempDir()
	yaml := `
solana:
  cluster: moonnet
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalidCluster)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestValidate(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty rpc url", func(c *Config) { c.Solana.RPCURL = "" }, ErrInvalidRPCURL},
		{"bad rpc scheme", func(c *Config) { c.Solana.RPCURL = "ftp://node" }, ErrInvalidRPCURL},
		{"bad ws scheme", func(c *Config) { c.Solana.WSURL = "https://node" }, ErrInvalidRPCURL},
		{"bad cluster", func(c *Config) { c.Solana.Cluster = "moonnet" }, ErrInvalidCluster},
		{"bad commitment", func(c *Config) { c.Solana.Commitment = "maybe" }, ErrInvalidCommitment},
		{"bad program id", func(c *Config) { c.Solana.ProgramID = "not-a-key" }, ErrInvalidProgramID},
		{"empty data dir", func(c *Config) { c.App.DataDir = "" }, ErrEmptyDataDir},
		{"zero timeout", func(c *Config) { c.App.ConfirmTimeout = 0 }, ErrInvalidTimeout},
		{"zero poll", func(c *Config) { c.App.PollInterval = 0 }, ErrInvalidTimeout},
		{"bad log level", func(c *Config) { c.App.LogLevel = "loud" }, ErrInvalidLogLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			assert.ErrorIs(t, Validate(cfg), tc.wantErr)
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.App.DataDir = "/data/sodap"

	assert.Equal(t, filepath.Join("/data/sodap", "ledger.db"), cfg.LedgerPath())
	assert.Equal(t, filepath.Join("/data/sodap", "keystore"), cfg.KeystorePath())
}
