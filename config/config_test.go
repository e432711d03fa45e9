package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8645", cfg.RPCAddress)
	require.Equal(t, "./data", cfg.DataDir)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file should be written")
	// The generated file has no owner yet, so it does not validate until the
	// operator fills one in.
	require.Error(t, cfg.Validate())
}

func TestLoadParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `RPCAddress = "0.0.0.0:9000"
DataDir = "/var/lib/stakepool"
Owner = "0x00000000000000000000000000000000000000aa"
Environment = "prod"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.RPCAddress)
	require.Equal(t, "/var/lib/stakepool", cfg.DataDir)
	require.Equal(t, "prod", cfg.Environment)

	addr := cfg.OwnerAddress()
	require.Equal(t, byte(0xaa), addr[19])
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `Owner = "0x00000000000000000000000000000000000000aa"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8645", cfg.RPCAddress)
	require.Equal(t, "./data", cfg.DataDir)
}

func TestValidateRejectsBadOwner(t *testing.T) {
	cases := []struct {
		name  string
		owner string
	}{
		{"empty", ""},
		{"not hex", "owner"},
		{"zero address", "0x0000000000000000000000000000000000000000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{RPCAddress: "127.0.0.1:8645", DataDir: "./data", Owner: tc.owner}
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), "Owner")
		})
	}
}
