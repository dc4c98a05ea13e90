package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/myexample/reft-contract-tests/config"
	"github.com/myexample/reft-contract-tests/framework"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseParams(t *testing.T, args ...string) (commandParams, *pflag.FlagSet) {
	var params commandParams
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	params.bind(fs)
	require.NoError(t, fs.Parse(args))
	return params, fs
}

func TestResolveConfigDefaults(t *testing.T) {
	t.Setenv(config.EnvHost, "")
	t.Setenv(config.EnvPort, "")
	params, fs := parseParams(t)
	cfg, err := params.resolveConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveConfigFromEnvironmentAndFlags(t *testing.T) {
	t.Setenv(config.EnvHost, "localhost")
	t.Setenv(config.EnvPort, "7300")
	params, fs := parseParams(t, "--timeout", "45s")
	cfg, err := params.resolveConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7300", cfg.BaseURL())
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestTimeoutFromFileIsKeptUnlessFlagIsGiven(t *testing.T) {
	t.Setenv(config.EnvHost, "")
	t.Setenv(config.EnvPort, "")
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request_timeout: 2m\n"), 0o600))

	params, fs := parseParams(t, "--config", path)
	cfg, err := params.resolveConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)

	params, fs = parseParams(t, "--config", path, "--timeout", "0")
	cfg, err = params.resolveConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
}

func TestNegativeTimeoutFlagIsRejected(t *testing.T) {
	params, fs := parseParams(t, "--timeout", "-1s")
	_, err := params.resolveConfig(fs)
	assert.Error(t, err)
}

func TestFilterFlagsAreRepeatable(t *testing.T) {
	params, _ := parseParams(t, "--run", "^ping$", "--run", "^train/all", "--skip", "delete")
	assert.True(t, params.filters.AsFilter(framework.TestID{Path: []string{"ping"}}))
	assert.True(t, params.filters.AsFilter(framework.TestID{Path: []string{"train", "all data"}}))
	assert.False(t, params.filters.AsFilter(framework.TestID{Path: []string{"inference"}}))
	assert.False(t, params.filters.AsFilter(framework.TestID{Path: []string{"train", "delete training data"}}))
}

func TestRerunCommand(t *testing.T) {
	ids := []framework.TestID{
		{Path: []string{"ping"}},
		{Path: []string{"train", "all data"}},
	}
	cmd := rerunCommand("./reft-contract-tests",
		[]string{"--debug", "--run", "old", "--run=older", "--timeout", "1m"}, ids)
	assert.Equal(t,
		`./reft-contract-tests --debug --timeout 1m --run '^ping$' --run '^train$/^all data$'`,
		cmd)
}
