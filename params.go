package main

import (
	"os"
	"strings"
	"time"

	"github.com/myexample/reft-contract-tests/config"
	"github.com/myexample/reft-contract-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/spf13/pflag"
)

type commandParams struct {
	configFile string
	timeout    time.Duration
	wait       time.Duration
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "YAML file with host, port, and request_timeout")
	fs.DurationVar(&c.timeout, "timeout", config.DefaultRequestTimeout, "maximum time for each request to the service (0 for no limit)")
	fs.DurationVar(&c.wait, "wait", 0, "wait up to this long for the service to respond before running tests")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
}

// resolveConfig loads the configuration file and environment, then applies the timeout flag
// only if it was given explicitly, so that a timeout from the file is not overridden by the
// flag's default.
func (c *commandParams) resolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg, err := config.Load(c.configFile, os.LookupEnv)
	if err != nil {
		return config.Config{}, err
	}
	if fs.Changed("timeout") {
		cfg.RequestTimeout = c.timeout
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunCommand builds a shell command line that runs only the given tests, with the same
// configuration options as this run.
func rerunCommand(program string, args []string, ids []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--run" || a == "-run" {
			i++ // skip the value too
			continue
		}
		if strings.HasPrefix(a, "--run=") || strings.HasPrefix(a, "-run=") {
			continue
		}
		b.add(a)
	}
	for _, id := range ids {
		b.add("--run", framework.ExactPattern(id))
	}
	return b.String()
}
