package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/myexample/reft-contract-tests/apitests"
	"github.com/myexample/reft-contract-tests/config"
	"github.com/myexample/reft-contract-tests/framework"
	"github.com/myexample/reft-contract-tests/servicedef"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints errors that have not already been reported. Test failures are described
// by the results summary, so they print nothing here.
func reportError(out io.Writer, err error) {
	var failed exitError
	if errors.As(err, &failed) {
		return
	}
	fmt.Fprintf(out, "Error: %s\n", err)
}

func newRootCommand() *cobra.Command {
	var params commandParams
	cmd := &cobra.Command{
		Use:   "reft-contract-tests",
		Short: "Contract tests for the model training/inference HTTP service",
		Long: `Runs contract tests against a model training/inference service.

The service address is taken from the "host" and "port" environment variables,
or from a config file, defaulting to ` + config.DefaultHost + `:` + config.DefaultPort + `.
Tests run one at a time because training changes the state of the service.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, params)
		},
	}
	params.bind(cmd.Flags())
	cmd.AddCommand(newMockCommand())
	return cmd
}

type exitError struct{}

func (exitError) Error() string { return "some tests failed" }

func runTests(cmd *cobra.Command, params commandParams) error {
	cfg, err := params.resolveConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var mainDebugLogger framework.Logger = framework.NullLogger()
	if params.debugAll {
		logger := newConsoleLogger(zerolog.DebugLevel)
		mainDebugLogger = &logger
	}

	harness := framework.NewTestHarness(cfg.BaseURL(), cfg.RequestTimeout, mainDebugLogger)
	fmt.Printf("Testing service at %s (request timeout: %s)\n", harness.ServiceBaseURL(), describeTimeout(cfg.RequestTimeout))

	if params.wait > 0 {
		if err := harness.AwaitService(servicedef.PathPing, params.wait, os.Stdout); err != nil {
			return fmt.Errorf("service error: %w", err)
		}
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := apitests.RunTestSuite(harness, params.filters.AsFilter, testLogger)

	fmt.Println()
	printResults(results)
	if !results.OK() {
		printRerunCommand(results)
		return exitError{}
	}
	return nil
}

func newConsoleLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05.000"}).
		Level(level).
		With().Timestamp().Logger()
}

func describeTimeout(d time.Duration) string {
	if d == 0 {
		return "none"
	}
	return d.String()
}
