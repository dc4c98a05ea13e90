package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/myexample/reft-contract-tests/mockservice"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newMockCommand() *cobra.Command {
	var listen string
	var debug bool
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a mock training/inference service for trying out the tests locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			logger := newConsoleLogger(level)
			service := mockservice.New(mockservice.WithLogger(logger))

			server := &http.Server{
				Addr:              listen,
				Handler:           service.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			logger.Info().Str("addr", listen).Msg("mock service listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("mock service stopped")
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":7201", "address for the mock service to listen on")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}
