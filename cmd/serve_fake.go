package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/beplus/beplus/internal/fakeapi"
	"github.com/spf13/cobra"
)

func newServeFakeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve-fake",
		Short: "Run an in-memory fake of the activities and rockie API",
		Long: "serve-fake serves /activities and /rockie with the same contract as the remote API, " +
			"plus /metrics and /healthz. Point api.activities_url and api.rockie_url at it for local development.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			server := &http.Server{
				Handler:           fakeapi.New(),
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("fake api listening", "addr", ln.Addr().String())
				errCh <- server.Serve(ln)
			}()

			fmt.Fprintf(cmd.OutOrStdout(), "activities: http://%s/activities\nrockie:     http://%s/rockie\n", ln.Addr(), ln.Addr())

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			logger.Info("shutting down")
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")

	return cmd
}
