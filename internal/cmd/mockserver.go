package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/backoffice/cli/internal/logging"
	"github.com/gravitrone/backoffice/cli/internal/mockapi"
)

// MockServerCmd returns the `backoffice mock-server` command.
func MockServerCmd() *cobra.Command {
	var (
		addr     string
		latency  time.Duration
		tokenTTL time.Duration
		empty    bool
		level    string
	)
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory backoffice API for local development",
		RunE: func(c *cobra.Command, _ []string) error {
			logging.SetOutput(c.ErrOrStderr(), level)

			opts := []mockapi.Option{mockapi.WithLatency(latency)}
			if tokenTTL > 0 {
				opts = append(opts, mockapi.WithTokenTTL(tokenTTL))
			}
			if empty {
				opts = append(opts, mockapi.WithoutSeed())
			}
			srv := mockapi.New(opts...)

			out := c.OutOrStdout()
			fmt.Fprintf(out, "mock api on http://%s/api\n", addr)
			fmt.Fprintf(out, "sign in with %s / %s\n", mockapi.AdminEmail, mockapi.AdminPassword)

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, addr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", "localhost:5000", "listen address")
	f.DurationVar(&latency, "latency", 0, "artificial delay added to every request")
	f.DurationVar(&tokenTTL, "token-ttl", 0, "lifetime of issued tokens (default from the server)")
	f.BoolVar(&empty, "empty", false, "start with only the admin account")
	f.StringVar(&level, "log-level", "info", "log level written to stderr")
	return cmd
}
