package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/flatshare/internal/httpapi"
	"github.com/mesh-intelligence/flatshare/internal/store"
)

// expiryInterval is how often serve expires guest passes.
const expiryInterval = time.Minute

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only JSON API and /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if addr == "" {
					addr = a.settings.ListenAddr
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				srv := httpapi.New(a.store,
					httpapi.WithLogger(a.logger),
					httpapi.WithGatherer(a.registry),
				)
				go expireGuestPasses(ctx, srv, a)
				return srv.ListenAndServe(ctx, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: listen_addr from config)")
	return cmd
}

func expireGuestPasses(ctx context.Context, srv *httpapi.Server, a *app) {
	ticker := time.NewTicker(expiryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			srv.Do(func(st *store.Store) {
				if n := st.ExpireGuestPasses(now); n > 0 {
					a.logger.Info("expired guest passes", "count", n)
				}
			})
		}
	}
}
