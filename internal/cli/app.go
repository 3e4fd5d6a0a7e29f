package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/flatshare/internal/mirror"
	"github.com/mesh-intelligence/flatshare/internal/store"
	"github.com/mesh-intelligence/flatshare/pkg/logging"
	"github.com/mesh-intelligence/flatshare/pkg/sqlite"
)

var errNeedLogin = errors.New("this command needs a logged in user (--as, --password)")

// closeTimeout bounds how long closing waits for queued remote writes.
const closeTimeout = 30 * time.Second

// app is one wired session: remote store, mirror, and entity store.
type app struct {
	settings settings
	logger   *slog.Logger
	registry *prometheus.Registry
	backend  *sqlite.Backend
	engine   *mirror.Engine
	store    *store.Store
	loaded   bool // bootstrap found remote data
}

// openApp attaches the backend, starts the mirror, bootstraps the store,
// expires stale guest passes, and logs in when --as is set. The caller must
// call close.
func openApp(cmd *cobra.Command) (*app, error) {
	s, err := resolveSettings()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(s.Remote); err != nil {
		return nil, sysErrorf("attach backend: %w", err)
	}

	reg := prometheus.NewRegistry()
	engine := mirror.New(backend,
		mirror.WithLogger(logger),
		mirror.WithQueueSize(s.Remote.GetQueueSize()),
		mirror.WithRegisterer(reg),
	)
	engine.Start(context.Background())

	st := store.New(engine, store.WithLogger(logger))
	a := &app{
		settings: s,
		logger:   logger,
		registry: reg,
		backend:  backend,
		engine:   engine,
		store:    st,
	}
	a.loaded = engine.Bootstrap(cmd.Context(), st)
	if n := st.ExpireGuestPasses(time.Now()); n > 0 {
		logger.Info("expired guest passes", "count", n)
	}

	if flags.as != "" {
		if _, ok := st.Login(flags.as, flags.password); !ok {
			_ = a.close()
			return nil, fmt.Errorf("login failed for %s", flags.as)
		}
	}
	return a, nil
}

// close drains the mirror queue and detaches the backend.
func (a *app) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if err := a.engine.Flush(ctx); err != nil && !errors.Is(err, mirror.ErrClosed) {
		errs = append(errs, fmt.Errorf("flush mirror: %w", err))
	}
	if err := a.engine.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close mirror: %w", err))
	}
	if err := a.backend.Detach(); err != nil {
		errs = append(errs, fmt.Errorf("detach backend: %w", err))
	}
	if len(errs) > 0 {
		return &sysError{err: errors.Join(errs...)}
	}
	return nil
}

// withApp opens the app, runs fn, and closes the app, preferring fn's error.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	runErr := fn(a)
	closeErr := a.close()
	if runErr != nil {
		return runErr
	}
	return closeErr
}

// newLogger writes to the command's stderr at the level from LOG_LEVEL.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := logging.ParseEnv()
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), logging.ParseLevel(cfg.Level), cfg.Source), nil
}

// requireElevated fails unless the acting user is an admin or super-admin.
func (a *app) requireElevated() error {
	u, ok := a.store.CurrentUser()
	if !ok {
		return errors.New("this command needs --as with an admin account")
	}
	if !u.Role.IsElevated() {
		return fmt.Errorf("%s is not an admin", u.Name)
	}
	return nil
}
