package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gravitrone/backoffice/cli/internal/api"
	"github.com/gravitrone/backoffice/cli/internal/config"
	"github.com/gravitrone/backoffice/cli/internal/logging"
	"github.com/gravitrone/backoffice/cli/internal/session"
)

var (
	errNotLoggedIn     = errors.New("not logged in. run 'backoffice login' first")
	errSessionExpired  = errors.New("session expired. run 'backoffice login' again")
	errSessionRejected = errors.New("session rejected by the server. run 'backoffice login' again")
)

// runtime bundles what every command needs: config, the persisted session,
// and a client carrying the session token.
type runtime struct {
	cfg    *config.Config
	store  *session.Store
	holder *session.Holder
	client *api.Client
}

// openRuntime loads config, starts file logging, and restores the session.
func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logging.Init(logging.Dir(), cfg.LogLevel); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(config.Dir(), 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	store, err := session.OpenStore(config.SessionPath())
	if err != nil {
		return nil, err
	}
	holder, err := session.NewHolder(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	client := api.NewClient(cfg.BaseURL, holder.Current().Token,
		api.WithTimeout(cfg.Timeout),
		api.WithRateLimit(cfg.RequestsPerSecond),
	)
	rt := &runtime{cfg: cfg, store: store, holder: holder, client: client}
	client.OnUnauthorized(rt.dropSession)
	logging.Debug("runtime opened", "base_url", cfg.BaseURL, "authenticated", holder.Current().Token != "")
	return rt, nil
}

func (r *runtime) Close() {
	if r == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		logging.Warn("close session store", "err", err)
	}
	logging.Close()
}

// requireSession returns the stored session or a hint to log in.
func (r *runtime) requireSession() (session.Session, error) {
	sess := r.holder.Current()
	now := time.Now()
	switch {
	case sess.Expired(now):
		return session.Session{}, errSessionExpired
	case !sess.Authenticated(now):
		return session.Session{}, errNotLoggedIn
	}
	return sess, nil
}

// rejectSession drops a session the server refused.
func (r *runtime) rejectSession(ctx context.Context) error {
	if err := r.holder.Clear(ctx); err != nil {
		return fmt.Errorf("%w (%v)", errSessionRejected, err)
	}
	return errSessionRejected
}

// dropSession forgets the stored session once the server answers 401.
func (r *runtime) dropSession() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout())
	defer cancel()
	logging.Warn("session rejected by server")
	if err := r.holder.Clear(ctx); err != nil {
		logging.Warn("drop rejected session", "err", err)
	}
}

func (r *runtime) timeout() time.Duration {
	if r.cfg.Timeout > 0 {
		return r.cfg.Timeout
	}
	return config.DefaultTimeout
}
