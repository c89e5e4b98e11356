package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gravitrone/backoffice/cli/internal/logging"
)

// Holder is the injected session context shared by the UI and commands.
// Reads are concurrent; writes happen only on login and logout.
type Holder struct {
	store *Store

	mu      sync.RWMutex
	current Session
}

// NewHolder loads any persisted session from store. store may be nil for
// an in-memory only session.
func NewHolder(ctx context.Context, store *Store) (*Holder, error) {
	h := &Holder{store: store}
	if store == nil {
		return h, nil
	}
	sess, err := store.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSession):
		return h, nil
	case err != nil:
		return nil, err
	}
	h.current = sess
	return h, nil
}

// Current returns the active session.
func (h *Holder) Current() Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Replace installs sess and persists it.
func (h *Holder) Replace(ctx context.Context, sess Session) error {
	if h.store != nil {
		if err := h.store.Save(ctx, sess); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}
	h.mu.Lock()
	h.current = sess
	h.mu.Unlock()
	logging.Info("session started", "user", sess.Username, "permissions", len(sess.Permissions))
	return nil
}

// Clear drops the session in memory and on disk.
func (h *Holder) Clear(ctx context.Context) error {
	h.mu.Lock()
	h.current = Session{}
	h.mu.Unlock()
	if h.store != nil {
		if err := h.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	logging.Info("session cleared")
	return nil
}
