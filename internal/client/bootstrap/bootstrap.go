// Package bootstrap assembles the client: local database, session, HTTP
// gateway, and the domain stores, in that order. The startup sequence is
// the only place that knows how the pieces fit together; everything else
// receives its dependencies.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/saciinol/watchkeeper/internal/client/api"
	"github.com/saciinol/watchkeeper/internal/client/config"
	"github.com/saciinol/watchkeeper/internal/client/localdb"
	"github.com/saciinol/watchkeeper/internal/client/session"
	"github.com/saciinol/watchkeeper/internal/client/stores"
	"github.com/saciinol/watchkeeper/internal/logging"
)

// Container holds the fully wired client state. All fields are ready to use
// once New returns.
type Container struct {
	Config    *config.Config
	Session   *session.Store
	Client    api.Client
	Catalog   *stores.CatalogStore
	Watchlist *stores.WatchlistStore
	Reviews   *stores.ReviewStore

	db  *sql.DB
	log logging.Logger
}

// New opens the local database, restores any persisted session, builds the
// gateway and stores, and warms the caches for a restored user. Cache warming
// is best effort: a failed preload logs a warning and leaves that store
// empty rather than failing startup.
//
// onAuthRejected is invoked whenever the server rejects the session's
// credential; by the time it runs the session has already been cleared.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, onAuthRejected func()) (*Container, error) {
	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	sess := session.NewStore(localdb.NewMetadataRepository(db))
	if err := sess.Restore(ctx); err != nil {
		// unreadable state is not worth refusing to start over;
		// the user just logs in again
		log.Warn(ctx, "could not restore session", "error", err)
	}

	var httpc *http.Client
	if cfg.RequestTimeout > 0 {
		httpc = &http.Client{Timeout: cfg.RequestTimeout}
	}

	gw := api.NewGateway(api.Config{
		BaseURL:        cfg.ServerURL,
		Session:        sess,
		HTTPClient:     httpc,
		OnAuthRejected: onAuthRejected,
	})

	c := &Container{
		Config:    cfg,
		Session:   sess,
		Client:    gw,
		Catalog:   stores.NewCatalogStore(gw),
		Watchlist: stores.NewWatchlistStore(gw),
		Reviews:   stores.NewReviewStore(gw),
		db:        db,
		log:       log,
	}

	if sess.Authenticated() {
		c.warmCaches(ctx)
	}

	return c, nil
}

// warmCaches preloads the stores for the restored user.
func (c *Container) warmCaches(ctx context.Context) {
	userID, ok := c.Session.UserID()
	if !ok {
		return
	}

	if err := c.Catalog.LoadSaved(ctx); err != nil {
		c.log.Warn(ctx, "could not preload saved movies", "error", err)
	}
	if err := c.Watchlist.Load(ctx, userID); err != nil {
		c.log.Warn(ctx, "could not preload watchlist", "error", err)
	}
	if err := c.Reviews.LoadForUser(ctx, userID); err != nil {
		c.log.Warn(ctx, "could not preload reviews", "error", err)
	}
}

// Refresh re-warms all caches for the currently authenticated user. Called
// after a fresh login so the stores reflect server state.
func (c *Container) Refresh(ctx context.Context) {
	if c.Session.Authenticated() {
		c.warmCaches(ctx)
	}
}

func (c *Container) Close() error {
	return c.db.Close()
}
