package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/saciinol/watchkeeper/internal/models"
)

func parseStatus(s string) (models.Status, error) {
	status := models.Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown status %q (want_to_watch, watching, completed)", s)
	}
	return status, nil
}

// ShowWatchlist refreshes and prints the watchlist, optionally filtered by
// status.
func (a *App) ShowWatchlist(ctx context.Context, args []string) error {
	userID, ok := a.container.Session.UserID()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	if err := a.container.Watchlist.Load(ctx, userID); err != nil {
		return err
	}

	items := a.container.Watchlist.Items()
	if len(args) == 1 {
		status, err := parseStatus(args[0])
		if err != nil {
			return err
		}
		items = a.container.Watchlist.ByStatus(status)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Watchlist is empty.")
		return nil
	}

	fmt.Fprintln(a.out, "   tmdb id  status          title")
	for _, it := range items {
		fmt.Fprintf(a.out, "  %8d  %-14s  %s (%s)\n", it.CatalogID, it.Status, it.Title, yearString(it.Year))
	}
	return nil
}

// AddToWatchlist puts a movie from the current search results onto the
// watchlist. Adding a movie that is already listed just moves it to the
// given status.
func (a *App) AddToWatchlist(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: add <tmdb id> <status>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	movie, ok := a.resultByCatalogID(models.CatalogID(id))
	if !ok {
		return fmt.Errorf("no search result with tmdb id %d, search first", id)
	}

	if err := a.container.Watchlist.AddOrUpdate(ctx, movie, status); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%q is now %s.\n", movie.Title, status)
	return nil
}

// SetStatus moves an existing watchlist entry to another status. A movie not
// on the watchlist is reported without touching the server.
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: status <tmdb id> <status>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}
	catalogID := models.CatalogID(id)

	if _, ok := a.container.Watchlist.Get(catalogID); !ok {
		fmt.Fprintf(a.out, "Movie %d is not on the watchlist.\n", id)
		return nil
	}

	if err := a.container.Watchlist.UpdateStatus(ctx, catalogID, status); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Moved to %s.\n", status)
	return nil
}

// RemoveFromWatchlist deletes a watchlist entry by catalog id.
func (a *App) RemoveFromWatchlist(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remove <tmdb id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	userID, ok := a.container.Session.UserID()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	item, ok := a.container.Watchlist.Get(models.CatalogID(id))
	if !ok {
		return fmt.Errorf("movie %d is not on the watchlist", id)
	}

	if err := a.container.Watchlist.Remove(ctx, userID, item.MovieID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Removed %q from the watchlist.\n", item.Title)
	return nil
}
