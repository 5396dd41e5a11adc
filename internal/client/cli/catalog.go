package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/saciinol/watchkeeper/internal/models"
)

func yearString(y *int) string {
	if y == nil {
		return "????"
	}
	return strconv.Itoa(*y)
}

func (a *App) printMovieLine(m models.Movie) {
	saved := ""
	if m.Saved() {
		saved = fmt.Sprintf("  [saved as %d]", m.ID)
	}
	fmt.Fprintf(a.out, "  %8d  %s (%s)%s\n", m.CatalogID, m.Title, yearString(m.Year), saved)
}

// Search queries the external catalog. A blank query clears the results
// without a network call.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")

	if err := a.container.Catalog.Search(ctx, query); err != nil {
		return err
	}

	results := a.container.Catalog.Results()
	if len(results) == 0 {
		fmt.Fprintln(a.out, "No results.")
		return nil
	}

	fmt.Fprintln(a.out, "   tmdb id  title")
	for _, m := range results {
		a.printMovieLine(m)
	}
	return nil
}

func (a *App) ClearSearch(ctx context.Context) error {
	a.container.Catalog.ClearSearch()
	return nil
}

// SaveMovie persists a movie from the current search results, identified by
// its catalog id.
func (a *App) SaveMovie(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: save <tmdb id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}

	movie, ok := a.resultByCatalogID(models.CatalogID(id))
	if !ok {
		return fmt.Errorf("no search result with tmdb id %d, search first", id)
	}

	saved, err := a.container.Catalog.Save(ctx, movie)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %q as movie %d.\n", saved.Title, saved.ID)
	return nil
}

func (a *App) resultByCatalogID(id models.CatalogID) (models.Movie, bool) {
	for _, m := range a.container.Catalog.Results() {
		if m.CatalogID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// ListSaved refreshes and prints the saved-movie collection.
func (a *App) ListSaved(ctx context.Context) error {
	if err := a.container.Catalog.LoadSaved(ctx); err != nil {
		return err
	}

	saved := a.container.Catalog.Saved()
	if len(saved) == 0 {
		fmt.Fprintln(a.out, "No saved movies yet.")
		return nil
	}

	fmt.Fprintln(a.out, "        id  title")
	for _, m := range saved {
		fmt.Fprintf(a.out, "  %8d  %s (%s)\n", m.ID, m.Title, yearString(m.Year))
	}
	return nil
}

// ShowMovie loads one saved movie with its reviews and average rating.
func (a *App) ShowMovie(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: movie <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	movieID := models.MovieID(id)

	if err := a.container.Catalog.LoadByID(ctx, movieID); err != nil {
		return err
	}
	movie := a.container.Catalog.Current()

	fmt.Fprintf(a.out, "%s (%s)\n", movie.Title, yearString(movie.Year))
	if movie.Plot != nil && *movie.Plot != "" {
		fmt.Fprintln(a.out, *movie.Plot)
	}

	if err := a.container.Reviews.LoadForMovie(ctx, movieID); err != nil {
		return err
	}
	reviews := a.container.Reviews.MovieReviews(movieID)
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return nil
	}

	fmt.Fprintf(a.out, "Average rating: %.1f (%d reviews)\n", a.container.Reviews.AverageRating(movieID), len(reviews))
	for _, r := range reviews {
		a.printReview(r)
	}
	return nil
}
