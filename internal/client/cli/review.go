package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/saciinol/watchkeeper/internal/models"
)

func (a *App) printReview(r models.Review) {
	who := r.UserName
	if who == "" {
		who = fmt.Sprintf("user %d", r.UserID)
	}
	fmt.Fprintf(a.out, "  %s rated %d/%d", who, r.Rating, models.MaxRating)
	if r.Comment != "" {
		fmt.Fprintf(a.out, ": %s", r.Comment)
	}
	fmt.Fprintln(a.out)
}

// MovieReviews loads and prints all reviews for one movie.
func (a *App) MovieReviews(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: reviews <movie id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	movieID := models.MovieID(id)

	if err := a.container.Reviews.LoadForMovie(ctx, movieID); err != nil {
		return err
	}

	reviews := a.container.Reviews.MovieReviews(movieID)
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
		return nil
	}

	fmt.Fprintf(a.out, "Average rating: %.1f\n", a.container.Reviews.AverageRating(movieID))
	for _, r := range reviews {
		a.printReview(r)
	}
	return nil
}

// MyReviews loads and prints the current user's reviews across all movies.
func (a *App) MyReviews(ctx context.Context) error {
	userID, ok := a.container.Session.UserID()
	if !ok {
		return fmt.Errorf("not logged in")
	}

	if err := a.container.Reviews.LoadForUser(ctx, userID); err != nil {
		return err
	}

	reviews := a.container.Reviews.UserReviews()
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "You have not reviewed anything yet.")
		return nil
	}

	for _, r := range reviews {
		title := r.Title
		if title == "" {
			title = fmt.Sprintf("movie %d", r.MovieID)
		}
		fmt.Fprintf(a.out, "  %s: %d/%d", title, r.Rating, models.MaxRating)
		if r.Comment != "" {
			fmt.Fprintf(a.out, " (%s)", r.Comment)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// SubmitReview creates or replaces the user's review of a movie. The comment
// is read interactively; an empty comment is allowed.
func (a *App) SubmitReview(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: review <movie id> <rating 1-%d>", models.MaxRating)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating %q", args[1])
	}

	user := a.container.Session.User()
	if user == nil {
		return fmt.Errorf("not logged in")
	}

	comment, err := GetMultiline(a.reader, "Enter comment (optional)", a.out)
	if err != nil {
		return err
	}

	review, err := a.container.Reviews.Submit(ctx, models.MovieID(id), rating, strings.TrimSpace(comment), user.ID, user.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Review saved: %d/%d.\n", review.Rating, models.MaxRating)
	return nil
}

// DeleteReview removes the user's own review of a movie.
func (a *App) DeleteReview(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delreview <movie id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	movieID := models.MovieID(id)

	review, ok := a.container.Reviews.UserReviewFor(movieID)
	if !ok {
		return fmt.Errorf("you have no review for movie %d", id)
	}

	if err := a.container.Reviews.Remove(ctx, review.ID, movieID); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Review deleted.")
	return nil
}
