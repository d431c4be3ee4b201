package cli

import (
	"github.com/spf13/cobra"

	"book-review-backend/internal/client"
)

func (a *app) newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Add, edit or delete reviews",
	}
	cmd.AddCommand(
		a.newReviewAddCmd(),
		a.newReviewEditCmd(),
		a.newReviewDeleteCmd(),
	)
	return cmd
}

func (a *app) newReviewAddCmd() *cobra.Command {
	var (
		bookID string
		form   ReviewForm
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a review for a book",
		Example: `  bookctl review add --book <id> --name Ana --rating 4 --comment "Loved it"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return err
			}

			review, err := a.store.AddReview(cmd.Context(), client.ReviewInput{
				BookID:   bookID,
				UserName: form.UserName,
				Rating:   form.Rating,
				Comment:  form.Comment,
			})
			if err != nil {
				return err
			}

			a.ok("Review %s added", review.ID)
			return a.printAverage(bookID)
		},
	}

	cmd.Flags().StringVar(&bookID, "book", "", "Book id")
	cmd.Flags().StringVar(&form.UserName, "name", "", "Your name")
	cmd.Flags().IntVar(&form.Rating, "rating", 0, "Rating from 1 to 5")
	cmd.Flags().StringVar(&form.Comment, "comment", "", "Review text")
	_ = cmd.MarkFlagRequired("book")
	return cmd
}

func (a *app) newReviewEditCmd() *cobra.Command {
	var (
		bookID string
		form   EditForm
	)

	cmd := &cobra.Command{
		Use:   "edit <review-id>",
		Short: "Edit a review; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := form.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			if bookID != "" {
				if err := a.store.FetchBookReviews(ctx, bookID); err != nil {
					return err
				}
			}

			review, err := a.store.UpdateReview(ctx, args[0], client.ReviewInput{
				BookID:   bookID,
				UserName: form.UserName,
				Rating:   form.Rating,
				Comment:  form.Comment,
			})
			if err != nil {
				return err
			}

			a.ok("Review %s updated", review.ID)
			return a.printAverage(review.BookID.String())
		},
	}

	cmd.Flags().StringVar(&bookID, "book", "", "Book id the review belongs to")
	cmd.Flags().StringVar(&form.UserName, "name", "", "New name")
	cmd.Flags().IntVar(&form.Rating, "rating", 0, "New rating from 1 to 5")
	cmd.Flags().StringVar(&form.Comment, "comment", "", "New review text")
	return cmd
}

func (a *app) newReviewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <review-id>",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.DeleteReview(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.ok("Review %s deleted", args[0])
			return nil
		},
	}
}

// printAverage reports the server-computed average from the refreshed list.
func (a *app) printAverage(bookID string) error {
	book, ok := a.store.Book(bookID)
	if !ok {
		return errBookNotFound
	}
	a.ok("%s is now rated %s %s", book.Title, FormatStars(book.AverageRating), FormatAverage(book.AverageRating))
	return nil
}
