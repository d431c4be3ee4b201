package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var errBookNotFound = errors.New("book not found")

func (a *app) newBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List all books with their average rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.FetchBooks(cmd.Context()); err != nil {
				return err
			}
			RenderBookList(a.out, a.store.Books())
			return nil
		},
	}
}

func (a *app) newBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book <id>",
		Short: "Show a book and its reviews, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showBook(cmd, args[0])
		},
	}
}

func (a *app) showBook(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	book, err := a.store.FetchBook(ctx, id)
	if err != nil {
		return err
	}
	if err := a.store.FetchBookReviews(ctx, id); err != nil {
		return err
	}

	RenderBookCard(a.out, *book, a.store.Reviews(id))
	return nil
}
