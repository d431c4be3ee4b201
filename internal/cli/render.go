package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	bookModel "book-review-backend/internal/domains/book/model"
	reviewModel "book-review-backend/internal/domains/review/model"
)

const (
	starFilled = "★"
	starEmpty  = "☆"
	maxStars   = 5
	cardWidth  = 64
	dateLayout = "Jan 2, 2006"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(cardWidth)
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FormatAverage rounds a stored average to one decimal for display.
func FormatAverage(avg float64) string {
	return decimal.NewFromFloat(avg).Round(1).StringFixed(1)
}

// FormatStars renders five stars, filling each whole point of rating.
func FormatStars(rating float64) string {
	filled := 0
	for i := 1; i <= maxStars; i++ {
		if float64(i) <= rating {
			filled++
		}
	}
	return color.YellowString(strings.Repeat(starFilled, filled)) + strings.Repeat(starEmpty, maxStars-filled)
}

// RenderBookList writes one line per book.
func RenderBookList(w io.Writer, books []bookModel.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	for _, b := range books {
		fmt.Fprintf(w, "%s %s  %s by %s  %s\n",
			FormatStars(b.AverageRating),
			FormatAverage(b.AverageRating),
			color.New(color.Bold).Sprint(b.Title),
			b.Author,
			color.HiBlackString(b.ID.String()),
		)
	}
}

// RenderBookCard writes the detail card followed by its reviews.
func RenderBookCard(w io.Writer, book bookModel.Book, reviews []reviewModel.Review) {
	var body strings.Builder
	body.WriteString(titleStyle.Render(book.Title) + "\n")
	body.WriteString("by " + book.Author + "\n")
	body.WriteString(fmt.Sprintf("%s %s (%d %s)",
		FormatStars(book.AverageRating),
		FormatAverage(book.AverageRating),
		len(reviews),
		plural(len(reviews), "review", "reviews"),
	))
	if book.Description != "" {
		body.WriteString("\n\n" + book.Description)
	}
	if book.CoverImage != "" {
		body.WriteString("\n" + dimStyle.Render(book.CoverImage))
	}

	fmt.Fprintln(w, cardStyle.Render(body.String()))

	if len(reviews) == 0 {
		fmt.Fprintln(w, "No reviews yet. Be the first to review this book!")
		return
	}
	for _, r := range reviews {
		RenderReview(w, r)
	}
}

func RenderReview(w io.Writer, r reviewModel.Review) {
	fmt.Fprintf(w, "\n%s  %s  %s\n",
		FormatStars(float64(r.Rating)),
		color.CyanString(r.UserName),
		dimStyle.Render(r.CreatedAt.Format(dateLayout)),
	)
	fmt.Fprintf(w, "  %s\n", r.Comment)
	fmt.Fprintf(w, "  %s\n", color.HiBlackString("id: "+r.ID.String()))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
