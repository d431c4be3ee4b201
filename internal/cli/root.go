package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"book-review-backend/internal/client"
)

const retryHint = "Check that the API is running and try again."

type app struct {
	out   io.Writer
	cfg   *Config
	store *client.Store

	flagAPIURL  string
	flagNoColor bool
	flagConfig  string
}

// NewRootCmd builds the bookctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "bookctl",
		Short: "Browse books and manage reviews",
		Long: `bookctl talks to the book review API.

List the catalog, open a book with its reviews, and add, edit or delete
reviews. Average ratings are computed by the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&a.flagAPIURL, "api-url", "", "API base URL (default: "+DefaultAPIURL+")")
	root.PersistentFlags().BoolVar(&a.flagNoColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Config file path (default: ~/.config/bookctl/config.yaml)")

	root.AddCommand(
		a.newBooksCmd(),
		a.newBookCmd(),
		a.newReviewCmd(),
	)
	return root
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		printFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) init() error {
	if a.flagNoColor || !isTTY() {
		color.NoColor = true
	}

	cfg, err := LoadConfig(a.flagConfig)
	if err != nil {
		return err
	}
	if a.flagAPIURL != "" {
		cfg.APIURL = a.flagAPIURL
	}
	a.cfg = cfg

	api := client.NewAPIClient(cfg.APIURL, &http.Client{Timeout: cfg.Timeout})
	a.store = client.NewStore(api)
	return nil
}

func (a *app) ok(format string, args ...any) {
	fmt.Fprintln(a.out, color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// printFailure shows the store's generic message with a retry hint, or the
// plain error for usage and validation problems.
func printFailure(w io.Writer, err error) {
	var storeErr *client.StoreError
	if errors.As(err, &storeErr) {
		fmt.Fprintln(w, color.RedString("✗"), storeErr.Message)
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.Status < http.StatusInternalServerError {
			fmt.Fprintln(w, "  "+apiErr.Message)
			return
		}
		fmt.Fprintln(w, "  "+retryHint)
		return
	}
	fmt.Fprintln(w, color.RedString("error:"), err)
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
