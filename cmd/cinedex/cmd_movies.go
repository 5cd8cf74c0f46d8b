package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/cinedex/client"
	"github.com/persistorai/cinedex/internal/config"
)

const defaultServerURL = "http://localhost:3030"

// requestTimeout bounds a single API call from the CLI.
const requestTimeout = 15 * time.Second

type remoteFlags struct {
	url    string
	format string
}

// newClient resolves the server URL (flag, then CINEDEX_URL, then default).
func (f *remoteFlags) newClient(cmd *cobra.Command) *client.Client {
	u := f.url
	if !cmd.Flags().Changed("url") {
		if env := os.Getenv("CINEDEX_URL"); env != "" {
			u = env
		}
	}

	return client.New(u, client.WithTimeout(requestTimeout), client.WithUserAgent("cinedex-cli/"+config.Version))
}

func newMoviesCmd() *cobra.Command {
	var f remoteFlags

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Query a running cinedex server",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return validateFormat(f.format)
		},
	}

	cmd.PersistentFlags().StringVar(&f.url, "url", defaultServerURL, "cinedex server URL (env: CINEDEX_URL)")
	cmd.PersistentFlags().StringVar(&f.format, "format", "table", "Output format: table|json")

	cmd.AddCommand(newMoviesListCmd(&f))
	cmd.AddCommand(newMoviesSearchCmd(&f))
	cmd.AddCommand(newMoviesGetCmd(&f))

	return cmd
}

func newMoviesListCmd(f *remoteFlags) *cobra.Command {
	var opts client.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies by vote count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			page, err := f.newClient(cmd).Movies.List(ctx, &opts)
			if err != nil {
				return fmt.Errorf("listing movies: %w", err)
			}

			if f.format == "json" {
				return formatJSON(cmd.OutOrStdout(), page)
			}

			printMovieTable(cmd.OutOrStdout(), page.Movies)
			if page.HasMore {
				fmt.Fprintf(cmd.OutOrStdout(), "\nmore results: --page %d\n", page.Page+1)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "movies per page (max 100)")

	return cmd
}

func newMoviesSearchCmd(f *remoteFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search movie titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			res, err := f.newClient(cmd).Movies.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return fmt.Errorf("searching movies: %w", err)
			}

			if f.format == "json" {
				return formatJSON(cmd.OutOrStdout(), res)
			}

			printMovieTable(cmd.OutOrStdout(), res.Movies)

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (server default 50)")

	return cmd
}

func newMoviesGetCmd(f *remoteFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one movie with its cast and genres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			m, err := f.newClient(cmd).Movies.Get(ctx, args[0])
			if err != nil {
				if client.IsNotFound(err) {
					return fmt.Errorf("movie %s not found", args[0])
				}

				return fmt.Errorf("getting movie: %w", err)
			}

			if f.format == "json" {
				return formatJSON(cmd.OutOrStdout(), m)
			}

			printMovieDetail(cmd.OutOrStdout(), m)

			return nil
		},
	}
}

func printMovieTable(w io.Writer, movies []client.Movie) {
	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{m.ID, m.Title, strconv.Itoa(m.Year), formatRating(m.Rating), formatVotes(m.NumVotes)})
	}

	formatTable(w, []string{"ID", "TITLE", "YEAR", "RATING", "VOTES"}, rows)
}

func printMovieDetail(w io.Writer, m *client.MovieDetail) {
	fmt.Fprintf(w, "%s (%d)  %s\n", m.Title, m.Year, m.ID)
	fmt.Fprintf(w, "Director: %s\n", m.Director)
	fmt.Fprintf(w, "Rating:   %s (%s votes)\n", formatRating(m.Rating), formatVotes(m.NumVotes))
	fmt.Fprintf(w, "Genres:   %s\n", strings.Join(m.Genres, ", "))

	names := make([]string, 0, len(m.Stars))
	for _, s := range m.Stars {
		names = append(names, s.Name)
	}
	fmt.Fprintf(w, "Stars:    %s\n", strings.Join(names, ", "))
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}

	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func formatVotes(n *int) string {
	if n == nil {
		return "-"
	}

	return strconv.Itoa(*n)
}
