package main

import (
	"fmt"
	"io"
	"strings"

	"bookfinder/internal/book"
	"bookfinder/internal/details"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	var index int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "open <terms...>",
		Short: "Search the catalog and show details for one result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := ctx.search.Search(cmd.Context(), strings.Join(args, " "))
			if len(results) == 0 {
				return fmt.Errorf("no books found for %q", strings.Join(args, " "))
			}
			if index < 1 || index > len(results) {
				return fmt.Errorf("--index must be between 1 and %d", len(results))
			}
			return showDetails(cmd, ctx, results[index-1].Route(), asJSON)
		},
	}
	cmd.Flags().IntVarP(&index, "index", "n", 1, "1-based position of the result to open")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the detail view as JSON")
	return cmd
}

func newDetailsCommand(ctx *commandContext) *cobra.Command {
	var route book.Route
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show details for a book given its title and author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showDetails(cmd, ctx, route, asJSON)
		},
	}
	cmd.Flags().StringVar(&route.ID, "id", "", "Catalog identifier")
	cmd.Flags().StringVar(&route.Params.Title, "title", "", "Book title")
	cmd.Flags().StringVar(&route.Params.Author, "author", "", "Author name")
	cmd.Flags().StringVar(&route.Params.Rating, "rating", "", "Rating to show until real data arrives")
	cmd.Flags().StringVar(&route.Params.ReviewCount, "reviews", "", "Review count to show until real data arrives")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the detail view as JSON")
	return cmd
}

func showDetails(cmd *cobra.Command, ctx *commandContext, route book.Route, asJSON bool) error {
	out := cmd.OutOrStdout()
	logger := ctx.logger.With(zap.String("id", route.ID))

	d := ctx.details.Load(cmd.Context(), route.Params, func(partial details.Details) {
		logger.Debug("detail enrichment arrived",
			zap.Bool("has_rating", partial.Rating != nil),
			zap.Bool("has_reviews", partial.ReviewCount != nil),
		)
	})
	view := details.NewView(route, d, ctx.cfg.OpenLibrary.CoversURL)

	if asJSON {
		return writeJSON(out, view)
	}
	_, err := io.WriteString(out, renderView(view))
	return err
}
