package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"readtag/internal/models"
)

var (
	batchLocations    []string
	batchCategories   []string
	batchCursor       string
	batchUpdatedAfter string
	batchOnlyDiff     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Fetch every document for each location and category",
	Long: `Fetch every document for each location × category pair and show how its
hashtags compare with its tags. A --cursor is reused as the start of every pair.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := accessToken()
		if err != nil {
			return err
		}

		req := models.MultiFetchRequestBody{UpdatedAfter: batchUpdatedAfter}
		for _, l := range batchLocations {
			req.Locations = append(req.Locations, models.Location(l))
		}
		for _, c := range batchCategories {
			req.Categories = append(req.Categories, models.Category(c))
		}
		if batchCursor != "" {
			req.Cursor = &batchCursor
		}

		results, err := documentSvc.MultiFetch(cmd.Context(), token, req)
		if err != nil {
			return err
		}
		if batchOnlyDiff {
			results = withSuggestions(results)
		}

		return render(cmd.OutOrStdout(), outputFlag, results, func(w io.Writer) error {
			for _, r := range results {
				if err := writeFetched(w, r); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(w, "%d document(s)\n", len(results))
			return err
		})
	},
}

func withSuggestions(results []models.FetchedDocument) []models.FetchedDocument {
	out := make([]models.FetchedDocument, 0, len(results))
	for _, r := range results {
		if len(r.Diff.Suggested) > 0 {
			out = append(out, r)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringSliceVarP(&batchLocations, "location", "l", []string{string(models.LocationNew)}, "Locations to fetch (new, later, shortlist, archive, feed)")
	batchCmd.Flags().StringSliceVarP(&batchCategories, "category", "c", []string{string(models.CategoryArticle)}, "Categories to fetch")
	batchCmd.Flags().StringVar(&batchCursor, "cursor", "", "Page cursor to start from")
	batchCmd.Flags().StringVar(&batchUpdatedAfter, "updated-after", "", "Only documents updated after this ISO 8601 date")
	batchCmd.Flags().BoolVar(&batchOnlyDiff, "only-diff", false, "Only show documents with suggested tags")
}
