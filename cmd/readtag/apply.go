package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"readtag/internal/models"
	"readtag/internal/services"
)

var (
	applyMode   string
	applyAdd    []string
	applyRemove []string
	applyDryRun bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [id]",
	Short: "Write extracted hashtags back to a document as tags",
	Long: `Write tags back to a document. --mode overwrite keeps only the extracted hashtags,
combine adds them to the stored tags, and pick starts from stored and extracted
tags alike, then applies --add and --remove.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := accessToken()
		if err != nil {
			return err
		}
		edits := services.TagEdits{Add: applyAdd, Remove: applyRemove}

		plan, err := documentSvc.ApplyTags(cmd.Context(), token, args[0], models.UpdateMode(applyMode), edits, applyDryRun)
		if err != nil {
			return err
		}

		return render(cmd.OutOrStdout(), outputFlag, plan, func(w io.Writer) error {
			verb := "updated"
			if plan.Updated == nil {
				verb = "would update"
			}
			_, err := fmt.Fprintf(w, "%s %s (%s): %s\n", verb, plan.Document.Doc.ID, plan.Mode, joinTags(plan.Tags))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().StringVarP(&applyMode, "mode", "m", string(models.UpdateModeCombine), "Update mode: overwrite, combine or pick")
	applyCmd.Flags().StringSliceVar(&applyAdd, "add", nil, "Tags to select in pick mode")
	applyCmd.Flags().StringSliceVar(&applyRemove, "remove", nil, "Tags to deselect in pick mode")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Show the resulting tags without updating the document")
}
