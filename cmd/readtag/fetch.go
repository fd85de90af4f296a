package main

import (
	"io"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [id]",
	Short: "Show a document with its stored and extracted tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := accessToken()
		if err != nil {
			return err
		}

		fetched, err := documentSvc.GetDocument(cmd.Context(), token, args[0])
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFlag, fetched, func(w io.Writer) error {
			return writeFetched(w, *fetched)
		})
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
