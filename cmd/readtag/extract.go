package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"readtag/internal/tags"
)

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Print the hashtags found in text",
	Long:  `Print the hashtags found in the arguments, or in stdin when no argument is given. Needs no token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(raw)
		}

		found := tags.ExtractString(text)
		return render(cmd.OutOrStdout(), outputFlag, found, func(w io.Writer) error {
			for _, t := range found {
				if _, err := fmt.Fprintln(w, t); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
