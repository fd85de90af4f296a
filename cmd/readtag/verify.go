package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the access token is accepted by Readwise",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := accessToken()
		if err != nil {
			return err
		}
		if err := client.VerifyToken(cmd.Context(), token); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "token is valid")
		return err
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
