package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(o *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *o, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.auth.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}
