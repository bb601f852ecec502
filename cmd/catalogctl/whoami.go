package main

import (
	"errors"
	"fmt"

	"github.com/ariefcatur/go-catalog-client/internal/gateway"
	"github.com/ariefcatur/go-catalog-client/internal/session"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(o *overrides) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show whether a session token is stored",
		Long: `Show whether a session token is stored. With --verify the token is also
sent to the API (GET /api/products?limit=N) and only a 2xx reply counts as
authenticated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), *o, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			tok, err := a.auth.Require(cmd.Context())
			if errors.Is(err, session.ErrNoSession) {
				fmt.Fprintln(a.out, "Not logged in")
				return errReported
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in (profile %s, token %s)\n", a.cfg.SessionProfile, mask(string(tok)))

			if verify {
				if !gateway.Probe(cmd.Context(), a.gw, a.cfg.ProbeLimit) {
					fmt.Fprintln(a.out, "Token rejected by the API")
					return errReported
				}
				fmt.Fprintln(a.out, "Token accepted by the API")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Probe the API with the stored token")
	return cmd
}

func mask(tok string) string {
	if len(tok) <= 4 {
		return "****"
	}
	return "…" + tok[len(tok)-4:]
}
