package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ariefcatur/go-catalog-client/internal/catalog"
	"github.com/ariefcatur/go-catalog-client/internal/form"
	"github.com/spf13/cobra"
)

func newLoginCmd(o *overrides) *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if passwordStdin {
				p, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			}

			a, err := newApp(cmd.Context(), *o, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.close()

			c := form.NewLogin(a.auth, a.deps("Logging in..."))
			if _, err := c.Input(catalog.FieldEmail, email); err != nil {
				return err
			}
			if _, err := c.Input(catalog.FieldPassword, password); err != nil {
				return err
			}
			if err := c.Submit(cmd.Context()); err != nil {
				return err
			}
			return outcome(c.Status())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")
	return cmd
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
