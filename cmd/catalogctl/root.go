package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var o overrides

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Log in to the catalog API and create products",
		Long: `catalogctl keeps a session for the catalog API and submits product
forms to it.

Configuration comes from the environment (or a .env file); see CATALOG_API_URL,
SESSION_BACKEND and friends. Flags below override the environment.

Examples:
  # Log in, reading the password from stdin
  echo "$PASS" | catalogctl login --email a@b.com --password-stdin

  # Create a product
  catalogctl product create --name Mug --sku MUG-1 --description "Blue mug" \
    --category kitchen --price 12.5 --stock 10 --tags "blue, ceramic"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&o.apiURL, "api", "", "Catalog API base URL (CATALOG_API_URL)")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "debug|info|warn|error (LOG_LEVEL)")
	root.PersistentFlags().StringVar(&o.sessionBackend, "session-backend", "", "file|redis|memory (SESSION_BACKEND)")
	root.PersistentFlags().StringVar(&o.profile, "profile", "", "Session profile name (SESSION_PROFILE)")

	root.AddCommand(
		newLoginCmd(&o),
		newLogoutCmd(&o),
		newWhoamiCmd(&o),
		newProductCmd(&o),
	)
	return root
}
