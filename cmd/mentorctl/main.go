// Command mentorctl is the operator CLI for the mentor directory.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mentorctl",
		Short: "Operate the Impulso mentor directory",
		Long: `mentorctl maintains the mentor directory outside the HTTP API.

Available subcommands:
  import        - Upsert mentors from a YAML file
  hash-password - Print the bcrypt hash for ADMIN_PASSWORD_HASH
  classify      - Show which categories a sector string falls into`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newHashPasswordCmd())
	rootCmd.AddCommand(newClassifyCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
