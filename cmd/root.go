package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/aaearon/check-secunet/internal/konnektor"
	"github.com/aaearon/check-secunet/internal/ui"
	sdk_config "github.com/cyberark/idsec-sdk-golang/pkg/config"
	"github.com/spf13/cobra"
)

var verbose bool

// newRootCommand creates the root cobra command with the given RunE function.
// All flag registration and PersistentPreRunE setup is centralized here.
func newRootCommand(runFn func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-secunet",
		Short: "Health check for a Secunet konnektor",
		Long: `Query the management API of a Secunet konnektor and print the result as JSON.

Each run logs in, performs the query selected with -k, prints a single JSON
document and logs out again. Timestamps are reported in epoch seconds and
flags as 0/1 integers, ready for monitoring systems.

Keys: ` + konnektor.KeyNames() + `

Settings are read from flags, then KONNEKTOR_* environment variables, then
the YAML config file (~/.check-secunet/config.yaml or $CHECK_SECUNET_CONFIG).

Examples:
  # Connector status
  check-secunet --url https://10.0.0.1:8500 --username admin --password secret -k status

  # PIN status of an SMC-B card
  check-secunet --url https://10.0.0.1:8500 --username admin --password secret \
    --tenant mandant1 --iccsn-smcb 80276883110000000001 -k smcb-status

  # Card terminals as Prometheus metrics, credentials from a dotenv file
  check-secunet --env-file /etc/check-secunet.env -k card-terminals --output prometheus`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				sdk_config.EnableVerboseLogging("INFO")
			} else {
				sdk_config.DisableVerboseLogging()
			}
			return nil
		},
		RunE: runFn,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	cmd.Flags().String("url", "", "Base URL of the konnektor management interface")
	cmd.Flags().String("username", "", "Management user name")
	cmd.Flags().String("password", "", "Management password (prompted on a terminal when empty)")
	cmd.Flags().String("tenant", "", "Tenant (Mandant) of the SMC-B card, for smcb-status")
	cmd.Flags().String("iccsn-smcb", "", "Serial number (ICCSN) of the SMC-B card, for smcb-status")
	cmd.Flags().Bool("disable-cert-verify", false, "Skip TLS certificate verification")
	cmd.Flags().StringP("key", "k", "", "Query to run: "+konnektor.KeyNames())
	cmd.Flags().String("config", "", "Path to the YAML config file")
	cmd.Flags().String("env-file", "", "Load KONNEKTOR_* variables from a dotenv file")
	cmd.Flags().Duration("timeout", konnektor.DefaultTimeout, "Per-request timeout")
	cmd.Flags().StringP("output", "o", "", "Output format: json or prometheus (default json)")

	return cmd
}

var rootCmd = newRootCommand(runCheckProduction)

// runCheckProduction is the production RunE for the root command
func runCheckProduction(cmd *cobra.Command, args []string) error {
	return runCheckWithDeps(cmd, newKonnektorSession, ui.PromptPassword)
}

// NewRootCommandWithDeps creates a root command with injected dependencies for testing
func NewRootCommandWithDeps(newSession sessionFactory, prompt passwordPrompter) *cobra.Command {
	return newRootCommand(func(cmd *cobra.Command, args []string) error {
		return runCheckWithDeps(cmd, newSession, prompt)
	})
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stdout, err)
		if !verbose {
			fmt.Fprintln(os.Stderr, "Hint: re-run with --verbose for more details")
		}
		os.Exit(1)
	}
}

// printError writes err in the single-line error format monitoring agents parse.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)
}
