package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/aaearon/check-secunet/internal/config"
	"github.com/spf13/cobra"
)

// newTestRootCommand creates a root command whose RunE is a no-op, for
// exercising subcommands and persistent hooks.
func newTestRootCommand() *cobra.Command {
	return newRootCommand(func(cmd *cobra.Command, args []string) error {
		return nil
	})
}

// newNoOpCommand creates a subcommand that does nothing.
func newNoOpCommand() *cobra.Command {
	return &cobra.Command{
		Use: "noop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
}

// executeCommand executes a command and returns its output
func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// isolateEnv unsets the KONNEKTOR_* and config environment variables for the duration of
// the test. The original values are restored on cleanup.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvURL,
		config.EnvUsername,
		config.EnvPassword,
		config.EnvTenant,
		config.EnvICCSNSmcB,
		config.EnvDisableCertVerify,
		config.EnvConfigPath,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
