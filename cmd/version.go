package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	version   = ""
	commit    = ""
	buildDate = ""
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func currentBuild() buildInfo {
	b := buildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if b.Version == "" {
		b.Version = "dev"
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.BuildDate == "" {
		b.BuildDate = "unknown"
	}
	return b
}

func (b buildInfo) isDev() bool {
	return b.Version == "dev"
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash, and build date of check-secunet.

With --json the build information is printed as a single JSON document, in the
same shape monitoring already consumes from check runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return printVersion(cmd, asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print build information as JSON")
	return cmd
}

func printVersion(cmd *cobra.Command, asJSON bool) error {
	b := currentBuild()
	log.Info("Go version: %s", b.GoVersion)
	log.Info("OS/Arch: %s", b.Platform)

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), b)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "check-secunet version %s\ncommit: %s\nbuilt: %s\n", b.Version, b.Commit, b.BuildDate)
	return nil
}
