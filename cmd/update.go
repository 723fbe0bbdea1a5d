package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aaearon/check-secunet/internal/konnektor/models"
	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

const updateSlug = "aaearon/check-secunet"

// updateReport is printed by update --check.
type updateReport struct {
	Current         string `json:"current"`
	Latest          string `json:"latest"`
	UpdateAvailable int    `json:"updateAvailable"`
}

// NewUpdateCommand creates the update command with production dependencies
func NewUpdateCommand() *cobra.Command {
	return NewUpdateCommandWithDeps(selfupdate.DefaultUpdater())
}

// NewUpdateCommandWithDeps creates the update command with injected dependencies
func NewUpdateCommandWithDeps(updater selfUpdater) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update check-secunet to the latest release",
		Long: `Replace the check-secunet binary with the latest GitHub release.

With --check nothing is replaced. The installed and the latest release are
printed as a single JSON document with updateAvailable as 0/1, so monitoring
can alert on outdated installs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkOnly, _ := cmd.Flags().GetBool("check"); checkOnly {
				return runUpdateCheck(cmd, updater)
			}
			return runUpdate(cmd, updater)
		},
	}
	cmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	return cmd
}

// installedVersion returns the semantic version of a release build.
func installedVersion() (semver.Version, error) {
	b := currentBuild()
	if b.isDev() {
		return semver.Version{}, errors.New("cannot update a dev build; install a release build from GitHub Releases")
	}

	log.Info("Installed build: %s (commit %s, built %s)", b.Version, b.Commit, b.BuildDate)

	v, err := semver.Parse(strings.TrimPrefix(b.Version, "v"))
	if err != nil {
		return semver.Version{}, fmt.Errorf("failed to parse installed version %q: %w", b.Version, err)
	}
	return v, nil
}

func runUpdate(cmd *cobra.Command, updater selfUpdater) error {
	current, err := installedVersion()
	if err != nil {
		return err
	}

	log.Info("Checking for updates from %s", updateSlug)

	rel, err := updater.UpdateSelf(current, updateSlug)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if rel == nil {
		return errors.New("update check returned no release information")
	}

	if !rel.Version.GT(current) {
		fmt.Fprintf(cmd.OutOrStdout(), "check-secunet %s is already up to date.\n", current)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated check-secunet from %s to %s.\n", current, rel.Version)
	return nil
}

func runUpdateCheck(cmd *cobra.Command, updater selfUpdater) error {
	current, err := installedVersion()
	if err != nil {
		return err
	}

	log.Info("Looking up the latest release of %s", updateSlug)

	rel, found, err := updater.DetectLatest(updateSlug)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}

	report := updateReport{Current: current.String(), Latest: current.String()}
	if found && rel != nil {
		report.Latest = rel.Version.String()
		report.UpdateAvailable = models.BoolToInt(rel.Version.GT(current))
	}

	return writeJSON(cmd.OutOrStdout(), report)
}
