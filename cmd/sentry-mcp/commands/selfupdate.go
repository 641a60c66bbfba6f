package commands

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/sentry-mcp/cmd"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
)

// repoSlug is the GitHub repository releases are published to.
const repoSlug = "thoreinstein/sentry-mcp"

var checkOnly bool

func init() {
	selfUpdateCmd.Flags().BoolVar(&checkOnly, "check", false,
		"only report whether a newer release exists")
	rootCmd.AddCommand(selfUpdateCmd)
}

var selfUpdateCmd = &cobra.Command{
	Use:   "self-update",
	Short: "Update sentry-mcp to the latest release",
	Long: `Check the latest sentry-mcp release on GitHub and replace the running
binary when it is newer. Development builds are never updated.`,
	Args: cobra.NoArgs,
	RunE: runSelfUpdate,
}

func runSelfUpdate(cmd *cobra.Command, _ []string) error {
	if buildinfo.IsDev() {
		return errors.NewUserError(errors.New("cannot self-update a development build"),
			"Install a release from https://github.com/"+repoSlug+"/releases")
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	w := cmd.OutOrStdout()

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return errors.Wrap(err, "creating updater")
	}

	logger.Debug("checking for updates", "slug", repoSlug, "current", buildinfo.Version)
	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return errors.NewSystemError(errors.Wrap(err, "detecting latest release"), "")
	}
	if !found {
		return errors.NewSystemError(errors.Newf("no release found for %s", repoSlug), "")
	}

	if !latest.GreaterThan(buildinfo.Version) {
		fmt.Fprintf(w, "sentry-mcp %s is the latest release.\n", buildinfo.Version)
		return nil
	}

	fmt.Fprintf(w, "Newer release available: %s (current %s)\n", latest.Version(), buildinfo.Version)
	if checkOnly {
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}
	logger.Info("updating binary", logging.Path(exe), "version", latest.Version())
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return errors.NewSystemError(errors.Wrap(err, "update failed"), "")
	}

	fmt.Fprintf(w, "Updated to %s\n", latest.Version())
	return nil
}
