package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/sentry-mcp/internal/doctor"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/host/local"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
)

var (
	doctorJSON bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"fix settings file permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the installation",
	Long: `Run diagnostic checks on the node and npm toolchain, the installed
@sentry/mcp-server package, the stored settings and the entrypoint search.
Nothing is installed; the registry is only queried.

Output modes:
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    cobra.NoArgs,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	for _, set := range []bool{doctorJSON, quiet, verbosity > 0} {
		if set {
			count++
		}
	}
	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"), "")
	}
	return nil
}

func newDoctorRunner(s *session) (*doctor.Runner, *doctor.SettingsPermissionCheck) {
	store := s.host.Store()
	perms := doctor.NewSettingsPermissionCheck(
		store.Path(local.ScopeGlobal, s.project),
		store.Path(local.ScopeProject, s.project),
	)
	id := s.ext.ServerID()
	return doctor.NewRunner(
		doctor.NewNodeCheck(s.host.NodeBinaryPath),
		doctor.NewNPMCheck(s.cfg.NPMPath),
		doctor.NewPackageCheck(s.host, s.ext.PackageName()),
		doctor.NewSettingsSchemaCheck(s.host, id, s.project),
		doctor.NewTokenCheck(s.host, id, s.project),
		doctor.NewEntrypointCheck(s.ext.Resolver()),
		perms,
	), perms
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runner, perms := newDoctorRunner(s)
	report := runner.Run(ctx)

	if doctorFix && perms.CanFix() {
		for _, fr := range perms.Fix() {
			if fr.Error != nil {
				logging.FromContext(ctx).Warn("fix failed", logging.Path(fr.Path), logging.Err(fr.Error))
				continue
			}
			if !quiet && !doctorJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "fixed %s: %s\n", fr.Path, fr.Description)
			}
		}
		report = runner.Run(ctx)
	}

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(nil, errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.Report) error {
	switch {
	case quiet:
		return nil
	case doctorJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, "encoding JSON")
		}
		return nil
	default:
		outputDoctorText(w, report, verbosity > 0)
		return nil
	}
}

func outputDoctorText(w io.Writer, report *doctor.Report, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return color.GreenString("✓")
	case doctor.SeverityInfo:
		return color.CyanString("ℹ")
	case doctor.SeverityWarning:
		return color.YellowString("⚠")
	case doctor.SeverityError:
		return color.RedString("✗")
	default:
		return "?"
	}
}
