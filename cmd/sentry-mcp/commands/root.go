// Package commands implements the CLI commands for sentry-mcp.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	buildinfo "github.com/thoreinstein/sentry-mcp/cmd"
	"github.com/thoreinstein/sentry-mcp/internal/config"
	"github.com/thoreinstein/sentry-mcp/internal/errors"
	"github.com/thoreinstein/sentry-mcp/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given: "1"/"true" for debug,
// "2" for trace.
const debugEnv = "SENTRY_MCP_DEBUG"

var (
	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	logFormat  string
	logFile    string
	configFile string

	// projectRoot is the project the settings are scoped to.
	projectRoot string

	// cfg is the loaded configuration; configLoadErr is reported by
	// commands that need it.
	cfg           *config.Config
	configLoadErr error

	// logCloser closes the --log-file handle after the command ran.
	logCloser io.Closer
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from config, else text)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: <config dir>/sentry-mcp/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project", "",
		"project root for project-scoped settings (default: current directory)")

	rootCmd.Version = buildinfo.Version
	rootCmd.SetVersionTemplate("sentry-mcp version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUserError(err, "Run: sentry-mcp --help")
	})
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
	if cfg == nil {
		cfg = config.Default()
	}
}

var rootCmd = &cobra.Command{
	Use:   "sentry-mcp",
	Short: "Launch Sentry's MCP server as an editor context server",
	Long: `sentry-mcp resolves and launches @sentry/mcp-server, Sentry's Model
Context Protocol server, the way an editor extension host does.

It keeps the npm package at its latest version, reads the Sentry access
token from the settings store, locates the installed entrypoint and builds
the node command line that starts the server.`,
	Example: `  # Store the access token
  sentry-mcp settings set-token

  # Print the launch command as a Claude-style mcpServers entry
  sentry-mcp command --format json

  # Start the server on stdio
  sentry-mcp run

  # Check the installation
  sentry-mcp doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		if logCloser != nil {
			err := logCloser.Close()
			logCloser = nil
			return err
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	level := resolveLevel(verbosity, quiet, os.LookupEnv)

	format := logging.Format(logFormat)
	if format == "" && cfg != nil {
		format = logging.Format(cfg.LogFormat)
	}

	opts := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{logging.NewFormatHandler(format, cmd.ErrOrStderr(), opts)}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		logCloser = f
		handlers = append(handlers, logging.NewFormatHandler(logging.FormatJSON, f,
			&slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// resolveLevel applies -q, then -v, then SENTRY_MCP_DEBUG.
func resolveLevel(v int, q bool, lookup func(string) (string, bool)) slog.Level {
	if q {
		return slog.LevelError
	}
	if v == 0 {
		if val, ok := lookup(debugEnv); ok {
			switch val {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
	}
	return logging.LevelFromVerbosity(v)
}

// requireConfig returns the loaded config or a config error.
func requireConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	err := Execute()
	if err == nil {
		return errors.ExitSuccess
	}
	exitErr := errors.Classify(err)
	reportError(os.Stderr, exitErr)
	return exitErr.Code
}

// reportError prints err with its suggestion and hints. An ExitError without
// an underlying error only sets the exit code.
func reportError(w io.Writer, exitErr *errors.ExitError) {
	if exitErr.Err == nil {
		return
	}
	red := color.New(color.FgRed, color.Bold)
	if !logging.SupportsColor(w) {
		red.DisableColor()
	}
	fmt.Fprintf(w, "%s %s\n", red.Sprint("Error:"), exitErr.Err.Error())
	for _, hint := range errors.GetHints(exitErr.Err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
	if exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}
