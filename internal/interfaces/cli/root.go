// Package cli implements the ecfptrace command-line interface: global flag
// registration, configuration/logger initialisation, and the per-command
// output formatting helpers shared by every subcommand.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/rdktools-go/internal/config"
	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/rdktools-go/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/rdktools-go/pkg/errors"
	"github.com/turtacn/rdktools-go/pkg/types/common"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	Verbose      bool
}

// CLIContext carries initialised dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	OutputFormat string
	Verbose      bool
	RequestID    common.ID
}

// NewRootCommand creates the root cobra command with all global flags and
// the trace/batch subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "ecfptrace",
		Short:   "ecfptrace — ECFP reasoning trace engine CLI",
		Long:    "ecfptrace parses a SMILES string, enumerates its circular atom\nenvironments, and renders a complexity-ordered reasoning trace plus a\nMorgan fingerprint bit vector.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment-only)")
	pf.StringVar(&opts.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format (text, json)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose (debug) logging")

	cmd.AddCommand(NewTraceCmd(), NewBatchCmd())
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(cfg, opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	requestID := common.NewID()
	logger = logger.WithContext(logging.WithRequestID(cmd.Context(), string(requestID)))

	initMetrics(cfg, logger)

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		OutputFormat: opts.OutputFormat,
		Verbose:      opts.Verbose,
		RequestID:    requestID,
	}

	ctx := context.WithValue(cmd.Context(), cliContextKey{}, cliCtx)
	cmd.SetContext(ctx)
	return nil
}

// initConfig loads configuration from the given file, falling back to
// environment-variable-only loading when no path is supplied.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}
	return config.LoadFromEnv()
}

// initMetrics installs the process-wide EngineMetrics collector so that
// every core/collaborator Record*Global call along the way has somewhere to
// go. Failures are logged and swallowed: a CLI invocation should never fail
// because metrics registration did, and a second invocation within the same
// process (as happens in tests) would otherwise hit a duplicate-registration
// error from the underlying prometheus registry.
func initMetrics(cfg *config.Config, logger logging.Logger) {
	if !cfg.Metrics.Enabled {
		return
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		Subsystem:            cfg.Metrics.Subsystem,
		EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
		EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
	}, logger)
	if err != nil {
		logger.Warn("metrics collector initialization failed", logging.Err(err))
		return
	}
	prometheus.SetGlobalMetrics(prometheus.NewEngineMetrics(collector))
}

func initLogger(cfg *config.Config, opts *RootOptions) (logging.Logger, error) {
	level := cfg.Log.Level
	if opts.Verbose {
		level = "debug"
	}
	logCfg := logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return logging.NewLogger(logCfg)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.InvalidParam("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.InvalidParam("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintResult outputs data in the format specified by CLIContext. JSON output
// is wrapped in the common.APIResponse envelope carrying the invocation's
// correlation ID; text output renders data directly.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return printJSON(cmd, "", data)
	}
	if strings.EqualFold(cliCtx.OutputFormat, "json") {
		return printJSON(cmd, cliCtx.RequestID, data)
	}
	return printText(cmd, data)
}

func printJSON(cmd *cobra.Command, requestID common.ID, data interface{}) error {
	resp := common.NewSuccessResponse(data)
	resp.RequestID = string(requestID)
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: [%s] %s\n", errors.GetCode(err), err.Error())
}
