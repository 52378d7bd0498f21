package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Fepozopo/pctrank/pkg/config"
	"github.com/Fepozopo/pctrank/pkg/logging"
	"github.com/Fepozopo/pctrank/pkg/stdimg"
)

// Version is set at build time with
// -ldflags "-X github.com/Fepozopo/pctrank/pkg/cli.Version=...".
var Version = "0.0.0-dev"

// app holds the state shared by every subcommand once flags are parsed.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	envFile       string
	workers       int
	logLevel      string
	logFormat     string
	maxBinCeiling int
}

// NewRootCommand builds the pctrank command tree.
func NewRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "pctrank",
		Short:         "Percentile-clipped local rank filters for grey images",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "read settings from this file instead of .env")
	pf.IntVar(&a.workers, "workers", 0, "row bands filtered concurrently (default $"+config.EnvWorkers+" or GOMAXPROCS)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default $"+config.EnvLogLevel+" or info)")
	pf.StringVar(&a.logFormat, "log-format", "", "console or json (default $"+config.EnvLogFormat+" or console)")
	pf.IntVar(&a.maxBinCeiling, "max-bin-ceiling", 0, "largest histogram allowed for 16-bit images (default $"+config.EnvMaxBinCeiling+" or 65536)")

	root.AddCommand(
		a.applyCommand(),
		a.runCommand(),
		a.kernelsCommand(),
		a.histogramCommand(),
		a.updateCommand(),
		a.versionCommand(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("workers") {
		if a.workers < 1 {
			return fmt.Errorf("--workers must be at least 1, got %d", a.workers)
		}
		cfg.Workers = a.workers
	}
	if f.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if f.Changed("log-format") {
		switch a.logFormat {
		case config.FormatConsole, config.FormatJSON:
			cfg.LogFormat = a.logFormat
		default:
			return fmt.Errorf("--log-format must be console or json, got %q", a.logFormat)
		}
	}
	if f.Changed("max-bin-ceiling") {
		cfg.MaxBinCeiling = min(max(a.maxBinCeiling, 2), config.DefaultMaxBinCeiling)
	}
	a.cfg = cfg
	a.log = logging.New(cfg, cmd.ErrOrStderr())
	return nil
}

// env returns the engine settings for one run.
func (a *app) env(mask []bool) stdimg.Env {
	return stdimg.Env{
		Mask:          mask,
		Workers:       a.cfg.Workers,
		MaxBinCeiling: a.cfg.MaxBinCeiling,
		Logger:        &a.log,
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	var yes, dryRun bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := UpdateOptions{
				Repo:    a.cfg.UpdateRepo,
				Current: Version,
				Out:     cmd.OutOrStdout(),
				Log:     a.log,
				DryRun:  dryRun,
			}
			if !yes {
				opts.Confirm = confirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return CheckForUpdates(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report the release that would be installed and stop")
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return execute(NewRootCommand(), os.Args[1:], os.Stderr)
}

func execute(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
