package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/trendintel/internal/app"
	"github.com/five82/trendintel/internal/config"
	"github.com/five82/trendintel/internal/logging"
	"github.com/five82/trendintel/internal/trendapi"
)

var (
	configPath string
	prefsPath  string
	envFile    string
	pollEvery  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "trendintel",
	Short: "Terminal dashboard for the TrendIntel service",
	Long: `trendintel monitors a TrendIntel service: live YouTube trend scores,
automation status, sent reports and on-demand video analysis.

Run without a subcommand in a terminal to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotenv(envFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runDashboard(cmd, args)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ~/.config/trendintel/config.toml)")
	flags.StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/trendintel/prefs.toml)")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	flags.DurationVar(&pollEvery, "poll", 0, "refresh interval, e.g. 5s (default from config)")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "trendintel: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		PollEvery:  pollEvery,
	}
}

// newClient loads configuration, installs the file logger and returns a
// service client for one-shot commands. The returned func closes the log.
func newClient(cmd *cobra.Command) (*trendapi.Client, config.Config, func(), error) {
	cfg, err := app.LoadConfig(appOptions())
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("setup logging: %w", err)
	}
	slog.SetDefault(logger.With("command", cmd.Name()))
	client, err := app.NewClient(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, config.Config{}, nil, err
	}
	return client, cfg, func() { _ = closer.Close() }, nil
}
