package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vbp1/flexlog"
)

// Config holds values of CLI flags.
type Config struct {
	Log   string
	Timed bool
}

// NewRootCmd builds the demo command. Flags can also be given through
// FLEXLOG_DEMO_LOG and FLEXLOG_DEMO_TIMED.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("flexlog_demo")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "flexlog-demo [KEY]",
		Short: "Install the global logger from an env var name or a literal filter and emit sample records",
		Long: `KEY is looked up as an environment variable first; when it is not set
it is used as the filter itself, e.g. "debug" or "info,example.com/db=trace".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := Config{Log: v.GetString("log"), Timed: v.GetBool("timed")}
			if len(args) == 1 {
				cfg.Log = args[0]
			}
			return Run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.String("log", flexlog.DefaultEnv, "Environment variable name or literal filter")
	f.Bool("timed", false, "Prefix every line with a timestamp")
	_ = v.BindPFlags(f)
	return cmd
}

// Execute parses flags and runs the root command.
func Execute() error { return NewRootCmd().Execute() }

// Run installs the global logger for cfg and emits one record per level.
func Run(ctx context.Context, cfg Config) error {
	initFn := flexlog.TryInitWith
	if cfg.Timed {
		initFn = flexlog.TryInitTimedWith
	}
	if err := initFn(cfg.Log); err != nil {
		return fmt.Errorf("init logging with %q: %w", cfg.Log, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	slog.InfoContext(ctx, "info", "filter", flexlog.Resolve(cfg.Log))
	slog.WarnContext(ctx, "warn")
	slog.ErrorContext(ctx, "error")
	slog.DebugContext(ctx, "debug")
	slog.Log(ctx, flexlog.LevelTrace, "trace")
	flexlog.Module("demo/db").DebugContext(ctx, "module debug")
	return nil
}
