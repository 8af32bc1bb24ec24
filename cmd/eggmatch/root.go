package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"go.uber.org/zap"

	"github.com/phanxgames/eggmatch"
	"github.com/phanxgames/eggmatch/config"
	"github.com/phanxgames/eggmatch/ecs"
	"github.com/phanxgames/eggmatch/game"
	"github.com/phanxgames/eggmatch/observability"
)

var errNoScript = errors.New("no script given (use --script or EGGMATCH_SCRIPT)")

func newRootCmd() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:           "eggmatch",
		Short:         "Drag each egg onto the outline of the same shape.",
		Args:          cobra.NoArgs,
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	fs := cmd.PersistentFlags()
	normalize(fs)
	fs.StringP("config", "c", "", "config file, yaml/json/toml (env: EGGMATCH_CONFIG)")
	fs.String("script", "", "JSON script of gestures and expectations (env: EGGMATCH_SCRIPT)")
	fs.Bool("debug", false, "log per-frame stats and tree warnings (env: EGGMATCH_DEBUG)")
	fs.String("log-level", "info", "debug, info, warn or error (env: EGGMATCH_LOGGER_LEVEL)")
	fs.String("log-file", "", "also write JSON logs to this rotated file (env: EGGMATCH_LOGGER_LOG_FILE)")
	bindFlags(v, fs, map[string]string{
		"config":    "config",
		"script":    "script",
		"debug":     "debug",
		"log-level": "logger.level",
		"log-file":  "logger.log_file",
	})

	cmd.AddCommand(newPlayCmd(v), newVerifyCmd(v))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("eggmatch v{{.Version}}\n")
	return cmd
}

func newPlayCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open a window and play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(v)
			if err != nil {
				return err
			}
			defer observability.Sync(log)
			return play(cfg, log)
		},
	}

	fs := cmd.Flags()
	normalize(fs)
	fs.Int("width", 0, "window and board width (env: EGGMATCH_WINDOW_WIDTH)")
	fs.Int("height", 0, "window and board height (env: EGGMATCH_WINDOW_HEIGHT)")
	fs.String("title", "", "window title (env: EGGMATCH_WINDOW_TITLE)")
	fs.Int("tps", 0, "ticks per second (env: EGGMATCH_WINDOW_TPS)")
	fs.Bool("shuffle", false, "shuffle the eggs (env: EGGMATCH_BOARD_SHUFFLE)")
	fs.Uint64("seed", 0, "shuffle seed, 0 for random (env: EGGMATCH_BOARD_SEED)")
	fs.Float64("dead-zone", 0, "pixels the mouse moves before a drag starts (env: EGGMATCH_INPUT_DRAG_DEAD_ZONE)")
	bindFlags(v, fs, map[string]string{
		"width":     "window.width",
		"height":    "window.height",
		"title":     "window.title",
		"tps":       "window.tps",
		"shuffle":   "board.shuffle",
		"seed":      "board.seed",
		"dead-zone": "input.drag_dead_zone",
	})
	return cmd
}

func newVerifyCmd(v *viper.Viper) *cobra.Command {
	var maxFrames int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run a script headlessly and fail on the first unmet expectation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := load(v)
			if err != nil {
				return err
			}
			defer observability.Sync(log)

			runner, err := loadScript(cfg.Script)
			if err != nil {
				return err
			}
			opts, err := worldOptions(cfg, log)
			if err != nil {
				return err
			}
			tally, ew := trackOutcomes(&opts)
			w, err := eggmatch.NewWorld(opts)
			if err != nil {
				return err
			}

			runErr := w.RunScript(cmd.Context(), runner, maxFrames)
			events.ProcessAllEvents(ew)
			if runErr != nil {
				log.Error("script failed", zap.Error(runErr))
				return runErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d steps, %d matched, %d mismatches\n",
				runner.Len(), tally.Matches, tally.Mismatches)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxFrames, "max-frames", eggmatch.DefaultScriptFrames, "give up after this many frames")
	return cmd
}

func play(cfg *config.Config, log *zap.Logger) error {
	opts, err := worldOptions(cfg, log)
	if err != nil {
		return err
	}
	tally, ew := trackOutcomes(&opts)

	gopts := game.Options{World: opts, Logger: log}
	if cfg.Script != "" {
		runner, err := loadScript(cfg.Script)
		if err != nil {
			return err
		}
		gopts.Script = runner
	}
	g, err := game.New(gopts)
	if err != nil {
		return err
	}

	err = game.Run(g, game.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		TPS:       cfg.Window.TPS,
		Resizable: cfg.Window.Resizable,
	})
	events.ProcessAllEvents(ew)
	log.Info("session summary",
		zap.Int("matches", tally.Matches),
		zap.Int("mismatches", tally.Mismatches),
		zap.Int("completions", tally.Completes),
		zap.Int("resets", tally.Resets),
	)
	return err
}

// load reads the optional config file and builds the logger.
func load(v *viper.Viper) (*config.Config, *zap.Logger, error) {
	if path := v.GetString("config"); path != "" {
		if err := config.ReadFile(v, path); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	log := observability.NewStderr(cfg.Logger)
	log.Debug("configuration loaded", zap.String("file", v.ConfigFileUsed()))
	return cfg, log, nil
}

func worldOptions(cfg *config.Config, log *zap.Logger) (eggmatch.WorldOptions, error) {
	spec, err := cfg.BoardSpec()
	if err != nil {
		return eggmatch.WorldOptions{}, err
	}
	return eggmatch.WorldOptions{
		Board: spec,
		Controller: eggmatch.Options{
			Messages:    cfg.MessageSet(),
			Logger:      log,
			NoAnimation: cfg.Input.NoAnimation,
		},
		DragDeadZone: cfg.Input.DragDeadZone,
		Debug:        cfg.Debug,
	}, nil
}

// trackOutcomes routes the controller's events into a fresh ECS world.
func trackOutcomes(opts *eggmatch.WorldOptions) (*ecs.Tally, donburi.World) {
	w := donburi.NewWorld()
	tally := &ecs.Tally{}
	tally.Track(w)
	opts.Controller.Events = ecs.NewDonburiStore(w)
	return tally, w
}

func loadScript(path string) (*eggmatch.ScriptRunner, error) {
	if path == "" {
		return nil, errNoScript
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return eggmatch.LoadScript(data)
}

func normalize(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
}

// bindFlags ties each flag to its config key. A flag given on the command
// line wins over the environment, the config file and the defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		_ = v.BindPFlag(key, fs.Lookup(name))
	}
}
