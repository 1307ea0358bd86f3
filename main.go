package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mandel/app"
	"mandel/internal/buildinfo"
)

func main() {
	cfg := app.DefaultConfig()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "mandel [flags]",
		Short: "Interactive Mandelbrot viewer",
		Long: `mandel renders the Mandelbrot set in horizontal strips and lets you
explore it with the keyboard.

Keys: arrows pan, w/s zoom in/out, f/d single/double precision,
0-9 presets, r reset, h toggle status line, p snapshot, esc quit.`,
		Example: `  # Open a window
  mandel

  # Load settings from a file, override the strip count
  mandel --config mandel.toml --strips 24

  # Render a scripted zoom without a window and save the result
  mandel --headless --hz 0 --keys 'w:120,f,w:30' --out zoom.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := loadConfig(cmd.Flags(), configPath, &cfg); err != nil {
					return err
				}
			}

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			return app.Run(cmd.Context(), cfg, logger, "Mandelbrot ("+buildinfo.Short()+")")
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML file with settings (flags override it)")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "Frame width in pixels")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "Frame height in pixels (multiple of --strips)")
	flags.IntVar(&cfg.Scale, "scale", cfg.Scale, "Window size multiplier")
	flags.IntVar(&cfg.Strips, "strips", cfg.Strips, "Number of horizontal strips per frame")
	flags.IntVar(&cfg.Limit, "limit", cfg.Limit, "Iteration limit")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "Strip backend: serial or parallel")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel backend workers (0 = one per CPU)")
	flags.StringVar(&cfg.Precision, "precision", cfg.Precision, "Starting precision: single or double")
	flags.IntVar(&cfg.Preset, "preset", cfg.Preset, "Starting preset (0-9)")
	flags.Float64Var(&cfg.ZoomStep, "zoom-step", cfg.ZoomStep, "Zoom fraction per frame")
	flags.Float64Var(&cfg.PanStep, "pan-step", cfg.PanStep, "Pan fraction per frame")
	flags.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window")
	flags.IntVar(&cfg.Hz, "hz", cfg.Hz, "Tick rate (headless: 0 = as fast as possible)")
	flags.Uint64Var(&cfg.Ticks, "ticks", cfg.Ticks, "Stop after N ticks in headless mode")
	flags.StringVar(&cfg.Keys, "keys", cfg.Keys, "Headless key script, e.g. 'w:30,right:10,f'")
	flags.StringVarP(&cfg.Out, "out", "o", cfg.Out, "PNG path for snapshots and the final headless frame")
	flags.BoolVarP(&cfg.Debug, "debug", "d", cfg.Debug, "Enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(buildinfo.Short()),
		fang.WithCommit(buildinfo.Commit),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig decodes path over cfg, then puts back every flag given on the
// command line so flags win over the file.
func loadConfig(flags *pflag.FlagSet, path string, cfg *app.Config) error {
	set := map[string]string{}
	flags.Visit(func(f *pflag.Flag) {
		set[f.Name] = f.Value.String()
	})
	if err := app.LoadConfigFile(path, cfg); err != nil {
		return err
	}
	for name, value := range set {
		if err := flags.Set(name, value); err != nil {
			return fmt.Errorf("config: reapply --%s: %w", name, err)
		}
	}
	return nil
}
