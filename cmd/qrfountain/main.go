package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/qrfountain/internal/adapters/fs"
	"github.com/bft-labs/qrfountain/internal/app"
	"github.com/bft-labs/qrfountain/internal/cliconfig"
	"github.com/bft-labs/qrfountain/internal/ports"
	"github.com/bft-labs/qrfountain/pkg/log"
	"github.com/bft-labs/qrfountain/pkg/qrfountain"
)

const helpDescription = `
Turn a file into an animated PNG of QR codes that can be filmed off a screen.

The payload is cut into equal-length packets and padded with erasure-coded
repair packets, one QR code per frame. A receiver that misses some frames can
still rebuild the payload from the ones it caught.

Highlights:
  - Reads hex (default), UTF-8 text or raw payload files.
  - Colors, scaling, border and frame delay come from a constants file, a
    TOML config, QRFOUNTAIN_* environment variables or flags.
  - --verify proves the packets decode after worst-case frame loss.
  - --watch rebuilds the animation whenever an input file changes.
`

var exampleUsage = strings.TrimSpace(`
  qrfountain payload.hex
  qrfountain --input-format raw --out firmware.png firmware.bin
  qrfountain --constants default_constants --verify --watch payload.hex
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := log.NewConsoleLogger(zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "qrfountain [payload-file]",
		Short:         "Encode a file as an erasure-coded QR code animation",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) == 1 {
				cfg.PayloadPath = args[0]
				changed["payload"] = true
			}

			// Snapshot before layering so watch mode reloads from the same base.
			base := cfg
			load := func() (cliconfig.Config, error) {
				c := base
				if err := cliconfig.Load(&c, cfgFile, changed); err != nil {
					return c, err
				}
				if err := c.Validate(); err != nil {
					return c, err
				}
				return c, nil
			}

			current, err := load()
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(current.LogLevel)
			if err != nil {
				return fmt.Errorf("log-level: %w", err)
			}
			zl = zl.Level(level)
			logger := log.NewZerologAdapterWithLogger(zl)
			zl.Debug().Interface("config", current).Msg("configuration")

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := generate(ctx, current, logger); err != nil {
				if !current.Watch {
					return err
				}
				logger.Error("generation failed", log.Err(err))
			}
			if !current.Watch {
				return nil
			}

			var w *app.Watcher
			w = app.NewWatcher(watchedFiles(current, cfgFile), app.DefaultDebounceDelay, func(ctx context.Context) error {
				next, err := load()
				if err != nil {
					return err
				}
				// A reload may point at a different payload or constants file.
				if err := w.SetFiles(watchedFiles(next, cfgFile)); err != nil {
					return err
				}
				return generate(ctx, next, logger)
			}, logger)
			if err := w.Run(ctx); err != nil {
				return err
			}
			logger.Info("received signal, stopping")
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.qrfountain/config.toml)")
	root.Flags().StringVar(&cfg.ConstantsPath, "constants", cfg.ConstantsPath, fmt.Sprintf("constants file (default: ./%s if present)", cliconfig.DefaultConstantsFile))
	root.Flags().StringVarP(&cfg.OutputPath, "out", "o", cfg.OutputPath, "output file (default: <payload-file>.png)")
	root.Flags().StringVar(&cfg.InputFormat, "input-format", cfg.InputFormat, "payload file format: hex, text or raw")

	root.Flags().Uint16Var(&cfg.SymbolSize, "symbol-size", cfg.SymbolSize, "payload bytes carried per frame")
	root.Flags().Uint8Var(&cfg.MainColor, "main-color", cfg.MainColor, "gray level of dark modules (0x00-0xff)")
	root.Flags().Uint8Var(&cfg.BackColor, "back-color", cfg.BackColor, "gray level of light modules and border (0x00-0xff)")
	root.Flags().Int32Var(&cfg.Scaling, "scaling", cfg.Scaling, "pixels per module")
	root.Flags().Int32Var(&cfg.Border, "border", cfg.Border, "quiet zone width in modules")
	root.Flags().Uint16Var(&cfg.DelayNum, "delay-num", cfg.DelayNum, "frame delay numerator")
	root.Flags().Uint16Var(&cfg.DelayDen, "delay-den", cfg.DelayDen, "frame delay denominator")

	root.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "QR codes rendered in parallel")
	root.Flags().BoolVar(&cfg.Verify, "verify", cfg.Verify, "check the payload survives worst-case frame loss before writing")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "regenerate when the payload, constants or config file changes")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("qrfountain")
		os.Exit(1)
	}
}

// watchedFiles lists the inputs whose changes trigger a regeneration.
func watchedFiles(cfg cliconfig.Config, cfgFile string) []string {
	files := []string{cfg.PayloadPath, cfg.ConstantsPath}
	if cliconfig.FileExists(cfgFile) {
		files = append(files, cfgFile)
	}
	return files
}

// generate runs one full payload-to-file pass. The output file is replaced
// only when the whole animation was written.
func generate(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	var loader ports.PayloadLoader
	loader, err := fs.NewPayloadLoader(cfg.InputFormat)
	if err != nil {
		return err
	}
	payload, err := loader.Load(cfg.PayloadPath)
	if err != nil {
		return fmt.Errorf("load payload: %w", err)
	}

	g, err := qrfountain.New(cfg.Constants(),
		qrfountain.WithLogger(logger),
		qrfountain.WithWorkers(cfg.Workers),
		qrfountain.WithVerify(cfg.Verify),
	)
	if err != nil {
		return err
	}

	out, err := fs.CreateOutputFile(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	res, err := g.Generate(ctx, payload, out)
	if err != nil {
		out.Abort()
		return err
	}
	if err := out.Commit(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("wrote animation",
		log.String("path", out.Path()),
		log.Int("payload_bytes", res.PayloadBytes),
		log.Int("frames", res.Frames),
		log.Int("repair_frames", res.RepairSymbols),
		log.Bool("verified", res.Verified),
	)
	return nil
}
