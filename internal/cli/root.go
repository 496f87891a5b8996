// Package cli implements the barcodegen command-line interface.
//
// Commands:
//   - render: render one payload to a PNG, BMP or TIFF file
//   - batch: render many payloads from a list file on a worker pool
//   - formats: list the supported format codes
//   - config: print the effective configuration
//
// Settings come from flags, BARCODEGEN_* environment variables (a .env file
// in the working directory is loaded first) and an optional barcodegen.yaml.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ericlevine/barcodegen"
	"github.com/ericlevine/barcodegen/internal/config"

	// Register the one-dimensional encoders.
	_ "github.com/ericlevine/barcodegen/oned"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     *config.Config
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:          "barcodegen",
		Short:        "Render barcodes to images",
		Long:         `barcodegen renders one-dimensional barcodes (Codabar, Code 39/93/128, EAN-8/13, ITF, UPC-A/E) into two-color raster images.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			cfg, err := config.NewLoader(a.v).Load(a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := parseLevel(cfg.LogLevel)
			if a.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			if used := a.v.ConfigFileUsed(); used != "" {
				logger.Debug("loaded config", "file", used)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./barcodegen.yaml or $HOME/.config/barcodegen/barcodegen.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("ink", barcodegen.Black.String(), "bar color as #AARRGGBB or #RRGGBB")
	pf.String("background", barcodegen.White.String(), "background color as #AARRGGBB or #RRGGBB")
	pf.Int("width", 400, "requested width in pixels")
	pf.Int("height", 120, "requested height in pixels")
	pf.Int("workers", 0, "number of concurrent renders (default GOMAXPROCS)")

	for key, flag := range map[string]string{
		"log_level":  "log-level",
		"ink":        "ink",
		"background": "background",
		"width":      "width",
		"height":     "height",
		"workers":    "workers",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newFormatsCmd())
	root.AddCommand(newConfigCmd(a))
	return root
}

func parseLevel(s string) charmlog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// generator builds a Generator from the loaded configuration.
func (a *app) generator(ctx context.Context) (*barcodegen.Generator, error) {
	colors, err := a.cfg.Colors()
	if err != nil {
		return nil, err
	}
	return barcodegen.NewGenerator(
		barcodegen.WithColors(colors),
		barcodegen.WithLogger(loggerFromContext(ctx)),
	), nil
}

func parseFormat(s string) (barcodegen.FormatCode, error) {
	code, ok := barcodegen.ParseFormatCode(s)
	if !ok {
		return 0, fmt.Errorf("unknown format %q (see 'barcodegen formats')", s)
	}
	return code, nil
}
