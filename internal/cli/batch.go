package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ericlevine/barcodegen"
	"github.com/ericlevine/barcodegen/task"
)

// batchEntry is one line of a batch list.
type batchEntry struct {
	line    int
	format  barcodegen.FormatCode
	payload string
}

// parseBatch reads "FORMAT,PAYLOAD" lines. Blank lines and lines starting
// with # are skipped. The payload is everything after the first comma.
func parseBatch(r io.Reader) ([]batchEntry, error) {
	var entries []batchEntry
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, payload, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: want FORMAT,PAYLOAD", n)
		}
		code, err := parseFormat(name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		entries = append(entries, batchEntry{line: n, format: code, payload: payload})
	}
	return entries, sc.Err()
}

func newBatchCmd(a *app) *cobra.Command {
	var (
		outDir      string
		ext         string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "batch <list-file>",
		Short: "Render every FORMAT,PAYLOAD line of a file",
		Long: `Render every line of a list file on a pool of workers.

Each line is FORMAT,PAYLOAD where FORMAT is a format name or code. Images are
written to the output directory as <line>_<symbology><ext>. Lines that fail
to render are reported and the command exits with an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			entries, err := parseBatch(f)
			f.Close()
			if err != nil {
				return err
			}
			if err := checkOutputPath("x" + ext); err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			g, err := a.generator(ctx)
			if err != nil {
				return err
			}
			reg := prometheus.NewRegistry()
			pool := task.NewPool(g, task.WithWorkers(a.cfg.Workers), task.WithRegisterer(reg), task.WithLogger(logger))
			logger.Debug("batch started", "entries", len(entries), "workers", a.cfg.Workers)

			var (
				mu   sync.Mutex
				errs []error
			)
			record := func(err error) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			tasks := make([]*task.Task, 0, len(entries))
			for _, e := range entries {
				path := filepath.Join(outDir, fmt.Sprintf("%d_%s%s", e.line, barcodegen.Resolve(e.format), ext))
				req := task.Request{Payload: e.payload, Format: e.format, Width: a.cfg.Width, Height: a.cfg.Height}
				t, err := pool.Submit(req, func(buf *barcodegen.PixelBuffer) {
					if buf == nil {
						return
					}
					if err := writeImage(path, buf); err != nil {
						record(fmt.Errorf("line %d: %w", e.line, err))
					}
				})
				if err != nil {
					return err
				}
				tasks = append(tasks, t)
			}
			pool.Close()

			for i, t := range tasks {
				if err := t.Result().Err; err != nil {
					record(fmt.Errorf("line %d: %w", entries[i].line, err))
				}
			}
			logger.Info("batch finished", "rendered", len(entries)-len(errs), "failed", len(errs))

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			for _, err := range errs {
				logger.Error("render failed", "err", err)
			}
			if len(errs) > 0 {
				return errors.Join(errs...)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "directory for rendered images")
	cmd.Flags().StringVar(&ext, "ext", ".png", "image file extension (.png, .bmp, .tif, .tiff)")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus text-format render metrics to this file")
	return cmd
}
