package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericlevine/barcodegen"
	"github.com/ericlevine/barcodegen/task"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		scale  int
		async  bool
	)

	cmd := &cobra.Command{
		Use:   "render <payload>",
		Short: "Render one payload to an image file",
		Long: `Render one payload as a barcode and write it to an image file.

The output format follows the file extension: .png, .bmp, .tif or .tiff.
Unknown numeric format codes fall back to CODE_128.`,
		Example: `  barcodegen render 5901234123457 --format ean13 -o ean.png
  barcodegen render "HELLO" --format 2 --ink "#FF002A54" -o code39.bmp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			code, err := parseFormat(format)
			if err != nil {
				return err
			}
			if err := checkOutputPath(output); err != nil {
				return err
			}
			g, err := a.generator(ctx)
			if err != nil {
				return err
			}

			req := task.Request{Payload: args[0], Format: code, Width: a.cfg.Width, Height: a.cfg.Height}
			logger.Debug("rendering", "format", code, "width", req.Width, "height", req.Height, "async", async)

			var res barcodegen.Result
			if async {
				res, err = task.RenderAsync(g, req, nil).Wait(ctx)
				if err != nil {
					return err
				}
			} else {
				res = g.Generate(req.Payload, req.Format, req.Width, req.Height)
			}
			if res.Err != nil {
				return fmt.Errorf("render %s %q: %w", code, args[0], res.Err)
			}

			if err := writeImage(output, upscale(res.Pixels, scale)); err != nil {
				return err
			}
			logger.Info("wrote barcode", "file", output, "width", res.Pixels.Width*max(scale, 1), "height", res.Pixels.Height*max(scale, 1))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "CODE_128", "barcode format name or code")
	cmd.Flags().StringVarP(&output, "output", "o", "barcode.png", "output file")
	cmd.Flags().IntVar(&scale, "scale", 1, "integer upscaling factor applied to the written image")
	cmd.Flags().BoolVar(&async, "async", false, "render on a background goroutine")
	return cmd
}
