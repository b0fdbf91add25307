package cli

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/raytrace/rimage"
	"go.viam.com/raytrace/utils"
)

// openFile opens a file in the platform's default viewer. Replaced in tests.
var openFile = browser.OpenFile

// DrawAction is the corresponding action for 'draw'.
func DrawAction(c *cli.Context) error {
	logger := newLogger(c, "draw")

	width, height := c.Int(drawFlagWidth), c.Int(drawFlagHeight)
	if width <= 0 || height <= 0 {
		return errors.Errorf("canvas size must be positive but got %dx%d", width, height)
	}
	col, err := rimage.NewColorFromHex(c.String(drawFlagColor))
	if err != nil {
		return err
	}

	canvas := rimage.NewCanvas(width, height)
	for i := 0; i < utils.MinInt(width, height); i++ {
		canvas.Set(i, i, col)
	}
	logger.Debugw("drew diagonal", "width", width, "height", height, "color", col.Hex())

	out := c.String(drawFlagOut)
	if err := rimage.WriteCanvasToFile(out, canvas); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "successfully wrote to %s\n", out)

	if c.Bool(drawFlagOpen) {
		// the viewer is a convenience; failing to launch it is not an error
		if err := openFile(out); err != nil {
			logger.Debugw("couldn't open viewer", "path", out, "error", err)
		}
	}
	return nil
}
