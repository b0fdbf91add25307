package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/raytrace/rimage"
)

// ConvertAction is the corresponding action for 'convert'.
func ConvertAction(c *cli.Context) error {
	logger := newLogger(c, "convert")
	if c.Args().Len() != 2 {
		return errors.New("convert needs <in> <out>")
	}
	in, out := c.Args().Get(0), c.Args().Get(1)

	canvas, err := rimage.ReadCanvasFromFile(in)
	if err != nil {
		return err
	}

	scale := c.Int(convertFlagScale)
	if scale < 1 {
		return errors.Errorf("--%s must be at least 1 but got %d", convertFlagScale, scale)
	}
	if scale > 1 {
		canvas = rimage.Resize(canvas, canvas.Width()*scale, canvas.Height()*scale)
	}

	format, err := rimage.FormatFromPath(out)
	if err != nil {
		return err
	}
	if c.Bool(convertFlagBinary) && format == rimage.FormatPPM {
		err = writeBinaryPPM(out, canvas)
	} else {
		err = rimage.WriteCanvasToFile(out, canvas)
	}
	if err != nil {
		return err
	}

	logger.Infow("converted", "in", in, "out", out, "width", canvas.Width(), "height", canvas.Height())
	return nil
}

func writeBinaryPPM(path string, canvas *rimage.Canvas) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't create %s", path)
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return rimage.WriteBinaryPPM(f, canvas)
}

// InfoAction is the corresponding action for 'info'.
func InfoAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("info needs <in>")
	}
	canvas, err := rimage.ReadCanvasFromFile(c.Args().First())
	if err != nil {
		return err
	}

	avg := averageColor(canvas)
	fmt.Fprintf(c.App.Writer, "%dx%d average %s %s\n", canvas.Width(), canvas.Height(), avg.Hex(), avg)
	return nil
}

func averageColor(canvas *rimage.Canvas) rimage.Color {
	n := canvas.Width() * canvas.Height()
	if n == 0 {
		return rimage.Black
	}
	var sum rimage.Color
	for y := 0; y < canvas.Height(); y++ {
		for x := 0; x < canvas.Width(); x++ {
			sum = sum.Add(canvas.Get(x, y))
		}
	}
	return sum.Div(float32(n))
}
