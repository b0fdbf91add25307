// Package cli contains the rtc command line application, which draws, converts and inspects canvases.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/raytrace/logging"
)

const (
	// Global flags.
	flagDebug = "debug"

	// Flags for draw.
	drawFlagWidth  = "width"
	drawFlagHeight = "height"
	drawFlagColor  = "color"
	drawFlagOut    = "out"
	drawFlagOpen   = "open"

	// Flags for convert.
	convertFlagScale  = "scale"
	convertFlagBinary = "binary"
)

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut. Logs are written to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "rtc",
		Usage:           "draw, convert and inspect ray tracer canvases",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				EnvVars: []string{"RTC_DEBUG"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "draw",
				Usage: "draw a diagonal line on a new canvas and save it",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    drawFlagWidth,
						Value:   1000,
						EnvVars: []string{"RTC_WIDTH"},
						Usage:   "canvas width in pixels",
					},
					&cli.IntFlag{
						Name:    drawFlagHeight,
						Value:   1000,
						EnvVars: []string{"RTC_HEIGHT"},
						Usage:   "canvas height in pixels",
					},
					&cli.StringFlag{
						Name:  drawFlagColor,
						Value: "#ff0000",
						Usage: "line color as #rrggbb",
					},
					&cli.StringFlag{
						Name:    drawFlagOut,
						Aliases: []string{"o"},
						Value:   "out.ppm",
						Usage:   "write the canvas to `FILE`; the extension picks the format",
					},
					&cli.BoolFlag{
						Name:  drawFlagOpen,
						Usage: "open the written file in the system image viewer",
					},
				},
				Action: DrawAction,
			},
			{
				Name:      "convert",
				Usage:     "convert an image between formats",
				ArgsUsage: "<in> <out>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  convertFlagScale,
						Value: 1,
						Usage: "enlarge the image by this integer factor with nearest neighbor sampling",
					},
					&cli.BoolFlag{
						Name:  convertFlagBinary,
						Usage: "write .ppm output as binary P6 instead of plain P3",
					},
				},
				Action: ConvertAction,
			},
			{
				Name:      "info",
				Usage:     "print the size and average color of an image",
				ArgsUsage: "<in>",
				Action:    InfoAction,
			},
		},
	}
}

// newLogger returns a logger for a command that writes to the app's error writer.
func newLogger(c *cli.Context, name string) logging.Logger {
	logger := logging.NewBlankLogger("rtc").Sublogger(name)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	} else {
		logger.SetLevel(logging.INFO)
	}
	return logger
}
