// Package main is the rtc command.
package main

import (
	"os"

	"go.viam.com/raytrace/cli"
	"go.viam.com/raytrace/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("rtc").Error(err)
		os.Exit(1)
	}
}
