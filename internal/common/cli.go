package common

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

// NewLogger builds the stderr JSON logger shared by all commands.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// PrintOutput writes v to the app writer in the format chosen by --json.
func PrintOutput(c *cli.Context, v interface{}) error {
	outputData, err := Marshal(v, c.Bool("json"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(outputData))
	return err
}
