package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"boxpaint/pkg/config"
)

const appName = "boxpaint"

// env is the state shared by the actions once the command line is parsed.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// initializeAppContext loads configuration and prepares logging after the
// command line has been parsed.
func (e *env) initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	configFile := cmd.String("config")
	if e.cfg, err = config.Load(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		e.cfg.Logging.Level = "debug"
	}
	if e.log, err = e.cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func (e *env) destroyAppContext(_ context.Context, _ *cli.Command) error {
	if e.log != nil {
		e.log.Debug("Program ended")
		// Syncing console output fails on some terminals; nothing to report.
		_ = e.log.Sync()
	}
	if e.cfg != nil {
		return e.cfg.Logging.Close()
	}
	return nil
}

// errWasHandled is set once an error has been logged, so main does not
// print it again.
var errWasHandled bool

func (e *env) exitErrHandler(_ context.Context, _ *cli.Command, err error) {
	if e.log != nil && err != nil {
		e.log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func newApp(e *env) *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "renders a document and stylesheet to PNG or PDF",
		Version:         runtime.Version(),
		HideHelpCommand: true,
		Before:          e.initializeAppContext,
		After:           e.destroyAppContext,
		ExitErrHandler:  e.exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "html", Aliases: []string{"H"}, Value: "examples/test.html", Usage: "read markup from `FILE`"},
			&cli.StringFlag{Name: "css", Aliases: []string{"c"}, Value: "examples/test.css", Usage: "read stylesheet from `FILE`"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write result to `FILE` (default output.png or output.pdf)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "output `TYPE`: png or pdf (default from configuration)"},
			&cli.StringFlag{Name: "config", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "dump", Usage: "print the document and layout trees"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
		},
		Action: e.render,
		Commands: []*cli.Command{
			{
				Name:      "dumpconfig",
				Usage:     "Dumps actual configuration (YAML)",
				Action:    e.outputConfiguration,
				ArgsUsage: "DESTINATION",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var err error
	// os.Exit is called at the end of main to set exit code, make sure
	// there are no other deferred functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp(&env{}).Run(ctx, os.Args)
}
