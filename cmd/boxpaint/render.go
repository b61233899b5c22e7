package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"boxpaint/pkg/config"
	"boxpaint/pkg/pipeline"
	"boxpaint/pkg/render"
)

// readInput returns the contents of path. A missing or unreadable file is
// reported and rendered as empty input.
func (e *env) readInput(kind, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		e.log.Warn("Unable to read input, using empty "+kind, zap.String("file", path), zap.Error(err))
		return ""
	}
	return string(data)
}

func (e *env) render(_ context.Context, cmd *cli.Command) (err error) {
	format, err := render.ParseFormat(e.cfg.Output.Format)
	if cmd.IsSet("format") {
		format, err = render.ParseFormat(cmd.String("format"))
	}
	if err != nil {
		return err
	}
	output := cmd.String("output")
	if output == "" {
		output = "output" + format.Extension()
	}

	markup := e.readInput("document", cmd.String("html"))
	stylesheet := e.readInput("stylesheet", cmd.String("css"))

	res, err := pipeline.New(e.cfg, e.log).Render(markup, stylesheet)
	if err != nil {
		return err
	}

	if cmd.Bool("dump") {
		w := cmd.Root().Writer
		fmt.Fprintln(w, "DOM tree:")
		fmt.Fprint(w, res.Document.Root.Dump())
		fmt.Fprintln(w, "Layout tree:")
		if res.Root != nil {
			fmt.Fprint(w, res.Root.Dump())
		}
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", output, err)
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close destination file '%s': %w", output, er))
		}
	}()

	if err := res.Encode(out, format); err != nil {
		return fmt.Errorf("unable to write '%s': %w", output, err)
	}

	e.log.Info("Rendered document",
		zap.String("file", output),
		zap.String("format", string(format)),
		zap.Int("items", len(res.Items)),
		zap.Int("width", res.Canvas.Width),
		zap.Int("height", res.Canvas.Height))
	return nil
}

func (e *env) outputConfiguration(_ context.Context, cmd *cli.Command) (err error) {
	if cmd.Args().Len() > 1 {
		e.log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	data, err := config.Dump(e.cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		_, err = cmd.Root().Writer.Write(data)
		return err
	}

	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close destination file '%s': %w", fname, er))
		}
	}()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	e.log.Info("Outputing configuration", zap.String("file", fname))
	return nil
}
