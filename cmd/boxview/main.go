// Command boxview renders a document and stylesheet into a window and
// re-renders on demand, so edits to either file can be checked quickly.
package main

import (
	"context"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"boxpaint/pkg/config"
	"boxpaint/pkg/pipeline"
)

type viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	htmlPath string
	cssPath  string
}

// load renders both inputs. Unreadable files render as empty input.
func (v *viewer) load() (*pipeline.Result, error) {
	read := func(path string) string {
		data, err := os.ReadFile(path)
		if err != nil {
			v.log.Warn("Unable to read input", zap.String("file", path), zap.Error(err))
			return ""
		}
		return string(data)
	}
	return pipeline.New(v.cfg, v.log).Render(read(v.htmlPath), read(v.cssPath))
}

func (v *viewer) show(_ context.Context, cmd *cli.Command) error {
	var err error
	if v.cfg, err = config.Load(cmd.String("config")); err != nil {
		return fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if v.log, err = v.cfg.Logging.Prepare(); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	defer func() {
		_ = v.log.Sync()
		_ = v.cfg.Logging.Close()
	}()
	v.htmlPath, v.cssPath = cmd.String("html"), cmd.String("css")

	a := app.New()
	w := a.NewWindow("boxview")
	w.Resize(fyne.NewSize(float32(v.cfg.Viewport.Width), float32(v.cfg.Viewport.Height)+40))

	canvasImg := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	canvasImg.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel("")

	reload := func() {
		status.SetText("Rendering " + v.htmlPath + "...")
		go func() {
			res, err := v.load()
			fyne.Do(func() {
				if err != nil {
					status.SetText("Render error: " + err.Error())
					return
				}
				canvasImg.Image = res.Image()
				canvasImg.Refresh()
				status.SetText(fmt.Sprintf("%s: %d items, %dx%d",
					v.htmlPath, len(res.Items), res.Canvas.Width, res.Canvas.Height))
				for _, warn := range res.Warnings {
					v.log.Warn("Stylesheet", zap.String("warning", warn))
				}
			})
		}()
	}

	button := widget.NewButton("Reload", reload)
	bottom := container.NewBorder(nil, nil, nil, button, status)
	w.SetContent(container.NewBorder(nil, bottom, nil, nil, container.NewScroll(canvasImg)))

	reload()
	w.ShowAndRun()
	return nil
}

func main() {
	v := &viewer{}
	cmd := &cli.Command{
		Name:  "boxview",
		Usage: "shows a rendered document in a window",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "html", Aliases: []string{"H"}, Value: "examples/test.html", Usage: "read markup from `FILE`"},
			&cli.StringFlag{Name: "css", Aliases: []string{"c"}, Value: "examples/test.css", Usage: "read stylesheet from `FILE`"},
			&cli.StringFlag{Name: "config", Usage: "load configuration from `FILE` (YAML)"},
		},
		Action: v.show,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "boxview: %v\n", err)
		os.Exit(1)
	}
}
