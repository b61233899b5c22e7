// Command update-references renders the reference documents of the
// reftest suite to PNG snapshots, for inspection after an intended
// rendering change.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"

	"boxpaint/pkg/config"
	"boxpaint/pkg/visualtest"
)

func main() {
	cmd := &cli.Command{
		Name:      "update-references",
		Usage:     "renders reftest reference documents to PNG",
		ArgsUsage: "[NAME...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "pkg/visualtest/testdata/reftests", Usage: "reftest `DIR`"},
			&cli.StringFlag{Name: "out", Value: "pkg/visualtest/testdata/reference", Usage: "write snapshots to `DIR`"},
			&cli.StringFlag{Name: "config", Usage: "load configuration from `FILE` (YAML)"},
		},
		Action: update,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func update(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	refs, err := filepath.Glob(filepath.Join(cmd.String("dir"), "*-ref.html"))
	if err != nil {
		return err
	}

	wanted := map[string]bool{}
	for _, name := range cmd.Args().Slice() {
		wanted[name] = true
	}

	count := 0
	for _, ref := range refs {
		name := strings.TrimSuffix(filepath.Base(ref), "-ref.html")
		if len(wanted) > 0 && !wanted[name] {
			continue
		}
		dest := filepath.Join(cmd.String("out"), name+".png")
		if err := visualtest.UpdateReferenceImage(ref, dest, cfg); err != nil {
			return fmt.Errorf("failed to generate %s: %w", dest, err)
		}
		count++
	}
	fmt.Printf("%d reference images generated\n", count)
	return nil
}
