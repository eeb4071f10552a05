package main

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/chrisuehlinger/flexkit/flex"
	"github.com/chrisuehlinger/flexkit/inspect"
	"github.com/chrisuehlinger/flexkit/markup"
	"github.com/chrisuehlinger/flexkit/render"
	"github.com/chrisuehlinger/flexkit/ui"
)

const (
	widthKey  = "width"
	heightKey = "height"
	rtlKey    = "rtl"
	outKey    = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "flexkit",
		Usage: "Compute and display flexbox layouts for HTML fragments",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  widthKey,
				Usage: "Available width in pixels (0 sizes from content)",
				Value: 800,
			},
			&cli.FloatFlag{
				Name:  heightKey,
				Usage: "Available height in pixels (0 sizes from content)",
				Value: 600,
			},
			&cli.BoolFlag{
				Name:  rtlKey,
				Usage: "Lay out right-to-left",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "layout",
				Usage:     "Lay out a markup file and print the node tree",
				ArgsUsage: "FILE",
				Action:    runLayout,
			},
			{
				Name:      "dump",
				Usage:     "Lay out a markup file and print a table of boxes",
				ArgsUsage: "FILE",
				Action:    runDump,
			},
			{
				Name:      "png",
				Usage:     "Lay out a markup file and paint it to a PNG",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  outKey,
						Usage: "Output PNG path",
						Value: "layout.png",
					},
				},
				Action: runPNG,
			},
			{
				Name:   "view",
				Usage:  "Open the interactive layout viewer",
				Action: runView,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadTree(cmd *cli.Command) (*flex.Node, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, fmt.Errorf("expected a markup file argument")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := markup.Parse(f)
	if err != nil {
		return nil, err
	}

	width := flex.Undefined
	if w := cmd.Float(widthKey); w > 0 {
		width = w
	}
	height := flex.Undefined
	if h := cmd.Float(heightKey); h > 0 {
		height = h
	}
	direction := flex.DirectionLTR
	if cmd.Bool(rtlKey) {
		direction = flex.DirectionRTL
	}

	flex.CalculateLayout(root, width, height, direction)
	return root, nil
}

func runLayout(ctx context.Context, cmd *cli.Command) error {
	root, err := loadTree(cmd)
	if err != nil {
		return err
	}
	defer root.FreeRecursive()

	flex.NodePrint(root, flex.PrintOptionsLayout|flex.PrintOptionsChildren)
	return nil
}

func runDump(ctx context.Context, cmd *cli.Command) error {
	root, err := loadTree(cmd)
	if err != nil {
		return err
	}
	defer root.FreeRecursive()

	inspect.WriteTable(os.Stdout, root)
	return nil
}

func runPNG(ctx context.Context, cmd *cli.Command) error {
	root, err := loadTree(cmd)
	if err != nil {
		return err
	}
	defer root.FreeRecursive()

	c := render.NewCanvas(int(root.LayoutWidth()), int(root.LayoutHeight()))
	c.Paint(root)

	out, err := os.Create(cmd.String(outKey))
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, c.Image())
}

func runView(ctx context.Context, cmd *cli.Command) error {
	viewer := ui.NewViewer()
	viewer.Run()
	return nil
}
