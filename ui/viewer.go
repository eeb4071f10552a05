// Package ui provides a Fyne-based viewer for computed flex layouts.
package ui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/chrisuehlinger/flexkit/flex"
	"github.com/chrisuehlinger/flexkit/markup"
	"github.com/chrisuehlinger/flexkit/render"
)

const (
	viewportWidth  = 800
	viewportHeight = 600
)

// Viewer is the main application window: a markup editor on the left and
// the painted layout on the right.
type Viewer struct {
	app    fyne.App
	window fyne.Window

	source      *widget.Entry
	status      *widget.Label
	canvasImage *canvas.Image

	engine *flex.Engine
	root   *flex.Node

	mu sync.Mutex
}

// NewViewer creates the viewer window.
func NewViewer() *Viewer {
	a := app.New()
	w := a.NewWindow("flexkit")
	w.Resize(fyne.NewSize(1200, 700))

	v := &Viewer{
		app:    a,
		window: w,
		engine: flex.NewEngine(),
	}

	v.source = widget.NewMultiLineEntry()
	v.source.SetPlaceHolder("<body style=\"flex-direction: row\">...</body>")
	v.status = widget.NewLabel("")

	empty := render.NewCanvas(viewportWidth, viewportHeight)
	v.canvasImage = canvas.NewImageFromImage(empty.Image())
	v.canvasImage.FillMode = canvas.ImageFillContain
	v.canvasImage.SetMinSize(fyne.NewSize(viewportWidth, viewportHeight))

	renderBtn := widget.NewButton("Render", func() {
		v.RenderMarkup(v.source.Text)
	})

	left := container.NewBorder(nil, container.NewVBox(renderBtn, v.status), nil, nil, v.source)
	split := container.NewHSplit(left, container.NewScroll(v.canvasImage))
	split.SetOffset(0.33)
	w.SetContent(split)

	return v
}

// RenderMarkup parses the markup, lays it out at the viewport size, and
// repaints the canvas.
func (v *Viewer) RenderMarkup(source string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if strings.TrimSpace(source) == "" {
		v.status.SetText("nothing to render")
		return
	}

	root, err := markup.ParseString(source)
	if err != nil {
		v.status.SetText(err.Error())
		return
	}

	if v.root != nil {
		v.root.FreeRecursive()
	}
	v.root = root

	v.engine.CalculateLayout(root, viewportWidth, viewportHeight, flex.DirectionLTR)

	c := render.NewCanvas(viewportWidth, viewportHeight)
	c.Paint(root)
	v.canvasImage.Image = c.Image()
	v.canvasImage.Refresh()
	v.status.SetText(fmt.Sprintf("%d boxes", countNodes(root)))
}

func countNodes(n *flex.Node) int {
	count := 1
	for i := 0; i < n.ChildCount(); i++ {
		count += countNodes(n.Child(i))
	}
	return count
}

// Run shows the window and enters the event loop. It blocks until the
// window is closed.
func (v *Viewer) Run() {
	v.window.ShowAndRun()
}
