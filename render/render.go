// Package render paints computed flex layout trees onto a pixel canvas.
// Boxes are drawn in tree order: each node's border box is filled from a
// depth-based palette with its border edges drawn on top, so nested
// containers read as nested rectangles.
package render

import (
	"image"
	"image/color"

	"github.com/chrisuehlinger/flexkit/flex"
)

// Canvas represents the rendering surface.
type Canvas struct {
	Pixels []color.RGBA
	Width  int
	Height int
}

// NewCanvas creates a new canvas with the given dimensions, initialized
// to white.
func NewCanvas(width, height int) *Canvas {
	pixels := make([]color.RGBA, width*height)
	white := color.RGBA{255, 255, 255, 255}
	for i := range pixels {
		pixels[i] = white
	}
	return &Canvas{
		Pixels: pixels,
		Width:  width,
		Height: height,
	}
}

// FillRect fills a rectangle, clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col color.RGBA) {
	for py := y; py < y+h; py++ {
		if py < 0 || py >= c.Height {
			continue
		}
		for px := x; px < x+w; px++ {
			if px < 0 || px >= c.Width {
				continue
			}
			c.Pixels[py*c.Width+px] = col
		}
	}
}

// At returns the pixel at the given coordinates.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Pixels[y*c.Width+x]
}

// Image copies the canvas into an image.RGBA.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	return img
}

// DisplayCommand represents a single painting operation.
type DisplayCommand interface {
	Execute(c *Canvas)
}

// SolidColorCommand paints a solid color rectangle.
type SolidColorCommand struct {
	Color color.RGBA
	X, Y  float64
	W, H  float64
}

// Execute paints the solid color rectangle.
func (cmd *SolidColorCommand) Execute(c *Canvas) {
	c.FillRect(int(cmd.X), int(cmd.Y), int(cmd.W), int(cmd.H), cmd.Color)
}

// BorderCommand paints solid border edges around a rectangle.
type BorderCommand struct {
	Color       color.RGBA
	X, Y        float64
	W, H        float64
	TopWidth    float64
	RightWidth  float64
	BottomWidth float64
	LeftWidth   float64
}

// Execute paints the border edges.
func (cmd *BorderCommand) Execute(c *Canvas) {
	x := int(cmd.X)
	y := int(cmd.Y)
	w := int(cmd.W)
	h := int(cmd.H)

	if cmd.TopWidth > 0 {
		c.FillRect(x, y, w, int(cmd.TopWidth), cmd.Color)
	}
	if cmd.RightWidth > 0 {
		c.FillRect(x+w-int(cmd.RightWidth), y, int(cmd.RightWidth), h, cmd.Color)
	}
	if cmd.BottomWidth > 0 {
		c.FillRect(x, y+h-int(cmd.BottomWidth), w, int(cmd.BottomWidth), cmd.Color)
	}
	if cmd.LeftWidth > 0 {
		c.FillRect(x, y, int(cmd.LeftWidth), h, cmd.Color)
	}
}

// Depth palette for box backgrounds; wraps for deep trees.
var boxFills = []color.RGBA{
	{0xec, 0xef, 0xf1, 0xff},
	{0xb3, 0xd4, 0xfc, 0xff},
	{0xc5, 0xe1, 0xa5, 0xff},
	{0xff, 0xe0, 0xb2, 0xff},
	{0xe1, 0xbe, 0xe7, 0xff},
	{0xb2, 0xdf, 0xdb, 0xff},
}

var borderColor = color.RGBA{0x37, 0x47, 0x4f, 0xff}

// Paint renders a laid-out flex tree to the canvas in tree order.
func (c *Canvas) Paint(root *flex.Node) {
	if root == nil {
		return
	}
	for _, cmd := range BuildDisplayList(root) {
		cmd.Execute(c)
	}
}

// BuildDisplayList flattens a laid-out tree into painting commands.
// Positions are accumulated from the root since each node's layout
// position is relative to its parent.
func BuildDisplayList(root *flex.Node) []DisplayCommand {
	var list []DisplayCommand
	appendNode(&list, root, 0, 0, 0)
	return list
}

func appendNode(list *[]DisplayCommand, n *flex.Node, originX, originY float64, depth int) {
	x := originX + n.LayoutLeft()
	y := originY + n.LayoutTop()
	w := n.LayoutWidth()
	h := n.LayoutHeight()

	*list = append(*list, &SolidColorCommand{
		Color: boxFills[depth%len(boxFills)],
		X:     x, Y: y, W: w, H: h,
	})

	top := n.Border(flex.EdgeTop)
	right := n.Border(flex.EdgeRight)
	bottom := n.Border(flex.EdgeBottom)
	left := n.Border(flex.EdgeLeft)
	if top > 0 || right > 0 || bottom > 0 || left > 0 {
		*list = append(*list, &BorderCommand{
			Color: borderColor,
			X:     x, Y: y, W: w, H: h,
			TopWidth:    top,
			RightWidth:  right,
			BottomWidth: bottom,
			LeftWidth:   left,
		})
	}

	for i := 0; i < n.ChildCount(); i++ {
		appendNode(list, n.Child(i), x, y, depth+1)
	}
}
