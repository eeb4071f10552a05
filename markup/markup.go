// Package markup builds flex layout trees from HTML fragments using
// golang.org/x/net/html as the underlying parser. Element style attributes
// carry the flexbox properties; text content becomes measurable leaf
// nodes.
package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/flexkit/flex"
)

// Meta identifies the markup source of a flex node. It is stored as the
// node's context so downstream consumers (printers, inspectors, painters)
// can label boxes.
type Meta struct {
	Tag  string
	ID   string
	Text string
}

// Error represents a markup loading failure.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("markup: %s: %s", e.Op, e.Message)
}

// ErrParse creates an error for an unparseable document.
func ErrParse(message string) *Error {
	return &Error{Op: "parse", Message: message}
}

// ErrStyle creates an error for an invalid style declaration.
func ErrStyle(message string) *Error {
	return &Error{Op: "style", Message: message}
}

const (
	defaultFontSize = 16.0

	// Character-cell estimates used by the text measure function.
	charWidthFactor  = 0.6
	lineHeightFactor = 1.2
)

// Parse reads an HTML document and returns the flex tree of its body.
func Parse(r io.Reader) (*flex.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, ErrParse(err.Error())
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		return nil, ErrParse("document has no body")
	}

	root := flex.NewNode()
	root.SetContext(&Meta{Tag: "body"})
	if err := applyStyleAttribute(root, attrValue(body, "style")); err != nil {
		root.FreeRecursive()
		return nil, err
	}

	if err := buildChildren(root, body); err != nil {
		root.FreeRecursive()
		return nil, err
	}
	return root, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(content string) (*flex.Node, error) {
	return Parse(strings.NewReader(content))
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func buildChildren(parent *flex.Node, src *html.Node) error {
	index := parent.ChildCount()
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if c.DataAtom == atom.Script || c.DataAtom == atom.Style {
				continue
			}
			child := flex.NewNode()
			child.SetContext(&Meta{Tag: c.Data, ID: attrValue(c, "id")})
			if err := applyStyleAttribute(child, attrValue(c, "style")); err != nil {
				child.FreeRecursive()
				return err
			}
			parent.InsertChild(child, index)
			index++
			if err := buildChildren(child, c); err != nil {
				return err
			}
		case html.TextNode:
			text := strings.TrimSpace(c.Data)
			if text == "" {
				continue
			}
			child := newTextNode(text)
			parent.InsertChild(child, index)
			index++
		}
	}
	return nil
}

// newTextNode creates a measurable leaf for a run of text. The measure
// function estimates character cells at the default font size and wraps
// under a constrained width.
func newTextNode(text string) *flex.Node {
	n := flex.NewNode()
	n.SetIsTextNode(true)
	n.SetContext(&Meta{Tag: "#text", Text: text})
	n.SetMeasureFunc(textMeasure)
	return n
}

func textMeasure(context any, width float64, widthMode flex.MeasureMode, height float64, heightMode flex.MeasureMode) flex.Size {
	meta, ok := context.(*Meta)
	if !ok {
		return flex.Size{}
	}

	charWidth := defaultFontSize * charWidthFactor
	lineHeight := defaultFontSize * lineHeightFactor
	fullWidth := float64(len(meta.Text)) * charWidth

	if widthMode == flex.MeasureModeUndefined || fullWidth <= width {
		return flex.Size{Width: fullWidth, Height: lineHeight}
	}

	// Wrap onto as many lines as the available width requires.
	charsPerLine := int(width / charWidth)
	if charsPerLine < 1 {
		charsPerLine = 1
	}
	lines := (len(meta.Text) + charsPerLine - 1) / charsPerLine
	return flex.Size{
		Width:  float64(charsPerLine) * charWidth,
		Height: float64(lines) * lineHeight,
	}
}
