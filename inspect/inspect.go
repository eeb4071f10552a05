// Package inspect renders computed layout trees as tables for debugging
// and CLI output.
package inspect

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/chrisuehlinger/flexkit/flex"
	"github.com/chrisuehlinger/flexkit/markup"
)

// WriteTable renders one row per node: its label, depth, computed
// position relative to the parent, and measured size.
func WriteTable(w io.Writer, root *flex.Node) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetTitle("Layout")
	tbl.AppendHeader(table.Row{"node", "depth", "line", "x", "y", "width", "height"})

	appendRows(tbl, root, 0)

	tbl.Render()
}

func appendRows(tbl table.Writer, n *flex.Node, depth int) {
	tbl.AppendRows([]table.Row{{
		Label(n),
		depth,
		n.LineIndex(),
		n.LayoutLeft(),
		n.LayoutTop(),
		n.LayoutWidth(),
		n.LayoutHeight(),
	}})

	for i := 0; i < n.ChildCount(); i++ {
		appendRows(tbl, n.Child(i), depth+1)
	}
}

// Label names a node from its markup metadata when present.
func Label(n *flex.Node) string {
	meta, ok := n.Context().(*markup.Meta)
	if !ok {
		return "node"
	}
	switch {
	case meta.ID != "":
		return fmt.Sprintf("%s#%s", meta.Tag, meta.ID)
	case meta.Text != "":
		return fmt.Sprintf("%s %q", meta.Tag, truncate(meta.Text, 20))
	default:
		return meta.Tag
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
