package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/storebind/internal/core"
)

// TreeVisualizer renders a notification subtree for inspection: Graphviz DOT
// for humans, JSON for tooling. Traversal follows the child back-references
// each node keeps in registration order, so output is deterministic given
// node labels.
type TreeVisualizer struct{}

// NodeExport is the JSON shape of one notification node.
type NodeExport struct {
	Label      string       `json:"label"`
	Subscribed bool         `json:"subscribed"`
	Children   []NodeExport `json:"children,omitempty"`
}

// ExportDOT generates Graphviz DOT source for the subtree rooted at root.
// Active (subscribed) nodes are filled.
func (v *TreeVisualizer) ExportDOT(root *core.Subscription) string {
	var buf bytes.Buffer
	buf.WriteString("digraph NotificationTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	renderNode(&buf, root)
	renderEdges(&buf, root)

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes the subtree rooted at root to indented JSON.
func (v *TreeVisualizer) ExportJSON(root *core.Subscription) ([]byte, error) {
	return json.MarshalIndent(exportNode(root), "", "  ")
}

func exportNode(s *core.Subscription) NodeExport {
	out := NodeExport{
		Label:      nodeLabel(s),
		Subscribed: s.IsSubscribed(),
	}
	for _, child := range s.Children() {
		out.Children = append(out.Children, exportNode(child))
	}
	return out
}

func nodeLabel(s *core.Subscription) string {
	if s.Label() != "" {
		return s.Label()
	}
	return s.ID()
}

func renderNode(buf *bytes.Buffer, s *core.Subscription) {
	style := ""
	if s.IsSubscribed() {
		style = ` style=filled fillcolor=lightgreen`
	}
	fmt.Fprintf(buf, "  %q [label=%q%s];\n", s.ID(), nodeLabel(s), style)
	for _, child := range s.Children() {
		renderNode(buf, child)
	}
}

func renderEdges(buf *bytes.Buffer, s *core.Subscription) {
	for _, child := range s.Children() {
		fmt.Fprintf(buf, "  %q -> %q;\n", s.ID(), child.ID())
		renderEdges(buf, child)
	}
}
