package memhost

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Dump renders the tree under n as indented text, one node per line.
// Props are listed in key order so dumps are stable.
func (h *Host) Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case n.IsText():
		fmt.Fprintf(b, "%s%q\n", indent, n.Text)
		return
	case n.IsComment():
		fmt.Fprintf(b, "%s<!--%s-->\n", indent, n.Text)
		return
	}

	b.WriteString(indent)
	b.WriteString("<" + n.Tag)
	for _, k := range slices.Sorted(maps.Keys(n.Props)) {
		fmt.Fprintf(b, " %s=%v", k, n.Props[k])
	}
	b.WriteString(">")
	if n.Text != "" {
		fmt.Fprintf(b, " %q", n.Text)
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		dump(b, c, depth+1)
	}
}

// Fingerprint hashes the dump of the tree under n. Trees with the same
// structure, text and props have the same fingerprint regardless of node
// IDs.
func (h *Host) Fingerprint(n *Node) uint64 {
	return xxhash.Sum64String(h.Dump(n))
}

// ChildTexts returns the text content of each child of n.
func ChildTexts(n *Node) []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.TextContent()
	}
	return out
}
