package diagram

import (
	"bytes"
	"fmt"
	"strings"
)

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`)

// quote renders s as a DOT quoted string. Line breaks become \n escapes, which
// Graphviz draws as centered lines. Backslashes are doubled so they print
// literally and never escape the closing quote.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// DOT serializes the diagram to Graphviz DOT. The output depends only on the
// declarations: the comment, the graph attributes, the nodes in declaration
// order and the edges in insertion order.
func (d *Diagram) DOT() []byte {
	var buf bytes.Buffer
	if d.config.Comment != "" {
		for _, line := range strings.Split(d.config.Comment, "\n") {
			fmt.Fprintf(&buf, "// %s\n", line)
		}
	}
	buf.WriteString("digraph G {\n")
	for _, attr := range graphAttrs(d.config) {
		fmt.Fprintf(&buf, "  %s;\n", attr)
	}
	buf.WriteString("\n")

	for _, n := range d.Nodes() {
		fmt.Fprintf(&buf, "  %s [label=%s];\n", quote(n.Key), quote(n.Label))
	}

	buf.WriteString("\n")
	for _, e := range d.edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}

	buf.WriteString("}\n")
	return buf.Bytes()
}

func graphAttrs(cfg Config) []string {
	var attrs []string
	if cfg.Direction != "" {
		attrs = append(attrs, "rankdir="+quote(string(cfg.Direction)))
	}
	if cfg.Size != "" {
		attrs = append(attrs, "size="+quote(cfg.Size))
	}
	return attrs
}
