package bin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"

	"github.com/castapi/castfile"
)

// Dump writes to w a readable representation of the tree decoded from r.
func (d Decoder) Dump(w io.Writer, r io.Reader) (warn, err error) {
	if r == nil {
		return nil, errors.New("nil reader")
	}
	if w == nil {
		return nil, errors.New("nil writer")
	}

	doc, warn, err := d.Decode(r)
	if err != nil {
		return warn, err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Roots: %d", len(doc.Roots))
	for i, root := range doc.Roots {
		dumpNode(bw, 0, i, root)
	}
	bw.WriteByte('\n')
	bw.Flush()
	return warn, nil
}

func dumpNode(w *bufio.Writer, indent, i int, n *castfile.Node) {
	dumpNewline(w, indent)
	if indent == 0 {
		fmt.Fprintf(w, "#%d: ", i)
	}
	fmt.Fprintf(w, "%s (hash:0x%X size:%d) {", castfile.KindName(n.Identifier), n.Hash, n.SerializedSize())
	for _, p := range n.Properties() {
		dumpNewline(w, indent+1)
		dumpString(w, p.Name)
		fmt.Fprintf(w, ": %s (count:%d) ", p.Value.Type(), p.Value.Count())
		dumpValue(w, p.Value)
	}
	for _, ch := range n.Children() {
		dumpNode(w, indent+1, -1, ch)
	}
	dumpNewline(w, indent)
	w.WriteByte('}')
}

// dumpValue prints small payloads in full and larger ones elided, so buffers
// with millions of elements stay readable.
func dumpValue(w *bufio.Writer, v castfile.Value) {
	const maxInline = 16
	if v.Count() > maxInline {
		fmt.Fprintf(w, "(%d bytes)", v.DataSize())
		return
	}
	if s, ok := v.(castfile.ValueString); ok {
		dumpString(w, string(s))
		return
	}
	w.WriteByte('[')
	w.WriteString(v.String())
	w.WriteByte(']')
}

func dumpNewline(w *bufio.Writer, indent int) {
	w.WriteByte('\n')
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func dumpString(w *bufio.Writer, s string) {
	for _, r := range s {
		if !unicode.IsGraphic(r) {
			fmt.Fprintf(w, "(len:%d) %q", len(s), s)
			return
		}
	}
	w.WriteString(strconv.Quote(s))
}
