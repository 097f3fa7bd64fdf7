package bin

import (
	"errors"
	"io"
	"math"

	"github.com/anaminus/parse"
	"github.com/castapi/castfile"
)

// Encoder encodes a castfile.Document into a stream of bytes.
type Encoder struct{}

// Encode writes doc to w. Serialization is deterministic: properties are
// written in insertion order, children and roots in list order, so encoding
// an unmodified document repeatedly produces identical bytes.
func (e Encoder) Encode(w io.Writer, doc *castfile.Document) (err error) {
	if w == nil {
		return errors.New("nil writer")
	}
	if doc == nil {
		return errors.New("nil document")
	}

	fw := parse.NewBinaryWriter(w)

	fw.Number(Magic)
	fw.Number(Version)
	fw.Number(int32(len(doc.Roots)))
	fw.Number(uint32(0))

	for _, root := range doc.Roots {
		if e.encodeNode(fw, root) {
			break
		}
	}

	_, err = fw.End()
	return err
}

// encodeNode writes one node and its descendants. The size carried in the
// node header is computed from the tree before anything is written, so it
// always agrees with the bytes that follow.
func (e Encoder) encodeNode(fw *parse.BinaryWriter, n *castfile.Node) (failed bool) {
	props := n.Properties()
	for _, p := range props {
		if len(p.Name) == 0 || len(p.Name) > 0xFFFF {
			fw.Add(0, NodeError{Identifier: n.Identifier, Cause: ErrKeyLength(len(p.Name))})
			return true
		}
		if p.Value.Count() > math.MaxInt32 {
			fw.Add(0, NodeError{Identifier: n.Identifier, Cause: ErrValueCount(p.Value.Count())})
			return true
		}
	}

	if fw.Number(n.Identifier) || fw.Number(uint32(n.SerializedSize())) || fw.Number(n.Hash) {
		return true
	}
	if fw.Number(int32(len(props))) || fw.Number(int32(n.ChildCount())) {
		return true
	}

	for _, p := range props {
		if fw.Number(uint16(p.Value.Type())) || fw.Number(uint16(len(p.Name))) {
			return true
		}
		if fw.Number(int32(p.Value.Count())) {
			return true
		}
		if fw.Bytes([]byte(p.Name)) {
			return true
		}
		if fw.Bytes(payloadToBytes(p.Value)) {
			return true
		}
	}

	for _, child := range n.Children() {
		if e.encodeNode(fw, child) {
			return true
		}
	}

	return false
}
