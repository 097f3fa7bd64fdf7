// Package bin implements a decoder and encoder for the Cast binary container
// format.
//
// The easiest way to decode and encode files is through the Deserialize and
// Serialize functions. These work directly between byte streams and Document
// structures specified by the castfile package. For most purposes, this is
// all that is required to read and write Cast files.
//
// The Decoder and Encoder types give lower-level control: the decoder reports
// non-fatal warnings (unknown node identifiers, nonzero reserved header
// bytes) separately from fatal errors, and can dump a readable rendition of a
// stream's raw structure.
//
// A stream begins with a 16-byte file header, followed by one serialized node
// per root. Every node carries its total serialized byte length, which the
// decoder validates after parsing the node's properties and children.
package bin

import (
	"io"

	"github.com/castapi/castfile"
)

// Magic is the 32-bit value identifying a Cast stream, the little-endian
// reading of "cast".
const Magic uint32 = 0x74736163

// Version is the format version this package encodes. Streams with a greater
// version are rejected.
const Version uint32 = 1

// Sizes of the fixed portions of the format.
const (
	fileHeaderSize = 16
	nodeHeaderSize = 24
	propHeaderSize = 8
)

// Deserialize decodes data from r into a Document. Decoder warnings are
// discarded; use Decoder.Decode to observe them.
func Deserialize(r io.Reader) (*castfile.Document, error) {
	doc, _, err := Decoder{}.Decode(r)
	return doc, err
}

// Serialize encodes doc to w.
func Serialize(w io.Writer, doc *castfile.Document) error {
	return Encoder{}.Encode(w, doc)
}

// Format implements castfile.Format so that this package can be registered
// when it is imported.
type Format struct{}

func (Format) Name() string {
	return "cast"
}

func (Format) Magic() string {
	return "cast"
}

func (Format) Decode(r io.Reader) (*castfile.Document, error) {
	return Deserialize(r)
}

func (Format) Encode(w io.Writer, doc *castfile.Document) error {
	return Serialize(w, doc)
}

func init() {
	castfile.RegisterFormat(Format{})
}
