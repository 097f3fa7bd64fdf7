package castfile

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
)

// Format decodes and encodes documents in a particular serialization. The
// "bin" and "json" sub-packages register their formats when imported.
type Format interface {
	// Name returns the name of the format.
	Name() string

	// Magic returns the prefix that identifies a stream as this format.
	Magic() string

	// Decode reads a document from r.
	Decode(r io.Reader) (*Document, error)

	// Encode writes a document to w.
	Encode(w io.Writer, doc *Document) error
}

var formats []Format

// RegisterFormat registers a format for use by Load and Save.
func RegisterFormat(f Format) {
	formats = append(formats, f)
}

// DefaultFormat is the name of the format used by Save: the Cast binary
// format implemented by the bin sub-package.
const DefaultFormat = "cast"

func lookupFormat(name string) (Format, error) {
	for _, f := range formats {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, errors.New("format " + name + " is not registered (is its package imported?)")
}

// Load decodes a document from r, selecting a registered format by sniffing
// the stream's leading bytes.
func Load(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	for _, f := range formats {
		magic := []byte(f.Magic())
		peek, err := br.Peek(len(magic))
		if err != nil && len(peek) < len(magic) {
			continue
		}
		if bytes.Equal(peek, magic) {
			return f.Decode(br)
		}
	}
	return nil, errors.New("stream does not match any registered format")
}

// LoadFile decodes a document from the file at path.
func LoadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Save encodes a document to w in the Cast binary format.
func Save(w io.Writer, doc *Document) error {
	f, err := lookupFormat(DefaultFormat)
	if err != nil {
		return err
	}
	return f.Encode(w, doc)
}

// SaveFile encodes a document to the file at path in the Cast binary format.
func SaveFile(path string, doc *Document) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return Save(file, doc)
}

// SaveNode encodes a single root node to w as a one-root document.
func SaveNode(w io.Writer, n *Node) error {
	return Save(w, &Document{Roots: []*Node{n}})
}
