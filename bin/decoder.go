package bin

import (
	"errors"
	"io"

	"github.com/anaminus/parse"
	"github.com/castapi/castfile"
)

// Decoder decodes a stream of bytes into a castfile.Document.
type Decoder struct {
	// If Strict is true, then decoder warnings are promoted to fatal errors.
	Strict bool
}

func decodeError(fr *parse.BinaryReader, err error) error {
	fr.Add(0, err)
	err = fr.Err()
	if err != nil {
		return DataError{Offset: fr.N(), Cause: err}
	}
	return nil
}

// Decode reads data from r and decodes it into a document. Non-fatal
// findings (unknown node identifiers, nonzero reserved header bytes) are
// aggregated into warn; any fatal condition aborts with err and no document.
func (d Decoder) Decode(r io.Reader) (doc *castfile.Document, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}

	fr := parse.NewBinaryReader(r)

	var magic uint32
	if fr.Number(&magic) {
		return nil, nil, decodeError(fr, nil)
	}
	if magic != Magic {
		return nil, nil, decodeError(fr, ErrInvalidSig)
	}

	var version uint32
	if fr.Number(&version) {
		return nil, nil, decodeError(fr, nil)
	}
	if version > Version {
		return nil, nil, decodeError(fr, ErrUnrecognizedVersion(version))
	}

	var rootCount int32
	if fr.Number(&rootCount) {
		return nil, nil, decodeError(fr, nil)
	}
	if rootCount < 0 {
		return nil, nil, decodeError(fr, ErrNegativeCount)
	}

	var warns Warnings
	var reserved uint32
	if fr.Number(&reserved) {
		return nil, nil, decodeError(fr, nil)
	}
	if reserved != 0 {
		warns = append(warns, errReserve{Offset: fr.N() - 4, Value: reserved})
	}

	doc = castfile.NewDocument()
	for i := 0; i < int(rootCount); i++ {
		root, failed := d.decodeNode(fr, &warns)
		if failed {
			return nil, warns.err(), decodeError(fr, nil)
		}
		doc.AddRoot(root)
	}

	if d.Strict && len(warns) > 0 {
		return nil, nil, warns.err()
	}
	return doc, warns.err(), nil
}

// decodeNode parses one node and its descendants. The reader's position is
// validated against the node's declared size once its contents have been
// consumed.
func (d Decoder) decodeNode(fr *parse.BinaryReader, warns *Warnings) (node *castfile.Node, failed bool) {
	start := fr.N()

	var identifier, size uint32
	var hash uint64
	var propCount, childCount int32
	if fr.Number(&identifier) || fr.Number(&size) || fr.Number(&hash) {
		return nil, true
	}
	if fr.Number(&propCount) || fr.Number(&childCount) {
		return nil, true
	}
	if propCount < 0 || childCount < 0 {
		fr.Add(0, NodeError{Identifier: identifier, Cause: ErrNegativeCount})
		return nil, true
	}

	if !castfile.KnownIdentifier(identifier) {
		*warns = append(*warns, errUnknownNodeID{Offset: start, Identifier: identifier})
	}

	node = castfile.NewNode(identifier, nil)
	node.Hash = hash

	for i := 0; i < int(propCount); i++ {
		if d.decodeProperty(fr, node) {
			return nil, true
		}
	}

	for i := 0; i < int(childCount); i++ {
		child, fail := d.decodeNode(fr, warns)
		if fail {
			return nil, true
		}
		node.AddChild(child)
	}

	if consumed := fr.N() - start; consumed != int64(size) {
		fr.Add(0, ErrSizeMismatch{Identifier: identifier, Declared: size, Actual: consumed})
		return nil, true
	}

	return node, false
}

// decodeProperty parses one property header and payload, installing the
// result on node. A property whose key repeats an earlier one overwrites the
// earlier value and keeps its position.
func (d Decoder) decodeProperty(fr *parse.BinaryReader, node *castfile.Node) (failed bool) {
	var pid, keyLen uint16
	var count int32
	if fr.Number(&pid) || fr.Number(&keyLen) || fr.Number(&count) {
		return true
	}
	if count < 0 {
		fr.Add(0, NodeError{Identifier: node.Identifier, Cause: ErrNegativeCount})
		return true
	}

	key := make([]byte, int(keyLen))
	if fr.Bytes(key) {
		return true
	}

	t := castfile.PropertyType(pid)
	var value castfile.Value
	switch {
	case t == castfile.TypeString:
		// Null-terminated, no length prefix; the declared count is always 1.
		var buf []byte
		for {
			var c uint8
			if fr.Number(&c) {
				return true
			}
			if c == 0 {
				break
			}
			buf = append(buf, c)
		}
		value = castfile.ValueString(buf)
	case t.Valid():
		raw := make([]byte, int(count)*t.ElementSize())
		if fr.Bytes(raw) {
			return true
		}
		value = payloadFromBytes(t, raw)
	default:
		fr.Add(0, NodeError{Identifier: node.Identifier, Cause: ErrUnknownPropType(pid)})
		return true
	}

	node.Set(string(key), value)
	return false
}
