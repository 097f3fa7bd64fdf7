// The json package encodes and decodes castfile documents to a JSON form.
//
// The JSON form is a tooling surface, not the wire format: it favors
// readability, while still round-tripping every node, hash, and property
// losslessly. Node identifiers appear as their four-character names, hashes
// and 64-bit integers as decimal strings (JSON numbers cannot carry them
// exactly), and properties as an ordered array so insertion order survives.
package json

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/castapi/castfile"
)

// The current version of the schema.
const jsonVersion = 1

type jsonDocument struct {
	Version int        `json:"version"`
	Roots   []jsonNode `json:"roots"`
}

type jsonNode struct {
	Identifier string         `json:"identifier"`
	Hash       string         `json:"hash,omitempty"`
	Properties []jsonProperty `json:"properties,omitempty"`
	Children   []jsonNode     `json:"children,omitempty"`
}

type jsonProperty struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Values []interface{} `json:"values"`
}

var typeTags = map[castfile.PropertyType]string{
	castfile.TypeByte:      "b",
	castfile.TypeShort:     "h",
	castfile.TypeInteger32: "i",
	castfile.TypeInteger64: "l",
	castfile.TypeFloat:     "f",
	castfile.TypeDouble:    "d",
	castfile.TypeString:    "s",
	castfile.TypeVector2:   "v2",
	castfile.TypeVector3:   "v3",
	castfile.TypeVector4:   "v4",
}

var tagTypes = map[string]castfile.PropertyType{}

func init() {
	for t, tag := range typeTags {
		tagTypes[tag] = t
	}
}

// Encode renders a document as JSON.
func Encode(doc *castfile.Document) ([]byte, error) {
	jdoc := jsonDocument{Version: jsonVersion, Roots: make([]jsonNode, len(doc.Roots))}
	for i, root := range doc.Roots {
		jdoc.Roots[i] = nodeToJSON(root)
	}
	return json.MarshalIndent(jdoc, "", "\t")
}

// Decode parses a JSON document rendered by Encode.
func Decode(b []byte) (*castfile.Document, error) {
	var jdoc jsonDocument
	if err := json.Unmarshal(b, &jdoc); err != nil {
		return nil, err
	}
	if jdoc.Version > jsonVersion {
		return nil, fmt.Errorf("unrecognized schema version %d", jdoc.Version)
	}
	doc := castfile.NewDocument()
	for _, jn := range jdoc.Roots {
		root, err := nodeFromJSON(jn)
		if err != nil {
			return nil, err
		}
		doc.AddRoot(root)
	}
	return doc, nil
}

func nodeToJSON(n *castfile.Node) jsonNode {
	jn := jsonNode{Identifier: castfile.KindName(n.Identifier)}
	if n.Hash != 0 {
		jn.Hash = strconv.FormatUint(n.Hash, 10)
	}
	for _, p := range n.Properties() {
		jn.Properties = append(jn.Properties, jsonProperty{
			Name:   p.Name,
			Type:   typeTags[p.Value.Type()],
			Values: valuesToJSON(p.Value),
		})
	}
	for _, ch := range n.Children() {
		jn.Children = append(jn.Children, nodeToJSON(ch))
	}
	return jn
}

func nodeFromJSON(jn jsonNode) (*castfile.Node, error) {
	identifier, err := parseIdentifier(jn.Identifier)
	if err != nil {
		return nil, err
	}
	n := castfile.NewNode(identifier, nil)
	if jn.Hash != "" {
		hash, err := strconv.ParseUint(jn.Hash, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("node hash: %w", err)
		}
		n.Hash = hash
	}
	for _, jp := range jn.Properties {
		t, ok := tagTypes[jp.Type]
		if !ok {
			return nil, fmt.Errorf("property %q: unknown type tag %q", jp.Name, jp.Type)
		}
		v, err := valuesFromJSON(t, jp.Values)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", jp.Name, err)
		}
		n.Set(jp.Name, v)
	}
	for _, jch := range jn.Children {
		ch, err := nodeFromJSON(jch)
		if err != nil {
			return nil, err
		}
		n.AddChild(ch)
	}
	return n, nil
}

func parseIdentifier(s string) (uint32, error) {
	if strings.HasPrefix(s, "0x") {
		id, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("node identifier %q: %w", s, err)
		}
		return uint32(id), nil
	}
	if len(s) != 4 {
		return 0, fmt.Errorf("node identifier %q is not four characters", s)
	}
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24, nil
}

func valuesToJSON(v castfile.Value) []interface{} {
	switch v := v.(type) {
	case castfile.ValueString:
		return []interface{}{string(v)}
	case castfile.ValueByteArray:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = uint64(e)
		}
		return out
	case castfile.ValueShortArray:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = uint64(e)
		}
		return out
	case castfile.ValueIntArray:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = uint64(e)
		}
		return out
	case castfile.ValueLongArray:
		// Decimal strings; 64-bit values do not survive JSON numbers.
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = strconv.FormatUint(e, 10)
		}
		return out
	case castfile.ValueFloatArray:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = float64(e)
		}
		return out
	case castfile.ValueDoubleArray:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out
	case castfile.ValueVector2Array:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = []interface{}{float64(e.X), float64(e.Y)}
		}
		return out
	case castfile.ValueVector3Array:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = []interface{}{float64(e.X), float64(e.Y), float64(e.Z)}
		}
		return out
	case castfile.ValueVector4Array:
		out := make([]interface{}, len(v))
		for i, e := range v {
			out[i] = []interface{}{float64(e.X), float64(e.Y), float64(e.Z), float64(e.W)}
		}
		return out
	}
	return nil
}

func valuesFromJSON(t castfile.PropertyType, values []interface{}) (castfile.Value, error) {
	switch t {
	case castfile.TypeString:
		if len(values) != 1 {
			return nil, fmt.Errorf("string property holds %d values", len(values))
		}
		s, ok := values[0].(string)
		if !ok {
			return nil, fmt.Errorf("string property holds a non-string value")
		}
		return castfile.ValueString(s), nil
	case castfile.TypeByte:
		out := make(castfile.ValueByteArray, len(values))
		for i, e := range values {
			u, err := jsonUint(e, 8)
			if err != nil {
				return nil, err
			}
			out[i] = uint8(u)
		}
		return out, nil
	case castfile.TypeShort:
		out := make(castfile.ValueShortArray, len(values))
		for i, e := range values {
			u, err := jsonUint(e, 16)
			if err != nil {
				return nil, err
			}
			out[i] = uint16(u)
		}
		return out, nil
	case castfile.TypeInteger32:
		out := make(castfile.ValueIntArray, len(values))
		for i, e := range values {
			u, err := jsonUint(e, 32)
			if err != nil {
				return nil, err
			}
			out[i] = uint32(u)
		}
		return out, nil
	case castfile.TypeInteger64:
		out := make(castfile.ValueLongArray, len(values))
		for i, e := range values {
			u, err := jsonUint(e, 64)
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	case castfile.TypeFloat:
		out := make(castfile.ValueFloatArray, len(values))
		for i, e := range values {
			f, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("non-numeric float element")
			}
			out[i] = float32(f)
		}
		return out, nil
	case castfile.TypeDouble:
		out := make(castfile.ValueDoubleArray, len(values))
		for i, e := range values {
			f, ok := e.(float64)
			if !ok {
				return nil, fmt.Errorf("non-numeric double element")
			}
			out[i] = f
		}
		return out, nil
	case castfile.TypeVector2:
		out := make(castfile.ValueVector2Array, len(values))
		for i, e := range values {
			c, err := jsonComponents(e, 2)
			if err != nil {
				return nil, err
			}
			out[i] = castfile.Vector2{X: c[0], Y: c[1]}
		}
		return out, nil
	case castfile.TypeVector3:
		out := make(castfile.ValueVector3Array, len(values))
		for i, e := range values {
			c, err := jsonComponents(e, 3)
			if err != nil {
				return nil, err
			}
			out[i] = castfile.Vector3{X: c[0], Y: c[1], Z: c[2]}
		}
		return out, nil
	case castfile.TypeVector4:
		out := make(castfile.ValueVector4Array, len(values))
		for i, e := range values {
			c, err := jsonComponents(e, 4)
			if err != nil {
				return nil, err
			}
			out[i] = castfile.Vector4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown property type 0x%X", uint16(t))
}

func jsonUint(e interface{}, bits int) (uint64, error) {
	switch e := e.(type) {
	case float64:
		if e < 0 {
			return 0, fmt.Errorf("negative integer element")
		}
		return uint64(e), nil
	case string:
		return strconv.ParseUint(e, 10, bits)
	}
	return 0, fmt.Errorf("non-integer element")
}

func jsonComponents(e interface{}, n int) ([]float32, error) {
	list, ok := e.([]interface{})
	if !ok || len(list) != n {
		return nil, fmt.Errorf("vector element is not a %d-component array", n)
	}
	out := make([]float32, n)
	for i, c := range list {
		f, ok := c.(float64)
		if !ok {
			return nil, fmt.Errorf("non-numeric vector component")
		}
		out[i] = float32(f)
	}
	return out, nil
}

// Format implements castfile.Format so that this package can be registered
// when it is imported.
type Format struct{}

func (Format) Name() string {
	return "json"
}

func (Format) Magic() string {
	return "{"
}

func (Format) Decode(r io.Reader) (*castfile.Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(b)
}

func (Format) Encode(w io.Writer, doc *castfile.Document) error {
	b, err := Encode(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func init() {
	castfile.RegisterFormat(Format{})
}
