// The castfile package handles the decoding, encoding, and manipulation of
// Cast container trees.
//
// A Cast file holds a tree of typed, property-bearing nodes that describe 3D
// assets: models, meshes, skeletons, animations, materials, and related data.
// This package can be used to manipulate such trees outside of any particular
// tool. A tree begins with a Document, which contains a list of root Nodes,
// which in turn contain more child Nodes, and so on.
//
// Each Node has a 32-bit identifier naming its kind, a 64-bit hash used to
// refer to it from elsewhere in the tree, and a set of named properties.
// Every available property payload implements the Value interface, and is
// prefixed with "Value".
//
// Nodes with well-known identifiers can be viewed through typed wrappers
// (Model, Mesh, Bone, and so on), which interpret well-known property keys.
// The wrappers add no storage of their own; all state lives on the underlying
// Node, and keys a wrapper does not recognize remain accessible through the
// generic property API.
//
// Documents can be decoded from and encoded to the Cast binary format via the
// "bin" sub-package, and to a JSON form via the "json" sub-package. Documents
// can also be created manually; the "declare" sub-package provides a
// declarative way to do so.
package castfile

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////

// Known node identifiers. The on-wire identifier is the little-endian
// reading of four ASCII bytes.
const (
	RootID              uint32 = 0x746F6F72 // "root"
	ModelID             uint32 = 0x6C646F6D // "modl"
	MeshID              uint32 = 0x6873656D // "mesh"
	HairID              uint32 = 0x72696168 // "hair"
	BlendShapeID        uint32 = 0x68736C62 // "blsh"
	SkeletonID          uint32 = 0x6C656B73 // "skel"
	BoneID              uint32 = 0x656E6F62 // "bone"
	IKHandleID          uint32 = 0x64686B69 // "ikhd"
	ConstraintID        uint32 = 0x74736E63 // "cnst"
	AnimationID         uint32 = 0x6D696E61 // "anim"
	CurveID             uint32 = 0x76727563 // "curv"
	CurveModeOverrideID uint32 = 0x766F6D63 // "cmov"
	NotificationTrackID uint32 = 0x6669746E // "ntif"
	MaterialID          uint32 = 0x6C74616D // "matl"
	FileID              uint32 = 0x656C6966 // "file"
	ColorID             uint32 = 0x726C6F63 // "colr"
	InstanceID          uint32 = 0x74736E69 // "inst"
	MetadataID          uint32 = 0x6174656D // "meta"
)

// KnownIdentifier reports whether an identifier is one of the node kinds
// defined by the format. Other identifiers are still carried faithfully, as
// generic nodes.
func KnownIdentifier(identifier uint32) bool {
	switch identifier {
	case RootID, ModelID, MeshID, HairID, BlendShapeID, SkeletonID, BoneID,
		IKHandleID, ConstraintID, AnimationID, CurveID, CurveModeOverrideID,
		NotificationTrackID, MaterialID, FileID, ColorID, InstanceID, MetadataID:
		return true
	}
	return false
}

// KindName returns the four ASCII characters of a node identifier. Bytes that
// are not printable cause the identifier to be formatted in hexadecimal
// instead.
func KindName(identifier uint32) string {
	var b [4]byte
	for i := range b {
		c := byte(identifier >> (8 * i))
		if c < 0x20 || c > 0x7E {
			return fmt.Sprintf("0x%08X", identifier)
		}
		b[i] = c
	}
	return string(b[:])
}

////////////////////////////////////////////////////////////////

// Document represents the root of a Cast tree. A Document is not itself a
// node, but a container for any number of root nodes.
type Document struct {
	// Roots contains the root nodes of the tree, in file order.
	Roots []*Node
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// AddRoot appends a node to the document's root list, detaching it from any
// parent it may have.
func (doc *Document) AddRoot(node *Node) {
	if node == nil {
		return
	}
	node.SetParent(nil)
	doc.Roots = append(doc.Roots, node)
}

// CreateRoot creates a new node with the "root" identifier, appends it to the
// document, and returns it as a Root wrapper.
func (doc *Document) CreateRoot() *Root {
	n := NewNode(RootID, nil)
	doc.AddRoot(n)
	return (*Root)(n)
}

// Copy returns a deep copy of the document.
func (doc *Document) Copy() *Document {
	c := &Document{Roots: make([]*Node, len(doc.Roots))}
	for i, n := range doc.Roots {
		c.Roots[i] = n.Clone()
	}
	return c
}

////////////////////////////////////////////////////////////////

// property is a single named payload on a node. Properties are kept in
// insertion order, which is significant on the wire.
type property struct {
	name  string
	value Value
}

// Property is a name paired with its payload, as reported by the Properties
// method.
type Property struct {
	Name  string
	Value Value
}

// Node represents a single element of a Cast tree.
type Node struct {
	// Identifier indicates the node's kind.
	Identifier uint32

	// Hash is a value used to refer to the node from elsewhere in the tree.
	// Zero means the node is anonymous; lookups by a zero hash always miss.
	Hash uint64

	// Named payloads in insertion order. Names are unique.
	properties []property

	// Contains nodes that are the children of the current node.
	children []*Node

	// The parent of the node. Can be nil.
	parent *Node
}

// NewNode creates a new Node with a given identifier, and an optional parent.
// The node's hash is left zero; assign one directly or through References.
func NewNode(identifier uint32, parent *Node) *Node {
	n := &Node{Identifier: identifier}
	if parent != nil {
		parent.AddChild(n)
	}
	return n
}

////////////////////////////////////////////////////////////////
// Hierarchy

// Parent returns the parent of the node. Can return nil if the node has no
// parent.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetParent sets the parent of the node. The parent can be set to nil. If the
// node already has a parent, it is removed from that parent's child list
// first; the node is then appended to the end of the new parent's child list.
// The function errors if the parent is the node itself or one of its
// descendants.
func (n *Node) SetParent(parent *Node) error {
	if n.parent == parent {
		return nil
	}
	if parent == n {
		return errors.New("attempt to set node as its own parent")
	}
	if parent != nil && parent.IsDescendantOf(n) {
		return errors.New("attempt to set parent would result in circular reference")
	}

	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return nil
}

// AddChild appends a child to the node, reparenting it if necessary.
func (n *Node) AddChild(child *Node) error {
	if child == nil {
		return errors.New("nil child")
	}
	return child.SetParent(n)
}

func (n *Node) removeChild(child *Node) {
	for i, ch := range n.children {
		if ch == child {
			n.children[i] = nil
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	list := make([]*Node, len(n.children))
	copy(list, n.children)
	return list
}

// ChildCount returns the number of children of the node.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// ChildCountWithIdentifier returns the number of children having the given
// identifier.
func (n *Node) ChildCountWithIdentifier(identifier uint32) int {
	count := 0
	for _, ch := range n.children {
		if ch.Identifier == identifier {
			count++
		}
	}
	return count
}

// ChildAt returns the child at the given position of the node's child list.
func (n *Node) ChildAt(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, ErrIndexOutOfRange{Index: i, Len: len(n.children)}
	}
	return n.children[i], nil
}

// ChildWithIdentifierAt returns the i-th child having the given identifier.
func (n *Node) ChildWithIdentifierAt(identifier uint32, i int) (*Node, error) {
	if i >= 0 {
		seen := 0
		for _, ch := range n.children {
			if ch.Identifier != identifier {
				continue
			}
			if seen == i {
				return ch, nil
			}
			seen++
		}
	}
	return nil, ErrIndexOutOfRange{Index: i, Len: n.ChildCountWithIdentifier(identifier)}
}

// FindFirstChild returns the first child having the given identifier, or nil
// if there is none.
func (n *Node) FindFirstChild(identifier uint32) *Node {
	for _, ch := range n.children {
		if ch.Identifier == identifier {
			return ch
		}
	}
	return nil
}

// FirstChild returns the first child having the given identifier, and errors
// if there is none.
func (n *Node) FirstChild(identifier uint32) (*Node, error) {
	if ch := n.FindFirstChild(identifier); ch != nil {
		return ch, nil
	}
	return nil, ErrNodeKind{Expected: identifier}
}

// ChildrenWithIdentifier returns the children having the given identifier, in
// list order.
func (n *Node) ChildrenWithIdentifier(identifier uint32) []*Node {
	var list []*Node
	for _, ch := range n.children {
		if ch.Identifier == identifier {
			list = append(list, ch)
		}
	}
	return list
}

// ChildByHash returns the first child whose hash matches, or nil if there is
// none. A zero hash never matches.
func (n *Node) ChildByHash(hash uint64) *Node {
	if hash == 0 {
		return nil
	}
	for _, ch := range n.children {
		if ch.Hash == hash {
			return ch
		}
	}
	return nil
}

// ChildByHashWithIdentifier returns the first child whose hash and identifier
// both match, or nil if there is none.
func (n *Node) ChildByHashWithIdentifier(hash uint64, identifier uint32) *Node {
	if hash == 0 {
		return nil
	}
	for _, ch := range n.children {
		if ch.Hash == hash && ch.Identifier == identifier {
			return ch
		}
	}
	return nil
}

// IsAncestorOf returns whether the node is the ancestor of another node.
func (n *Node) IsAncestorOf(descendant *Node) bool {
	if descendant != nil {
		return descendant.IsDescendantOf(n)
	}
	return false
}

// IsDescendantOf returns whether the node is the descendant of another node.
func (n *Node) IsDescendantOf(ancestor *Node) bool {
	parent := n.Parent()
	for parent != nil {
		if parent == ancestor {
			return true
		}
		parent = parent.Parent()
	}
	return false
}

// Clone returns a copy of the node. Each property and all descendants are
// copied as well. The copy has no parent.
func (n *Node) Clone() *Node {
	clone := &Node{
		Identifier: n.Identifier,
		Hash:       n.Hash,
		properties: make([]property, len(n.properties)),
	}
	for i, p := range n.properties {
		clone.properties[i] = property{name: p.name, value: p.value.Copy()}
	}
	for _, child := range n.children {
		child.Clone().SetParent(clone)
	}
	return clone
}

////////////////////////////////////////////////////////////////
// Properties

// PropertyCount returns the number of properties on the node.
func (n *Node) PropertyCount() int {
	return len(n.properties)
}

// Properties returns the node's properties in insertion order.
func (n *Node) Properties() []Property {
	list := make([]Property, len(n.properties))
	for i, p := range n.properties {
		list[i] = Property{Name: p.name, Value: p.value}
	}
	return list
}

// Get returns the value of a property on the node. The value will be nil if
// the property is not defined.
func (n *Node) Get(name string) Value {
	for _, p := range n.properties {
		if p.name == name {
			return p.value
		}
	}
	return nil
}

// Set sets the value of a property on the node. A property that already
// exists keeps its position in insertion order; otherwise the property is
// appended. If value is nil, the property is removed.
func (n *Node) Set(name string, value Value) {
	for i := range n.properties {
		if n.properties[i].name == name {
			if value == nil {
				n.properties = append(n.properties[:i], n.properties[i+1:]...)
			} else {
				n.properties[i].value = value
			}
			return
		}
	}
	if value != nil {
		n.properties = append(n.properties, property{name: name, value: value})
	}
}

// SetString sets a string property on the node.
func (n *Node) SetString(name, value string) {
	n.Set(name, ValueString(value))
}

// Append appends the elements of value to an existing property of the same
// type, creating the property if it is absent. String properties cannot be
// appended to.
func (n *Node) Append(name string, value Value) error {
	existing := n.Get(name)
	if existing == nil {
		if _, ok := value.(ValueString); ok {
			return ErrPropertyKind{Name: name, Expected: TypeByte, Actual: TypeString}
		}
		n.Set(name, value.Copy())
		return nil
	}
	if existing.Type() != value.Type() {
		return ErrPropertyKind{Name: name, Expected: existing.Type(), Actual: value.Type()}
	}
	switch ev := existing.(type) {
	case ValueString:
		return ErrPropertyKind{Name: name, Expected: TypeByte, Actual: TypeString}
	case ValueByteArray:
		n.Set(name, append(ev, value.(ValueByteArray)...))
	case ValueShortArray:
		n.Set(name, append(ev, value.(ValueShortArray)...))
	case ValueIntArray:
		n.Set(name, append(ev, value.(ValueIntArray)...))
	case ValueLongArray:
		n.Set(name, append(ev, value.(ValueLongArray)...))
	case ValueFloatArray:
		n.Set(name, append(ev, value.(ValueFloatArray)...))
	case ValueDoubleArray:
		n.Set(name, append(ev, value.(ValueDoubleArray)...))
	case ValueVector2Array:
		n.Set(name, append(ev, value.(ValueVector2Array)...))
	case ValueVector3Array:
		n.Set(name, append(ev, value.(ValueVector3Array)...))
	case ValueVector4Array:
		n.Set(name, append(ev, value.(ValueVector4Array)...))
	}
	return nil
}

// value returns the property with the given name, requiring its type.
func (n *Node) value(name string, t PropertyType) (Value, error) {
	v := n.Get(name)
	if v == nil {
		return nil, ErrPropertyMissing(name)
	}
	if v.Type() != t {
		return nil, ErrPropertyKind{Name: name, Expected: t, Actual: v.Type()}
	}
	return v, nil
}

// GetString returns a string property, erroring when the property is absent
// or not a string.
func (n *Node) GetString(name string) (string, error) {
	v, err := n.value(name, TypeString)
	if err != nil {
		return "", err
	}
	return string(v.(ValueString)), nil
}

// GetStringOr returns a string property, or def when the property is absent
// or not a string.
func (n *Node) GetStringOr(name, def string) string {
	s, err := n.GetString(name)
	if err != nil {
		return def
	}
	return s
}

// FirstInteger returns the first element of an integer property widened to 64
// bits. The property is accepted if its element size in bits is at most
// maxBits, so narrower storage of the same data is tolerated.
func (n *Node) FirstInteger(name string, maxBits int) (uint64, error) {
	v := n.Get(name)
	if v == nil {
		return 0, ErrPropertyMissing(name)
	}
	var bits int
	var first uint64
	switch v := v.(type) {
	case ValueByteArray:
		bits = 8
		if len(v) > 0 {
			first = uint64(v[0])
		}
	case ValueShortArray:
		bits = 16
		if len(v) > 0 {
			first = uint64(v[0])
		}
	case ValueIntArray:
		bits = 32
		if len(v) > 0 {
			first = uint64(v[0])
		}
	case ValueLongArray:
		bits = 64
		if len(v) > 0 {
			first = v[0]
		}
	default:
		return 0, ErrPropertyKind{Name: name, Expected: TypeInteger32, Actual: v.Type()}
	}
	if bits > maxBits {
		return 0, ErrPropertyKind{Name: name, Expected: TypeInteger32, Actual: v.Type()}
	}
	if v.Count() == 0 {
		return 0, ErrEmptyProperty(name)
	}
	return first, nil
}

// FirstIntegerOr is like FirstInteger, returning def when the property is
// absent, mismatched, or empty.
func (n *Node) FirstIntegerOr(name string, def uint64, maxBits int) uint64 {
	u, err := n.FirstInteger(name, maxBits)
	if err != nil {
		return def
	}
	return u
}

// IntegerArray returns an integer property widened to 64 bits per element.
// The property is accepted if its element size in bits is at most maxBits.
func (n *Node) IntegerArray(name string, maxBits int) ([]uint64, error) {
	v := n.Get(name)
	if v == nil {
		return nil, ErrPropertyMissing(name)
	}
	var bits int
	var out []uint64
	switch v := v.(type) {
	case ValueByteArray:
		bits = 8
		out = make([]uint64, len(v))
		for i, e := range v {
			out[i] = uint64(e)
		}
	case ValueShortArray:
		bits = 16
		out = make([]uint64, len(v))
		for i, e := range v {
			out[i] = uint64(e)
		}
	case ValueIntArray:
		bits = 32
		out = make([]uint64, len(v))
		for i, e := range v {
			out[i] = uint64(e)
		}
	case ValueLongArray:
		bits = 64
		out = make([]uint64, len(v))
		copy(out, v)
	default:
		return nil, ErrPropertyKind{Name: name, Expected: TypeInteger32, Actual: v.Type()}
	}
	if bits > maxBits {
		return nil, ErrPropertyKind{Name: name, Expected: TypeInteger32, Actual: v.Type()}
	}
	return out, nil
}

// FirstByte returns the first element of a byte property.
func (n *Node) FirstByte(name string) (uint8, error) {
	v, err := n.value(name, TypeByte)
	if err != nil {
		return 0, err
	}
	a := v.(ValueByteArray)
	if len(a) == 0 {
		return 0, ErrEmptyProperty(name)
	}
	return a[0], nil
}

// FirstByteOr returns the first element of a byte property, or def.
func (n *Node) FirstByteOr(name string, def uint8) uint8 {
	b, err := n.FirstByte(name)
	if err != nil {
		return def
	}
	return b
}

// FirstLong returns the first element of a 64-bit integer property.
func (n *Node) FirstLong(name string) (uint64, error) {
	v, err := n.value(name, TypeInteger64)
	if err != nil {
		return 0, err
	}
	a := v.(ValueLongArray)
	if len(a) == 0 {
		return 0, ErrEmptyProperty(name)
	}
	return a[0], nil
}

// FirstLongOr returns the first element of a 64-bit integer property, or def.
func (n *Node) FirstLongOr(name string, def uint64) uint64 {
	u, err := n.FirstLong(name)
	if err != nil {
		return def
	}
	return u
}

// FirstFloat returns the first element of a 32-bit float property.
func (n *Node) FirstFloat(name string) (float32, error) {
	v, err := n.value(name, TypeFloat)
	if err != nil {
		return 0, err
	}
	a := v.(ValueFloatArray)
	if len(a) == 0 {
		return 0, ErrEmptyProperty(name)
	}
	return a[0], nil
}

// FirstFloatOr returns the first element of a 32-bit float property, or def.
func (n *Node) FirstFloatOr(name string, def float32) float32 {
	f, err := n.FirstFloat(name)
	if err != nil {
		return def
	}
	return f
}

// FirstVector3 returns the first element of a 3-component vector property.
func (n *Node) FirstVector3(name string) (Vector3, error) {
	v, err := n.value(name, TypeVector3)
	if err != nil {
		return Vector3{}, err
	}
	a := v.(ValueVector3Array)
	if len(a) == 0 {
		return Vector3{}, ErrEmptyProperty(name)
	}
	return a[0], nil
}

// FirstVector3Or returns the first element of a 3-component vector property,
// or def.
func (n *Node) FirstVector3Or(name string, def Vector3) Vector3 {
	v, err := n.FirstVector3(name)
	if err != nil {
		return def
	}
	return v
}

// FirstVector4 returns the first element of a 4-component vector property.
func (n *Node) FirstVector4(name string) (Vector4, error) {
	v, err := n.value(name, TypeVector4)
	if err != nil {
		return Vector4{}, err
	}
	a := v.(ValueVector4Array)
	if len(a) == 0 {
		return Vector4{}, ErrEmptyProperty(name)
	}
	return a[0], nil
}

// FirstVector4Or returns the first element of a 4-component vector property,
// or def.
func (n *Node) FirstVector4Or(name string, def Vector4) Vector4 {
	v, err := n.FirstVector4(name)
	if err != nil {
		return def
	}
	return v
}

// ByteArray returns a byte property's elements.
func (n *Node) ByteArray(name string) ([]uint8, error) {
	v, err := n.value(name, TypeByte)
	if err != nil {
		return nil, err
	}
	return v.(ValueByteArray), nil
}

// FloatArray returns a 32-bit float property's elements.
func (n *Node) FloatArray(name string) ([]float32, error) {
	v, err := n.value(name, TypeFloat)
	if err != nil {
		return nil, err
	}
	return v.(ValueFloatArray), nil
}

// LongArray returns a 64-bit integer property's elements.
func (n *Node) LongArray(name string) ([]uint64, error) {
	v, err := n.value(name, TypeInteger64)
	if err != nil {
		return nil, err
	}
	return v.(ValueLongArray), nil
}

// Vector2Array returns a 2-component vector property's elements.
func (n *Node) Vector2Array(name string) ([]Vector2, error) {
	v, err := n.value(name, TypeVector2)
	if err != nil {
		return nil, err
	}
	return v.(ValueVector2Array), nil
}

// Vector3Array returns a 3-component vector property's elements.
func (n *Node) Vector3Array(name string) ([]Vector3, error) {
	v, err := n.value(name, TypeVector3)
	if err != nil {
		return nil, err
	}
	return v.(ValueVector3Array), nil
}

// Vector4Array returns a 4-component vector property's elements.
func (n *Node) Vector4Array(name string) ([]Vector4, error) {
	v, err := n.value(name, TypeVector4)
	if err != nil {
		return nil, err
	}
	return v.(ValueVector4Array), nil
}

// SerializedSize returns the total number of bytes the node occupies in the
// binary format, including its own 24-byte header, all property headers and
// payloads, and all descendants.
func (n *Node) SerializedSize() int {
	size := 24
	for _, p := range n.properties {
		size += 8 + len(p.name) + p.value.DataSize()
	}
	for _, ch := range n.children {
		size += ch.SerializedSize()
	}
	return size
}

// String implements the fmt.Stringer interface by returning the node's "n"
// property, or the kind name if no name is set.
func (n *Node) String() string {
	if name := n.GetStringOr("n", ""); name != "" {
		return name
	}
	return KindName(n.Identifier)
}
