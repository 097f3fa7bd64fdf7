package castfile

import "strings"

// Material slot names recognized by convention. Extra slots use the form
// "extra0", "extra1", and so on.
const (
	SlotAlbedo    = "albedo"
	SlotDiffuse   = "diffuse"
	SlotNormal    = "normal"
	SlotSpecular  = "specular"
	SlotEmissive  = "emissive"
	SlotGloss     = "gloss"
	SlotRoughness = "roughness"
	SlotAO        = "ao"
	SlotCavity    = "cavity"
	SlotAniso     = "aniso"
)

// Material is a view of a node mapping texture slots to file or color nodes
// by hash.
type Material Node

// Node returns the underlying generic node.
func (m *Material) Node() *Node { return (*Node)(m) }

// AsMaterial views a node as a Material, erroring when the identifier
// differs.
func AsMaterial(n *Node) (*Material, error) {
	if err := requireKind(n, MaterialID); err != nil {
		return nil, err
	}
	return (*Material)(n), nil
}

// Name returns the material name, or an empty string.
func (m *Material) Name() string {
	return m.Node().GetStringOr("n", "")
}

// SetName sets the material name.
func (m *Material) SetName(name string) {
	m.Node().SetString("n", name)
}

// MaterialType returns the shading model name, or an empty string.
func (m *Material) MaterialType() string {
	return m.Node().GetStringOr("t", "")
}

// SetMaterialType sets the shading model name.
func (m *Material) SetMaterialType(t string) {
	m.Node().SetString("t", t)
}

// Slot returns the hash stored in a named slot, or zero.
func (m *Material) Slot(name string) uint64 {
	if name == "n" || name == "t" {
		return 0
	}
	return m.Node().FirstLongOr(name, 0)
}

// SetSlot stores a hash in a named slot.
func (m *Material) SetSlot(name string, hash uint64) {
	m.Node().Set(name, ValueLongArray{hash})
}

// Slots returns every slot present on the material, mapping slot name to
// hash. The name and type properties are not slots.
func (m *Material) Slots() map[string]uint64 {
	slots := map[string]uint64{}
	for _, p := range m.Node().Properties() {
		if p.Name == "n" || p.Name == "t" {
			continue
		}
		v, ok := p.Value.(ValueLongArray)
		if !ok || len(v) == 0 {
			continue
		}
		slots[p.Name] = v[0]
	}
	return slots
}

// ExtraSlots returns the hashes of the numbered extra slots present on the
// material, mapping slot name to hash.
func (m *Material) ExtraSlots() map[string]uint64 {
	slots := map[string]uint64{}
	for name, hash := range m.Slots() {
		if strings.HasPrefix(name, "extra") {
			slots[name] = hash
		}
	}
	return slots
}

// SlotNode resolves a slot's hash among the material's children. Returns nil
// when unresolved.
func (m *Material) SlotNode(name string) *Node {
	return m.Node().ChildByHash(m.Slot(name))
}

// SlotFile resolves a slot to a file node, or nil.
func (m *Material) SlotFile(name string) *File {
	return (*File)(m.Node().ChildByHashWithIdentifier(m.Slot(name), FileID))
}

// SlotColor resolves a slot to a color node, or nil.
func (m *Material) SlotColor(name string) *Color {
	return (*Color)(m.Node().ChildByHashWithIdentifier(m.Slot(name), ColorID))
}

// CreateFile appends a new file node to the material.
func (m *Material) CreateFile() *File {
	return (*File)(NewNode(FileID, m.Node()))
}

// CreateColor appends a new color node to the material.
func (m *Material) CreateColor() *Color {
	return (*Color)(NewNode(ColorID, m.Node()))
}

////////////////////////////////////////////////////////////////

// File is a view of a node referring to an external asset by path.
type File Node

// Node returns the underlying generic node.
func (f *File) Node() *Node { return (*Node)(f) }

// AsFile views a node as a File, erroring when the identifier differs.
func AsFile(n *Node) (*File, error) {
	if err := requireKind(n, FileID); err != nil {
		return nil, err
	}
	return (*File)(n), nil
}

// Path returns the referenced path, or an empty string.
func (f *File) Path() string {
	return f.Node().GetStringOr("p", "")
}

// SetPath sets the referenced path.
func (f *File) SetPath(path string) {
	f.Node().SetString("p", path)
}

////////////////////////////////////////////////////////////////

// Color is a view of a node carrying a constant color value.
type Color Node

// Node returns the underlying generic node.
func (c *Color) Node() *Node { return (*Node)(c) }

// AsColor views a node as a Color, erroring when the identifier differs.
func AsColor(n *Node) (*Color, error) {
	if err := requireKind(n, ColorID); err != nil {
		return nil, err
	}
	return (*Color)(n), nil
}

// Name returns the color name, or an empty string.
func (c *Color) Name() string {
	return c.Node().GetStringOr("n", "")
}

// SetName sets the color name.
func (c *Color) SetName(name string) {
	c.Node().SetString("n", name)
}

// ColorSpace returns the color space, or "srgb" if unset.
func (c *Color) ColorSpace() string {
	return c.Node().GetStringOr("cs", "srgb")
}

// SetColorSpace sets the color space.
func (c *Color) SetColorSpace(space string) {
	c.Node().SetString("cs", space)
}

// Rgba returns the color value, or opaque black.
func (c *Color) Rgba() Vector4 {
	return c.Node().FirstVector4Or("rgba", Vector4{W: 1})
}

// SetRgba sets the color value.
func (c *Color) SetRgba(v Vector4) {
	c.Node().Set("rgba", ValueVector4Array{v})
}
