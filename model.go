package castfile

import "strconv"

// Model is a view of a node describing a renderable object: its skeleton,
// meshes, blend shapes, hair, and materials.
type Model Node

// Node returns the underlying generic node.
func (m *Model) Node() *Node { return (*Node)(m) }

// AsModel views a node as a Model, erroring when the identifier differs.
func AsModel(n *Node) (*Model, error) {
	if err := requireKind(n, ModelID); err != nil {
		return nil, err
	}
	return (*Model)(n), nil
}

// Name returns the model name, or an empty string.
func (m *Model) Name() string {
	return m.Node().GetStringOr("n", "")
}

// SetName sets the model name.
func (m *Model) SetName(name string) {
	m.Node().SetString("n", name)
}

// Position returns the model translation, or zero.
func (m *Model) Position() Vector3 {
	return m.Node().FirstVector3Or("p", Vector3{})
}

// SetPosition sets the model translation.
func (m *Model) SetPosition(p Vector3) {
	m.Node().Set("p", ValueVector3Array{p})
}

// Rotation returns the model rotation quaternion, or identity.
func (m *Model) Rotation() Vector4 {
	return m.Node().FirstVector4Or("r", Vector4{W: 1})
}

// SetRotation sets the model rotation quaternion.
func (m *Model) SetRotation(r Vector4) {
	m.Node().Set("r", ValueVector4Array{r})
}

// Scale returns the model scale, or one on each axis.
func (m *Model) Scale() Vector3 {
	return m.Node().FirstVector3Or("s", Vector3{X: 1, Y: 1, Z: 1})
}

// SetScale sets the model scale.
func (m *Model) SetScale(s Vector3) {
	m.Node().Set("s", ValueVector3Array{s})
}

// Skeleton returns the model's skeleton node, or nil.
func (m *Model) Skeleton() *Skeleton {
	return (*Skeleton)(m.Node().FindFirstChild(SkeletonID))
}

// CreateSkeleton appends a new skeleton node to the model.
func (m *Model) CreateSkeleton() *Skeleton {
	return (*Skeleton)(NewNode(SkeletonID, m.Node()))
}

// Meshes returns the model's mesh nodes, in order.
func (m *Model) Meshes() []*Mesh {
	nodes := m.Node().ChildrenWithIdentifier(MeshID)
	list := make([]*Mesh, len(nodes))
	for i, n := range nodes {
		list[i] = (*Mesh)(n)
	}
	return list
}

// CreateMesh appends a new mesh node to the model.
func (m *Model) CreateMesh() *Mesh {
	return (*Mesh)(NewNode(MeshID, m.Node()))
}

// BlendShapes returns the model's blend shape nodes, in order.
func (m *Model) BlendShapes() []*BlendShape {
	nodes := m.Node().ChildrenWithIdentifier(BlendShapeID)
	list := make([]*BlendShape, len(nodes))
	for i, n := range nodes {
		list[i] = (*BlendShape)(n)
	}
	return list
}

// CreateBlendShape appends a new blend shape node to the model.
func (m *Model) CreateBlendShape() *BlendShape {
	return (*BlendShape)(NewNode(BlendShapeID, m.Node()))
}

// Hairs returns the model's hair nodes, in order.
func (m *Model) Hairs() []*Hair {
	nodes := m.Node().ChildrenWithIdentifier(HairID)
	list := make([]*Hair, len(nodes))
	for i, n := range nodes {
		list[i] = (*Hair)(n)
	}
	return list
}

// CreateHair appends a new hair node to the model.
func (m *Model) CreateHair() *Hair {
	return (*Hair)(NewNode(HairID, m.Node()))
}

// Materials returns the model's material nodes, in order.
func (m *Model) Materials() []*Material {
	nodes := m.Node().ChildrenWithIdentifier(MaterialID)
	list := make([]*Material, len(nodes))
	for i, n := range nodes {
		list[i] = (*Material)(n)
	}
	return list
}

// CreateMaterial appends a new material node to the model.
func (m *Model) CreateMaterial() *Material {
	return (*Material)(NewNode(MaterialID, m.Node()))
}

////////////////////////////////////////////////////////////////

// MaxLayerCount is the largest number of UV or color layers a mesh can
// declare.
const MaxLayerCount = 32

// MaxWeightInfluence is the largest number of bone influences per vertex a
// mesh can declare.
const MaxWeightInfluence = 32

// Mesh is a view of a node carrying vertex and face buffers. The vertex
// buffers are parallel arrays.
type Mesh Node

// Node returns the underlying generic node.
func (m *Mesh) Node() *Node { return (*Node)(m) }

// AsMesh views a node as a Mesh, erroring when the identifier differs.
func AsMesh(n *Node) (*Mesh, error) {
	if err := requireKind(n, MeshID); err != nil {
		return nil, err
	}
	return (*Mesh)(n), nil
}

// Name returns the mesh name, or an empty string.
func (m *Mesh) Name() string {
	return m.Node().GetStringOr("n", "")
}

// SetName sets the mesh name.
func (m *Mesh) SetName(name string) {
	m.Node().SetString("n", name)
}

// MaterialHash returns the hash of the material this mesh renders with, or
// zero.
func (m *Mesh) MaterialHash() uint64 {
	return m.Node().FirstLongOr("m", 0)
}

// SetMaterialHash sets the hash of the material this mesh renders with.
func (m *Mesh) SetMaterialHash(hash uint64) {
	m.Node().Set("m", ValueLongArray{hash})
}

// Material resolves the mesh's material among its siblings. Returns nil when
// unresolved.
func (m *Mesh) Material() *Material {
	p := m.Node().Parent()
	if p == nil {
		return nil
	}
	return (*Material)(p.ChildByHashWithIdentifier(m.MaterialHash(), MaterialID))
}

// VertexCount returns the number of vertices, as defined by the position
// buffer.
func (m *Mesh) VertexCount() int {
	v := m.Node().Get("vp")
	if v == nil {
		return 0
	}
	return v.Count()
}

// FaceCount returns the number of triangles, as defined by the face buffer.
func (m *Mesh) FaceCount() int {
	v := m.Node().Get("f")
	if v == nil {
		return 0
	}
	return v.Count() / 3
}

// VertexPositionBuffer returns the vertex positions, or nil.
func (m *Mesh) VertexPositionBuffer() []Vector3 {
	buf, _ := m.Node().Vector3Array("vp")
	return buf
}

// SetVertexPositionBuffer sets the vertex positions.
func (m *Mesh) SetVertexPositionBuffer(buf []Vector3) {
	m.Node().Set("vp", ValueVector3Array(buf))
}

// VertexNormalBuffer returns the vertex normals, or nil.
func (m *Mesh) VertexNormalBuffer() []Vector3 {
	buf, _ := m.Node().Vector3Array("vn")
	return buf
}

// SetVertexNormalBuffer sets the vertex normals.
func (m *Mesh) SetVertexNormalBuffer(buf []Vector3) {
	m.Node().Set("vn", ValueVector3Array(buf))
}

// VertexTangentBuffer returns the vertex tangents, or nil.
func (m *Mesh) VertexTangentBuffer() []Vector3 {
	buf, _ := m.Node().Vector3Array("vt")
	return buf
}

// SetVertexTangentBuffer sets the vertex tangents.
func (m *Mesh) SetVertexTangentBuffer(buf []Vector3) {
	m.Node().Set("vt", ValueVector3Array(buf))
}

// VertexColorBuffer returns the raw legacy vertex color property, or nil.
// Newer files carry indexed color layers instead; see ColorLayer.
func (m *Mesh) VertexColorBuffer() Value {
	return m.Node().Get("vc")
}

// FaceBuffer returns the face indices widened to 64 bits. The property may
// be stored with 8, 16, or 32 bits per index.
func (m *Mesh) FaceBuffer() ([]uint64, error) {
	return m.Node().IntegerArray("f", 32)
}

// SetFaceBuffer sets the face indices, choosing the narrowest storage that
// fits the largest index.
func (m *Mesh) SetFaceBuffer(indices []uint64) {
	m.Node().Set("f", narrowIntegers(indices))
}

// VertexWeightBoneBuffer returns the per-vertex bone indices widened to 64
// bits.
func (m *Mesh) VertexWeightBoneBuffer() ([]uint64, error) {
	return m.Node().IntegerArray("wb", 32)
}

// SetVertexWeightBoneBuffer sets the per-vertex bone indices, choosing the
// narrowest storage that fits the largest index.
func (m *Mesh) SetVertexWeightBoneBuffer(indices []uint64) {
	m.Node().Set("wb", narrowIntegers(indices))
}

// VertexWeightValueBuffer returns the per-vertex weight values, or nil.
func (m *Mesh) VertexWeightValueBuffer() []float32 {
	buf, _ := m.Node().FloatArray("wv")
	return buf
}

// SetVertexWeightValueBuffer sets the per-vertex weight values.
func (m *Mesh) SetVertexWeightValueBuffer(buf []float32) {
	m.Node().Set("wv", ValueFloatArray(buf))
}

// UVLayerCount returns the declared number of UV layers, clamped to
// MaxLayerCount.
func (m *Mesh) UVLayerCount() int {
	count := int(m.Node().FirstIntegerOr("ul", 0, 8))
	if count > MaxLayerCount {
		count = MaxLayerCount
	}
	return count
}

// SetUVLayerCount sets the declared number of UV layers.
func (m *Mesh) SetUVLayerCount(count int) {
	m.Node().Set("ul", ValueByteArray{uint8(count)})
}

// ColorLayerCount returns the declared number of color layers, clamped to
// MaxLayerCount.
func (m *Mesh) ColorLayerCount() int {
	count := int(m.Node().FirstIntegerOr("cl", 0, 8))
	if count > MaxLayerCount {
		count = MaxLayerCount
	}
	return count
}

// SetColorLayerCount sets the declared number of color layers.
func (m *Mesh) SetColorLayerCount(count int) {
	m.Node().Set("cl", ValueByteArray{uint8(count)})
}

// MaximumWeightInfluence returns the declared number of bone influences per
// vertex, clamped to MaxWeightInfluence.
func (m *Mesh) MaximumWeightInfluence() int {
	count := int(m.Node().FirstIntegerOr("mi", 0, 8))
	if count > MaxWeightInfluence {
		count = MaxWeightInfluence
	}
	return count
}

// SetMaximumWeightInfluence sets the declared number of bone influences per
// vertex.
func (m *Mesh) SetMaximumWeightInfluence(count int) {
	m.Node().Set("mi", ValueByteArray{uint8(count)})
}

// SkinningMethod returns the skinning method, or "linear" if unset.
func (m *Mesh) SkinningMethod() string {
	return m.Node().GetStringOr("sm", "linear")
}

// SetSkinningMethod sets the skinning method.
func (m *Mesh) SetSkinningMethod(method string) {
	m.Node().SetString("sm", method)
}

// UVLayer returns the UV coordinates of layer i.
func (m *Mesh) UVLayer(i int) ([]Vector2, error) {
	return m.Node().Vector2Array(uvLayerKey(i))
}

// SetUVLayer sets the UV coordinates of layer i.
func (m *Mesh) SetUVLayer(i int, buf []Vector2) {
	m.Node().Set(uvLayerKey(i), ValueVector2Array(buf))
}

// ColorLayer returns the raw color property of layer i, or nil. Layers may
// be stored as packed 32-bit integers or as 4-component vectors.
func (m *Mesh) ColorLayer(i int) Value {
	return m.Node().Get(colorLayerKey(i))
}

// SetColorLayer sets the color property of layer i.
func (m *Mesh) SetColorLayer(i int, v Value) {
	m.Node().Set(colorLayerKey(i), v)
}

func uvLayerKey(i int) string {
	return "u" + strconv.Itoa(i)
}

func colorLayerKey(i int) string {
	return "c" + strconv.Itoa(i)
}

// narrowIntegers stores an index list with the fewest bits that fit the
// largest element, using at most 32 bits; elements above 0xFFFFFFFF keep only
// their low 32 bits.
func narrowIntegers(indices []uint64) Value {
	var max uint64
	for _, e := range indices {
		if e > max {
			max = e
		}
	}
	switch {
	case max <= 0xFF:
		out := make(ValueByteArray, len(indices))
		for i, e := range indices {
			out[i] = uint8(e)
		}
		return out
	case max <= 0xFFFF:
		out := make(ValueShortArray, len(indices))
		for i, e := range indices {
			out[i] = uint16(e)
		}
		return out
	default:
		out := make(ValueIntArray, len(indices))
		for i, e := range indices {
			out[i] = uint32(e)
		}
		return out
	}
}

////////////////////////////////////////////////////////////////

// BlendShape is a view of a node relating a base mesh to target meshes with
// per-target weight scales.
type BlendShape Node

// Node returns the underlying generic node.
func (b *BlendShape) Node() *Node { return (*Node)(b) }

// AsBlendShape views a node as a BlendShape, erroring when the identifier
// differs.
func AsBlendShape(n *Node) (*BlendShape, error) {
	if err := requireKind(n, BlendShapeID); err != nil {
		return nil, err
	}
	return (*BlendShape)(n), nil
}

// Name returns the blend shape name, or an empty string.
func (b *BlendShape) Name() string {
	return b.Node().GetStringOr("n", "")
}

// SetName sets the blend shape name.
func (b *BlendShape) SetName(name string) {
	b.Node().SetString("n", name)
}

// BaseShapeHash returns the hash of the base mesh, or zero.
func (b *BlendShape) BaseShapeHash() uint64 {
	return b.Node().FirstLongOr("b", 0)
}

// SetBaseShapeHash sets the hash of the base mesh.
func (b *BlendShape) SetBaseShapeHash(hash uint64) {
	b.Node().Set("b", ValueLongArray{hash})
}

// BaseShape resolves the base mesh among the blend shape's siblings. Returns
// nil when unresolved.
func (b *BlendShape) BaseShape() *Mesh {
	p := b.Node().Parent()
	if p == nil {
		return nil
	}
	return (*Mesh)(p.ChildByHashWithIdentifier(b.BaseShapeHash(), MeshID))
}

// TargetShapeHashes returns the hashes of the target meshes, or nil.
func (b *BlendShape) TargetShapeHashes() []uint64 {
	hashes, _ := b.Node().LongArray("t")
	return hashes
}

// SetTargetShapeHashes sets the hashes of the target meshes.
func (b *BlendShape) SetTargetShapeHashes(hashes []uint64) {
	b.Node().Set("t", ValueLongArray(hashes))
}

// TargetWeightScales returns the per-target weight scales, or nil. Targets
// without a scale default to 1.
func (b *BlendShape) TargetWeightScales() []float32 {
	scales, _ := b.Node().FloatArray("ts")
	return scales
}

// SetTargetWeightScales sets the per-target weight scales.
func (b *BlendShape) SetTargetWeightScales(scales []float32) {
	b.Node().Set("ts", ValueFloatArray(scales))
}

// TargetShape pairs a resolved target mesh with its weight scale.
type TargetShape struct {
	Mesh        *Mesh
	WeightScale float32
}

// TargetShapes resolves the target meshes among the blend shape's siblings
// and pairs each with its weight scale, in target order. Targets that do not
// resolve are skipped; targets without a declared scale use 1.
func (b *BlendShape) TargetShapes() []TargetShape {
	p := b.Node().Parent()
	if p == nil {
		return nil
	}
	hashes := b.TargetShapeHashes()
	scales := b.TargetWeightScales()
	list := make([]TargetShape, 0, len(hashes))
	for i, hash := range hashes {
		mesh := p.ChildByHashWithIdentifier(hash, MeshID)
		if mesh == nil {
			continue
		}
		scale := float32(1)
		if i < len(scales) {
			scale = scales[i]
		}
		list = append(list, TargetShape{Mesh: (*Mesh)(mesh), WeightScale: scale})
	}
	return list
}

////////////////////////////////////////////////////////////////

// Hair is a view of a node carrying hair strand data.
type Hair Node

// Node returns the underlying generic node.
func (h *Hair) Node() *Node { return (*Node)(h) }

// AsHair views a node as a Hair, erroring when the identifier differs.
func AsHair(n *Node) (*Hair, error) {
	if err := requireKind(n, HairID); err != nil {
		return nil, err
	}
	return (*Hair)(n), nil
}

// Name returns the hair name, or an empty string.
func (h *Hair) Name() string {
	return h.Node().GetStringOr("n", "")
}

// SetName sets the hair name.
func (h *Hair) SetName(name string) {
	h.Node().SetString("n", name)
}

// MaterialHash returns the hash of the material this hair renders with, or
// zero.
func (h *Hair) MaterialHash() uint64 {
	return h.Node().FirstLongOr("m", 0)
}

// SetMaterialHash sets the hash of the material this hair renders with.
func (h *Hair) SetMaterialHash(hash uint64) {
	h.Node().Set("m", ValueLongArray{hash})
}

// Material resolves the hair's material among its siblings. Returns nil when
// unresolved.
func (h *Hair) Material() *Material {
	p := h.Node().Parent()
	if p == nil {
		return nil
	}
	return (*Material)(p.ChildByHashWithIdentifier(h.MaterialHash(), MaterialID))
}

// SegmentBuffer returns the per-strand segment counts widened to 64 bits.
func (h *Hair) SegmentBuffer() ([]uint64, error) {
	return h.Node().IntegerArray("se", 32)
}

// SetSegmentBuffer sets the per-strand segment counts, choosing the
// narrowest storage that fits the largest count.
func (h *Hair) SetSegmentBuffer(segments []uint64) {
	h.Node().Set("se", narrowIntegers(segments))
}

// ParticleBuffer returns the strand particle positions, or nil.
func (h *Hair) ParticleBuffer() []Vector3 {
	buf, _ := h.Node().Vector3Array("pt")
	return buf
}

// SetParticleBuffer sets the strand particle positions.
func (h *Hair) SetParticleBuffer(buf []Vector3) {
	h.Node().Set("pt", ValueVector3Array(buf))
}
