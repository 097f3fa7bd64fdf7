package bin

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castapi/castfile"
	"github.com/castapi/castfile/declare"
)

// roundTrip serializes doc, deserializes the result, and serializes again,
// requiring both byte streams to be identical.
func roundTrip(t *testing.T, doc *castfile.Document) (*castfile.Document, []byte) {
	t.Helper()
	var first bytes.Buffer
	require.NoError(t, Serialize(&first, doc))

	loaded, err := Deserialize(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	var second bytes.Buffer
	require.NoError(t, Serialize(&second, loaded))
	require.Equal(t, first.Bytes(), second.Bytes(), "serialization is not stable across a round trip")
	return loaded, first.Bytes()
}

func TestRoundTripEveryType(t *testing.T) {
	doc := declare.Root(
		declare.Node(castfile.RootID,
			declare.Node(castfile.MeshID,
				declare.Hash(0x1122334455667788),
				declare.Property("n", castfile.ValueString("quad")),
				declare.Property("b", castfile.ValueByteArray{0, 127, 255}),
				declare.Property("h", castfile.ValueShortArray{0, 65535}),
				declare.Property("i", castfile.ValueIntArray{1, 2, 3}),
				declare.Property("l", castfile.ValueLongArray{0xFFFFFFFFFFFFFFFF}),
				declare.Property("f", castfile.ValueFloatArray{0.5, -1.25}),
				declare.Property("d", castfile.ValueDoubleArray{3.141592653589793}),
				declare.Property("v2", castfile.ValueVector2Array{{X: 1, Y: 2}}),
				declare.Property("v3", castfile.ValueVector3Array{{X: 1, Y: 2, Z: 3}}),
				declare.Property("v4", castfile.ValueVector4Array{{X: 1, Y: 2, Z: 3, W: 4}}),
				declare.Property("empty", castfile.ValueIntArray{}),
				declare.Property("nul", castfile.ValueString("")),
			),
		),
	).Declare()

	loaded, _ := roundTrip(t, doc)
	mesh := loaded.Roots[0].FindFirstChild(castfile.MeshID)
	require.NotNil(t, mesh)
	assert.Equal(t, uint64(0x1122334455667788), mesh.Hash)
	assert.Equal(t, 12, mesh.PropertyCount())
	assert.Equal(t, castfile.ValueFloatArray{0.5, -1.25}, mesh.Get("f"))
	assert.Equal(t, castfile.ValueString(""), mesh.Get("nul"))
	assert.Equal(t, castfile.ValueIntArray{}, mesh.Get("empty"))
	assert.Equal(t, castfile.ValueVector4Array{{X: 1, Y: 2, Z: 3, W: 4}}, mesh.Get("v4"))
}

func TestRoundTripPropertyOrder(t *testing.T) {
	doc := declare.Root(
		declare.Node(castfile.BoneID,
			declare.Property("p1", castfile.ValueByteArray{1}),
			declare.Property("p2", castfile.ValueByteArray{2}),
			declare.Property("p3", castfile.ValueByteArray{3}),
		),
	).Declare()

	loaded, _ := roundTrip(t, doc)
	props := loaded.Roots[0].Properties()
	require.Len(t, props, 3)
	for i, name := range []string{"p1", "p2", "p3"} {
		assert.Equal(t, name, props[i].Name)
	}
}

func TestRoundTripSingleBone(t *testing.T) {
	doc := castfile.NewDocument()
	bone := doc.CreateRoot().CreateModel().CreateSkeleton().CreateBone()
	bone.SetName("root")
	bone.Node().Set("p", castfile.ValueIntArray{0xFFFFFFFF})
	bone.SetLocalPosition(castfile.Vector3{})
	bone.SetLocalRotation(castfile.Vector4{W: 1})

	loaded, _ := roundTrip(t, doc)
	skel := (*castfile.Skeleton)(loaded.Roots[0].FindFirstChild(castfile.ModelID).FindFirstChild(castfile.SkeletonID))
	require.NotNil(t, skel)
	bones := skel.Bones()
	require.Len(t, bones, 1)
	assert.Equal(t, "root", bones[0].Name())
	assert.Equal(t, -1, bones[0].ParentIndex())
	assert.Equal(t, castfile.Vector3{}, bones[0].LocalPosition())
	assert.Equal(t, castfile.Vector4{W: 1}, bones[0].LocalRotation())
}

func TestRoundTripBoneChain(t *testing.T) {
	doc := castfile.NewDocument()
	skel := doc.CreateRoot().CreateModel().CreateSkeleton()
	for i := 0; i < 16; i++ {
		bone := skel.CreateBone()
		bone.SetName("bone_" + string(rune('0'+i%10)))
		bone.SetParentIndex(i - 1)
		bone.SetLocalPosition(castfile.Vector3{Z: float32(i)})
	}

	loaded, _ := roundTrip(t, doc)
	model := loaded.Roots[0].FindFirstChild(castfile.ModelID)
	bones := (*castfile.Skeleton)(model.FindFirstChild(castfile.SkeletonID)).Bones()
	require.Len(t, bones, 16)
	assert.Equal(t, -1, bones[0].ParentIndex())
	assert.Equal(t, 4, bones[5].ParentIndex())
	assert.Equal(t, castfile.Vector3{Z: 5}, bones[5].LocalPosition())
	assert.Equal(t, castfile.Vector3{Z: 15}, bones[15].LocalPosition())
}

func TestRoundTripBlendShape(t *testing.T) {
	doc := castfile.NewDocument()
	model := doc.CreateRoot().CreateModel()

	base := model.CreateMesh()
	base.Node().Hash = castfile.HashString("base")
	smile := model.CreateMesh()
	smile.Node().Hash = castfile.HashString("smile")
	frown := model.CreateMesh()
	frown.Node().Hash = castfile.HashString("frown")

	shape := model.CreateBlendShape()
	shape.SetBaseShapeHash(base.Node().Hash)
	shape.SetTargetShapeHashes([]uint64{smile.Node().Hash, frown.Node().Hash})
	shape.SetTargetWeightScales([]float32{0.25, 0.75})

	loaded, _ := roundTrip(t, doc)
	shapes := (*castfile.Model)(loaded.Roots[0].FindFirstChild(castfile.ModelID)).BlendShapes()
	require.Len(t, shapes, 1)
	targets := shapes[0].TargetShapes()
	require.Len(t, targets, 2)
	assert.Equal(t, castfile.HashString("smile"), targets[0].Mesh.Node().Hash)
	assert.Equal(t, float32(0.25), targets[0].WeightScale)
	assert.Equal(t, castfile.HashString("frown"), targets[1].Mesh.Node().Hash)
	assert.Equal(t, float32(0.75), targets[1].WeightScale)
}

// buildUnknownStream synthesizes a file whose root has a single child with an
// identifier the format does not define, carrying one u32 array property.
func buildUnknownStream(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	le := binary.LittleEndian
	write := func(v interface{}) {
		require.NoError(t, binary.Write(&buf, le, v))
	}

	write(Magic)
	write(Version)
	write(int32(1))
	write(uint32(0))

	// root node: 24 + child
	childSize := uint32(24 + 8 + 1 + 12)
	write(castfile.RootID)
	write(24 + childSize)
	write(uint64(0))
	write(int32(0))
	write(int32(1))

	write(uint32(0xDEADBEEF))
	write(childSize)
	write(uint64(0))
	write(int32(1))
	write(int32(0))

	write(uint16(castfile.TypeInteger32))
	write(uint16(1))
	write(int32(3))
	buf.WriteByte('x')
	write([]uint32{1, 2, 3})

	return buf.Bytes()
}

func TestUnknownIdentifierPreserved(t *testing.T) {
	stream := buildUnknownStream(t)

	doc, warn, err := Decoder{}.Decode(bytes.NewReader(stream))
	require.NoError(t, err)
	assert.Error(t, warn, "expected an unknown-identifier warning")

	child, err := doc.Roots[0].ChildAt(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), child.Identifier)
	assert.False(t, castfile.KnownIdentifier(child.Identifier))
	assert.Equal(t, castfile.ValueIntArray{1, 2, 3}, child.Get("x"))

	var out bytes.Buffer
	require.NoError(t, Serialize(&out, doc))
	assert.Equal(t, stream, out.Bytes(), "unknown node did not survive byte-for-byte")
}

func TestDuplicateKeyKeepsLast(t *testing.T) {
	var buf bytes.Buffer
	le := binary.LittleEndian
	write := func(v interface{}) {
		require.NoError(t, binary.Write(&buf, le, v))
	}

	write(Magic)
	write(Version)
	write(int32(1))
	write(uint32(0))

	prop := func(v uint8) {
		write(uint16(castfile.TypeByte))
		write(uint16(1))
		write(int32(1))
		buf.WriteByte('k')
		buf.WriteByte(v)
	}
	write(castfile.BoneID)
	write(uint32(24 + 2*(8+1+1)))
	write(uint64(0))
	write(int32(2))
	write(int32(0))
	prop(1)
	prop(2)

	doc, err := Deserialize(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	root := doc.Roots[0]
	assert.Equal(t, 1, root.PropertyCount())
	assert.Equal(t, castfile.ValueByteArray{2}, root.Get("k"))
}

func TestNestedSizeMismatch(t *testing.T) {
	stream := buildUnknownStream(t)
	// Shrink the inner child's payload without touching the declared sizes.
	tampered := append([]byte{}, stream[:len(stream)-4]...)

	_, err := Deserialize(bytes.NewReader(tampered))
	require.Error(t, err)
}

func TestDeepTreeRoundTrip(t *testing.T) {
	doc := castfile.NewDocument()
	parent := castfile.NewNode(castfile.RootID, nil)
	doc.AddRoot(parent)
	for i := 0; i < 64; i++ {
		child := castfile.NewNode(castfile.ModelID, parent)
		child.Set("depth", castfile.ValueIntArray{uint32(i)})
		parent = child
	}

	loaded, _ := roundTrip(t, doc)
	n := loaded.Roots[0]
	depth := 0
	for n.ChildCount() > 0 {
		var err error
		n, err = n.ChildAt(0)
		require.NoError(t, err)
		depth++
	}
	assert.Equal(t, 64, depth)
	assert.Equal(t, castfile.ValueIntArray{63}, n.Get("depth"))
}
