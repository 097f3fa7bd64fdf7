package castfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelFacade(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateRoot()
	model := root.CreateModel()
	model.SetName("soldier")
	model.SetPosition(Vector3{X: 1})

	assert.Equal(t, "soldier", model.Name())
	assert.Equal(t, Vector3{X: 1}, model.Position())
	assert.Equal(t, Vector4{W: 1}, model.Rotation())
	assert.Equal(t, Vector3{X: 1, Y: 1, Z: 1}, model.Scale())

	require.Len(t, root.Models(), 1)
	assert.Nil(t, model.Skeleton())
	skel := model.CreateSkeleton()
	assert.Same(t, skel.Node(), model.Skeleton().Node())

	_, err := AsModel(skel.Node())
	require.Error(t, err)
	var kindErr ErrNodeKind
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, ModelID, kindErr.Expected)
	assert.Equal(t, SkeletonID, kindErr.Actual)
}

func TestMeshBuffers(t *testing.T) {
	doc := NewDocument()
	model := doc.CreateRoot().CreateModel()
	mesh := model.CreateMesh()
	mesh.SetName("quad")

	mesh.SetVertexPositionBuffer([]Vector3{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}})
	mesh.SetVertexNormalBuffer([]Vector3{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}})
	mesh.SetFaceBuffer([]uint64{0, 1, 2, 2, 1, 3})
	mesh.SetUVLayerCount(1)
	mesh.SetUVLayer(0, []Vector2{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}})

	assert.Equal(t, 4, mesh.VertexCount())
	assert.Equal(t, 2, mesh.FaceCount())
	assert.Equal(t, "linear", mesh.SkinningMethod())

	// Small indices are stored with single bytes.
	assert.Equal(t, TypeByte, mesh.Node().Get("f").Type())
	faces, err := mesh.FaceBuffer()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 2, 2, 1, 3}, faces)

	// Larger indices widen the storage.
	mesh.SetFaceBuffer([]uint64{0, 1, 70000})
	assert.Equal(t, TypeInteger32, mesh.Node().Get("f").Type())
	faces, err = mesh.FaceBuffer()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 1, 70000}, faces)

	uv, err := mesh.UVLayer(0)
	require.NoError(t, err)
	assert.Len(t, uv, 4)
	assert.Equal(t, 1, mesh.UVLayerCount())
	_, err = mesh.UVLayer(1)
	assert.Error(t, err)
}

func TestMeshMaterialResolution(t *testing.T) {
	doc := NewDocument()
	model := doc.CreateRoot().CreateModel()

	matl := model.CreateMaterial()
	matl.SetName("default_material")
	matl.Node().Hash = HashString("default_material")
	matl.SetMaterialType("pbr")

	mesh := model.CreateMesh()
	mesh.SetMaterialHash(HashString("default_material"))

	resolved := mesh.Material()
	require.NotNil(t, resolved)
	assert.Equal(t, "default_material", resolved.Name())

	mesh.SetMaterialHash(42)
	assert.Nil(t, mesh.Material())
}

func TestMaterialSlots(t *testing.T) {
	doc := NewDocument()
	matl := doc.CreateRoot().CreateModel().CreateMaterial()
	matl.SetName("metal")
	matl.SetMaterialType("pbr")

	albedo := matl.CreateFile()
	albedo.SetPath("textures/metal_c.png")
	albedo.Node().Hash = HashString("textures/metal_c.png")
	matl.SetSlot(SlotAlbedo, albedo.Node().Hash)

	tint := matl.CreateColor()
	tint.SetRgba(Vector4{X: 1, W: 1})
	tint.Node().Hash = GenerateHash()
	matl.SetSlot("extra0", tint.Node().Hash)

	slots := matl.Slots()
	assert.Len(t, slots, 2)
	assert.Equal(t, albedo.Node().Hash, slots[SlotAlbedo])
	assert.Equal(t, map[string]uint64{"extra0": tint.Node().Hash}, matl.ExtraSlots())

	file := matl.SlotFile(SlotAlbedo)
	require.NotNil(t, file)
	assert.Equal(t, "textures/metal_c.png", file.Path())
	assert.Nil(t, matl.SlotFile("extra0"))
	require.NotNil(t, matl.SlotColor("extra0"))
	assert.Equal(t, "srgb", matl.SlotColor("extra0").ColorSpace())
}

func TestBlendShapeTargets(t *testing.T) {
	doc := NewDocument()
	model := doc.CreateRoot().CreateModel()

	base := model.CreateMesh()
	base.Node().Hash = 1
	smile := model.CreateMesh()
	smile.Node().Hash = 2
	frown := model.CreateMesh()
	frown.Node().Hash = 3

	shape := model.CreateBlendShape()
	shape.SetBaseShapeHash(1)
	shape.SetTargetShapeHashes([]uint64{2, 3})
	shape.SetTargetWeightScales([]float32{0.25, 0.75})

	require.NotNil(t, shape.BaseShape())
	assert.Same(t, base.Node(), shape.BaseShape().Node())

	targets := shape.TargetShapes()
	require.Len(t, targets, 2)
	assert.Same(t, smile.Node(), targets[0].Mesh.Node())
	assert.Equal(t, float32(0.25), targets[0].WeightScale)
	assert.Same(t, frown.Node(), targets[1].Mesh.Node())
	assert.Equal(t, float32(0.75), targets[1].WeightScale)

	// Without declared scales, every target weighs 1.
	shape.Node().Set("ts", nil)
	targets = shape.TargetShapes()
	require.Len(t, targets, 2)
	assert.Equal(t, float32(1), targets[0].WeightScale)
	assert.Equal(t, float32(1), targets[1].WeightScale)
}

func TestAnimationFacade(t *testing.T) {
	doc := NewDocument()
	anim := doc.CreateRoot().CreateAnimation()
	assert.Equal(t, float32(30), anim.Framerate())
	assert.False(t, anim.Looping())

	anim.SetFramerate(60)
	anim.SetLooping(true)
	assert.Equal(t, float32(60), anim.Framerate())
	assert.True(t, anim.Looping())

	curve := anim.CreateCurve()
	curve.SetNodeName("bone_3")
	curve.SetKeyPropertyName("rq")
	curve.SetKeyFrameBuffer([]uint64{0, 5, 10})
	curve.SetKeyValueBuffer(ValueVector4Array{{W: 1}, {W: 1}, {W: 1}})

	assert.Equal(t, "relative", curve.Mode())
	assert.Equal(t, float32(0), curve.AdditiveBlendWeight())
	frames, err := curve.KeyFrameBuffer()
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 5, 10}, frames)
	assert.Equal(t, 3, curve.KeyValueBuffer().Count())

	track := anim.CreateNotificationTrack()
	track.SetName("footstep")
	track.SetKeyFrameBuffer([]uint64{3, 9})
	require.Len(t, anim.NotificationTracks(), 1)

	override := anim.CreateCurveModeOverride()
	override.SetNodeName("pelvis")
	override.SetMode("absolute")
	override.SetOverrideTranslationCurves(true)
	require.Len(t, anim.CurveModeOverrides(), 1)
	assert.True(t, override.OverrideTranslationCurves())
	assert.False(t, override.OverrideRotationCurves())

	require.Len(t, anim.Curves(), 1)
}

func TestMetadataAndInstance(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateRoot()

	meta := root.CreateMetadata()
	meta.SetAuthor("me")
	meta.SetSoftware("exporter 1.0")
	assert.Equal(t, "me", root.Metadata().Author())
	assert.Equal(t, "exporter 1.0", root.Metadata().Software())
	assert.Equal(t, "y", root.Metadata().UpAxis())

	file := NewNode(FileID, root.Node())
	file.Hash = HashString("scenes/crate.cast")
	(*File)(file).SetPath("scenes/crate.cast")

	inst := root.CreateInstance()
	inst.SetName("crate_01")
	inst.SetReferenceFileHash(HashString("scenes/crate.cast"))
	inst.SetPosition(Vector3{X: 10})

	resolved := inst.ReferenceFile()
	require.NotNil(t, resolved)
	assert.Equal(t, "scenes/crate.cast", resolved.Path())
	assert.Equal(t, Vector3{X: 10}, inst.Position())
	assert.Equal(t, Vector3{X: 1, Y: 1, Z: 1}, inst.Scale())
}

func TestHairFacade(t *testing.T) {
	doc := NewDocument()
	model := doc.CreateRoot().CreateModel()
	hair := model.CreateHair()
	hair.SetName("scalp")
	hair.SetSegmentBuffer([]uint64{4, 4, 4})
	hair.SetParticleBuffer([]Vector3{{}, {Y: 1}, {Y: 2}})

	segments, err := hair.SegmentBuffer()
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 4, 4}, segments)
	assert.Len(t, hair.ParticleBuffer(), 3)
	require.Len(t, model.Hairs(), 1)
}
