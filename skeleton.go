package castfile

// NoParent is the parent index stored by bones that have no parent.
const NoParent uint32 = 0xFFFFFFFF

// Skeleton is a view of a node grouping the bones, IK handles, and
// constraints of a model.
type Skeleton Node

// Node returns the underlying generic node.
func (s *Skeleton) Node() *Node { return (*Node)(s) }

// AsSkeleton views a node as a Skeleton, erroring when the identifier
// differs.
func AsSkeleton(n *Node) (*Skeleton, error) {
	if err := requireKind(n, SkeletonID); err != nil {
		return nil, err
	}
	return (*Skeleton)(n), nil
}

// Bones returns the skeleton's bones, in order. Bone parent indices refer to
// positions in this list; parents precede their children.
func (s *Skeleton) Bones() []*Bone {
	nodes := s.Node().ChildrenWithIdentifier(BoneID)
	list := make([]*Bone, len(nodes))
	for i, n := range nodes {
		list[i] = (*Bone)(n)
	}
	return list
}

// CreateBone appends a new bone node to the skeleton.
func (s *Skeleton) CreateBone() *Bone {
	return (*Bone)(NewNode(BoneID, s.Node()))
}

// IKHandles returns the skeleton's IK handles, in order.
func (s *Skeleton) IKHandles() []*IKHandle {
	nodes := s.Node().ChildrenWithIdentifier(IKHandleID)
	list := make([]*IKHandle, len(nodes))
	for i, n := range nodes {
		list[i] = (*IKHandle)(n)
	}
	return list
}

// CreateIKHandle appends a new IK handle node to the skeleton.
func (s *Skeleton) CreateIKHandle() *IKHandle {
	return (*IKHandle)(NewNode(IKHandleID, s.Node()))
}

// Constraints returns the skeleton's constraints, in order.
func (s *Skeleton) Constraints() []*Constraint {
	nodes := s.Node().ChildrenWithIdentifier(ConstraintID)
	list := make([]*Constraint, len(nodes))
	for i, n := range nodes {
		list[i] = (*Constraint)(n)
	}
	return list
}

// CreateConstraint appends a new constraint node to the skeleton.
func (s *Skeleton) CreateConstraint() *Constraint {
	return (*Constraint)(NewNode(ConstraintID, s.Node()))
}

// RecomputeLocalTransforms rewrites each bone's local position and rotation
// from the world transforms. Bones whose parent index lies outside the bone
// list are treated as roots.
func (s *Skeleton) RecomputeLocalTransforms() {
	bones := s.Bones()
	for _, b := range bones {
		pi := b.ParentIndex()
		if pi < 0 || pi >= len(bones) {
			b.SetLocalPosition(b.WorldPosition())
			b.SetLocalRotation(b.WorldRotation())
			continue
		}
		parent := bones[pi]
		inverse := parent.WorldRotation().Conjugate()
		b.SetLocalRotation(inverse.Mul(b.WorldRotation()))
		b.SetLocalPosition(inverse.Rotate(b.WorldPosition().Sub(parent.WorldPosition())))
	}
}

// RecomputeWorldTransforms rewrites each bone's world position and rotation
// from the local transforms, walking bones in index order so parents are
// finished before their children.
func (s *Skeleton) RecomputeWorldTransforms() {
	bones := s.Bones()
	for _, b := range bones {
		pi := b.ParentIndex()
		if pi < 0 || pi >= len(bones) {
			b.SetWorldPosition(b.LocalPosition())
			b.SetWorldRotation(b.LocalRotation())
			continue
		}
		parent := bones[pi]
		b.SetWorldRotation(parent.WorldRotation().Mul(b.LocalRotation()))
		b.SetWorldPosition(parent.WorldRotation().Rotate(b.LocalPosition()).Add(parent.WorldPosition()))
	}
}

////////////////////////////////////////////////////////////////

// Bone is a view of a node carrying per-bone transforms.
type Bone Node

// Node returns the underlying generic node.
func (b *Bone) Node() *Node { return (*Node)(b) }

// AsBone views a node as a Bone, erroring when the identifier differs.
func AsBone(n *Node) (*Bone, error) {
	if err := requireKind(n, BoneID); err != nil {
		return nil, err
	}
	return (*Bone)(n), nil
}

// Name returns the bone name, or an empty string.
func (b *Bone) Name() string {
	return b.Node().GetStringOr("n", "")
}

// SetName sets the bone name.
func (b *Bone) SetName(name string) {
	b.Node().SetString("n", name)
}

// ParentIndex returns the index of the bone's parent within the skeleton's
// bone list, or -1 for a root bone. Narrower storage of the index is
// tolerated.
func (b *Bone) ParentIndex() int {
	return int(int32(uint32(b.Node().FirstIntegerOr("p", uint64(NoParent), 32))))
}

// SetParentIndex sets the index of the bone's parent; pass -1 for a root
// bone.
func (b *Bone) SetParentIndex(i int) {
	b.Node().Set("p", ValueIntArray{uint32(int32(i))})
}

// SegmentScaleCompensate returns whether the bone compensates for parent
// scale. Defaults to true.
func (b *Bone) SegmentScaleCompensate() bool {
	return b.Node().FirstIntegerOr("ssc", 1, 8) != 0
}

// SetSegmentScaleCompensate sets whether the bone compensates for parent
// scale.
func (b *Bone) SetSegmentScaleCompensate(enabled bool) {
	b.Node().Set("ssc", ValueByteArray{boolByte(enabled)})
}

// LocalPosition returns the bone's position relative to its parent, or zero.
func (b *Bone) LocalPosition() Vector3 {
	return b.Node().FirstVector3Or("lp", Vector3{})
}

// SetLocalPosition sets the bone's position relative to its parent.
func (b *Bone) SetLocalPosition(p Vector3) {
	b.Node().Set("lp", ValueVector3Array{p})
}

// LocalRotation returns the bone's rotation relative to its parent, or
// identity.
func (b *Bone) LocalRotation() Vector4 {
	return b.Node().FirstVector4Or("lr", Vector4{W: 1})
}

// SetLocalRotation sets the bone's rotation relative to its parent.
func (b *Bone) SetLocalRotation(r Vector4) {
	b.Node().Set("lr", ValueVector4Array{r})
}

// WorldPosition returns the bone's position in model space, or zero.
func (b *Bone) WorldPosition() Vector3 {
	return b.Node().FirstVector3Or("wp", Vector3{})
}

// SetWorldPosition sets the bone's position in model space.
func (b *Bone) SetWorldPosition(p Vector3) {
	b.Node().Set("wp", ValueVector3Array{p})
}

// WorldRotation returns the bone's rotation in model space, or identity.
func (b *Bone) WorldRotation() Vector4 {
	return b.Node().FirstVector4Or("wr", Vector4{W: 1})
}

// SetWorldRotation sets the bone's rotation in model space.
func (b *Bone) SetWorldRotation(r Vector4) {
	b.Node().Set("wr", ValueVector4Array{r})
}

// Scale returns the bone scale, or one on each axis.
func (b *Bone) Scale() Vector3 {
	return b.Node().FirstVector3Or("s", Vector3{X: 1, Y: 1, Z: 1})
}

// SetScale sets the bone scale.
func (b *Bone) SetScale(s Vector3) {
	b.Node().Set("s", ValueVector3Array{s})
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

////////////////////////////////////////////////////////////////

// IKHandle is a view of a node describing an inverse kinematics chain over
// bones of the containing skeleton.
type IKHandle Node

// Node returns the underlying generic node.
func (h *IKHandle) Node() *Node { return (*Node)(h) }

// AsIKHandle views a node as an IKHandle, erroring when the identifier
// differs.
func AsIKHandle(n *Node) (*IKHandle, error) {
	if err := requireKind(n, IKHandleID); err != nil {
		return nil, err
	}
	return (*IKHandle)(n), nil
}

// Name returns the handle name, or an empty string.
func (h *IKHandle) Name() string {
	return h.Node().GetStringOr("n", "")
}

// SetName sets the handle name.
func (h *IKHandle) SetName(name string) {
	h.Node().SetString("n", name)
}

func (h *IKHandle) boneByKey(key string) *Bone {
	p := h.Node().Parent()
	if p == nil {
		return nil
	}
	hash := h.Node().FirstLongOr(key, 0)
	return (*Bone)(p.ChildByHashWithIdentifier(hash, BoneID))
}

// StartBone resolves the first bone of the chain, or nil.
func (h *IKHandle) StartBone() *Bone {
	return h.boneByKey("sb")
}

// SetStartBoneHash sets the hash of the first bone of the chain.
func (h *IKHandle) SetStartBoneHash(hash uint64) {
	h.Node().Set("sb", ValueLongArray{hash})
}

// EndBone resolves the last bone of the chain, or nil.
func (h *IKHandle) EndBone() *Bone {
	return h.boneByKey("eb")
}

// SetEndBoneHash sets the hash of the last bone of the chain.
func (h *IKHandle) SetEndBoneHash(hash uint64) {
	h.Node().Set("eb", ValueLongArray{hash})
}

// TargetBone resolves the bone the chain reaches toward, or nil.
func (h *IKHandle) TargetBone() *Bone {
	return h.boneByKey("tb")
}

// SetTargetBoneHash sets the hash of the bone the chain reaches toward.
func (h *IKHandle) SetTargetBoneHash(hash uint64) {
	h.Node().Set("tb", ValueLongArray{hash})
}

// PoleVectorBone resolves the pole vector bone, or nil.
func (h *IKHandle) PoleVectorBone() *Bone {
	return h.boneByKey("pv")
}

// SetPoleVectorBoneHash sets the hash of the pole vector bone.
func (h *IKHandle) SetPoleVectorBoneHash(hash uint64) {
	h.Node().Set("pv", ValueLongArray{hash})
}

// PoleBone resolves the pole bone, or nil.
func (h *IKHandle) PoleBone() *Bone {
	return h.boneByKey("pb")
}

// SetPoleBoneHash sets the hash of the pole bone.
func (h *IKHandle) SetPoleBoneHash(hash uint64) {
	h.Node().Set("pb", ValueLongArray{hash})
}

// UseTargetRotation returns whether the end of the chain takes the target
// bone's rotation. Defaults to false.
func (h *IKHandle) UseTargetRotation() bool {
	return h.Node().FirstIntegerOr("tr", 0, 8) != 0
}

// SetUseTargetRotation sets whether the end of the chain takes the target
// bone's rotation.
func (h *IKHandle) SetUseTargetRotation(enabled bool) {
	h.Node().Set("tr", ValueByteArray{boolByte(enabled)})
}

////////////////////////////////////////////////////////////////

// Constraint is a view of a node binding one bone's transform to another's.
type Constraint Node

// Node returns the underlying generic node.
func (c *Constraint) Node() *Node { return (*Node)(c) }

// AsConstraint views a node as a Constraint, erroring when the identifier
// differs.
func AsConstraint(n *Node) (*Constraint, error) {
	if err := requireKind(n, ConstraintID); err != nil {
		return nil, err
	}
	return (*Constraint)(n), nil
}

// Name returns the constraint name, or an empty string.
func (c *Constraint) Name() string {
	return c.Node().GetStringOr("n", "")
}

// SetName sets the constraint name.
func (c *Constraint) SetName(name string) {
	c.Node().SetString("n", name)
}

// ConstraintType returns the constraint type, or "unknown" if unset.
func (c *Constraint) ConstraintType() string {
	return c.Node().GetStringOr("ct", "unknown")
}

// SetConstraintType sets the constraint type.
func (c *Constraint) SetConstraintType(t string) {
	c.Node().SetString("ct", t)
}

func (c *Constraint) boneByKey(key string) *Bone {
	p := c.Node().Parent()
	if p == nil {
		return nil
	}
	hash := c.Node().FirstLongOr(key, 0)
	return (*Bone)(p.ChildByHashWithIdentifier(hash, BoneID))
}

// ConstraintBone resolves the bone being driven, or nil.
func (c *Constraint) ConstraintBone() *Bone {
	return c.boneByKey("cb")
}

// SetConstraintBoneHash sets the hash of the bone being driven.
func (c *Constraint) SetConstraintBoneHash(hash uint64) {
	c.Node().Set("cb", ValueLongArray{hash})
}

// TargetBone resolves the bone being followed, or nil.
func (c *Constraint) TargetBone() *Bone {
	return c.boneByKey("tb")
}

// SetTargetBoneHash sets the hash of the bone being followed.
func (c *Constraint) SetTargetBoneHash(hash uint64) {
	c.Node().Set("tb", ValueLongArray{hash})
}

// MaintainOffset returns whether the driven bone keeps its offset from the
// target. Defaults to false.
func (c *Constraint) MaintainOffset() bool {
	return c.Node().FirstIntegerOr("tr", 0, 8) != 0
}

// SetMaintainOffset sets whether the driven bone keeps its offset from the
// target.
func (c *Constraint) SetMaintainOffset(enabled bool) {
	c.Node().Set("tr", ValueByteArray{boolByte(enabled)})
}

// SkipX returns whether the X axis is excluded from the constraint.
func (c *Constraint) SkipX() bool {
	return c.Node().FirstIntegerOr("sx", 0, 8) != 0
}

// SetSkipX sets whether the X axis is excluded from the constraint.
func (c *Constraint) SetSkipX(skip bool) {
	c.Node().Set("sx", ValueByteArray{boolByte(skip)})
}

// SkipY returns whether the Y axis is excluded from the constraint.
func (c *Constraint) SkipY() bool {
	return c.Node().FirstIntegerOr("sy", 0, 8) != 0
}

// SetSkipY sets whether the Y axis is excluded from the constraint.
func (c *Constraint) SetSkipY(skip bool) {
	c.Node().Set("sy", ValueByteArray{boolByte(skip)})
}

// SkipZ returns whether the Z axis is excluded from the constraint.
func (c *Constraint) SkipZ() bool {
	return c.Node().FirstIntegerOr("sz", 0, 8) != 0
}

// SetSkipZ sets whether the Z axis is excluded from the constraint.
func (c *Constraint) SetSkipZ(skip bool) {
	c.Node().Set("sz", ValueByteArray{boolByte(skip)})
}

////////////////////////////////////////////////////////////////
// Transform math

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Conjugate returns the quaternion conjugate. For unit quaternions this is
// the inverse rotation.
func (q Vector4) Conjugate() Vector4 {
	return Vector4{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Mul returns the Hamilton product q * o, the rotation o followed by q.
func (q Vector4) Mul(o Vector4) Vector4 {
	return Vector4{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Rotate returns v rotated by the unit quaternion q.
func (q Vector4) Rotate(v Vector3) Vector3 {
	// q * (v, 0) * conj(q), expanded.
	u := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	t := cross(u, v)
	t = Vector3{X: 2 * t.X, Y: 2 * t.Y, Z: 2 * t.Z}
	return v.Add(Vector3{X: q.W * t.X, Y: q.W * t.Y, Z: q.W * t.Z}).Add(cross(u, t))
}

func cross(a, b Vector3) Vector3 {
	return Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
