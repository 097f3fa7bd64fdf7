package castfile

// Root is a view of a top-level container node. Roots group the models,
// animations, instances, and metadata of a file.
type Root Node

// Node returns the underlying generic node.
func (r *Root) Node() *Node { return (*Node)(r) }

// AsRoot views a node as a Root, erroring when the identifier differs.
func AsRoot(n *Node) (*Root, error) {
	if err := requireKind(n, RootID); err != nil {
		return nil, err
	}
	return (*Root)(n), nil
}

// Metadata returns the root's metadata node, or nil.
func (r *Root) Metadata() *Metadata {
	return (*Metadata)(r.Node().FindFirstChild(MetadataID))
}

// Models returns the root's model nodes, in order.
func (r *Root) Models() []*Model {
	nodes := r.Node().ChildrenWithIdentifier(ModelID)
	list := make([]*Model, len(nodes))
	for i, n := range nodes {
		list[i] = (*Model)(n)
	}
	return list
}

// Animations returns the root's animation nodes, in order.
func (r *Root) Animations() []*Animation {
	nodes := r.Node().ChildrenWithIdentifier(AnimationID)
	list := make([]*Animation, len(nodes))
	for i, n := range nodes {
		list[i] = (*Animation)(n)
	}
	return list
}

// Instances returns the root's instance nodes, in order.
func (r *Root) Instances() []*Instance {
	nodes := r.Node().ChildrenWithIdentifier(InstanceID)
	list := make([]*Instance, len(nodes))
	for i, n := range nodes {
		list[i] = (*Instance)(n)
	}
	return list
}

// CreateMetadata appends a new metadata node to the root.
func (r *Root) CreateMetadata() *Metadata {
	return (*Metadata)(NewNode(MetadataID, r.Node()))
}

// CreateModel appends a new model node to the root.
func (r *Root) CreateModel() *Model {
	return (*Model)(NewNode(ModelID, r.Node()))
}

// CreateAnimation appends a new animation node to the root.
func (r *Root) CreateAnimation() *Animation {
	return (*Animation)(NewNode(AnimationID, r.Node()))
}

// CreateInstance appends a new instance node to the root.
func (r *Root) CreateInstance() *Instance {
	return (*Instance)(NewNode(InstanceID, r.Node()))
}

func requireKind(n *Node, identifier uint32) error {
	if n == nil {
		return ErrNodeKind{Expected: identifier}
	}
	if n.Identifier != identifier {
		return ErrNodeKind{Expected: identifier, Actual: n.Identifier}
	}
	return nil
}

////////////////////////////////////////////////////////////////

// Metadata is a view of a node carrying information about the file itself.
type Metadata Node

// Node returns the underlying generic node.
func (m *Metadata) Node() *Node { return (*Node)(m) }

// AsMetadata views a node as a Metadata, erroring when the identifier
// differs.
func AsMetadata(n *Node) (*Metadata, error) {
	if err := requireKind(n, MetadataID); err != nil {
		return nil, err
	}
	return (*Metadata)(n), nil
}

// Author returns the author string, or an empty string.
func (m *Metadata) Author() string {
	return m.Node().GetStringOr("a", "")
}

// SetAuthor sets the author string.
func (m *Metadata) SetAuthor(author string) {
	m.Node().SetString("a", author)
}

// Software returns the name of the software that produced the file, or an
// empty string.
func (m *Metadata) Software() string {
	return m.Node().GetStringOr("s", "")
}

// SetSoftware sets the name of the software that produced the file.
func (m *Metadata) SetSoftware(software string) {
	m.Node().SetString("s", software)
}

// UpAxis returns the scene up axis, or "y" if unset.
func (m *Metadata) UpAxis() string {
	return m.Node().GetStringOr("up", "y")
}

// SetUpAxis sets the scene up axis.
func (m *Metadata) SetUpAxis(axis string) {
	m.Node().SetString("up", axis)
}

////////////////////////////////////////////////////////////////

// Instance is a view of a node placing a copy of a referenced scene at a
// transform.
type Instance Node

// Node returns the underlying generic node.
func (inst *Instance) Node() *Node { return (*Node)(inst) }

// AsInstance views a node as an Instance, erroring when the identifier
// differs.
func AsInstance(n *Node) (*Instance, error) {
	if err := requireKind(n, InstanceID); err != nil {
		return nil, err
	}
	return (*Instance)(n), nil
}

// Name returns the instance name, or an empty string.
func (inst *Instance) Name() string {
	return inst.Node().GetStringOr("n", "")
}

// SetName sets the instance name.
func (inst *Instance) SetName(name string) {
	inst.Node().SetString("n", name)
}

// ReferenceFileHash returns the hash of the file node this instance refers
// to, or zero.
func (inst *Instance) ReferenceFileHash() uint64 {
	return inst.Node().FirstLongOr("rf", 0)
}

// SetReferenceFileHash sets the hash of the referenced file node.
func (inst *Instance) SetReferenceFileHash(hash uint64) {
	inst.Node().Set("rf", ValueLongArray{hash})
}

// ReferenceFile resolves the referenced file node, searching the instance's
// own children first and then its siblings. Returns nil when unresolved.
func (inst *Instance) ReferenceFile() *File {
	hash := inst.ReferenceFileHash()
	if f := inst.Node().ChildByHashWithIdentifier(hash, FileID); f != nil {
		return (*File)(f)
	}
	if p := inst.Node().Parent(); p != nil {
		if f := p.ChildByHashWithIdentifier(hash, FileID); f != nil {
			return (*File)(f)
		}
	}
	return nil
}

// Position returns the instance translation, or zero.
func (inst *Instance) Position() Vector3 {
	return inst.Node().FirstVector3Or("p", Vector3{})
}

// SetPosition sets the instance translation.
func (inst *Instance) SetPosition(p Vector3) {
	inst.Node().Set("p", ValueVector3Array{p})
}

// Rotation returns the instance rotation quaternion, or identity.
func (inst *Instance) Rotation() Vector4 {
	return inst.Node().FirstVector4Or("r", Vector4{W: 1})
}

// SetRotation sets the instance rotation quaternion.
func (inst *Instance) SetRotation(r Vector4) {
	inst.Node().Set("r", ValueVector4Array{r})
}

// Scale returns the instance scale, or one on each axis.
func (inst *Instance) Scale() Vector3 {
	return inst.Node().FirstVector3Or("s", Vector3{X: 1, Y: 1, Z: 1})
}

// SetScale sets the instance scale.
func (inst *Instance) SetScale(s Vector3) {
	inst.Node().Set("s", ValueVector3Array{s})
}
