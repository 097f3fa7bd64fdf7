package castfile

// Animation is a view of a node grouping the curves, curve mode overrides,
// and notification tracks of a clip.
type Animation Node

// Node returns the underlying generic node.
func (a *Animation) Node() *Node { return (*Node)(a) }

// AsAnimation views a node as an Animation, erroring when the identifier
// differs.
func AsAnimation(n *Node) (*Animation, error) {
	if err := requireKind(n, AnimationID); err != nil {
		return nil, err
	}
	return (*Animation)(n), nil
}

// Name returns the animation name, or an empty string.
func (a *Animation) Name() string {
	return a.Node().GetStringOr("n", "")
}

// SetName sets the animation name.
func (a *Animation) SetName(name string) {
	a.Node().SetString("n", name)
}

// Framerate returns the playback rate in frames per second. Defaults to 30.
func (a *Animation) Framerate() float32 {
	return a.Node().FirstFloatOr("f", 30)
}

// SetFramerate sets the playback rate in frames per second.
func (a *Animation) SetFramerate(fps float32) {
	a.Node().Set("f", ValueFloatArray{fps})
}

// Looping returns whether the clip repeats. Defaults to false.
func (a *Animation) Looping() bool {
	return a.Node().FirstIntegerOr("b", 0, 8) != 0
}

// SetLooping sets whether the clip repeats.
func (a *Animation) SetLooping(looping bool) {
	a.Node().Set("b", ValueByteArray{boolByte(looping)})
}

// Skeleton returns the skeleton the clip animates, or nil.
func (a *Animation) Skeleton() *Skeleton {
	return (*Skeleton)(a.Node().FindFirstChild(SkeletonID))
}

// CreateSkeleton appends a new skeleton node to the animation.
func (a *Animation) CreateSkeleton() *Skeleton {
	return (*Skeleton)(NewNode(SkeletonID, a.Node()))
}

// Curves returns the animation's curves, in order.
func (a *Animation) Curves() []*Curve {
	nodes := a.Node().ChildrenWithIdentifier(CurveID)
	list := make([]*Curve, len(nodes))
	for i, n := range nodes {
		list[i] = (*Curve)(n)
	}
	return list
}

// CreateCurve appends a new curve node to the animation.
func (a *Animation) CreateCurve() *Curve {
	return (*Curve)(NewNode(CurveID, a.Node()))
}

// CurveModeOverrides returns the animation's curve mode overrides, in order.
func (a *Animation) CurveModeOverrides() []*CurveModeOverride {
	nodes := a.Node().ChildrenWithIdentifier(CurveModeOverrideID)
	list := make([]*CurveModeOverride, len(nodes))
	for i, n := range nodes {
		list[i] = (*CurveModeOverride)(n)
	}
	return list
}

// CreateCurveModeOverride appends a new curve mode override node to the
// animation.
func (a *Animation) CreateCurveModeOverride() *CurveModeOverride {
	return (*CurveModeOverride)(NewNode(CurveModeOverrideID, a.Node()))
}

// NotificationTracks returns the animation's notification tracks, in order.
func (a *Animation) NotificationTracks() []*NotificationTrack {
	nodes := a.Node().ChildrenWithIdentifier(NotificationTrackID)
	list := make([]*NotificationTrack, len(nodes))
	for i, n := range nodes {
		list[i] = (*NotificationTrack)(n)
	}
	return list
}

// CreateNotificationTrack appends a new notification track node to the
// animation.
func (a *Animation) CreateNotificationTrack() *NotificationTrack {
	return (*NotificationTrack)(NewNode(NotificationTrackID, a.Node()))
}

////////////////////////////////////////////////////////////////

// Curve is a view of a node animating one property of one target over time.
type Curve Node

// Node returns the underlying generic node.
func (c *Curve) Node() *Node { return (*Node)(c) }

// AsCurve views a node as a Curve, erroring when the identifier differs.
func AsCurve(n *Node) (*Curve, error) {
	if err := requireKind(n, CurveID); err != nil {
		return nil, err
	}
	return (*Curve)(n), nil
}

// NodeName returns the name of the target node, or an empty string.
func (c *Curve) NodeName() string {
	return c.Node().GetStringOr("nn", "")
}

// SetNodeName sets the name of the target node.
func (c *Curve) SetNodeName(name string) {
	c.Node().SetString("nn", name)
}

// KeyPropertyName returns the name of the animated property, or an empty
// string.
func (c *Curve) KeyPropertyName() string {
	return c.Node().GetStringOr("kp", "")
}

// SetKeyPropertyName sets the name of the animated property.
func (c *Curve) SetKeyPropertyName(name string) {
	c.Node().SetString("kp", name)
}

// KeyFrameBuffer returns the keyframe indices widened to 64 bits. The
// property may be stored with 8, 16, or 32 bits per index.
func (c *Curve) KeyFrameBuffer() ([]uint64, error) {
	return c.Node().IntegerArray("kb", 32)
}

// SetKeyFrameBuffer sets the keyframe indices, choosing the narrowest
// storage that fits the largest index.
func (c *Curve) SetKeyFrameBuffer(frames []uint64) {
	c.Node().Set("kb", narrowIntegers(frames))
}

// KeyValueBuffer returns the raw keyframe value property, or nil. The
// payload type depends on the property being animated.
func (c *Curve) KeyValueBuffer() Value {
	return c.Node().Get("kv")
}

// SetKeyValueBuffer sets the keyframe value property.
func (c *Curve) SetKeyValueBuffer(v Value) {
	c.Node().Set("kv", v)
}

// Mode returns how the curve combines with the target's rest value, or
// "relative" if unset.
func (c *Curve) Mode() string {
	return c.Node().GetStringOr("m", "relative")
}

// SetMode sets how the curve combines with the target's rest value.
func (c *Curve) SetMode(mode string) {
	c.Node().SetString("m", mode)
}

// AdditiveBlendWeight returns the weight applied when the curve blends
// additively. Defaults to zero.
func (c *Curve) AdditiveBlendWeight() float32 {
	return c.Node().FirstFloatOr("ab", 0)
}

// SetAdditiveBlendWeight sets the weight applied when the curve blends
// additively.
func (c *Curve) SetAdditiveBlendWeight(weight float32) {
	c.Node().Set("ab", ValueFloatArray{weight})
}

////////////////////////////////////////////////////////////////

// CurveModeOverride is a view of a node that forces a blending mode onto the
// curves of a target node and optionally its descendants.
type CurveModeOverride Node

// Node returns the underlying generic node.
func (o *CurveModeOverride) Node() *Node { return (*Node)(o) }

// AsCurveModeOverride views a node as a CurveModeOverride, erroring when the
// identifier differs.
func AsCurveModeOverride(n *Node) (*CurveModeOverride, error) {
	if err := requireKind(n, CurveModeOverrideID); err != nil {
		return nil, err
	}
	return (*CurveModeOverride)(n), nil
}

// NodeName returns the name of the target node, or an empty string.
func (o *CurveModeOverride) NodeName() string {
	return o.Node().GetStringOr("nn", "")
}

// SetNodeName sets the name of the target node.
func (o *CurveModeOverride) SetNodeName(name string) {
	o.Node().SetString("nn", name)
}

// Mode returns the forced blending mode, or an empty string.
func (o *CurveModeOverride) Mode() string {
	return o.Node().GetStringOr("m", "")
}

// SetMode sets the forced blending mode.
func (o *CurveModeOverride) SetMode(mode string) {
	o.Node().SetString("m", mode)
}

// OverrideTranslationCurves returns whether translation curves are affected.
func (o *CurveModeOverride) OverrideTranslationCurves() bool {
	return o.Node().FirstIntegerOr("ot", 0, 8) != 0
}

// SetOverrideTranslationCurves sets whether translation curves are affected.
func (o *CurveModeOverride) SetOverrideTranslationCurves(enabled bool) {
	o.Node().Set("ot", ValueByteArray{boolByte(enabled)})
}

// OverrideRotationCurves returns whether rotation curves are affected.
func (o *CurveModeOverride) OverrideRotationCurves() bool {
	return o.Node().FirstIntegerOr("or", 0, 8) != 0
}

// SetOverrideRotationCurves sets whether rotation curves are affected.
func (o *CurveModeOverride) SetOverrideRotationCurves(enabled bool) {
	o.Node().Set("or", ValueByteArray{boolByte(enabled)})
}

// OverrideScaleCurves returns whether scale curves are affected.
func (o *CurveModeOverride) OverrideScaleCurves() bool {
	return o.Node().FirstIntegerOr("os", 0, 8) != 0
}

// SetOverrideScaleCurves sets whether scale curves are affected.
func (o *CurveModeOverride) SetOverrideScaleCurves(enabled bool) {
	o.Node().Set("os", ValueByteArray{boolByte(enabled)})
}

////////////////////////////////////////////////////////////////

// NotificationTrack is a view of a node naming the frames at which an event
// fires.
type NotificationTrack Node

// Node returns the underlying generic node.
func (t *NotificationTrack) Node() *Node { return (*Node)(t) }

// AsNotificationTrack views a node as a NotificationTrack, erroring when the
// identifier differs.
func AsNotificationTrack(n *Node) (*NotificationTrack, error) {
	if err := requireKind(n, NotificationTrackID); err != nil {
		return nil, err
	}
	return (*NotificationTrack)(n), nil
}

// Name returns the event name, or an empty string.
func (t *NotificationTrack) Name() string {
	return t.Node().GetStringOr("n", "")
}

// SetName sets the event name.
func (t *NotificationTrack) SetName(name string) {
	t.Node().SetString("n", name)
}

// KeyFrameBuffer returns the frames at which the event fires, widened to 64
// bits.
func (t *NotificationTrack) KeyFrameBuffer() ([]uint64, error) {
	return t.Node().IntegerArray("kb", 32)
}

// SetKeyFrameBuffer sets the frames at which the event fires, choosing the
// narrowest storage that fits the largest frame.
func (t *NotificationTrack) SetKeyFrameBuffer(frames []uint64) {
	t.Node().Set("kb", narrowIntegers(frames))
}
