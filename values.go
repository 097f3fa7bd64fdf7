package castfile

import (
	"strconv"
	"strings"
)

// PropertyType identifies the payload type of a property. The constant values
// are the on-wire 16-bit property identifiers.
type PropertyType uint16

const (
	TypeInvalid   PropertyType = 0
	TypeByte      PropertyType = 0x62   // 'b'
	TypeShort     PropertyType = 0x68   // 'h'
	TypeInteger32 PropertyType = 0x69   // 'i'
	TypeInteger64 PropertyType = 0x6C   // 'l'
	TypeFloat     PropertyType = 0x66   // 'f'
	TypeDouble    PropertyType = 0x64   // 'd'
	TypeString    PropertyType = 0x73   // 's'
	TypeVector2   PropertyType = 0x7632 // "v2"
	TypeVector3   PropertyType = 0x7633 // "v3"
	TypeVector4   PropertyType = 0x7634 // "v4"
)

var typeStrings = map[PropertyType]string{
	TypeByte:      "byte",
	TypeShort:     "short",
	TypeInteger32: "int",
	TypeInteger64: "long",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeString:    "string",
	TypeVector2:   "vec2",
	TypeVector3:   "vec3",
	TypeVector4:   "vec4",
}

// String returns a string representation of the type. If the type is not
// valid, then the returned value will be "Invalid".
func (t PropertyType) String() string {
	s, ok := typeStrings[t]
	if !ok {
		return "Invalid"
	}
	return s
}

// Valid returns whether the type is one known by the format.
func (t PropertyType) Valid() bool {
	_, ok := typeStrings[t]
	return ok
}

// ElementSize returns the number of bytes a single element of the type
// occupies on the wire. Strings have no fixed element size and report zero.
func (t PropertyType) ElementSize() int {
	switch t {
	case TypeByte:
		return 1
	case TypeShort:
		return 2
	case TypeInteger32, TypeFloat:
		return 4
	case TypeInteger64, TypeDouble, TypeVector2:
		return 8
	case TypeVector3:
		return 12
	case TypeVector4:
		return 16
	}
	return 0
}

////////////////////////////////////////////////////////////////

// Vector2 is a 2-component vector of 32-bit floats.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3-component vector of 32-bit floats.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a 4-component vector of 32-bit floats. When used as a rotation
// it is a quaternion in XYZW order.
type Vector4 struct {
	X, Y, Z, W float32
}

////////////////////////////////////////////////////////////////

// Value holds the payload of a property.
type Value interface {
	// Type returns the property identifier of the payload.
	Type() PropertyType

	// Count returns the number of elements held. Strings always hold one.
	Count() int

	// DataSize returns the number of bytes the payload alone occupies on the
	// wire, excluding the property header and key.
	DataSize() int

	// String returns a string representation of the current value.
	String() string

	// Copy returns a copy of the value, which can be safely modified.
	Copy() Value
}

// NewValue returns a new empty Value of the given type, or nil if the type is
// not known.
func NewValue(t PropertyType) Value {
	switch t {
	case TypeByte:
		return ValueByteArray(nil)
	case TypeShort:
		return ValueShortArray(nil)
	case TypeInteger32:
		return ValueIntArray(nil)
	case TypeInteger64:
		return ValueLongArray(nil)
	case TypeFloat:
		return ValueFloatArray(nil)
	case TypeDouble:
		return ValueDoubleArray(nil)
	case TypeString:
		return ValueString("")
	case TypeVector2:
		return ValueVector2Array(nil)
	case TypeVector3:
		return ValueVector3Array(nil)
	case TypeVector4:
		return ValueVector4Array(nil)
	}
	return nil
}

////////////////////////////////////////////////////////////////
// Values

// ValueString holds a single UTF-8 string. On the wire it is written with a
// null terminator and no length prefix.
type ValueString string

func (ValueString) Type() PropertyType {
	return TypeString
}
func (ValueString) Count() int {
	return 1
}
func (v ValueString) DataSize() int {
	return len(v) + 1
}
func (v ValueString) String() string {
	return string(v)
}
func (v ValueString) Copy() Value {
	return v
}

////////////////

// ValueByteArray holds unsigned 8-bit integers.
type ValueByteArray []uint8

func (ValueByteArray) Type() PropertyType {
	return TypeByte
}
func (v ValueByteArray) Count() int {
	return len(v)
}
func (v ValueByteArray) DataSize() int {
	return len(v)
}
func (v ValueByteArray) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatUint(uint64(e), 10))
	}
	return s.String()
}
func (v ValueByteArray) Copy() Value {
	c := make(ValueByteArray, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueShortArray holds unsigned 16-bit integers.
type ValueShortArray []uint16

func (ValueShortArray) Type() PropertyType {
	return TypeShort
}
func (v ValueShortArray) Count() int {
	return len(v)
}
func (v ValueShortArray) DataSize() int {
	return len(v) * 2
}
func (v ValueShortArray) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatUint(uint64(e), 10))
	}
	return s.String()
}
func (v ValueShortArray) Copy() Value {
	c := make(ValueShortArray, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueIntArray holds unsigned 32-bit integers.
type ValueIntArray []uint32

func (ValueIntArray) Type() PropertyType {
	return TypeInteger32
}
func (v ValueIntArray) Count() int {
	return len(v)
}
func (v ValueIntArray) DataSize() int {
	return len(v) * 4
}
func (v ValueIntArray) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatUint(uint64(e), 10))
	}
	return s.String()
}
func (v ValueIntArray) Copy() Value {
	c := make(ValueIntArray, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueLongArray holds unsigned 64-bit integers.
type ValueLongArray []uint64

func (ValueLongArray) Type() PropertyType {
	return TypeInteger64
}
func (v ValueLongArray) Count() int {
	return len(v)
}
func (v ValueLongArray) DataSize() int {
	return len(v) * 8
}
func (v ValueLongArray) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatUint(e, 10))
	}
	return s.String()
}
func (v ValueLongArray) Copy() Value {
	c := make(ValueLongArray, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueFloatArray holds 32-bit floats.
type ValueFloatArray []float32

func (ValueFloatArray) Type() PropertyType {
	return TypeFloat
}
func (v ValueFloatArray) Count() int {
	return len(v)
}
func (v ValueFloatArray) DataSize() int {
	return len(v) * 4
}
func (v ValueFloatArray) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatFloat(float64(e), 'g', -1, 32))
	}
	return s.String()
}
func (v ValueFloatArray) Copy() Value {
	c := make(ValueFloatArray, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueDoubleArray holds 64-bit floats.
type ValueDoubleArray []float64

func (ValueDoubleArray) Type() PropertyType {
	return TypeDouble
}
func (v ValueDoubleArray) Count() int {
	return len(v)
}
func (v ValueDoubleArray) DataSize() int {
	return len(v) * 8
}
func (v ValueDoubleArray) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.FormatFloat(e, 'g', -1, 64))
	}
	return s.String()
}
func (v ValueDoubleArray) Copy() Value {
	c := make(ValueDoubleArray, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueVector2Array holds 2-component vectors.
type ValueVector2Array []Vector2

func (ValueVector2Array) Type() PropertyType {
	return TypeVector2
}
func (v ValueVector2Array) Count() int {
	return len(v)
}
func (v ValueVector2Array) DataSize() int {
	return len(v) * 8
}
func (v ValueVector2Array) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString("(")
		s.WriteString(strconv.FormatFloat(float64(e.X), 'g', -1, 32))
		s.WriteString(", ")
		s.WriteString(strconv.FormatFloat(float64(e.Y), 'g', -1, 32))
		s.WriteString(")")
	}
	return s.String()
}
func (v ValueVector2Array) Copy() Value {
	c := make(ValueVector2Array, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueVector3Array holds 3-component vectors.
type ValueVector3Array []Vector3

func (ValueVector3Array) Type() PropertyType {
	return TypeVector3
}
func (v ValueVector3Array) Count() int {
	return len(v)
}
func (v ValueVector3Array) DataSize() int {
	return len(v) * 12
}
func (v ValueVector3Array) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString("(")
		s.WriteString(strconv.FormatFloat(float64(e.X), 'g', -1, 32))
		s.WriteString(", ")
		s.WriteString(strconv.FormatFloat(float64(e.Y), 'g', -1, 32))
		s.WriteString(", ")
		s.WriteString(strconv.FormatFloat(float64(e.Z), 'g', -1, 32))
		s.WriteString(")")
	}
	return s.String()
}
func (v ValueVector3Array) Copy() Value {
	c := make(ValueVector3Array, len(v))
	copy(c, v)
	return c
}

////////////////

// ValueVector4Array holds 4-component vectors.
type ValueVector4Array []Vector4

func (ValueVector4Array) Type() PropertyType {
	return TypeVector4
}
func (v ValueVector4Array) Count() int {
	return len(v)
}
func (v ValueVector4Array) DataSize() int {
	return len(v) * 16
}
func (v ValueVector4Array) String() string {
	var s strings.Builder
	for i, e := range v {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString("(")
		s.WriteString(strconv.FormatFloat(float64(e.X), 'g', -1, 32))
		s.WriteString(", ")
		s.WriteString(strconv.FormatFloat(float64(e.Y), 'g', -1, 32))
		s.WriteString(", ")
		s.WriteString(strconv.FormatFloat(float64(e.Z), 'g', -1, 32))
		s.WriteString(", ")
		s.WriteString(strconv.FormatFloat(float64(e.W), 'g', -1, 32))
		s.WriteString(")")
	}
	return s.String()
}
func (v ValueVector4Array) Copy() Value {
	c := make(ValueVector4Array, len(v))
	copy(c, v)
	return c
}
