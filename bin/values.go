package bin

import (
	"encoding/binary"
	"math"

	"github.com/castapi/castfile"
)

// payloadFromBytes interprets raw little-endian payload bytes as a value of
// the given type. The length of raw must be a multiple of the type's element
// size; the decoder guarantees this by sizing raw from the declared count.
// Strings are not handled here, as their payload is not fixed-width.
func payloadFromBytes(t castfile.PropertyType, raw []byte) castfile.Value {
	switch t {
	case castfile.TypeByte:
		out := make(castfile.ValueByteArray, len(raw))
		copy(out, raw)
		return out
	case castfile.TypeShort:
		out := make(castfile.ValueShortArray, len(raw)/2)
		for i := range out {
			out[i] = binary.LittleEndian.Uint16(raw[i*2:])
		}
		return out
	case castfile.TypeInteger32:
		out := make(castfile.ValueIntArray, len(raw)/4)
		for i := range out {
			out[i] = binary.LittleEndian.Uint32(raw[i*4:])
		}
		return out
	case castfile.TypeInteger64:
		out := make(castfile.ValueLongArray, len(raw)/8)
		for i := range out {
			out[i] = binary.LittleEndian.Uint64(raw[i*8:])
		}
		return out
	case castfile.TypeFloat:
		out := make(castfile.ValueFloatArray, len(raw)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return out
	case castfile.TypeDouble:
		out := make(castfile.ValueDoubleArray, len(raw)/8)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		return out
	case castfile.TypeVector2:
		out := make(castfile.ValueVector2Array, len(raw)/8)
		for i := range out {
			out[i] = castfile.Vector2{
				X: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8:])),
				Y: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*8+4:])),
			}
		}
		return out
	case castfile.TypeVector3:
		out := make(castfile.ValueVector3Array, len(raw)/12)
		for i := range out {
			out[i] = castfile.Vector3{
				X: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*12:])),
				Y: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*12+4:])),
				Z: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*12+8:])),
			}
		}
		return out
	case castfile.TypeVector4:
		out := make(castfile.ValueVector4Array, len(raw)/16)
		for i := range out {
			out[i] = castfile.Vector4{
				X: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*16:])),
				Y: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*16+4:])),
				Z: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*16+8:])),
				W: math.Float32frombits(binary.LittleEndian.Uint32(raw[i*16+12:])),
			}
		}
		return out
	}
	return nil
}

// payloadToBytes renders a value's payload as little-endian wire bytes.
// Strings gain their null terminator here.
func payloadToBytes(v castfile.Value) []byte {
	raw := make([]byte, v.DataSize())
	switch v := v.(type) {
	case castfile.ValueString:
		copy(raw, v)
	case castfile.ValueByteArray:
		copy(raw, v)
	case castfile.ValueShortArray:
		for i, e := range v {
			binary.LittleEndian.PutUint16(raw[i*2:], e)
		}
	case castfile.ValueIntArray:
		for i, e := range v {
			binary.LittleEndian.PutUint32(raw[i*4:], e)
		}
	case castfile.ValueLongArray:
		for i, e := range v {
			binary.LittleEndian.PutUint64(raw[i*8:], e)
		}
	case castfile.ValueFloatArray:
		for i, e := range v {
			binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(e))
		}
	case castfile.ValueDoubleArray:
		for i, e := range v {
			binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(e))
		}
	case castfile.ValueVector2Array:
		for i, e := range v {
			binary.LittleEndian.PutUint32(raw[i*8:], math.Float32bits(e.X))
			binary.LittleEndian.PutUint32(raw[i*8+4:], math.Float32bits(e.Y))
		}
	case castfile.ValueVector3Array:
		for i, e := range v {
			binary.LittleEndian.PutUint32(raw[i*12:], math.Float32bits(e.X))
			binary.LittleEndian.PutUint32(raw[i*12+4:], math.Float32bits(e.Y))
			binary.LittleEndian.PutUint32(raw[i*12+8:], math.Float32bits(e.Z))
		}
	case castfile.ValueVector4Array:
		for i, e := range v {
			binary.LittleEndian.PutUint32(raw[i*16:], math.Float32bits(e.X))
			binary.LittleEndian.PutUint32(raw[i*16+4:], math.Float32bits(e.Y))
			binary.LittleEndian.PutUint32(raw[i*16+8:], math.Float32bits(e.Z))
			binary.LittleEndian.PutUint32(raw[i*16+12:], math.Float32bits(e.W))
		}
	}
	return raw
}
