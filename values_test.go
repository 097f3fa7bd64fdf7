package castfile

import (
	"testing"
)

func TestValueSizes(t *testing.T) {
	cases := []struct {
		value Value
		typ   PropertyType
		count int
		size  int
	}{
		{ValueString("root"), TypeString, 1, 5},
		{ValueString(""), TypeString, 1, 1},
		{ValueByteArray{1, 2, 3}, TypeByte, 3, 3},
		{ValueShortArray{1}, TypeShort, 1, 2},
		{ValueIntArray{1, 2}, TypeInteger32, 2, 8},
		{ValueLongArray{1}, TypeInteger64, 1, 8},
		{ValueFloatArray{1, 2, 3}, TypeFloat, 3, 12},
		{ValueDoubleArray{1}, TypeDouble, 1, 8},
		{ValueVector2Array{{}}, TypeVector2, 1, 8},
		{ValueVector3Array{{}, {}}, TypeVector3, 2, 24},
		{ValueVector4Array{{}}, TypeVector4, 1, 16},
		{ValueByteArray{}, TypeByte, 0, 0},
	}
	for _, c := range cases {
		if typ := c.value.Type(); typ != c.typ {
			t.Errorf("%T: type %s, expected %s", c.value, typ, c.typ)
		}
		if count := c.value.Count(); count != c.count {
			t.Errorf("%T: count %d, expected %d", c.value, count, c.count)
		}
		if size := c.value.DataSize(); size != c.size {
			t.Errorf("%T: data size %d, expected %d", c.value, size, c.size)
		}
	}
}

func TestValueCopy(t *testing.T) {
	v := ValueIntArray{1, 2, 3}
	c := v.Copy().(ValueIntArray)
	c[0] = 9
	if v[0] != 1 {
		t.Errorf("copy shares storage with source")
	}
}

func TestNewValue(t *testing.T) {
	for _, typ := range []PropertyType{
		TypeByte, TypeShort, TypeInteger32, TypeInteger64,
		TypeFloat, TypeDouble, TypeString,
		TypeVector2, TypeVector3, TypeVector4,
	} {
		v := NewValue(typ)
		if v == nil {
			t.Errorf("NewValue(%s) returned nil", typ)
			continue
		}
		if v.Type() != typ {
			t.Errorf("NewValue(%s) has type %s", typ, v.Type())
		}
	}
	if NewValue(PropertyType(0x7A)) != nil {
		t.Errorf("NewValue of unknown type returned a value")
	}
}

func TestElementSize(t *testing.T) {
	sizes := map[PropertyType]int{
		TypeByte:      1,
		TypeShort:     2,
		TypeInteger32: 4,
		TypeInteger64: 8,
		TypeFloat:     4,
		TypeDouble:    8,
		TypeVector2:   8,
		TypeVector3:   12,
		TypeVector4:   16,
		TypeString:    0,
	}
	for typ, want := range sizes {
		if got := typ.ElementSize(); got != want {
			t.Errorf("%s element size %d, expected %d", typ, got, want)
		}
	}
}
