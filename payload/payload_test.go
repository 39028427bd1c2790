package payload

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeTags(t *testing.T) {
	var tests = []struct {
		tag  TypeTag
		name string
		size int
	}{
		{TypeFloat64, "Float64", 8},
		{TypeFloat32, "Float32", 4},
		{TypeInt64, "Int64", 8},
		{TypeInt32, "Int32", 4},
		{TypeInt16, "Int16", 2},
		{TypeInt8, "Int8", 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.name, test.tag.String())
		assert.Equal(t, test.size, test.tag.Size())
		assert.True(t, test.tag.Valid())
	}
	assert.False(t, TypeInvalid.Valid())
	assert.False(t, TypeTag(99).Valid())
	assert.Equal(t, 0, TypeTag(99).Size())
}

func TestBytesPreservesRepresentation(t *testing.T) {
	ord := HostByteOrder()

	a := Float64s([]float64{1.0, -2.5, math.Pi})
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 24, a.NBytes())
	b := a.Bytes()
	assert.Equal(t, math.Float64bits(1.0), ord.Uint64(b[0:8]))
	assert.Equal(t, math.Float64bits(-2.5), ord.Uint64(b[8:16]))
	assert.Equal(t, math.Float64bits(math.Pi), ord.Uint64(b[16:24]))

	i := Int16s([]int16{-1, 258})
	bi := i.Bytes()
	assert.Equal(t, uint16(0xffff), ord.Uint16(bi[0:2]))
	assert.Equal(t, uint16(258), ord.Uint16(bi[2:4]))

	assert.Equal(t, []byte{}, Int32s(nil).Bytes())
}

func TestAppendAscii(t *testing.T) {
	var tests = []struct {
		a    Array
		want string
	}{
		{Float64s([]float64{1.0, 2.0, 3.0}), "1.0 2.0 3.0"},
		{Float64s([]float64{-4.0, 0.5}), "-4.0 0.5"},
		{Float64s([]float64{1e21}), "1e+21"},
		{Float32s([]float32{1.5, -2}), "1.5 -2.0"},
		{Int64s([]int64{-9, 9}), "-9 9"},
		{Int32s([]int32{7}), "7"},
		{Int16s([]int16{0, -1}), "0 -1"},
		{Int8s([]int8{1, 2, 3}), "1 2 3"},
		{Float64s(nil), ""},
	}
	for _, test := range tests {
		got := string(test.a.AppendAscii(nil))
		assert.Equal(t, test.want, got, "ascii text for %s array", test.a.Tag())
	}
}

func TestFromInt32(t *testing.T) {
	b := FromInt32(-2)
	assert.Len(t, b, 4)
	assert.Equal(t, uint32(0xfffffffe), HostByteOrder().Uint32(b))
}

func TestByteOrderName(t *testing.T) {
	name := ByteOrderName()
	assert.Contains(t, []string{"LittleEndian", "BigEndian"}, name)
}
