// Package payload converts the typed numeric arrays stored in VTK XML
// DataArray tags into raw bytes and ascii text. Conversions reinterpret
// memory, so the IEEE-754 / two's-complement representation of every value
// is preserved exactly.
package payload

import (
	"encoding/binary"
	"strconv"
	"unsafe"
)

// TypeTag identifies the element type of a data array. The tag values are
// also written into scratch-log record headers, so they must stay stable.
type TypeTag int32

// Enumeration of the element types a DataArray tag may carry.
const (
	TypeInvalid TypeTag = iota
	TypeFloat64
	TypeFloat32
	TypeInt64
	TypeInt32
	TypeInt16
	TypeInt8
)

// String returns the tag's XML type attribute text, e.g. "Float64".
func (t TypeTag) String() string {
	switch t {
	case TypeFloat64:
		return "Float64"
	case TypeFloat32:
		return "Float32"
	case TypeInt64:
		return "Int64"
	case TypeInt32:
		return "Int32"
	case TypeInt16:
		return "Int16"
	case TypeInt8:
		return "Int8"
	}
	return "Invalid"
}

// Size returns the element size in bytes, or 0 for an unknown tag.
func (t TypeTag) Size() int {
	switch t {
	case TypeFloat64, TypeInt64:
		return 8
	case TypeFloat32, TypeInt32:
		return 4
	case TypeInt16:
		return 2
	case TypeInt8:
		return 1
	}
	return 0
}

// Valid reports whether t is one of the supported element types.
func (t TypeTag) Valid() bool { return t.Size() > 0 }

// Array is a typed numeric array destined for a single DataArray tag.
// Exactly one of the element slices is set, selected by the tag.
type Array struct {
	tag TypeTag
	f64 []float64
	f32 []float32
	i64 []int64
	i32 []int32
	i16 []int16
	i8  []int8
}

// Float64s wraps d as a Float64 array.
func Float64s(d []float64) Array { return Array{tag: TypeFloat64, f64: d} }

// Float32s wraps d as a Float32 array.
func Float32s(d []float32) Array { return Array{tag: TypeFloat32, f32: d} }

// Int64s wraps d as an Int64 array.
func Int64s(d []int64) Array { return Array{tag: TypeInt64, i64: d} }

// Int32s wraps d as an Int32 array.
func Int32s(d []int32) Array { return Array{tag: TypeInt32, i32: d} }

// Int16s wraps d as an Int16 array.
func Int16s(d []int16) Array { return Array{tag: TypeInt16, i16: d} }

// Int8s wraps d as an Int8 array.
func Int8s(d []int8) Array { return Array{tag: TypeInt8, i8: d} }

// Tag returns the array's element type tag.
func (a Array) Tag() TypeTag { return a.tag }

// Len returns the number of elements.
func (a Array) Len() int {
	switch a.tag {
	case TypeFloat64:
		return len(a.f64)
	case TypeFloat32:
		return len(a.f32)
	case TypeInt64:
		return len(a.i64)
	case TypeInt32:
		return len(a.i32)
	case TypeInt16:
		return len(a.i16)
	case TypeInt8:
		return len(a.i8)
	}
	return 0
}

// NBytes returns the raw payload size in bytes.
func (a Array) NBytes() int { return a.Len() * a.tag.Size() }

// Bytes reinterprets the array's backing memory as raw bytes in host byte
// order. The result aliases the original slice and must not be retained
// past the life of the array.
func (a Array) Bytes() []byte {
	switch a.tag {
	case TypeFloat64:
		return bytesOf(a.f64)
	case TypeFloat32:
		return bytesOf(a.f32)
	case TypeInt64:
		return bytesOf(a.i64)
	case TypeInt32:
		return bytesOf(a.i32)
	case TypeInt16:
		return bytesOf(a.i16)
	case TypeInt8:
		return bytesOf(a.i8)
	}
	return []byte{}
}

// AppendAscii appends the array rendered as space-separated decimal text.
// Floating-point values always carry a decimal point or exponent, so a
// reader will not take them for integers.
func (a Array) AppendAscii(dst []byte) []byte {
	n := a.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			dst = append(dst, ' ')
		}
		switch a.tag {
		case TypeFloat64:
			dst = appendFloatText(dst, a.f64[i], 64)
		case TypeFloat32:
			dst = appendFloatText(dst, float64(a.f32[i]), 32)
		case TypeInt64:
			dst = strconv.AppendInt(dst, a.i64[i], 10)
		case TypeInt32:
			dst = strconv.AppendInt(dst, int64(a.i32[i]), 10)
		case TypeInt16:
			dst = strconv.AppendInt(dst, int64(a.i16[i]), 10)
		case TypeInt8:
			dst = strconv.AppendInt(dst, int64(a.i8[i]), 10)
		}
	}
	return dst
}

func appendFloatText(dst []byte, v float64, bits int) []byte {
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'g', -1, bits)
	for _, c := range dst[start:] {
		if c != '-' && (c < '0' || c > '9') {
			return dst
		}
	}
	return append(dst, '.', '0')
}

// bytesOf reinterprets a numeric slice as bytes without copying.
func bytesOf[E any](d []E) []byte {
	if len(d) == 0 {
		return []byte{}
	}
	outlength := uintptr(len(d)) * unsafe.Sizeof(d[0])
	return unsafe.Slice((*byte)(unsafe.Pointer(&d[0])), outlength)
}

// FromInt32 converts a single int32 to its 4 host-order bytes. VTK appended
// payloads and scratch-log headers use these as length prefixes.
func FromInt32(v int32) []byte {
	b := make([]byte, 4)
	copy(b, bytesOf([]int32{v}))
	return b
}

// HostByteOrder probes the byte order this process stores integers in.
func HostByteOrder() binary.ByteOrder {
	if bytesOf([]uint16{1})[0] == 1 {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ByteOrderName returns the host byte order spelled the way the VTKFile
// root tag's byte_order attribute expects it.
func ByteOrderName() string {
	if HostByteOrder() == binary.LittleEndian {
		return "LittleEndian"
	}
	return "BigEndian"
}
