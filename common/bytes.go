package common

import "unsafe"

// SliceToBytes converts any slice to a byte slice for GPU buffer and texture uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// BytesToSlice reinterprets a byte slice read back from the GPU as a slice of T. Trailing bytes
// that do not fill a whole element are dropped.
// WARNING: The returned slice shares memory with the input.
//
// Parameters:
//   - data: source bytes, aligned for T
//
// Returns:
//   - []T: typed view of the input data, or nil if it holds no complete element
func BytesToSlice[T any](data []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || len(data) < size {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), len(data)/size)
}

// StructToBytes views a fixed-layout value as raw bytes, for uniform and storage block uploads.
// The returned slice aliases *v.
//
// Parameters:
//   - v: pointer to the value to view
//
// Returns:
//   - []byte: byte view of *v, unsafe.Sizeof(*v) long
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
