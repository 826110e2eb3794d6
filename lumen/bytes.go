package lumen

import "unsafe"

// toBytes reinterprets a slice of values as its raw byte representation,
// without copying. The caller must keep the slice alive while the bytes
// are in use.
func toBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	var zeroT T
	n := unsafe.Sizeof(zeroT) * uintptr(len(values))
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(values)))

	return unsafe.Slice(ptr, n)
}
