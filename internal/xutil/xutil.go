// Package xutil holds the small arithmetic and byte-slice helpers the
// teacher kept in utils/utils.go.
package xutil

import "unsafe"

func MinInt(a, b int) int {
	if a > b {
		return b
	}
	return a
}

func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

func AbsInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func BytesEqual(a, b []byte) bool { return string(a) == string(b) }

// Bytes2String reinterprets b's backing array as a string without copying.
// Callers must not mutate b after the returned string escapes, exactly as
// in the teacher's own Bytes2String.
func Bytes2String(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}
