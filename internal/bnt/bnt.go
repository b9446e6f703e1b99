// Package bnt holds the base<->code lookup tables shared by the rolling
// hash, the implicit graph and the k-mer validity check. The tables are
// array-indexed rather than map-indexed, following the teacher's own
// bnt.Base2Bnt/bnt.BntRev usage in constructcf.go.
package bnt

const (
	NumBitsInBase = 2
	BaseMask      = 0x3
)

// Base2Code maps an upper-case ACGT byte to its 2-bit code. Any other byte
// maps to 0xFF, which callers must treat as "not a valid base".
var Base2Code [256]byte

// Code2Base is the inverse of Base2Code for codes 0..3.
var Code2Base = [4]byte{'A', 'C', 'G', 'T'}

// Complement maps an upper-case ACGT byte to its Watson-Crick complement.
// Non-ACGT bytes map to 0, matching Base2Code's sentinel-adjacent behavior
// (callers never complement a byte that failed the ACGT check).
var Complement [256]byte

// CodeComplement is Complement expressed over 2-bit codes, used by the
// rolling hash which already works in code space.
var CodeComplement = [4]byte{3, 2, 1, 0} // A<->T, C<->G

func init() {
	for i := range Base2Code {
		Base2Code[i] = 0xFF
	}
	Base2Code['A'] = 0
	Base2Code['C'] = 1
	Base2Code['G'] = 2
	Base2Code['T'] = 3

	Complement['A'] = 'T'
	Complement['C'] = 'G'
	Complement['G'] = 'C'
	Complement['T'] = 'A'
}

// IsACGT reports whether b is one of the four canonical upper-case bases.
func IsACGT(b byte) bool {
	return Base2Code[b] != 0xFF
}

// FoldUpper upper-cases a DNA byte the way the FASTA-folding external
// collaborator is required to (spec.md §6: "Case is folded to upper-case").
func FoldUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// ReverseComplement returns the reverse complement of seq. Bytes outside
// ACGT are passed through unchanged but reversed, so callers that have
// already validated seq never observe that branch.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	out := make([]byte, n)
	for i, b := range seq {
		c := Complement[b]
		if c == 0 {
			c = b
		}
		out[n-1-i] = c
	}
	return out
}
