// Package rollinghash implements the canonical rolling hash pair described
// in spec.md §4.A: two independent 64-bit cyclic-polynomial hash lanes (one
// over the forward strand, one over the reverse complement of whatever
// orientation is currently loaded), updatable in O(1) per base shift in
// either direction, plus a fixed, seeded derivation of `numHashes` output
// values from the canonical (min, max) pair.
//
// The interface (Init/RollRight/RollLeft/Peek/Hashes) mirrors the shape of
// original_source's RollingHashIterator/RollingHash, whose concrete
// implementation was not part of the retrieval pack; the cyclic-polynomial
// construction with a precomputed modular inverse of the multiplier is this
// package's own, chosen so both roll directions are genuine O(1) updates.
package rollinghash

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"bloomdbg/internal/bnt"
)

// multiplier is the base of the cyclic polynomial. It must be odd so that
// it is a unit in the ring Z/2^64Z and therefore has a multiplicative
// inverse, needed for the O(1) RollLeft update.
const multiplier uint64 = 0x9E3779B97F4A7C15

// invMultiplier is multiplier^-1 mod 2^64, computed once at init time via
// Newton-Raphson iteration for 2-adic inverses (doubling the number of
// correct bits each step: 1 -> 2 -> 4 -> ... -> 64).
var invMultiplier uint64

func init() {
	invMultiplier = modInverse64(multiplier)
}

func modInverse64(a uint64) uint64 {
	// a must be odd. Newton's method: x_{n+1} = x_n * (2 - a*x_n).
	x := uint64(1)
	for i := 0; i < 6; i++ {
		x = x * (2 - a*x)
	}
	return x
}

// rPow[n] caches multiplier^n mod 2^64 for n up to MaxK, so shiftRight and
// shiftLeft can look up the weight of the k-1'th position as rPow[k-1].
const MaxK = 256

var rPow [MaxK + 1]uint64

func init() {
	rPow[0] = 1
	for n := 1; n <= MaxK; n++ {
		rPow[n] = rPow[n-1] * multiplier
	}
}

// Hash carries the rolling-hash state of a single k-mer window: the forward
// lane, the reverse-complement lane, k, and the number of derived output
// hashes.
type Hash struct {
	fwd, rev  uint64
	k         int
	numHashes int
}

// New allocates a Hash configured for k-mers of length k with numHashes
// derived outputs; callers must call Init before rolling.
func New(k, numHashes int) *Hash {
	return &Hash{k: k, numHashes: numHashes}
}

// Clone returns an independent copy of h, used when trial-extending a
// vertex with several candidate bases without disturbing the original.
func (h *Hash) Clone() *Hash {
	c := *h
	return &c
}

// Init computes the hash pair for seq[0:k] from scratch. O(k).
func (h *Hash) Init(seq []byte) {
	if len(seq) < h.k {
		panic("rollinghash: Init seq shorter than k")
	}
	var fwd, rev uint64
	for i := 0; i < h.k; i++ {
		fwd = fwd*multiplier + uint64(bnt.Base2Code[seq[i]])
		rev = rev*multiplier + uint64(bnt.CodeComplement[bnt.Base2Code[seq[h.k-1-i]]])
	}
	h.fwd = fwd
	h.rev = rev
}

// shiftRight is the cheap direction for a decreasing-weight lane: drop the
// value that occupied position 0 (weight multiplier^(k-1)), multiply the
// remainder by multiplier, and add the incoming value at weight 1.
func shiftRight(hash uint64, outgoing, incoming byte, k int) uint64 {
	return (hash-uint64(outgoing)*rPow[k-1])*multiplier + uint64(incoming)
}

// shiftLeft is the mirror, hard direction: drop the value that occupied
// position k-1 (weight 1), divide the remainder by multiplier (via its
// precomputed inverse) and add the incoming value at weight multiplier^(k-1).
func shiftLeft(hash uint64, outgoing, incoming byte, k int) uint64 {
	return (hash-uint64(outgoing))*invMultiplier + uint64(incoming)*rPow[k-1]
}

// RollRight shifts the window one base to the right: outgoingBase (the
// base leaving the front of the window) and incomingBase (the base entering
// the back) are both raw ACGT bytes (as stored in the currently-loaded
// orientation, not pre-canonicalized). O(1).
func (h *Hash) RollRight(outgoingBase, incomingBase byte) {
	out, in := bnt.Base2Code[outgoingBase], bnt.Base2Code[incomingBase]
	h.fwd = shiftRight(h.fwd, out, in, h.k)
	h.rev = shiftLeft(h.rev, bnt.CodeComplement[out], bnt.CodeComplement[in], h.k)
}

// RollLeft shifts the window one base to the left: outgoingBase is the base
// leaving the back of the window, incomingBase is the base entering the
// front. O(1).
func (h *Hash) RollLeft(outgoingBase, incomingBase byte) {
	out, in := bnt.Base2Code[outgoingBase], bnt.Base2Code[incomingBase]
	h.fwd = shiftLeft(h.fwd, out, in, h.k)
	h.rev = shiftRight(h.rev, bnt.CodeComplement[out], bnt.CodeComplement[in], h.k)
}

// canonicalPair returns (min, max) of the forward/reverse-complement
// lanes — invariant under swapping a k-mer for its reverse complement,
// since that swap just exchanges fwd and rev.
func (h *Hash) canonicalPair() (lo, hi uint64) {
	if h.fwd < h.rev {
		return h.fwd, h.rev
	}
	return h.rev, h.fwd
}

// Hashes derives numHashes output values from the canonical pair by mixing
// it with a small per-index seed through xxhash — a fixed, seeded mix as
// required by spec.md §4.A, using the teacher's own declared hash
// dependency (github.com/cespare/xxhash) instead of a hand-rolled mixer.
func (h *Hash) Hashes() []uint64 {
	lo, hi := h.canonicalPair()
	out := make([]uint64, h.numHashes)
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], lo)
	for i := 0; i < h.numHashes; i++ {
		binary.LittleEndian.PutUint64(buf[8:16], hi+uint64(i)*0x9E3779B1)
		out[i] = xxhash.Sum64(buf[:])
	}
	return out
}

// Peek returns the i-th derived hash without materializing the full slice.
func (h *Hash) Peek(i int) uint64 {
	lo, hi := h.canonicalPair()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], lo)
	binary.LittleEndian.PutUint64(buf[8:16], hi+uint64(i)*0x9E3779B1)
	return xxhash.Sum64(buf[:])
}
