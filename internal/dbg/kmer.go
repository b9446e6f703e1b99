// Package dbg implements the implicit de Bruijn graph (spec.md §4.C), the
// path extender (§4.D), the path splitter (§4.E) and the sequence trimmer
// (§4.F). The graph is never materialized: every operation trial-extends a
// vertex's rolling hash and asks a Bloom-filter-backed membership oracle
// whether the result exists, exactly as spec.md §1 describes.
package dbg

import (
	"bloomdbg/internal/bnt"
	"bloomdbg/internal/rollinghash"
	"bloomdbg/internal/xutil"
)

// Kmer stores the k-mer in the orientation it was encountered along a
// path, not pre-canonicalized, so that consecutive Path vertices keep a
// literal byte-level overlap and PathToSeq can reconstruct the exact input
// sequence. Canonical form — used for identity, map keys and Bloom-filter
// membership — is computed on demand by Key.
type Kmer struct {
	Seq []byte
}

// Key returns the canonical-form string of the k-mer: the lexicographically
// smaller of Seq and its reverse complement. Two Kmer values that are
// reverse complements of each other return the same Key, matching spec.md
// §3's "equality/hashing use Kmer alone" over the canonical form.
func (k Kmer) Key() string {
	rc := bnt.ReverseComplement(k.Seq)
	if xutil.Bytes2String(k.Seq) <= xutil.Bytes2String(rc) {
		return xutil.Bytes2String(k.Seq)
	}
	return xutil.Bytes2String(rc)
}

func (k Kmer) String() string { return string(k.Seq) }

func (k Kmer) FirstBase() byte { return k.Seq[0] }
func (k Kmer) LastBase() byte  { return k.Seq[len(k.Seq)-1] }

// Vertex is V = (Kmer, RollingHash) from spec.md §3: the rolling hash is
// carried alongside the Kmer purely as a performance contract, so that
// trial-extending a vertex never recomputes a hash from scratch.
type Vertex struct {
	Kmer Kmer
	Hash *rollinghash.Hash
}

// Key identifies a Vertex by its Kmer's canonical form, used for visited
// sets and cycle detection throughout this package.
func (v Vertex) Key() string { return v.Kmer.Key() }

// Hashes returns the numHashes membership-test values for v's canonical
// k-mer, delegating to the carried rolling hash rather than recomputing it.
func (v Vertex) Hashes() []uint64 { return v.Hash.Hashes() }

// NewVertex builds a Vertex from a k-mer window and an already-initialized
// rolling hash over that same window.
func NewVertex(seq []byte, h *rollinghash.Hash) Vertex {
	return Vertex{Kmer: Kmer{Seq: seq}, Hash: h}
}
