package dbg

import "bloomdbg/internal/rollinghash"

// Path is a non-empty sequence of vertices P = (V_0, ..., V_n) such that
// consecutive vertices overlap by k-1 bases, per spec.md §3.
type Path []Vertex

// SeqToPath slides a k-wide window across seq and returns the vertex for
// every window, in order. seq must be at least k bases, all ACGT; callers
// that assemble from arbitrary input validate this first (spec.md §4.G
// step 1 discards reads shorter than k, and the good-kmer filter already
// rejects any window containing a non-ACGT byte before this is called).
func SeqToPath(seq []byte, k, numHashes int) Path {
	n := len(seq) - k + 1
	path := make(Path, n)
	h := rollinghash.New(k, numHashes)
	h.Init(seq[0:k])
	path[0] = NewVertex(seq[0:k], h.Clone())
	for i := 1; i < n; i++ {
		h.RollRight(seq[i-1], seq[i+k-1])
		path[i] = NewVertex(seq[i:i+k], h.Clone())
	}
	return path
}

// PathToSeq reconstructs the literal sequence a Path was built from: the
// first vertex's full k-mer, followed by the last base of every subsequent
// vertex. This only produces the original bytes because Kmer.Seq is kept in
// traversal orientation rather than canonical form.
func PathToSeq(p Path) []byte {
	if len(p) == 0 {
		return nil
	}
	out := make([]byte, 0, len(p[0].Kmer.Seq)+len(p)-1)
	out = append(out, p[0].Kmer.Seq...)
	for _, v := range p[1:] {
		out = append(out, v.Kmer.LastBase())
	}
	return out
}

// Len returns the length in bases of the sequence p represents.
func (p Path) Len() int {
	if len(p) == 0 {
		return 0
	}
	return len(p[0].Kmer.Seq) + len(p) - 1
}

// Clone returns a shallow copy of p's vertex slice, safe to mutate (append,
// reslice) without aliasing the original.
func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}
