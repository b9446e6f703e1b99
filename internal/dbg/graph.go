package dbg

// Direction is which end of a vertex to extend from.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// MembershipOracle is the pre-built Bloom filter collaborator of spec.md
// §3: bloomfilter.Filter satisfies it without this package importing that
// package directly, matching original_source's GraphT template parameter.
type MembershipOracle interface {
	Contains(hashes []uint64) bool
	KmerSize() uint
	HashNum() uint
}

// Graph is the implicit de Bruijn graph of spec.md §4.C: it holds no vertex
// or edge storage of its own, only the membership oracle that every
// Neighbours call trial-extends against.
type Graph struct {
	oracle MembershipOracle
	k      int
}

// New wraps oracle as an implicit de Bruijn graph.
func New(oracle MembershipOracle) *Graph {
	return &Graph{oracle: oracle, k: int(oracle.KmerSize())}
}

func (g *Graph) K() int { return g.k }

// bases is the fixed trial order A < C < G < T, matching
// constructdbg/mapDBG.go's paraLookupComplexNode base loop so that
// Neighbours returns candidates in a deterministic order.
var bases = [4]byte{'A', 'C', 'G', 'T'}

// extendCandidate trial-extends v by one base in dir and returns the
// resulting vertex without consulting the oracle.
func extendCandidate(v Vertex, base byte, dir Direction, k int) Vertex {
	seq := make([]byte, k)
	h := v.Hash.Clone()
	if dir == Forward {
		copy(seq, v.Kmer.Seq[1:])
		seq[k-1] = base
		h.RollRight(v.Kmer.FirstBase(), base)
	} else {
		copy(seq[1:], v.Kmer.Seq[:k-1])
		seq[0] = base
		h.RollLeft(v.Kmer.LastBase(), base)
	}
	return NewVertex(seq, h)
}

// Neighbours trial-extends v by every base in dir and returns the vertices
// that the membership oracle confirms exist, in A/C/G/T order. A result may
// include Bloom-filter false positives; TrueBranches filters those out.
func (g *Graph) Neighbours(v Vertex, dir Direction) []Vertex {
	var out []Vertex
	for _, b := range bases {
		cand := extendCandidate(v, b, dir, g.k)
		if g.oracle.Contains(cand.Hashes()) {
			out = append(out, cand)
		}
	}
	return out
}

// TrueBranches filters Neighbours(v, dir) down to the candidates that are
// true branches rather than Bloom-filter false-positive tips: a candidate
// survives iff a bounded traversal starting from it (never revisiting v,
// capped at minBranchLen distinct vertices) reaches at least minBranchLen
// distinct vertices, per spec.md §4.C's false-positive-tip rule.
func (g *Graph) TrueBranches(v Vertex, dir Direction, minBranchLen int) []Vertex {
	cands := g.Neighbours(v, dir)
	var out []Vertex
	for _, c := range cands {
		if g.reaches(c, v.Key(), dir, minBranchLen) {
			out = append(out, c)
		}
	}
	return out
}

// reaches runs a bounded BFS from start in dir, excluding origin from the
// traversal, and reports whether it visits at least minBranchLen distinct
// vertices. The queue and visited set are both capped by minBranchLen so
// the traversal never costs more than O(minBranchLen) vertex expansions.
func (g *Graph) reaches(start Vertex, origin string, dir Direction, minBranchLen int) bool {
	if minBranchLen <= 1 {
		return true
	}
	visited := map[string]bool{origin: true}
	queue := []Vertex{start}
	count := 0
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if visited[u.Key()] {
			continue
		}
		visited[u.Key()] = true
		count++
		if count >= minBranchLen {
			return true
		}
		for _, n := range g.Neighbours(u, dir) {
			if !visited[n.Key()] {
				queue = append(queue, n)
			}
		}
	}
	return count >= minBranchLen
}
