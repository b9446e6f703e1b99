package dbg

import (
	"testing"

	"bloomdbg/internal/rollinghash"
)

func TestSeqToPathRoundtrip(t *testing.T) {
	seq := []byte("ACGTACGTGGTT")
	k := 4
	p := SeqToPath(seq, k, 2)
	if len(p) != len(seq)-k+1 {
		t.Fatalf("path length = %d, want %d", len(p), len(seq)-k+1)
	}
	got := PathToSeq(p)
	if string(got) != string(seq) {
		t.Fatalf("PathToSeq(SeqToPath(seq)) = %q, want %q", got, seq)
	}
	if p.Len() != len(seq) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(seq))
	}
}

func TestSeqToPathHashesMatchRollingHash(t *testing.T) {
	seq := []byte("ACGTACGTGGTT")
	k := 4
	p := SeqToPath(seq, k, 1)
	for i, v := range p {
		want := v.Kmer.Seq
		if string(v.Kmer.Seq) != string(seq[i:i+k]) {
			t.Fatalf("vertex %d kmer = %q, want %q", i, want, seq[i:i+k])
		}
		h := rollinghash.New(k, 1)
		h.Init(seq[i : i+k])
		if v.Hashes()[0] != h.Hashes()[0] {
			t.Fatalf("vertex %d hash = %d, want %d from a fresh rolling hash", i, v.Hashes()[0], h.Hashes()[0])
		}
	}
}

func TestPathClone(t *testing.T) {
	seq := []byte("ACGTACGT")
	p := SeqToPath(seq, 4, 1)
	c := p.Clone()
	c[0] = NewVertex([]byte("TTTT"), p[0].Hash.Clone())
	if string(p[0].Kmer.Seq) == "TTTT" {
		t.Fatal("Clone should not alias the original path's backing array")
	}
}
