package dbg

import "testing"

func TestSplitPathAtBranch(t *testing.T) {
	k, numHashes, minBranchLen := 4, 1, 1
	seqA := "TTACGTAAAA"
	seqB := "GGACGTCCCC"
	f := buildFilter([]string{seqA, seqB}, k, numHashes)
	g := New(f)

	full := SeqToPath([]byte(seqA), k, numHashes)
	segments := SplitPath(full, g, minBranchLen)
	if len(segments) != 2 {
		t.Fatalf("SplitPath produced %d segments, want 2 (split at the ACGT fork)", len(segments))
	}
	// The branching vertex ("ACGT") must be shared by both segments.
	last := segments[0][len(segments[0])-1]
	first := segments[1][0]
	if last.Key() != first.Key() {
		t.Fatalf("branch vertex not shared between segments: %q vs %q", last.Kmer, first.Kmer)
	}
}

func TestSplitPathNoBranchIsSingleSegment(t *testing.T) {
	k, numHashes, minBranchLen := 4, 1, 1
	seq := "ACGGTCAGTT"
	f := buildFilter([]string{seq}, k, numHashes)
	g := New(f)

	p := SeqToPath([]byte(seq), k, numHashes)
	segments := SplitPath(p, g, minBranchLen)
	if len(segments) != 1 {
		t.Fatalf("SplitPath produced %d segments, want 1 on a linear path", len(segments))
	}
	if string(PathToSeq(segments[0])) != seq {
		t.Fatalf("segment = %q, want %q", PathToSeq(segments[0]), seq)
	}
}
