package dbg

import "testing"

func TestTrimSeqLongestRun(t *testing.T) {
	k, numHashes := 4, 1
	ref := buildFilter([]string{"AAACCCGGGTTTACGT"}, k, numHashes)

	// "NNNN" in the middle breaks every k-mer window spanning it, splitting
	// the read into two runs of known-good k-mers; the first run is the
	// longer one and must win.
	read := []byte("AAACCCGGGTTTACGT" + "NNNN" + "AAAC")
	got := TrimSeq(read, ref)
	want := "AAACCCGGGTTTACGT"
	if string(got) != want {
		t.Fatalf("TrimSeq = %q, want %q", got, want)
	}
}

func TestTrimSeqNoMatch(t *testing.T) {
	k, numHashes := 4, 1
	ref := buildFilter([]string{"AAACCCGGGTTT"}, k, numHashes)
	got := TrimSeq([]byte("GGGGGGGGGGGG"), ref)
	if got != nil {
		t.Fatalf("TrimSeq = %q, want nil", got)
	}
}

func TestTrimSeqShorterThanK(t *testing.T) {
	ref := buildFilter([]string{"AAACCCGGGTTT"}, 4, 1)
	got := TrimSeq([]byte("AC"), ref)
	if got != nil {
		t.Fatalf("TrimSeq = %q, want nil for input shorter than k", got)
	}
}
