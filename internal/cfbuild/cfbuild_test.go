package cfbuild

import (
	"testing"

	"bloomdbg/internal/fastaio"
	"bloomdbg/internal/rollinghash"
)

func TestBuildPromotesRepeatedKmers(t *testing.T) {
	cfg := Config{K: 4, NumHashes: 1, GenomeSize: 256, MinKmerFreq: 2}
	in := fastaio.NewSliceReader([]fastaio.Record{
		{ID: "r1", Seq: []byte("ACGTACGTAC")},
		{ID: "r2", Seq: []byte("ACGTACGTAC")},
	})

	good, err := Build(cfg, in)
	if err != nil {
		t.Fatal(err)
	}
	if good.KmerSize() != 4 || good.HashNum() != 1 {
		t.Fatalf("good filter params = k:%d h:%d", good.KmerSize(), good.HashNum())
	}

	if !contains(good, "ACGT", 4, 1) {
		t.Fatal("expected ACGT to be promoted after appearing in both reads")
	}
}

func TestBuildSkipsSingletonKmers(t *testing.T) {
	cfg := Config{K: 4, NumHashes: 1, GenomeSize: 256, MinKmerFreq: 2}
	in := fastaio.NewSliceReader([]fastaio.Record{
		{ID: "r1", Seq: []byte("ACGT")},
	})

	good, err := Build(cfg, in)
	if err != nil {
		t.Fatal(err)
	}
	if contains(good, "ACGT", 4, 1) {
		t.Fatal("a kmer seen once must not be promoted at MinKmerFreq=2")
	}
}

func TestBuildSkipsShortReads(t *testing.T) {
	cfg := Config{K: 4, NumHashes: 1, GenomeSize: 256}
	in := fastaio.NewSliceReader([]fastaio.Record{{ID: "r1", Seq: []byte("AC")}})

	if _, err := Build(cfg, in); err != nil {
		t.Fatal(err)
	}
}

func contains(f interface {
	Contains([]uint64) bool
}, seq string, k, numHashes int) bool {
	h := rollinghash.New(k, numHashes)
	h.Init([]byte(seq)[:k])
	return f.Contains(h.Hashes())
}
