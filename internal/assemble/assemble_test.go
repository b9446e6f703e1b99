package assemble

import (
	"testing"

	"bloomdbg/internal/bloomfilter"
	"bloomdbg/internal/config"
	"bloomdbg/internal/fastaio"
	"bloomdbg/internal/rollinghash"
)

const testBits = 1 << 10

func buildGoodFilter(kmers []string, k, numHashes int) *bloomfilter.Filter {
	f := bloomfilter.New(testBits, uint(numHashes), uint(k))
	for _, s := range kmers {
		seq := []byte(s)
		h := rollinghash.New(k, numHashes)
		h.Init(seq[0:k])
		f.Insert(h.Hashes())
		for i := 1; i+k <= len(seq); i++ {
			h.RollRight(seq[i-1], seq[i+k-1])
			f.Insert(h.Hashes())
		}
	}
	return f
}

func baseCfg() config.AssemblyConfig {
	return config.AssemblyConfig{K: 4, NumHashes: 1, GenomeSize: 64, MinBranchLen: 5}
}

// S1: single linear contig.
func TestAssembleS1SingleLinearContig(t *testing.T) {
	cfg := baseCfg()
	good := buildGoodFilter([]string{"ACGTACGTAC"}, int(cfg.K), int(cfg.NumHashes))
	in := fastaio.NewSliceReader([]fastaio.Record{{ID: "r1", Seq: []byte("ACGTACGTAC")}})
	out := &fastaio.SliceWriter{}

	counters, err := Assemble(cfg, good, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("got %d contigs, want 1: %v", len(out.Records), out.Records)
	}
	if string(out.Records[0].Seq) != "ACGTACGTAC" {
		t.Fatalf("contig = %q, want ACGTACGTAC", out.Records[0].Seq)
	}
	if counters.ReadsProcessed != 1 || counters.ReadsExtended != 1 {
		t.Fatalf("counters = %+v", counters)
	}
}

// S2: a read with a non-ACGT byte is skipped entirely.
func TestAssembleS2SkipErrorRead(t *testing.T) {
	cfg := baseCfg()
	good := buildGoodFilter([]string{"ACGTACGTAC"}, int(cfg.K), int(cfg.NumHashes))
	in := fastaio.NewSliceReader([]fastaio.Record{{ID: "r1", Seq: []byte("ACGTAXGTAC")}})
	out := &fastaio.SliceWriter{}

	counters, err := Assemble(cfg, good, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 0 {
		t.Fatalf("got %d contigs, want 0: %v", len(out.Records), out.Records)
	}
	if counters.ReadsProcessed != 1 || counters.ReadsExtended != 0 {
		t.Fatalf("counters = %+v", counters)
	}
}

// S3: two identical reads dedup to one contig.
func TestAssembleS3Dedup(t *testing.T) {
	cfg := baseCfg()
	good := buildGoodFilter([]string{"ACGTACGTAC"}, int(cfg.K), int(cfg.NumHashes))
	in := fastaio.NewSliceReader([]fastaio.Record{
		{ID: "r1", Seq: []byte("ACGTACGTAC")},
		{ID: "r2", Seq: []byte("ACGTACGTAC")},
	})
	out := &fastaio.SliceWriter{}

	counters, err := Assemble(cfg, good, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("got %d contigs, want 1: %v", len(out.Records), out.Records)
	}
	if counters.ReadsProcessed != 2 {
		t.Fatalf("ReadsProcessed = %d, want 2", counters.ReadsProcessed)
	}
}

// S4: true branch halts extension with minBranchLen=3.
func TestAssembleS4TrueBranchHaltsExtension(t *testing.T) {
	cfg := baseCfg()
	cfg.MinBranchLen = 3
	good := buildGoodFilter([]string{"AAAACCCC", "AAAATTTT"}, int(cfg.K), int(cfg.NumHashes))
	in := fastaio.NewSliceReader([]fastaio.Record{{ID: "r1", Seq: []byte("AAAA")}})
	out := &fastaio.SliceWriter{}

	_, err := Assemble(cfg, good, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("got %d contigs, want 1: %v", len(out.Records), out.Records)
	}
	if string(out.Records[0].Seq) != "AAAA" {
		t.Fatalf("contig = %q, want AAAA (stop at the branch)", out.Records[0].Seq)
	}
}

// S5: a spurious k-mer creates a 1-vertex tip that must be ignored.
func TestAssembleS5FalsePositiveTipIgnored(t *testing.T) {
	cfg := baseCfg()
	cfg.MinBranchLen = 2
	good := buildGoodFilter([]string{"ACGTACGTACGT", "ACGA"}, int(cfg.K), int(cfg.NumHashes))
	in := fastaio.NewSliceReader([]fastaio.Record{{ID: "r1", Seq: []byte("ACGTACGTACGT")}})
	out := &fastaio.SliceWriter{}

	_, err := Assemble(cfg, good, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("got %d contigs, want 1: %v", len(out.Records), out.Records)
	}
	if string(out.Records[0].Seq) != "ACGTACGTACGT" {
		t.Fatalf("contig = %q, want ACGTACGTACGT", out.Records[0].Seq)
	}
}

// S6: extension must terminate on a short-period cycle instead of looping
// forever.
func TestAssembleS6CycleTerminates(t *testing.T) {
	cfg := baseCfg()
	good := buildGoodFilter([]string{"ACACACACAC"}, int(cfg.K), int(cfg.NumHashes))
	in := fastaio.NewSliceReader([]fastaio.Record{{ID: "r1", Seq: []byte("ACACACAC")}})
	out := &fastaio.SliceWriter{}

	_, err := Assemble(cfg, good, in, out)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("got %d contigs, want 1: %v", len(out.Records), out.Records)
	}
	// The walk must have terminated to reach this assertion at all.
}

func TestAssembleParameterMismatch(t *testing.T) {
	cfg := baseCfg()
	good := buildGoodFilter([]string{"ACGTACGTAC"}, 5, int(cfg.NumHashes)) // wrong k
	in := fastaio.NewSliceReader(nil)
	out := &fastaio.SliceWriter{}

	if _, err := Assemble(cfg, good, in, out); err == nil {
		t.Fatal("expected ParameterMismatch error")
	}
}
