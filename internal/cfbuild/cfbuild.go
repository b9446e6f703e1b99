// Package cfbuild implements the good-kmer filter builder of spec.md §4.H:
// it streams FASTA reads through a counting filter and promotes every
// k-mer that reaches a minimum observed frequency into the final
// membership Bloom filter.
//
// The pipeline shape is the teacher's constructcf.GetReadSeqBucket (single
// reader)/ParaConstructCF (N workers against a shared counting
// structure)/WriteKmer (single writer) split, generalised from the
// teacher's cuckoofilter.CuckooFilter to internal/cfcount.Filter and from
// its fixed promote-at-count-2 rule to a configurable MinKmerFreq.
package cfbuild

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"bloomdbg/internal/bloomfilter"
	"bloomdbg/internal/bnt"
	"bloomdbg/internal/cfcount"
	"bloomdbg/internal/fastaio"
	"bloomdbg/internal/rollinghash"
)

// Config is the subset of spec.md §4.H's parameters this builder needs.
// GenomeSize sizes the output Bloom filter; MinKmerFreq is the count
// threshold a k-mer's estimated frequency must reach before it is
// considered "good" and promoted.
type Config struct {
	K            uint
	NumHashes    uint
	GenomeSize   uint
	MinKmerFreq  uint16
	CountBuckets uint64
}

// DefaultMinKmerFreq mirrors the teacher's fixed promote-at-count-2 rule:
// a k-mer seen only once is indistinguishable from a sequencing error.
const DefaultMinKmerFreq = 2

// Build streams every record out of in through a counting filter and
// returns a Bloom filter containing every k-mer whose estimated count
// first reaches cfg.MinKmerFreq.
func Build(cfg Config, in fastaio.Reader) (*bloomfilter.Filter, error) {
	if cfg.MinKmerFreq == 0 {
		cfg.MinKmerFreq = DefaultMinKmerFreq
	}
	countBuckets := cfg.CountBuckets
	if countBuckets == 0 {
		countBuckets = uint64(cfg.GenomeSize) * 2
	}
	counts := cfcount.New(countBuckets)
	good := bloomfilter.New(uint64(cfg.GenomeSize), cfg.NumHashes, cfg.K)

	numWorkers := numCPU()
	reads := make(chan fastaio.Record, numWorkers)
	goodHashes := make(chan []uint64, numWorkers)

	var workersWG sync.WaitGroup
	workersWG.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer workersWG.Done()
			worker(cfg, counts, reads, goodHashes)
		}()
	}

	readErr := make(chan error, 1)
	go func() {
		for {
			rec, err := in.Read()
			if err != nil {
				close(reads)
				if err != io.EOF {
					readErr <- err
				} else {
					readErr <- nil
				}
				return
			}
			reads <- rec
		}
	}()

	writerDone := make(chan int)
	go func() {
		n := 0
		for hashes := range goodHashes {
			good.Insert(hashes)
			n++
		}
		writerDone <- n
	}()

	workersWG.Wait()
	close(goodHashes)
	n := <-writerDone

	if err := <-readErr; err != nil {
		return nil, err
	}
	fmt.Printf("[cfbuild] promoted %d good kmers\n", n)
	return good, nil
}

func numCPU() int {
	if n := runtime.NumCPU(); n > 1 {
		return n
	}
	return 1
}

func worker(cfg Config, counts *cfcount.Filter, reads <-chan fastaio.Record, goodHashes chan<- []uint64) {
	k := int(cfg.K)
	numHashes := int(cfg.NumHashes)

	for rec := range reads {
		seq := rec.Seq
		var h *rollinghash.Hash
		run := 0
		for i, b := range seq {
			if !bnt.IsACGT(b) { // a non-ACGT byte ends the current window run
				h, run = nil, 0
				continue
			}
			if run++; run < k {
				continue
			}
			if h == nil {
				h = rollinghash.New(k, numHashes)
				h.Init(seq[i-k+1 : i+1])
			} else {
				h.RollRight(seq[i-k], b)
			}
			countAndMaybePromote(cfg, counts, h, goodHashes)
		}
	}
}

func countAndMaybePromote(cfg Config, counts *cfcount.Filter, h *rollinghash.Hash, goodHashes chan<- []uint64) {
	hashes := h.Hashes()
	c := counts.Add(hashes[0])
	if c == cfg.MinKmerFreq {
		goodHashes <- append([]uint64(nil), hashes...)
	}
}
