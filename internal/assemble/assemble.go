// Package assemble implements the assembly driver of spec.md §4.G: it pulls
// reads from a FASTA stream, walks each through the implicit de Bruijn
// graph (internal/dbg), and emits deduplicated contigs to a FASTA sink.
//
// The driver realises spec.md §5's "in"/"out" critical sections the way the
// teacher's constructcf.GetReadSeqBucket/ParaConstructCF/WriteKmer pipeline
// realises OpenMP's critical(in)/critical(out) regions: a single reader
// goroutine owns the fastaio.Reader and hands reads out over a channel
// (serialising "in"), and a single writer goroutine owns both the
// fastaio.Writer and the assembled-filter recheck-and-insert step
// (serialising "out"). Worker goroutines do all the CPU-bound graph work in
// between and never touch either resource directly.
package assemble

import (
	"io"
	"log"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"bloomdbg/internal/bloomfilter"
	"bloomdbg/internal/bnt"
	"bloomdbg/internal/config"
	"bloomdbg/internal/dbg"
	"bloomdbg/internal/fastaio"
	"bloomdbg/internal/rollinghash"
)

// AssemblyCounters are the three monotonic counters of spec.md §3, mutated
// only via sync/atomic.
type AssemblyCounters struct {
	ReadsProcessed int64
	ReadsExtended  int64
	BasesAssembled int64
}

// contigMsg is what a worker hands to the writer goroutine for the "out"
// critical section.
type contigMsg struct {
	readID string
	seq    []byte
}

// Assemble runs the driver to completion: it reads every record from in,
// assembles contigs against good (read-only) and a freshly allocated
// `assembled` filter sized per spec.md §4.G's "roundUp(G, 64) bits with the
// same (h, k) as good", and writes every emitted contig to out.
func Assemble(cfg config.AssemblyConfig, good *bloomfilter.Filter, in fastaio.Reader, out fastaio.Writer) (AssemblyCounters, error) {
	if err := cfg.CheckParameterMismatch(good); err != nil {
		return AssemblyCounters{}, err
	}

	assembled := bloomfilter.New(uint64(cfg.GenomeSize), good.HashNum(), good.KmerSize())
	graph := dbg.New(good)

	numWorkers := numCPU()
	reads := make(chan fastaio.Record, numWorkers)
	contigsCh := make(chan contigMsg, numWorkers)

	var counters AssemblyCounters

	var workersWG sync.WaitGroup
	workersWG.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer workersWG.Done()
			worker(cfg, good, assembled, graph, reads, contigsCh, &counters)
		}()
	}

	// Single reader goroutine: the "in" critical section.
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

	// Single writer goroutine: the "out" critical section.
	writerDone := make(chan error, 1)
	go func() {
		writerDone <- writeContigs(out, assembled, int(cfg.K), int(cfg.NumHashes), contigsCh, &counters)
	}()

	workersWG.Wait()
	close(contigsCh)
	if err := <-writerDone; err != nil {
		return counters, err
	}
	if err := <-readErr; err != nil {
		return counters, err
	}
	logProgress(cfg, &counters)
	return counters, nil
}

// logProgress emits the diagnostic stream line of spec.md §6, gated on
// cfg.Verbose. Called every 1000 processed reads (from worker) and once more
// on completion (from Assemble).
func logProgress(cfg config.AssemblyConfig, counters *AssemblyCounters) {
	if !cfg.Verbose {
		return
	}
	processed := atomic.LoadInt64(&counters.ReadsProcessed)
	extended := atomic.LoadInt64(&counters.ReadsExtended)
	bases := atomic.LoadInt64(&counters.BasesAssembled)
	var percent int64
	if processed > 0 {
		percent = extended * 100 / processed
	}
	log.Printf("[assemble] Extended %d of %d reads (%d%%), assembled %d bp so far\n", extended, processed, percent, bases)
}

func numCPU() int {
	if n := runtime.NumCPU(); n > 1 {
		return n
	}
	return 1
}

// worker implements spec.md §4.G steps 1-6 for every read it pulls off
// reads, handing each resulting segment's contig candidate to contigsCh.
func worker(cfg config.AssemblyConfig, good, assembled *bloomfilter.Filter, graph *dbg.Graph, reads <-chan fastaio.Record, contigsCh chan<- contigMsg, counters *AssemblyCounters) {
	k := int(cfg.K)
	numHashes := int(cfg.NumHashes)

	for rec := range reads {
		processed := atomic.AddInt64(&counters.ReadsProcessed, 1)
		if processed%1000 == 0 {
			logProgress(cfg, counters)
		}
		seq := rec.Seq

		if len(seq) < k { // EmptyReadSkipped
			continue
		}
		if !allKmersInFilter(seq, k, numHashes, good) { // ErrorReadSkipped
			continue
		}
		if allKmersInFilter(seq, k, numHashes, assembled) { // AlreadyAssembledSkipped
			continue
		}

		p := dbg.SeqToPath(seq, k, numHashes)
		segments := dbg.SplitPath(p, graph, cfg.MinBranchLen)
		if len(segments) == 0 {
			segments = []dbg.Path{p}
		}

		for i, s := range segments {
			if i == 0 || i == len(segments)-1 {
				segments[i] = dbg.ExtendPath(s, graph, cfg.MinBranchLen)
			}
		}

		for _, s := range segments {
			if len(s) == 0 {
				continue
			}
			contigsCh <- contigMsg{readID: rec.ID, seq: dbg.PathToSeq(s)}
		}
		atomic.AddInt64(&counters.ReadsExtended, 1)
	}
}

// writeContigs is the single goroutine that owns out and assembled: for
// every candidate it re-tests allKmersInFilter under this exclusive
// section (the authoritative recheck spec.md §4.G step 7 requires, since
// another worker may have assembled the same region between step 3's
// pre-check and here), and only on a genuine miss does it insert, assign
// the next contig ID, and emit.
func writeContigs(out fastaio.Writer, assembled *bloomfilter.Filter, k, numHashes int, contigsCh <-chan contigMsg, counters *AssemblyCounters) error {
	n := 0
	for c := range contigsCh {
		if allKmersInFilter(c.seq, k, numHashes, assembled) {
			continue
		}
		insertAllKmers(c.seq, k, numHashes, assembled)

		rec := fastaio.Record{
			ID:  recordID(n, c.readID),
			Seq: c.seq,
		}
		if err := out.Write(rec); err != nil {
			return err
		}
		n++
		atomic.AddInt64(&counters.BasesAssembled, int64(len(c.seq)))
	}
	return nil
}

func recordID(n int, readID string) string {
	return strconv.Itoa(n) + " read:" + readID
}

// allKmersInFilter implements allKmersInBloom(seq, filter): every
// overlapping k-mer window of seq, tested via the same rolling-hash
// mechanism the graph uses, must be present. A seq holding any non-ACGT
// byte has a window that cannot be in filter, so it reports false.
func allKmersInFilter(seq []byte, k, numHashes int, filter *bloomfilter.Filter) bool {
	for _, b := range seq {
		if !bnt.IsACGT(b) {
			return false
		}
	}
	h := rollinghash.New(k, numHashes)
	h.Init(seq[0:k])
	if !filter.Contains(h.Hashes()) {
		return false
	}
	for i := 1; i+k <= len(seq); i++ {
		h.RollRight(seq[i-1], seq[i+k-1])
		if !filter.Contains(h.Hashes()) {
			return false
		}
	}
	return true
}

func insertAllKmers(seq []byte, k, numHashes int, filter *bloomfilter.Filter) {
	h := rollinghash.New(k, numHashes)
	h.Init(seq[0:k])
	filter.Insert(h.Hashes())
	for i := 1; i+k <= len(seq); i++ {
		h.RollRight(seq[i-1], seq[i+k-1])
		filter.Insert(h.Hashes())
	}
}
