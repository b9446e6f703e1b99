// Package bloomfilter implements the probabilistic membership oracle of
// spec.md §3/§4.B: a bit array of size m (rounded up to a multiple of 64),
// h independent hash indices per k-mer, no false negatives, tunable false
// positive rate. Insert is safe against concurrent Contains and concurrent
// Insert: bits are set via an atomic compare-and-swap retry loop over whole
// 64-bit words, so a lost update can only delay another goroutine's insert,
// never clear a bit that was already set — preserving the monotonicity
// invariant required by spec.md §8 property 3.
//
// The CAS-retry-loop idiom is grounded on the teacher's cuckoofilter.go
// (CompareAndSwapUint16 used by CFItem.AddCount/Bucket.AddBucket), here
// generalized from a single 16-bit counter to a whole 64-bit word OR.
package bloomfilter

import (
	"bufio"
	"encoding/gob"
	"io"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
)

// Filter is the Bloom filter described in spec.md §3.
type Filter struct {
	Words     []uint64
	Bits      uint64
	NumHashes uint
	K         uint
}

// roundUpToMultiple rounds num up to the nearest multiple of base, per
// spec.md §3's "m rounds up to a multiple of 64" and original_source's
// BloomDBG::roundUpToMultiple template.
func roundUpToMultiple(num, base uint64) uint64 {
	if base == 0 {
		return num
	}
	if r := num % base; r != 0 {
		return num + base - r
	}
	return num
}

// New allocates a Filter with at least sizeBits bits, h hash functions and
// the given k-mer size.
func New(sizeBits uint64, numHashes, k uint) *Filter {
	bits := roundUpToMultiple(sizeBits, 64)
	if bits == 0 {
		bits = 64
	}
	return &Filter{
		Words:     make([]uint64, bits/64),
		Bits:      bits,
		NumHashes: numHashes,
		K:         k,
	}
}

func (f *Filter) Size() uint64   { return f.Bits }
func (f *Filter) HashNum() uint  { return f.NumHashes }
func (f *Filter) KmerSize() uint { return f.K }

// Contains returns true iff every hash-indexed bit is set.
func (f *Filter) Contains(hashes []uint64) bool {
	for _, h := range hashes {
		idx := h % f.Bits
		word := atomic.LoadUint64(&f.Words[idx/64])
		if word&(1<<(idx%64)) == 0 {
			return false
		}
	}
	return true
}

// Insert sets every hash-indexed bit via an atomic OR, implemented as a
// compare-and-swap retry loop since the standard library has no native
// atomic OR for uint64.
func (f *Filter) Insert(hashes []uint64) {
	for _, h := range hashes {
		idx := h % f.Bits
		wordIdx := idx / 64
		mask := uint64(1) << (idx % 64)
		addr := &f.Words[wordIdx]
		for {
			old := atomic.LoadUint64(addr)
			if old&mask != 0 {
				break // already set
			}
			if atomic.CompareAndSwapUint64(addr, old, old|mask) {
				break
			}
		}
	}
}

// Save gob-encodes the filter, gzip-compressed, mirroring the teacher's
// WriteCuckooFilterInfo/MmapWriter persistence step but with
// klauspost/compress/gzip (pure Go) instead of the teacher's cgo-based
// cbrotli, since filter persistence does not need brotli's ratio and cgo
// is otherwise unexercised by this repository.
func (f *Filter) Save(w io.Writer) error {
	gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(gz, 1<<20)
	if err := gob.NewEncoder(bw).Encode(f); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return gz.Close()
}

// Load decodes a filter previously written by Save.
func Load(r io.Reader) (*Filter, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	var f Filter
	if err := gob.NewDecoder(bufio.NewReaderSize(gz, 1<<20)).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
