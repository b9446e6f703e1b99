// Package cfcount implements the approximate k-mer frequency counter used
// while building the "good-kmer" filter: a fixed-size array of fingerprint
// buckets, each slot holding a fingerprint and a saturating count, updated
// lock-free via compare-and-swap retry loops.
//
// This is adapted from the teacher's cuckoofilter.go (Bucket.Bkt,
// CFItem.GetFinger/GetCount, Bucket.AddBucket's per-slot scan-or-claim
// loop) but drops cuckoo displacement entirely: a full bucket simply stops
// counting that k-mer rather than kicking another entry to an alternate
// index, since this package only needs an estimate of frequency, not exact
// membership. It also drops the teacher's CompareAndSwapUint16-via-
// CompareAndSwapPointer trick (casting a *uint16 to unsafe.Pointer and
// comparing it as a pointer value is not what atomic.CompareAndSwapPointer
// does) in favor of a real atomic.Uint32 packing fingerprint and count into
// one CAS-able word.
package cfcount

import (
	"sync/atomic"

	"github.com/cespare/xxhash"
)

const (
	bucketSize = 4
	maxCount   = 1<<16 - 1
)

func pack(fp, count uint16) uint32   { return uint32(fp)<<16 | uint32(count) }
func unpack(w uint32) (fp, count uint16) { return uint16(w >> 16), uint16(w) }

type slot struct {
	word atomic.Uint32
}

type bucket struct {
	slots [bucketSize]slot
}

// add scans bucket for an existing fp to bump, or an empty slot to claim.
// Returns the fingerprint's count after this call, or 0 if the bucket is
// full and fp is not already present (the increment is simply dropped).
func (b *bucket) add(fp uint16) uint16 {
	for i := range b.slots {
		for {
			old := b.slots[i].word.Load()
			oldFP, oldCount := unpack(old)
			if oldCount == 0 {
				if b.slots[i].word.CompareAndSwap(old, pack(fp, 1)) {
					return 1
				}
				continue
			}
			if oldFP == fp {
				if oldCount >= maxCount {
					return oldCount
				}
				if b.slots[i].word.CompareAndSwap(old, pack(fp, oldCount+1)) {
					return oldCount + 1
				}
				continue
			}
			break
		}
	}
	return 0
}

func (b *bucket) count(fp uint16) uint16 {
	for i := range b.slots {
		f, c := unpack(b.slots[i].word.Load())
		if c > 0 && f == fp {
			return c
		}
	}
	return 0
}

// upperpower2 rounds x up to the next power of two, grounded on the
// teacher's cuckoofilter.go upperpower2.
func upperpower2(x uint64) uint64 {
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	return x
}

// Filter is a bucketed, lock-free approximate frequency counter keyed by a
// 64-bit k-mer hash (the canonical-pair hash produced by
// bloomdbg/internal/rollinghash, not a raw k-mer byte slice).
type Filter struct {
	buckets    []bucket
	numBuckets uint64
}

// New allocates a Filter sized for roughly maxItems distinct k-mers.
func New(maxItems uint64) *Filter {
	n := upperpower2(maxItems) / bucketSize
	if n == 0 {
		n = 1
	}
	return &Filter{buckets: make([]bucket, n), numBuckets: n}
}

// split derives an independent bucket index and fingerprint from a single
// k-mer hash by mixing it through xxhash with two different seeds, mirroring
// the teacher's GetIndicesAndFingerprint but built on the stack's xxhash
// dependency instead of the undeclared github.com/dgryski/go-metro.
func (f *Filter) split(hash uint64) (idx uint64, fp uint16) {
	var buf [9]byte
	buf[0] = 'i'
	for i := 0; i < 8; i++ {
		buf[i+1] = byte(hash >> (8 * i))
	}
	idx = xxhash.Sum64(buf[:]) % f.numBuckets

	buf[0] = 'f'
	h2 := xxhash.Sum64(buf[:])
	fp = uint16(h2)
	if fp == 0 {
		fp = 1
	}
	return idx, fp
}

// Add increments the estimated count for hash and returns the new count.
func (f *Filter) Add(hash uint64) uint16 {
	idx, fp := f.split(hash)
	return f.buckets[idx].add(fp)
}

// Count returns the estimated count for hash, or 0 if never added (or lost
// to a full bucket).
func (f *Filter) Count(hash uint64) uint16 {
	idx, fp := f.split(hash)
	return f.buckets[idx].count(fp)
}
