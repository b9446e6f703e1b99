package dbg

import (
	"bloomdbg/internal/bnt"
	"bloomdbg/internal/rollinghash"
)

// TrimSeq is the sequence trimmer of spec.md §4.F: it returns the longest
// contiguous run of seq whose every overlapping k-mer window is present in
// ref, where "contiguous" also requires the window positions themselves to
// be adjacent (a non-ACGT byte, by breaking every window that spans it,
// also breaks adjacency between the runs on either side of it). Ties keep
// the first-found longest run. Returns nil if no k-mer of seq is in ref.
func TrimSeq(seq []byte, ref MembershipOracle) []byte {
	k := int(ref.KmerSize())
	numHashes := int(ref.HashNum())
	if len(seq) < k {
		return nil
	}

	const unset = -1
	matchStart, matchLen := unset, 0
	maxStart, maxLen := unset, 0
	prevPos := unset

	flush := func() {
		if matchStart != unset && matchLen > maxLen {
			maxStart, maxLen = matchStart, matchLen
		}
		matchStart, matchLen = unset, 0
	}

	forEachKmerPosWithHash(seq, k, numHashes, func(pos int, h *rollinghash.Hash) {
		if prevPos != unset && pos-prevPos > 1 {
			flush()
		}
		if ref.Contains(h.Hashes()) {
			if matchStart == unset {
				matchStart = pos
			}
			matchLen++
		} else {
			flush()
		}
		prevPos = pos
	})
	flush()

	if maxLen == 0 {
		return nil
	}
	return seq[maxStart : maxStart+maxLen+k-1]
}

// forEachKmerPosWithHash walks every ACGT-only k-wide window of seq in
// increasing start-position order, rolling the hash forward within each
// contiguous valid run and re-initializing it from scratch at the start of
// a new run (i.e. right after a non-ACGT byte broke the previous one).
func forEachKmerPosWithHash(seq []byte, k, numHashes int, fn func(pos int, h *rollinghash.Hash)) {
	run := 0
	var h *rollinghash.Hash
	for i := 0; i < len(seq); i++ {
		if bnt.IsACGT(seq[i]) {
			run++
		} else {
			run = 0
			h = nil
		}
		if run < k {
			continue
		}
		pos := i - k + 1
		if h == nil {
			h = rollinghash.New(k, numHashes)
			h.Init(seq[pos : pos+k])
		} else {
			h.RollRight(seq[pos-1], seq[i])
		}
		fn(pos, h)
	}
}
