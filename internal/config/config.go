// Package config holds the shared configuration struct of spec.md §6,
// adapted from the teacher's utils.ArgsOpt/CheckGlobalArgs: a small value
// struct plus a Validate method that checks it. Where the teacher's CLI flag
// handlers call log.Fatalf on a missing/invalid value, Validate returns an
// error and leaves reporting to the caller.
package config

import "fmt"

// AssemblyConfig is the `{k, numHashes, genomeSize, verbose}` configuration
// of spec.md §6, plus minBranchLen which the base spec treats as a tunable
// parameter of extendPath/splitPath/trueBranches rather than part of the
// core configuration block.
type AssemblyConfig struct {
	K            uint
	NumHashes    uint
	GenomeSize   uint
	MinBranchLen int
	Verbose      bool
}

// MaxK is the Kmer representation's ceiling (spec.md §6: "k is bounded by
// the Kmer representation's maximum (256)").
const MaxK = 256

// DefaultMinBranchLen implements the "recommended value" from spec.md §4.C.
func DefaultMinBranchLen(k uint) int {
	return int(k) + 1
}

// Validate checks the invariants spec.md §6/§7 require before assembly
// starts, returning a descriptive error instead of the teacher's
// log.Fatalf so that callers (tests, the CLI) decide how to report it.
func (c AssemblyConfig) Validate() error {
	if c.K == 0 || c.K >= MaxK {
		return fmt.Errorf("config: k=%d out of range (0, %d)", c.K, MaxK)
	}
	if c.NumHashes == 0 {
		return fmt.Errorf("config: numHashes must be > 0")
	}
	if c.GenomeSize == 0 {
		return fmt.Errorf("config: genomeSize must be > 0")
	}
	if c.MinBranchLen <= 0 {
		return fmt.Errorf("config: minBranchLen must be > 0")
	}
	return nil
}

// FilterOracle is satisfied by a pre-built bloomfilter.Filter; checked
// against c to surface spec.md §7's ParameterMismatch before any assembly
// goroutine starts.
type FilterOracle interface {
	KmerSize() uint
	HashNum() uint
}

// CheckParameterMismatch implements spec.md §7's ParameterMismatch check:
// fatal at startup if the provided good-kmer filter's k or hashNum does not
// match c.
func (c AssemblyConfig) CheckParameterMismatch(f FilterOracle) error {
	if f.KmerSize() != c.K {
		return fmt.Errorf("config: filter k=%d does not match configured k=%d", f.KmerSize(), c.K)
	}
	if f.HashNum() != c.NumHashes {
		return fmt.Errorf("config: filter numHashes=%d does not match configured numHashes=%d", f.HashNum(), c.NumHashes)
	}
	return nil
}
