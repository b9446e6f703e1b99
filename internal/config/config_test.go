package config

import "testing"

type fakeFilter struct {
	k, h uint
}

func (f fakeFilter) KmerSize() uint { return f.k }
func (f fakeFilter) HashNum() uint  { return f.h }

func TestValidate(t *testing.T) {
	c := AssemblyConfig{K: 21, NumHashes: 2, GenomeSize: 1000, MinBranchLen: 22}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := c
	bad.K = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for k=0")
	}
}

func TestCheckParameterMismatch(t *testing.T) {
	c := AssemblyConfig{K: 21, NumHashes: 2, GenomeSize: 1000, MinBranchLen: 22}
	if err := c.CheckParameterMismatch(fakeFilter{k: 21, h: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.CheckParameterMismatch(fakeFilter{k: 19, h: 2}); err == nil {
		t.Fatal("expected mismatch error on differing k")
	}
}

func TestDefaultMinBranchLen(t *testing.T) {
	if DefaultMinBranchLen(4) != 5 {
		t.Fatalf("DefaultMinBranchLen(4) = %d, want 5", DefaultMinBranchLen(4))
	}
}
