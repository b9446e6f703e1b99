package bnt

import "testing"

func TestBase2Code(t *testing.T) {
	cases := map[byte]byte{'A': 0, 'C': 1, 'G': 2, 'T': 3}
	for b, want := range cases {
		if got := Base2Code[b]; got != want {
			t.Errorf("Base2Code[%q] = %d, want %d", b, got, want)
		}
	}
	if Base2Code['N'] != 0xFF {
		t.Errorf("Base2Code['N'] should be the invalid sentinel")
	}
}

func TestReverseComplement(t *testing.T) {
	got := string(ReverseComplement([]byte("ACGTACGT")))
	want := "ACGTACGT" // self-reverse-complementary
	if got != want {
		t.Errorf("ReverseComplement = %q, want %q", got, want)
	}
	got = string(ReverseComplement([]byte("AAAACCCC")))
	want = "GGGGTTTT"
	if got != want {
		t.Errorf("ReverseComplement = %q, want %q", got, want)
	}
}

func TestFoldUpper(t *testing.T) {
	if FoldUpper('a') != 'A' || FoldUpper('T') != 'T' {
		t.Error("FoldUpper did not fold correctly")
	}
}
