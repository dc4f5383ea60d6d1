package util

import "testing"

func TestCleanText(t *testing.T) {
	// decomposed e + combining acute composes to a single rune
	if got := CleanText("  cafe\u0301 "); got != "caf\u00e9" {
		t.Fatalf("unexpected %q", got)
	}
	if got := CleanText(" กรุงเทพมหานคร\t"); got != "กรุงเทพมหานคร" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFormatDegrees(t *testing.T) {
	cases := map[float64]string{15: "15", 15.5: "15.5", 0: "0", 29.25: "29.25"}
	for in, want := range cases {
		if got := FormatDegrees(in); got != want {
			t.Fatalf("FormatDegrees(%v) = %q, want %q", in, got, want)
		}
	}
}
