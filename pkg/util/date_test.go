package util

import (
	"testing"
	"time"
)

func TestParseBirthMoment(t *testing.T) {
	got, err := ParseBirthMoment("2000-01-01", "09:00", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2000, 1, 1, 2, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected moment %v", got)
	}
}

func TestParseBirthMomentInvalid(t *testing.T) {
	for _, in := range [][2]string{{"2000-13-01", "09:00"}, {"2000-01-01", "25:00"}, {"", ""}} {
		if _, err := ParseBirthMoment(in[0], in[1], time.UTC); err == nil {
			t.Fatalf("expected error for %v", in)
		}
	}
}

func TestThaiWeekday(t *testing.T) {
	// 2000-01-01 was a Saturday
	d := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := ThaiWeekday(d.Weekday()); got != "เสาร์" {
		t.Fatalf("unexpected weekday %q", got)
	}
	if got := BuddhistYear(d); got != 2543 {
		t.Fatalf("unexpected year %d", got)
	}
}
