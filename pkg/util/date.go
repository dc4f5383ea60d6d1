package util

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Bangkok is the fixed UTC+7 zone birth times are interpreted in.
var Bangkok = time.FixedZone("Asia/Bangkok", 7*3600)

// ParseBirthMoment combines an ISO date and an HH:MM clock time in loc.
func ParseBirthMoment(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = Bangkok
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse birth moment %q %q: %w", date, clock, err)
	}
	return t, nil
}

var thaiWeekdays = [...]string{"อาทิตย์", "จันทร์", "อังคาร", "พุธ", "พฤหัสบดี", "ศุกร์", "เสาร์"}

// ThaiWeekday names the day of week in Thai.
func ThaiWeekday(d time.Weekday) string {
	return thaiWeekdays[d]
}

// BuddhistYear converts a Gregorian year to the Thai solar calendar.
func BuddhistYear(t time.Time) int {
	return t.Year() + 543
}
