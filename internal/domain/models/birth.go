package models

import (
	"time"

	"AstroChart/pkg/util"
)

const (
	DefaultBirthTime     = "09:00"
	DefaultBirthProvince = "กรุงเทพมหานคร"
)

// BirthData is one form submission. All four fields are required.
type BirthData struct {
	Name     string `form:"name" json:"name" validate:"required,max=200"`
	Date     string `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `form:"time" json:"time" validate:"required,datetime=15:04"`
	Province string `form:"province" json:"province" validate:"required,max=200"`
}

// DefaultBirthData prefills the input form.
func DefaultBirthData() BirthData {
	return BirthData{Time: DefaultBirthTime, Province: DefaultBirthProvince}
}

// Normalize trims and NFC-normalises every field.
func (b *BirthData) Normalize() {
	b.Name = util.CleanText(b.Name)
	b.Date = util.CleanText(b.Date)
	b.Time = util.CleanText(b.Time)
	b.Province = util.CleanText(b.Province)
}

// Moment interprets Date and Time in Thai local time.
func (b BirthData) Moment() (time.Time, error) {
	return util.ParseBirthMoment(b.Date, b.Time, util.Bangkok)
}
