package payload

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroChart/internal/domain/models"
)

const validPayload = `{
  "planets": [
    {"name": "Sun", "thaiName": "อาทิตย์", "symbol": "๑", "zodiacIndex": 8, "degrees": 16.2},
    {"name": "Moon", "thaiName": "จันทร์", "symbol": "๒", "zodiacIndex": 0, "degrees": 0}
  ],
  "ascendant": {"zodiacIndex": 10, "degrees": 3.5},
  "prediction": "  เป็นคนใจดี  "
}`

func TestParseValid(t *testing.T) {
	s, err := Parse([]byte(validPayload))
	require.NoError(t, err)

	assert.Equal(t, models.AscendantPoint{Zodiac: models.Aquarius, Degrees: 3.5}, s.Ascendant())
	assert.Equal(t, "เป็นคนใจดี", s.Prediction())

	want := []models.CelestialPoint{
		{ID: "Sun", ThaiName: "อาทิตย์", Symbol: "๑", Zodiac: models.Sagittarius, Degrees: 16.2},
		{ID: "Moon", ThaiName: "จันทร์", Symbol: "๒", Zodiac: models.Aries, Degrees: 0},
	}
	if diff := cmp.Diff(want, s.Planets()); diff != "" {
		t.Errorf("planets mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, raw := range []string{"", "   \n"} {
		_, err := Parse([]byte(raw))
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
		rule  string
	}{
		{
			name:  "zodiac out of range",
			raw:   `{"planets":[{"name":"Sun","thaiName":"อาทิตย์","symbol":"๑","zodiacIndex":12,"degrees":1}],"ascendant":{"zodiacIndex":0,"degrees":1},"prediction":"x"}`,
			field: "planets[0].zodiacIndex",
			rule:  "lte",
		},
		{
			name:  "negative zodiac",
			raw:   `{"planets":[],"ascendant":{"zodiacIndex":-1,"degrees":1},"prediction":"x"}`,
			field: "ascendant.zodiacIndex",
			rule:  "gte",
		},
		{
			name:  "degrees at thirty",
			raw:   `{"planets":[{"name":"Sun","thaiName":"อาทิตย์","symbol":"๑","zodiacIndex":1,"degrees":30}],"ascendant":{"zodiacIndex":0,"degrees":1},"prediction":"x"}`,
			field: "planets[0].degrees",
			rule:  "lt",
		},
		{
			name:  "missing zodiac",
			raw:   `{"planets":[{"name":"Sun","thaiName":"อาทิตย์","symbol":"๑","degrees":3}],"ascendant":{"zodiacIndex":0,"degrees":1},"prediction":"x"}`,
			field: "planets[0].zodiacIndex",
			rule:  "required",
		},
		{
			name:  "symbol too long",
			raw:   `{"planets":[{"name":"Sun","thaiName":"อาทิตย์","symbol":"๑๒","zodiacIndex":1,"degrees":3}],"ascendant":{"zodiacIndex":0,"degrees":1},"prediction":"x"}`,
			field: "planets[0].symbol",
			rule:  "len",
		},
		{
			name:  "missing ascendant",
			raw:   `{"planets":[],"prediction":"x"}`,
			field: "ascendant",
			rule:  "required",
		},
		{
			name:  "blank prediction",
			raw:   `{"planets":[],"ascendant":{"zodiacIndex":0,"degrees":1},"prediction":"   "}`,
			field: "prediction",
			rule:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			var perr *Error
			require.True(t, errors.As(err, &perr), "got %v", err)
			require.NotEmpty(t, perr.Violations)
			assert.Equal(t, tt.field, perr.Violations[0].Field)
			assert.Equal(t, tt.rule, perr.Violations[0].Rule)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, raw := range []string{`{"planets":`, `{"planets":[]} {}`, `{"ascendant":{"zodiacIndex":1.5,"degrees":1}}`} {
		_, err := Parse([]byte(raw))
		var perr *Error
		require.True(t, errors.As(err, &perr), raw)
		assert.Empty(t, perr.Violations)
		assert.Contains(t, err.Error(), "decode")
	}
}
