package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"AstroChart/internal/domain/models"
)

func planet(id, sym string, z models.ZodiacIndex) models.CelestialPoint {
	return models.CelestialPoint{ID: id, Symbol: sym, Zodiac: z, Degrees: 1}
}

func TestGroupSymbolsOrder(t *testing.T) {
	s := models.NewChartSnapshot(
		models.AscendantPoint{Zodiac: models.Leo, Degrees: 4},
		[]models.CelestialPoint{
			planet("Sun", "๑", models.Aries),
			planet("Moon", "๒", models.Leo),
			planet("Mars", "๓", models.Aries),
			planet("Mercury", "๔", models.Leo),
		},
		"",
	)
	g := GroupSymbols(s)

	var want Groups
	want[models.Aries] = []string{"๑", "๓"}
	want[models.Leo] = []string{"ล", "๒", "๔"}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{0, 4}, g.Occupied())
}

func TestGroupSymbolsDeterministic(t *testing.T) {
	s := models.NewChartSnapshot(
		models.AscendantPoint{Zodiac: models.Pisces},
		[]models.CelestialPoint{
			planet("Sun", "๑", models.Pisces),
			planet("Moon", "๒", models.Virgo),
			planet("Rahu", "๘", models.Pisces),
		},
		"",
	)
	first := GroupSymbols(s)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, GroupSymbols(s)); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []Line
	}{
		{"empty", nil, nil},
		{"one", []string{"a"}, []Line{{Text: "a"}}},
		{"three stays single", []string{"a", "b", "c"}, []Line{{Text: "a b c"}}},
		{"four splits evenly", []string{"a", "b", "c", "d"}, []Line{
			{Text: "a b", DY: FirstLineDY},
			{Text: "c d", DY: SecondLineDY},
		}},
		{"five rounds up first", []string{"a", "b", "c", "d", "e"}, []Line{
			{Text: "a b c", DY: FirstLineDY},
			{Text: "d e", DY: SecondLineDY},
		}},
		{"seven", []string{"1", "2", "3", "4", "5", "6", "7"}, []Line{
			{Text: "1 2 3 4", DY: FirstLineDY},
			{Text: "5 6 7", DY: SecondLineDY},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, SplitLines(tc.in)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSymbolFontSize(t *testing.T) {
	assert.Equal(t, 18, SymbolFontSize(1))
	assert.Equal(t, 18, SymbolFontSize(4))
	assert.Equal(t, 14, SymbolFontSize(5))
}
