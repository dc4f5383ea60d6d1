package models

// AscendantSymbol marks the ascendant (Lagana) on the wheel.
const AscendantSymbol = "ล"

// CelestialPoint is one planet position inside a sign.
type CelestialPoint struct {
	ID       string // canonical English name, e.g. "Sun"
	ThaiName string
	Symbol   string
	Zodiac   ZodiacIndex
	Degrees  float64 // [0,30)
}

// AscendantPoint is the sign and degree rising at birth.
type AscendantPoint struct {
	Zodiac  ZodiacIndex
	Degrees float64
}

// ChartSnapshot is the validated result of one model call. It is never mutated
// after construction; a new calculation replaces it wholesale.
type ChartSnapshot struct {
	ascendant  AscendantPoint
	planets    []CelestialPoint
	prediction string
}

// NewChartSnapshot copies planets so the caller cannot alter the snapshot later.
func NewChartSnapshot(asc AscendantPoint, planets []CelestialPoint, prediction string) *ChartSnapshot {
	cp := make([]CelestialPoint, len(planets))
	copy(cp, planets)
	return &ChartSnapshot{ascendant: asc, planets: cp, prediction: prediction}
}

func (s *ChartSnapshot) Ascendant() AscendantPoint { return s.ascendant }

func (s *ChartSnapshot) Prediction() string { return s.prediction }

// Planets returns a copy in the order the model reported them.
func (s *ChartSnapshot) Planets() []CelestialPoint {
	cp := make([]CelestialPoint, len(s.planets))
	copy(cp, s.planets)
	return cp
}

// PlanetCount avoids a copy when only the length is needed.
func (s *ChartSnapshot) PlanetCount() int { return len(s.planets) }

// Headline returns at most n planets for the summary panel.
func (s *ChartSnapshot) Headline(n int) []CelestialPoint {
	if n > len(s.planets) {
		n = len(s.planets)
	}
	if n < 0 {
		n = 0
	}
	cp := make([]CelestialPoint, n)
	copy(cp, s.planets[:n])
	return cp
}
