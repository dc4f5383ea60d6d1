package geometry

import (
	"strings"

	"AstroChart/internal/domain/models"
)

const (
	// MaxSingleLine is the largest group drawn on one line.
	MaxSingleLine = 3

	FirstLineDY  = "-0.5em"
	SecondLineDY = "1.2em"

	crowdedFontSize = 14
	normalFontSize  = 18
)

// Groups maps each sector index to the symbols drawn in it.
type Groups [SectorCount][]string

// GroupSymbols collects the ascendant marker followed by every planet symbol,
// per sector, keeping input order. The snapshot must already be validated.
func GroupSymbols(s *models.ChartSnapshot) Groups {
	var g Groups
	asc := s.Ascendant()
	g[asc.Zodiac] = append(g[asc.Zodiac], models.AscendantSymbol)
	for _, p := range s.Planets() {
		g[p.Zodiac] = append(g[p.Zodiac], p.Symbol)
	}
	return g
}

// Occupied returns the indices that have at least one symbol.
func (g Groups) Occupied() []int {
	var out []int
	for i, syms := range g {
		if len(syms) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// Line is one row of a sector label. DY is empty for a single-line label.
type Line struct {
	Text string
	DY   string
}

// SplitLines applies the two-line policy: up to three symbols share one line,
// otherwise the first ceil(n/2) go on an upper line and the rest below.
func SplitLines(symbols []string) []Line {
	n := len(symbols)
	switch {
	case n == 0:
		return nil
	case n <= MaxSingleLine:
		return []Line{{Text: strings.Join(symbols, " ")}}
	}
	half := (n + 1) / 2
	return []Line{
		{Text: strings.Join(symbols[:half], " "), DY: FirstLineDY},
		{Text: strings.Join(symbols[half:], " "), DY: SecondLineDY},
	}
}

// SymbolFontSize shrinks the text for crowded sectors.
func SymbolFontSize(n int) int {
	if n > 4 {
		return crowdedFontSize
	}
	return normalFontSize
}
