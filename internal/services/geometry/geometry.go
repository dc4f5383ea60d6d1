// Package geometry places the zodiac wheel on a square canvas.
//
// Angles are in degrees with 0 at 12 o'clock, increasing clockwise on screen.
// Sector i is centred on i·30 and spans [i·30−15, i·30+15); divider lines sit on
// the sector edges at i·30+15 while labels and symbols are anchored on the
// centre angle. The two conventions are 15° apart and must stay that way.
package geometry

import (
	"math"

	"AstroChart/internal/domain/models"
)

const (
	SectorCount = models.SignCount
	SectorWidth = models.SignDegrees
	halfSector  = SectorWidth / 2
)

// Point is a position in canvas units; y grows downwards.
type Point struct {
	X float64
	Y float64
}

// Segment is a straight line between two points.
type Segment struct {
	From Point
	To   Point
}

// Layout fixes the canvas size and the three concentric radii.
type Layout struct {
	Size         float64
	OuterRadius  float64
	ZodiacRadius float64
	InnerRadius  float64
}

// DefaultLayout is the 500-unit wheel.
func DefaultLayout() Layout {
	return Layout{Size: 500, OuterRadius: 240, ZodiacRadius: 180, InnerRadius: 100}
}

// Center is the middle of the canvas.
func (l Layout) Center() Point {
	return Point{X: l.Size / 2, Y: l.Size / 2}
}

// PointAt converts a chart angle and radius to canvas coordinates. Subtracting
// 90° moves 0 from 3 o'clock to 12 o'clock; screen y pointing down turns the
// trigonometric counter-clockwise sweep into a clockwise one.
func (l Layout) PointAt(angleDeg, radius float64) Point {
	theta := (angleDeg - 90) * math.Pi / 180
	c := l.Center()
	return Point{
		X: c.X + radius*math.Cos(theta),
		Y: c.Y + radius*math.Sin(theta),
	}
}

// PlanetRingRadius is midway between the inner boundary and the label ring.
func (l Layout) PlanetRingRadius() float64 {
	return (l.ZodiacRadius + l.InnerRadius) / 2
}

// LabelRingRadius is midway between the label ring and the outer boundary.
func (l Layout) LabelRingRadius() float64 {
	return (l.OuterRadius + l.ZodiacRadius) / 2
}

// SectorCenterAngle is the anchor angle for sector i.
func SectorCenterAngle(i int) float64 {
	return float64(i) * SectorWidth
}

// DividerAngle is the boundary between sector i and sector (i+1) mod 12.
func DividerAngle(i int) float64 {
	return float64(i)*SectorWidth + halfSector
}

// SectorSpan returns the half-open angular range [start, end) of sector i.
func SectorSpan(i int) (start, end float64) {
	c := SectorCenterAngle(i)
	return c - halfSector, c + halfSector
}

// Divider is the line from the inner to the outer boundary after sector i.
func (l Layout) Divider(i int) Segment {
	a := DividerAngle(i)
	return Segment{From: l.PointAt(a, l.InnerRadius), To: l.PointAt(a, l.OuterRadius)}
}

// Dividers returns all twelve sector boundaries in index order.
func (l Layout) Dividers() []Segment {
	out := make([]Segment, SectorCount)
	for i := range out {
		out[i] = l.Divider(i)
	}
	return out
}

// LabelAnchor is where the sign name of sector i is drawn.
func (l Layout) LabelAnchor(i int) Point {
	return l.PointAt(SectorCenterAngle(i), l.LabelRingRadius())
}

// SymbolAnchor is where the planet symbols of sector i are drawn.
func (l Layout) SymbolAnchor(i int) Point {
	return l.PointAt(SectorCenterAngle(i), l.PlanetRingRadius())
}
