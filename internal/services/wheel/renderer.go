// Package wheel turns a chart snapshot into an SVG zodiac wheel.
package wheel

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"AstroChart/internal/domain/models"
	"AstroChart/internal/services/geometry"
)

const (
	svgNS = "http://www.w3.org/2000/svg"

	glowID       = "glow"
	centerRadius = 30
	centerMark   = "ดวง"

	colorBackground = "#1e293b"
	colorInnerFill  = "#0f172a"
	colorRing       = "#cbd5e1"
	colorOuterRing  = "#94a3b8"
	colorDivider    = "#334155"
	colorLabel      = "#94a3b8"
	colorSymbol     = "#facc15"
	colorAccent     = "#f59e0b"
)

// Renderer draws wheels for one fixed layout.
type Renderer struct {
	layout geometry.Layout
}

func New(layout geometry.Layout) *Renderer {
	return &Renderer{layout: layout}
}

// Layout returns the geometry the renderer draws with.
func (r *Renderer) Layout() geometry.Layout { return r.layout }

// Result is a built scene plus the grouping it was built from.
type Result struct {
	Scene  *Scene
	Groups geometry.Groups
}

// Build derives the sector groups and lays out every element.
func (r *Renderer) Build(s *models.ChartSnapshot) Result {
	l := r.layout
	c := l.Center()
	groups := geometry.GroupSymbols(s)

	scene := &Scene{
		NS:      svgNS,
		ViewBox: fmt.Sprintf("0 0 %s %s", formatNum(l.Size), formatNum(l.Size)),
		Role:    "img",
		Defs: Defs{Filter: Filter{
			ID:    glowID,
			Blur:  GaussianBlur{StdDeviation: "2.5", Result: "coloredBlur"},
			Merge: Merge{Nodes: []MergeNode{{In: "coloredBlur"}, {In: "SourceGraphic"}}},
		}},
		Rings: []Circle{
			{CX: Num(c.X), CY: Num(c.Y), R: Num(l.OuterRadius), Fill: colorBackground, Stroke: colorOuterRing, StrokeWidth: "1"},
			{CX: Num(c.X), CY: Num(c.Y), R: Num(l.ZodiacRadius), Fill: "none", Stroke: colorRing, StrokeWidth: "1.5"},
			{CX: Num(c.X), CY: Num(c.Y), R: Num(l.InnerRadius), Fill: colorInnerFill, Stroke: colorRing, StrokeWidth: "1.5"},
			{CX: Num(c.X), CY: Num(c.Y), R: centerRadius, Fill: colorAccent, FillOpacity: "0.1", Stroke: colorAccent, StrokeWidth: "1"},
		},
		Sectors: make([]Sector, geometry.SectorCount),
		Center: Text{
			X: Num(c.X), Y: Num(c.Y),
			Anchor: "middle", Baseline: "middle",
			Fill: colorAccent, FontSize: 24, FontWeight: "bold",
			Content: centerMark,
		},
	}

	names := models.ThaiSignNames()
	for i := range scene.Sectors {
		div := l.Divider(i)
		label := l.LabelAnchor(i)
		sec := Sector{
			Index: i,
			Divider: Line{
				X1: Num(div.From.X), Y1: Num(div.From.Y),
				X2: Num(div.To.X), Y2: Num(div.To.Y),
				Stroke: colorDivider, StrokeWidth: "1",
			},
			Texts: []Text{{
				X: Num(label.X), Y: Num(label.Y),
				Anchor: "middle", Baseline: "middle",
				Fill: colorLabel, FontSize: 12,
				Transform: fmt.Sprintf("rotate(%s, %s, %s)",
					formatNum(geometry.SectorCenterAngle(i)), formatNum(label.X), formatNum(label.Y)),
				Content: names[i],
			}},
		}
		if t, ok := symbolText(l, i, groups[i]); ok {
			sec.Texts = append(sec.Texts, t)
		}
		scene.Sectors[i] = sec
	}

	return Result{Scene: scene, Groups: groups}
}

func symbolText(l geometry.Layout, i int, symbols []string) (Text, bool) {
	lines := geometry.SplitLines(symbols)
	if len(lines) == 0 {
		return Text{}, false
	}
	at := l.SymbolAnchor(i)
	t := Text{
		X: Num(at.X), Y: Num(at.Y),
		Anchor: "middle", Baseline: "middle",
		Fill:       colorSymbol,
		FontSize:   geometry.SymbolFontSize(len(symbols)),
		FontWeight: "bold",
		Class:      "planet-symbols",
		Filter:     "url(#" + glowID + ")",
	}
	if len(lines) == 1 {
		t.Content = lines[0].Text
		return t, true
	}
	for _, ln := range lines {
		t.Spans = append(t.Spans, TSpan{X: Num(at.X), DY: ln.DY, Content: ln.Text})
	}
	return t, true
}

// Render writes the SVG document for s to w.
func (r *Renderer) Render(w io.Writer, s *models.ChartSnapshot) error {
	return Encode(w, r.Build(s).Scene)
}

// RenderBytes is Render into memory.
func (r *Renderer) RenderBytes(s *models.ChartSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode serialises a scene without an XML prolog so it can be inlined in HTML.
func Encode(w io.Writer, scene *Scene) error {
	enc := xml.NewEncoder(w)
	if err := enc.Encode(scene); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush svg: %w", err)
	}
	return nil
}
