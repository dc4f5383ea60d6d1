package wheel

import (
	"encoding/xml"
	"strconv"
)

// Num is a canvas coordinate written with at most two decimals.
type Num float64

func (n Num) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: formatNum(float64(n))}, nil
}

func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	// trim "250.00" to "250" and "12.50" to "12.5"
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// Scene is the drawable SVG document for one chart.
type Scene struct {
	XMLName xml.Name `xml:"svg"`
	NS      string   `xml:"xmlns,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Role    string   `xml:"role,attr,omitempty"`
	Defs    Defs     `xml:"defs"`
	Rings   []Circle `xml:"circle"`
	Sectors []Sector `xml:"g"`
	Center  Text     `xml:"text"`
}

type Defs struct {
	Filter Filter `xml:"filter"`
}

type Filter struct {
	ID    string       `xml:"id,attr"`
	Blur  GaussianBlur `xml:"feGaussianBlur"`
	Merge Merge        `xml:"feMerge"`
}

type GaussianBlur struct {
	StdDeviation string `xml:"stdDeviation,attr"`
	Result       string `xml:"result,attr"`
}

type Merge struct {
	Nodes []MergeNode `xml:"feMergeNode"`
}

type MergeNode struct {
	In string `xml:"in,attr"`
}

type Circle struct {
	CX          Num    `xml:"cx,attr"`
	CY          Num    `xml:"cy,attr"`
	R           Num    `xml:"r,attr"`
	Fill        string `xml:"fill,attr"`
	FillOpacity string `xml:"fill-opacity,attr,omitempty"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

type Line struct {
	X1          Num    `xml:"x1,attr"`
	Y1          Num    `xml:"y1,attr"`
	X2          Num    `xml:"x2,attr"`
	Y2          Num    `xml:"y2,attr"`
	Stroke      string `xml:"stroke,attr"`
	StrokeWidth string `xml:"stroke-width,attr"`
}

// Sector groups the divider, sign label and symbols of one zodiac index.
type Sector struct {
	Index   int    `xml:"data-sign,attr"`
	Divider Line   `xml:"line"`
	Texts   []Text `xml:"text"`
}

type Text struct {
	X          Num     `xml:"x,attr"`
	Y          Num     `xml:"y,attr"`
	Anchor     string  `xml:"text-anchor,attr"`
	Baseline   string  `xml:"dominant-baseline,attr"`
	Fill       string  `xml:"fill,attr"`
	FontSize   int     `xml:"font-size,attr"`
	FontWeight string  `xml:"font-weight,attr,omitempty"`
	Class      string  `xml:"class,attr,omitempty"`
	Filter     string  `xml:"filter,attr,omitempty"`
	Transform  string  `xml:"transform,attr,omitempty"`
	Content    string  `xml:",chardata"`
	Spans      []TSpan `xml:"tspan"`
}

type TSpan struct {
	X       Num    `xml:"x,attr"`
	DY      string `xml:"dy,attr"`
	Content string `xml:",chardata"`
}
