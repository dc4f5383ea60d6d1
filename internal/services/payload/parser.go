// Package payload validates the JSON produced by the chart model and turns it
// into a ChartSnapshot. Nothing from the wire is used before it passes here.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"AstroChart/internal/domain/models"
	"AstroChart/pkg/util"
)

var ErrEmptyResponse = errors.New("payload: empty response")

// Violation is one failed check, addressed by its JSON path.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (v Violation) String() string {
	if v.Param != "" {
		return fmt.Sprintf("%s: %s=%s", v.Field, v.Rule, v.Param)
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Rule)
}

// Error reports a payload that could not be decoded or failed validation.
type Error struct {
	Violations []Violation
	Err        error
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("invalid chart payload: %v", e.Err)
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "invalid chart payload: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return e.Err }

type wirePlanet struct {
	Name        string   `json:"name" validate:"required"`
	ThaiName    string   `json:"thaiName" validate:"required"`
	Symbol      string   `json:"symbol" validate:"required,len=1"`
	ZodiacIndex *int     `json:"zodiacIndex" validate:"required,gte=0,lte=11"`
	Degrees     *float64 `json:"degrees" validate:"required,gte=0,lt=30"`
}

type wireAscendant struct {
	ZodiacIndex *int     `json:"zodiacIndex" validate:"required,gte=0,lte=11"`
	Degrees     *float64 `json:"degrees" validate:"required,gte=0,lt=30"`
}

type wireChart struct {
	Planets    []wirePlanet   `json:"planets" validate:"required,dive"`
	Ascendant  *wireAscendant `json:"ascendant" validate:"required"`
	Prediction string         `json:"prediction" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes raw and checks every field before building the snapshot.
// Text is NFC-normalised on the way in.
func Parse(raw []byte) (*models.ChartSnapshot, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyResponse
	}

	var w wireChart
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&w); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode: %w", err)}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &Error{Err: errors.New("decode: trailing data after object")}
	}

	w.normalize()
	if err := validate.Struct(&w); err != nil {
		return nil, toError(err)
	}

	planets := make([]models.CelestialPoint, len(w.Planets))
	for i, p := range w.Planets {
		planets[i] = models.CelestialPoint{
			ID:       p.Name,
			ThaiName: p.ThaiName,
			Symbol:   p.Symbol,
			Zodiac:   models.ZodiacIndex(*p.ZodiacIndex),
			Degrees:  *p.Degrees,
		}
	}
	asc := models.AscendantPoint{
		Zodiac:  models.ZodiacIndex(*w.Ascendant.ZodiacIndex),
		Degrees: *w.Ascendant.Degrees,
	}
	return models.NewChartSnapshot(asc, planets, w.Prediction), nil
}

func (w *wireChart) normalize() {
	for i := range w.Planets {
		p := &w.Planets[i]
		p.Name = util.CleanText(p.Name)
		p.ThaiName = util.CleanText(p.ThaiName)
		p.Symbol = util.CleanText(p.Symbol)
	}
	w.Prediction = strings.TrimSpace(w.Prediction)
}

func toError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &Error{Err: err}
	}
	out := &Error{Violations: make([]Violation, 0, len(ves)), Err: err}
	for _, fe := range ves {
		field := fe.Namespace()
		// drop the root struct name
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		out.Violations = append(out.Violations, Violation{Field: field, Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
