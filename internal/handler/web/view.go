package web

import (
	"html/template"

	"AstroChart/internal/domain/models"
	"AstroChart/internal/usecase"
	xhttp "AstroChart/pkg/http"
)

const (
	loadingText   = "กำลังคำนวณดวงชะตา..."
	headlineCount = 7
)

var fieldLabels = map[string]string{
	"name":     "ชื่อ",
	"date":     "วันเกิด",
	"time":     "เวลาเกิด",
	"province": "จังหวัดที่เกิด",
}

var fieldMessages = xhttp.Messages{
	"required": "กรุณากรอก%s",
	"datetime": "%sไม่อยู่ในรูปแบบ %s",
	"max":      "%sยาวเกิน %s ตัวอักษร",
	"":         "%sไม่ถูกต้อง",
}

func formErrors(errs []xhttp.ValidationError) map[string]string {
	return xhttp.Localize(errs, fieldMessages, fieldLabels)
}

type legendItem struct {
	Symbol string
	Label  string
}

var legend = []legendItem{
	{"๑", "Sun"}, {"๒", "Moon"}, {"๓", "Mars"}, {"๔", "Mer"}, {"๕", "Jup"},
	{"๖", "Ven"}, {"๗", "Sat"}, {"๘", "Rahu"}, {"๙", "Ketu"}, {"๐", "Ura"},
}

type resultView struct {
	SVG        template.HTML
	Ascendant  models.AscendantPoint
	Headline   []models.CelestialPoint
	Prediction string
}

type pageData struct {
	Form        models.BirthData
	FieldErrors map[string]string
	Error       string
	Loading     bool
	LoadingText string
	Result      *resultView
	Legend      []legendItem
}

func inputPage(st usecase.State) pageData {
	return pageData{
		Form:        st.Form(),
		Error:       st.ErrorMessage(),
		Loading:     st.Phase() == usecase.PhaseLoading,
		LoadingText: loadingText,
	}
}

// svg is produced by encoding/xml, which escapes all text and attributes.
func resultPage(form models.BirthData, snap *models.ChartSnapshot, svg []byte) pageData {
	return pageData{
		Form:        form,
		LoadingText: loadingText,
		Legend:      legend,
		Result: &resultView{
			SVG:        template.HTML(svg),
			Ascendant:  snap.Ascendant(),
			Headline:   snap.Headline(headlineCount),
			Prediction: snap.Prediction(),
		},
	}
}
