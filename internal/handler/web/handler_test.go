package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroChart/internal/domain/models"
	"AstroChart/internal/service/ratelimit"
	"AstroChart/internal/services/geometry"
	"AstroChart/internal/services/wheel"
	"AstroChart/internal/usecase"
	"AstroChart/pkg/http/middleware"
	xlogger "AstroChart/pkg/logger"
)

var planetNames = []struct{ id, thai, sym string }{
	{"Sun", "อาทิตย์", "๑"}, {"Moon", "จันทร์", "๒"}, {"Mars", "อังคาร", "๓"},
	{"Mercury", "พุธ", "๔"}, {"Jupiter", "พฤหัสบดี", "๕"}, {"Venus", "ศุกร์", "๖"},
	{"Saturn", "เสาร์", "๗"}, {"Rahu", "ราหู", "๘"}, {"Ketu", "เกตุ", "๙"},
}

func fullPayload() string {
	parts := make([]string, len(planetNames))
	for i, p := range planetNames {
		parts[i] = fmt.Sprintf(`{"name":%q,"thaiName":%q,"symbol":%q,"zodiacIndex":%d,"degrees":%d.5}`, p.id, p.thai, p.sym, i%12, i+1)
	}
	return `{"planets":[` + strings.Join(parts, ",") + `],"ascendant":{"zodiacIndex":3,"degrees":12.25},"prediction":"ชีวิตรุ่งเรือง"}`
}

type fakeModel struct {
	raw     string
	err     error
	started chan struct{}
	release chan struct{}
	panics  int
}

func (f *fakeModel) Name() string { return "fake" }

func (f *fakeModel) Generate(ctx context.Context, _ models.BirthData) ([]byte, error) {
	if f.panics > 0 {
		f.panics--
		panic("sdk exploded")
	}
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.raw), nil
}

type nopMetrics struct{}

func (nopMetrics) RecordChart(string)             {}
func (nopMetrics) RecordError(string)             {}
func (nopMetrics) RecordLatency(string, float64)  {}
func (nopMetrics) RecordBreakerState(string, int) {}

func newTestServer(model *fakeModel, limiter *ratelimit.Limiter) *echo.Echo {
	gen := usecase.NewChartGenerator(model, nil, 0, nopMetrics{}, xlogger.Nop())
	h := NewHandler(xlogger.Nop(), gen, usecase.NewSessions(0), wheel.New(geometry.DefaultLayout()), limiter)
	e := echo.New()
	e.Renderer = NewRenderer()
	e.Use(middleware.Recover(xlogger.Nop()))
	h.RegisterRoutes(e)
	return e
}

func validForm() url.Values {
	return url.Values{
		"name":     {"ทดสอบ"},
		"date":     {"2000-01-01"},
		"time":     {"09:00"},
		"province": {"กรุงเทพมหานคร"},
	}
}

func post(e *echo.Echo, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chart", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestIndexShowsDefaults(t *testing.T) {
	e := newTestServer(&fakeModel{raw: fullPayload()}, nil)
	rec := get(e, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="09:00"`)
	assert.Contains(t, body, `value="กรุงเทพมหานคร"`)
	assert.Contains(t, body, "ทำนายดวงชะตา")
	assert.NotContains(t, body, " disabled>")
	sessionCookie(t, rec)
}

func TestSubmitShowsResult(t *testing.T) {
	e := newTestServer(&fakeModel{raw: fullPayload()}, nil)
	cookie := sessionCookie(t, get(e, "/", nil))

	rec := post(e, validForm(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<svg")
	assert.Contains(t, body, "ลัคนา (ล): 12.25°")
	for i, p := range planetNames {
		row := fmt.Sprintf("%s (%s): %d.5°", p.thai, p.sym, i+1)
		if i < 7 {
			assert.Contains(t, body, row)
		} else {
			assert.NotContains(t, body, row)
		}
	}
	assert.Contains(t, body, "ชีวิตรุ่งเรือง")
	assert.Contains(t, body, `href="/chart.svg"`)
	assert.NotContains(t, body, `id="birth-form"`)

	svg := get(e, "/chart.svg", cookie)
	require.Equal(t, http.StatusOK, svg.Code)
	assert.Equal(t, "image/svg+xml", svg.Header().Get(echo.HeaderContentType))
	assert.Contains(t, svg.Header().Get(echo.HeaderContentDisposition), "astro-chart.svg")
	assert.True(t, strings.HasPrefix(svg.Body.String(), "<svg"))

	// starting over discards the chart
	get(e, "/", cookie)
	assert.Equal(t, http.StatusNotFound, get(e, "/chart.svg", cookie).Code)
}

func TestSubmitFailureShowsFixedMessage(t *testing.T) {
	for name, model := range map[string]*fakeModel{
		"request fails":   {err: errors.New("upstream 500")},
		"invalid payload": {raw: `{"planets":[],"ascendant":{"zodiacIndex":99,"degrees":0},"prediction":"x"}`},
	} {
		t.Run(name, func(t *testing.T) {
			e := newTestServer(model, nil)
			rec := post(e, validForm(), nil)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, usecase.FailureMessage)
			assert.Contains(t, body, `id="birth-form"`)
			assert.Contains(t, body, `value="ทดสอบ"`, "form keeps its values")
			assert.NotContains(t, body, " disabled>", "form is re-enabled")
			assert.NotContains(t, body, "<svg")
		})
	}
}

func TestSubmitValidation(t *testing.T) {
	e := newTestServer(&fakeModel{raw: fullPayload()}, nil)
	form := validForm()
	form.Set("date", "01/01/2000")
	form.Set("name", "   ")

	rec := post(e, form, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "กรุณากรอกชื่อ")
	assert.Contains(t, body, "วันเกิดไม่อยู่ในรูปแบบ 2006-01-02")
}

func TestSubmitWhileLoadingIsRejected(t *testing.T) {
	model := &fakeModel{raw: fullPayload(), started: make(chan struct{}, 1), release: make(chan struct{})}
	e := newTestServer(model, nil)
	cookie := sessionCookie(t, get(e, "/", nil))

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() { done <- post(e, validForm(), cookie) }()
	<-model.started

	rec := post(e, validForm(), cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgBusy)

	page := get(e, "/", cookie)
	assert.Contains(t, page.Body.String(), " disabled>", "loading view keeps the button disabled")

	close(model.release)
	first := <-done
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "<svg")
}

func TestSubmitRateLimited(t *testing.T) {
	e := newTestServer(&fakeModel{raw: fullPayload()}, ratelimit.New(1, 0))

	assert.Equal(t, http.StatusOK, post(e, validForm(), nil).Code)
	rec := post(e, validForm(), nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), msgRateLimited)
}

func TestDownloadWithoutChart(t *testing.T) {
	e := newTestServer(&fakeModel{raw: fullPayload()}, nil)
	assert.Equal(t, http.StatusNotFound, get(e, "/chart.svg", nil).Code)
}

func TestPanicDuringGenerationReleasesSession(t *testing.T) {
	e := newTestServer(&fakeModel{raw: fullPayload(), panics: 1}, nil)

	first := post(e, validForm(), nil)
	require.Equal(t, http.StatusInternalServerError, first.Code)
	cookie := sessionCookie(t, first)

	page := get(e, "/", cookie)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.NotContains(t, page.Body.String(), " disabled>")

	second := post(e, validForm(), cookie)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), "<svg")
}
