// Package web serves the form-to-chart pages.
package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"AstroChart/internal/domain/models"
	webmetrics "AstroChart/internal/service/metrics"
	"AstroChart/internal/service/ratelimit"
	"AstroChart/internal/services/wheel"
	"AstroChart/internal/usecase"
	xhttp "AstroChart/pkg/http"
	xlogger "AstroChart/pkg/logger"
)

const (
	SessionCookie = "astro_session"

	msgRateLimited = "ส่งคำขอถี่เกินไป กรุณารอสักครู่แล้วลองใหม่"
	msgBusy        = "กำลังคำนวณดวงชะตาอยู่ กรุณารอสักครู่"
)

type Handler struct {
	logger   *xlogger.Logger
	gen      *usecase.ChartGenerator
	sessions *usecase.Sessions
	wheel    *wheel.Renderer
	limiter  *ratelimit.Limiter
}

// NewHandler creates the page handler. limiter may be nil.
func NewHandler(
	logger *xlogger.Logger,
	gen *usecase.ChartGenerator,
	sessions *usecase.Sessions,
	renderer *wheel.Renderer,
	limiter *ratelimit.Limiter,
) *Handler {
	webmetrics.Register()
	sessions.Observe(func(n int) { webmetrics.ActiveSessions.Set(float64(n)) })
	return &Handler{logger: logger, gen: gen, sessions: sessions, wheel: renderer, limiter: limiter}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/chart", h.Submit)
	e.GET("/chart.svg", h.Download)
}

// Index shows the input view. A finished chart or stale error is discarded;
// an in-flight calculation is shown as loading.
func (h *Handler) Index(c echo.Context) error {
	id := h.session(c)
	st := h.sessions.Get(id)
	if st.Phase() != usecase.PhaseLoading {
		st = h.sessions.Reset(id)
	}
	return c.Render(http.StatusOK, "index", inputPage(st))
}

func (h *Handler) Submit(c echo.Context) error {
	id := h.session(c)
	log := xlogger.FromContext(c.Request().Context(), h.logger).With(xlogger.String("session", id))

	var form models.BirthData
	if err := c.Bind(&form); err != nil {
		return h.rejectForm(c, form, nil, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง")
	}
	form.Normalize()
	if verr := xhttp.ValidateStruct(c.Request().Context(), &form); verr != nil {
		webmetrics.Rejections.WithLabelValues("invalid").Inc()
		return h.rejectForm(c, form, formErrors(verr), http.StatusBadRequest, "")
	}

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		webmetrics.Rejections.WithLabelValues("rate_limited").Inc()
		return h.rejectForm(c, form, nil, http.StatusTooManyRequests, msgRateLimited)
	}

	st, err := h.sessions.Begin(id, form)
	if errors.Is(err, usecase.ErrSubmissionInFlight) {
		webmetrics.Rejections.WithLabelValues("busy").Inc()
		page := inputPage(st)
		page.Error = msgBusy
		return c.Render(http.StatusConflict, "index", page)
	}
	if err != nil {
		return err
	}

	// a panic below must not leave the session in Loading
	settled := false
	defer func() {
		if !settled {
			_, _ = h.sessions.Fail(id, usecase.FailureMessage)
		}
	}()

	snap, genErr := h.gen.Generate(c.Request().Context(), form)
	if genErr == nil {
		_, err = h.sessions.Complete(id, snap)
	} else {
		log.Warn("chart calculation failed", xlogger.Error(genErr))
		st, err = h.sessions.Fail(id, usecase.FailureMessage)
	}
	settled = true
	if err != nil {
		// session was swept or reset concurrently; show the outcome anyway
		log.Warn("session transition rejected", xlogger.Error(err))
	}

	if genErr != nil {
		page := inputPage(st)
		page.Form = form
		page.Error = usecase.FailureMessage
		page.Loading = false
		return c.Render(http.StatusOK, "index", page)
	}

	svg, err := h.wheel.RenderBytes(snap)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "result", resultPage(form, snap, svg))
}

// Download returns the session's current chart as an SVG file.
func (h *Handler) Download(c echo.Context) error {
	st := h.sessions.Get(h.session(c))
	if st.Phase() != usecase.PhaseResult {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no chart has been calculated in this session"))
	}
	svg, err := h.wheel.RenderBytes(st.Snapshot())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="astro-chart.svg"`)
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}

func (h *Handler) rejectForm(c echo.Context, form models.BirthData, fields map[string]string, status int, msg string) error {
	return c.Render(status, "index", pageData{
		Form:        form,
		FieldErrors: fields,
		Error:       msg,
		LoadingText: loadingText,
	})
}

// session returns the browser's session id, issuing a new cookie if needed.
func (h *Handler) session(c echo.Context) string {
	if ck, err := c.Cookie(SessionCookie); err == nil {
		if _, perr := uuid.Parse(ck.Value); perr == nil {
			return ck.Value
		}
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((24 * time.Hour).Seconds()),
	})
	return id
}
