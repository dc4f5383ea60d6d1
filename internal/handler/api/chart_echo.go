package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"AstroChart/internal/domain/models"
	"AstroChart/internal/service/breaker"
	"AstroChart/internal/service/ratelimit"
	"AstroChart/internal/services/wheel"
	"AstroChart/internal/usecase"
	xhttp "AstroChart/pkg/http"
	xlogger "AstroChart/pkg/logger"
)

const maxPayloadBytes = 1 << 20

// ChartEchoHandler exposes chart generation and offline rendering as JSON/SVG.
type ChartEchoHandler struct {
	logger  *xlogger.Logger
	gen     *usecase.ChartGenerator
	wheel   *wheel.Renderer
	limiter *ratelimit.Limiter
}

func NewChartEchoHandler(logger *xlogger.Logger, gen *usecase.ChartGenerator, renderer *wheel.Renderer, limiter *ratelimit.Limiter) *ChartEchoHandler {
	return &ChartEchoHandler{logger: logger, gen: gen, wheel: renderer, limiter: limiter}
}

func (h *ChartEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/chart", h.Chart)
	g.POST("/render", h.Render)
}

type pointResponse struct {
	Name        string  `json:"name,omitempty"`
	ThaiName    string  `json:"thaiName,omitempty"`
	Symbol      string  `json:"symbol,omitempty"`
	ZodiacIndex int     `json:"zodiacIndex"`
	ZodiacName  string  `json:"zodiacName"`
	Degrees     float64 `json:"degrees"`
}

type sectorResponse struct {
	ZodiacIndex int      `json:"zodiacIndex"`
	Symbols     []string `json:"symbols"`
}

type chartResponse struct {
	Ascendant  pointResponse    `json:"ascendant"`
	Planets    []pointResponse  `json:"planets"`
	Prediction string           `json:"prediction"`
	Groups     []sectorResponse `json:"groups"`
	SVG        string           `json:"svg"`
}

func (h *ChartEchoHandler) Chart(c echo.Context) error {
	req := &models.BirthData{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationResponse(c, verr)
	}
	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many chart requests, retry later"))
	}

	snap, err := h.gen.Generate(c.Request().Context(), *req)
	if err != nil {
		xlogger.FromContext(c.Request().Context(), h.logger).Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, chartError(err))
	}
	res, err := h.response(snap)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("render chart").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Render validates a model-shaped payload and returns its wheel as SVG.
func (h *ChartEchoHandler) Render(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPayloadBytes+1))
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("read body").WithError(err))
	}
	if len(raw) > maxPayloadBytes {
		return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_TOO_LARGE", "", "payload too large", http.StatusRequestEntityTooLarge))
	}

	snap, err := h.gen.FromPayload(raw)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}
	svg, err := h.wheel.RenderBytes(snap)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.InternalError("render chart").WithError(err))
	}
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}

func (h *ChartEchoHandler) response(snap *models.ChartSnapshot) (*chartResponse, error) {
	built := h.wheel.Build(snap)
	svg, err := encodeScene(built.Scene)
	if err != nil {
		return nil, err
	}

	asc := snap.Ascendant()
	res := &chartResponse{
		Ascendant: pointResponse{
			Symbol:      models.AscendantSymbol,
			ZodiacIndex: int(asc.Zodiac),
			ZodiacName:  asc.Zodiac.ThaiName(),
			Degrees:     asc.Degrees,
		},
		Prediction: snap.Prediction(),
		SVG:        svg,
	}
	for _, p := range snap.Planets() {
		res.Planets = append(res.Planets, pointResponse{
			Name:        p.ID,
			ThaiName:    p.ThaiName,
			Symbol:      p.Symbol,
			ZodiacIndex: int(p.Zodiac),
			ZodiacName:  p.Zodiac.ThaiName(),
			Degrees:     p.Degrees,
		})
	}
	for _, i := range built.Groups.Occupied() {
		res.Groups = append(res.Groups, sectorResponse{ZodiacIndex: i, Symbols: built.Groups[i]})
	}
	return res, nil
}

func encodeScene(s *wheel.Scene) (string, error) {
	var sb strings.Builder
	if err := wheel.Encode(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func chartError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, breaker.ErrOpen):
		return xhttp.ServiceUnavailableError(usecase.FailureMessage).WithError(err)
	case usecase.IsChartFailure(err):
		return xhttp.BadGatewayError(usecase.FailureMessage).WithError(err)
	default:
		return xhttp.InternalError(usecase.FailureMessage).WithError(err)
	}
}
