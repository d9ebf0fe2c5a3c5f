package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "dtxcli/internal/errors"
	"dtxcli/internal/services"
)

// DashboardHandler serves the dashboard JSON API.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	candidates   []string
}

// NewDashboardHandler creates a new dashboard handler. candidates is the
// configured data file list, reported in data-not-found responses.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, candidates []string) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		candidates:   candidates,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/entities", h.GetEntities)
	r.Get("/years", h.GetYears)

	r.Route("/entity/{code}", func(r chi.Router) {
		r.Use(h.EntityCtx)
		r.Get("/trend", h.GetTrend)
		r.Get("/snapshot", h.GetSnapshot)
	})

	r.Route("/charts", func(r chi.Router) {
		r.Get("/distribution", h.GetDistribution)
		r.Get("/yearly-mean", h.GetYearlyMeans)
		r.Get("/yearly-stats", h.GetYearlyStats)
		r.Get("/change", h.GetChangeRates)
		r.Get("/top", h.GetTopEntities)
		r.Get("/heatmap", h.GetHeatmap)
	})

	return r
}

// EntityCtx middleware validates the code parameter.
func (h *DashboardHandler) EntityCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("code", "Entity code is required"))
			return
		}
		if len(code) > 32 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("code", "Invalid entity code format"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleServiceError maps service errors to API errors and renders them.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrDataNotFound) {
		h.errorHandler.HandleError(w, r, apierrors.DataNotFoundError(h.candidates))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get summary",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetEntities handles GET /api/dashboard/entities
func (h *DashboardHandler) GetEntities(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	entities, defaultCode, err := h.service.GetEntities(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get entities",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":       "success",
		"data":         entities,
		"count":        len(entities),
		"default_code": defaultCode,
	})
}

// GetYears handles GET /api/dashboard/years
func (h *DashboardHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	years, err := h.service.GetYears(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get years",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   years,
	})
}

// GetTrend handles GET /api/dashboard/entity/{code}/trend
func (h *DashboardHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	code := chi.URLParam(r, "code")

	h.logger.InfoContext(r.Context(), "fetching entity trend",
		slog.String("request_id", reqID),
		slog.String("code", code),
	)

	trend, err := h.service.GetTrend(r.Context(), code)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get trend",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("code", code),
		)
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   trend,
		"count":  len(trend.Points),
	})
}

// GetSnapshot handles GET /api/dashboard/entity/{code}/snapshot?year=Y
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	code := chi.URLParam(r, "code")

	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", "Year is required"))
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", fmt.Sprintf("Invalid year: %s", yearStr)))
		return
	}

	h.logger.InfoContext(r.Context(), "fetching entity snapshot",
		slog.String("request_id", reqID),
		slog.String("code", code),
		slog.Int("year", year),
	)

	snapshot, err := h.service.GetSnapshot(r.Context(), code, year)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get snapshot",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
			slog.String("code", code),
		)
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   snapshot,
	})
}

// GetDistribution handles GET /api/dashboard/charts/distribution
func (h *DashboardHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	dist, err := h.service.GetDistribution(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   dist,
	})
}

// GetYearlyMeans handles GET /api/dashboard/charts/yearly-mean
func (h *DashboardHandler) GetYearlyMeans(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.GetYearlyMeans(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   points,
		"count":  len(points),
	})
}

// GetYearlyStats handles GET /api/dashboard/charts/yearly-stats
func (h *DashboardHandler) GetYearlyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetYearlyStats(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   stats,
		"count":  len(stats),
	})
}

// GetChangeRates handles GET /api/dashboard/charts/change
func (h *DashboardHandler) GetChangeRates(w http.ResponseWriter, r *http.Request) {
	changes, err := h.service.GetChangeRates(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   changes,
		"count":  len(changes),
	})
}

// GetTopEntities handles GET /api/dashboard/charts/top?limit=N
func (h *DashboardHandler) GetTopEntities(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		limitStr = "20"
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "Limit must be a number between 1 and 100"))
		return
	}

	top, err := h.service.GetTopEntities(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   top,
		"count":  len(top),
		"params": map[string]interface{}{
			"limit": limit,
		},
	})
}

// GetHeatmap handles GET /api/dashboard/charts/heatmap
func (h *DashboardHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	heatmap, err := h.service.GetHeatmap(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   heatmap,
	})
}
