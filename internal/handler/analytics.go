package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/service"
)

type AnalyticsHandler struct {
	svc    *service.AnalyticsService
	logger *zap.Logger
}

func NewAnalyticsHandler(svc *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, logger: logger}
}

func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/efficiency", h.Efficiency)
	r.Get("/trends", h.Trends)
	r.Get("/origins", h.Origins)
	r.Get("/overview", h.Overview)
	return r
}

func (h *AnalyticsHandler) Efficiency(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Efficiency(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "efficiency", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	trends, err := h.svc.Trends(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "trends", err)
		return
	}
	if trends == nil {
		trends = []model.TrendBucket{}
	}
	writeJSON(w, http.StatusOK, trends)
}

func (h *AnalyticsHandler) Origins(w http.ResponseWriter, r *http.Request) {
	origins, err := h.svc.Origins(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "origins", err)
		return
	}
	if origins == nil {
		origins = []model.OriginCount{}
	}
	writeJSON(w, http.StatusOK, origins)
}

func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "overview", err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
