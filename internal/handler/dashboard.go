package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/service"
)

type DashboardHandler struct {
	svc    *service.DashboardService
	logger *zap.Logger
}

func NewDashboardHandler(svc *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Summary)
	r.Get("/alerts", h.Alerts)
	r.Get("/activity", h.Activity)
	return r
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "dashboard summary", err)
		return
	}
	if summary.Alerts == nil {
		summary.Alerts = []model.Alert{}
	}
	if summary.SystemStatus == nil {
		summary.SystemStatus = []model.SystemStatus{}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *DashboardHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.RecentAlerts(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "alert listing", err)
		return
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.svc.RecentActivity(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "network activity", err)
		return
	}
	if activity == nil {
		activity = []model.NetworkActivity{}
	}
	writeJSON(w, http.StatusOK, activity)
}
