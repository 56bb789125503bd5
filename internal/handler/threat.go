package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arcdefender/arc-defender/internal/model"
	"github.com/arcdefender/arc-defender/internal/service"
)

type ThreatHandler struct {
	svc    *service.ThreatService
	logger *zap.Logger
}

func NewThreatHandler(svc *service.ThreatService, logger *zap.Logger) *ThreatHandler {
	return &ThreatHandler{svc: svc, logger: logger}
}

func (h *ThreatHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List returns the newest threats. There are no query parameters; the
// dashboard filters client side.
func (h *ThreatHandler) List(w http.ResponseWriter, r *http.Request) {
	threats, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "threat listing", err)
		return
	}
	if threats == nil {
		threats = []model.Threat{}
	}
	writeJSON(w, http.StatusOK, threats)
}
