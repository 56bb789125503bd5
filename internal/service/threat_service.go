package service

import (
	"context"

	"github.com/arcdefender/arc-defender/internal/model"
)

const threatListLimit = 100

type ThreatService struct {
	threats ThreatStore
}

func NewThreatService(threats ThreatStore) *ThreatService {
	return &ThreatService{threats: threats}
}

// List returns the 100 newest threats. Filtering happens client side.
func (s *ThreatService) List(ctx context.Context) ([]model.Threat, error) {
	return s.threats.RecentThreats(ctx, threatListLimit)
}
