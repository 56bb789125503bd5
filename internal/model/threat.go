package model

import (
	"time"

	"github.com/google/uuid"
)

type Threat struct {
	ID        uuid.UUID `json:"_id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Severity  Severity  `json:"severity"`
	SourceIP  string    `json:"sourceIP"`
	Count     int       `json:"count"`
}
