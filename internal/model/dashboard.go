package model

import (
	"time"

	"github.com/google/uuid"
)

// Alert.Severity is not constrained by the store; generators only emit the
// three known values.
type Alert struct {
	ID        uuid.UUID `json:"_id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}

// Metric is one point of the append-only snapshot series. The newest row is
// the current state.
type Metric struct {
	ID                uuid.UUID `json:"_id"`
	ActiveThreats     int       `json:"activeThreats"`
	BlockedIntrusions int       `json:"blockedIntrusions"`
	SystemUptime      string    `json:"systemUptime"`
	UsersOnline       int       `json:"usersOnline"`
	CreatedAt         time.Time `json:"-"`
}

type SystemStatus struct {
	ID        uuid.UUID `json:"_id"`
	Component string    `json:"component"`
	Status    string    `json:"status"`
}

type NetworkActivity struct {
	ID                 uuid.UUID `json:"_id"`
	Date               time.Time `json:"date"`
	IntrusionsDetected int       `json:"intrusionsDetected"`
	CreatedAt          time.Time `json:"createdAt"`
}

// DashboardSummary is the snapshot served by GET /api/dashboard.
type DashboardSummary struct {
	Metrics      *Metric        `json:"metrics"`
	Alerts       []Alert        `json:"alerts"`
	SystemStatus []SystemStatus `json:"systemStatus"`
}
