// Package generator produces the synthetic records that keep the dashboard
// moving. Producers are pure functions of an explicit State; the Scheduler
// and Sink handle timing and persistence.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/arcdefender/arc-defender/internal/model"
)

// State carries the random source and tick counter shared by the producers.
// It is not safe for concurrent use.
type State struct {
	Catalog *Catalog
	Tick    uint64

	rng *rand.Rand
}

func NewState(cat *Catalog, seed int64) *State {
	if cat == nil {
		cat = DefaultCatalog()
	}
	return &State{Catalog: cat, rng: rand.New(rand.NewSource(seed))}
}

func (s *State) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s.rng)
	if err != nil {
		return uuid.New()
	}
	return id
}

func (s *State) intn(min, max int) int {
	return min + s.rng.Intn(max-min)
}

func pick[T any](s *State, items []T) T {
	return items[s.rng.Intn(len(items))]
}

func NextAlert(s *State, now time.Time) model.Alert {
	s.Tick++
	return model.Alert{
		ID:        s.newID(),
		Message:   pick(s, s.Catalog.AlertMessages),
		Severity:  pick(s, s.Catalog.Severities),
		Timestamp: now,
	}
}

// NextMetric returns activeThreats in [10,50), blockedIntrusions in
// [500,2500), usersOnline in [0,100) and an uptime between 99.00% and 99.99%.
func NextMetric(s *State, now time.Time) model.Metric {
	s.Tick++
	return model.Metric{
		ID:                s.newID(),
		ActiveThreats:     s.intn(10, 50),
		BlockedIntrusions: s.intn(500, 2500),
		SystemUptime:      fmt.Sprintf("%.2f%%", 99+s.rng.Float64()*0.99),
		UsersOnline:       s.rng.Intn(100),
		CreatedAt:         now,
	}
}

func NextStatuses(s *State) []model.SystemStatus {
	s.Tick++
	out := make([]model.SystemStatus, 0, len(s.Catalog.Statuses))
	for _, e := range s.Catalog.Statuses {
		out = append(out, model.SystemStatus{ID: s.newID(), Component: e.Component, Status: e.Status})
	}
	return out
}

func NextActivity(s *State, now time.Time) model.NetworkActivity {
	s.Tick++
	return model.NetworkActivity{
		ID:                 s.newID(),
		Date:               now,
		IntrusionsDetected: s.rng.Intn(200),
		CreatedAt:          now,
	}
}

// NextThreat returns a threat with a count in [1,50].
func NextThreat(s *State, now time.Time) model.Threat {
	s.Tick++
	return model.Threat{
		ID:        s.newID(),
		Timestamp: now,
		Type:      pick(s, s.Catalog.ThreatTypes),
		Category:  pick(s, s.Catalog.Categories),
		Severity:  pick(s, s.Catalog.Severities),
		SourceIP:  pick(s, s.Catalog.SourceIPs),
		Count:     s.intn(1, 51),
	}
}
