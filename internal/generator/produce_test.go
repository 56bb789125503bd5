package generator

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducers_Ranges(t *testing.T) {
	s := NewState(nil, 7)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	for i := 0; i < 500; i++ {
		m := NextMetric(s, now)
		assert.GreaterOrEqual(t, m.ActiveThreats, 10)
		assert.Less(t, m.ActiveThreats, 50)
		assert.GreaterOrEqual(t, m.BlockedIntrusions, 500)
		assert.Less(t, m.BlockedIntrusions, 2500)
		assert.GreaterOrEqual(t, m.UsersOnline, 0)
		assert.Less(t, m.UsersOnline, 100)
		require.True(t, strings.HasSuffix(m.SystemUptime, "%"), m.SystemUptime)
		uptime, err := strconv.ParseFloat(strings.TrimSuffix(m.SystemUptime, "%"), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, uptime, 99.0)
		assert.Less(t, uptime, 100.0)

		a := NextActivity(s, now)
		assert.GreaterOrEqual(t, a.IntrusionsDetected, 0)
		assert.Less(t, a.IntrusionsDetected, 200)
		assert.Equal(t, now, a.Date)

		th := NextThreat(s, now)
		assert.GreaterOrEqual(t, th.Count, 1)
		assert.LessOrEqual(t, th.Count, 50)
		assert.True(t, th.Severity.Valid())
		assert.Contains(t, s.Catalog.SourceIPs, th.SourceIP)
		assert.Contains(t, s.Catalog.Categories, th.Category)

		al := NextAlert(s, now)
		assert.True(t, al.Severity.Valid())
		assert.Contains(t, s.Catalog.AlertMessages, al.Message)
	}
	assert.Equal(t, uint64(2000), s.Tick)
}

func TestProducers_Deterministic(t *testing.T) {
	now := time.Now()
	a, b := NewState(nil, 42), NewState(nil, 42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, NextThreat(a, now), NextThreat(b, now))
		assert.Equal(t, NextMetric(a, now), NextMetric(b, now))
	}
}

func TestNextStatuses_FollowCatalog(t *testing.T) {
	s := NewState(nil, 1)
	statuses := NextStatuses(s)

	require.Len(t, statuses, 4)
	assert.Equal(t, "IDS engine", statuses[0].Component)
	assert.Equal(t, "Running", statuses[0].Status)
	assert.Equal(t, "Backup", statuses[3].Component)
	assert.NotEqual(t, statuses[0].ID, statuses[1].ID)
}
