package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"}, got)
}

func TestEmbeddedSchema(t *testing.T) {
	body, err := migrationFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)

	stmts := splitStatements(string(body))
	require.NotEmpty(t, stmts)
	for _, table := range []string{"users", "alerts", "metrics", "system_statuses", "network_activity", "threats"} {
		assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Contains(t, string(body), "CHECK (severity IN ('low', 'medium', 'high'))")
}
