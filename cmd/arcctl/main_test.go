package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/overview", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"highSeverity":2,"mediumSeverity":0,"lowSeverity":1}`))
	})
	mux.HandleFunc("/api/analytics/origins", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"203.0.113.7","count":10},{"_id":"10.0.0.45","count":5}]`))
	})
	mux.HandleFunc("/api/analytics/efficiency", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"efficiency":"50.0","avgEfficiency":0,"blocked":500,"total":1000}`))
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid password"}`))
			return
		}
		w.Write([]byte(`{"message":"Login successful!","token":"tok-123","user":{"name":"Ada","email":"ada@example.com"}}`))
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid or expired token"}`))
			return
		}
		w.Write([]byte(`{"name":"Ada","email":"ada@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCmd(t *testing.T, srv *httptest.Server, cmd string, args ...string) (string, error) {
	t.Helper()
	return runCmdWithToken(t, srv, "", cmd, args...)
}

func runCmdWithToken(t *testing.T, srv *httptest.Server, tok, cmd string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	err := run(context.Background(), newAPIClient(srv.URL+"/", tok), &out, cmd, args)
	return out.String(), err
}

func TestRun_Overview(t *testing.T) {
	out, err := runCmd(t, testServer(t), "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "SEVERITY")
	assert.Contains(t, out, "2")
}

func TestRun_Origins(t *testing.T) {
	out, err := runCmd(t, testServer(t), "origins")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "203.0.113.7"), strings.Index(out, "10.0.0.45"))
}

func TestRun_Efficiency(t *testing.T) {
	out, err := runCmd(t, testServer(t), "efficiency")
	require.NoError(t, err)
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "1000")
}

func TestRun_Login(t *testing.T) {
	srv := testServer(t)

	out, err := runCmd(t, srv, "login", "-email", "ada@example.com", "-password", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-123\n", out)

	_, err = runCmd(t, srv, "login", "-email", "ada@example.com", "-password", "wrong")
	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid password", apiErr.Message)
}

func TestRun_UnknownCommand(t *testing.T) {
	_, err := runCmd(t, testServer(t), "bogus")
	assert.Error(t, err)
}

func TestRun_MeSendsToken(t *testing.T) {
	srv := testServer(t)

	out, err := runCmdWithToken(t, srv, "tok-123", "me")
	require.NoError(t, err)
	assert.Equal(t, "Ada <ada@example.com>\n", out)

	_, err = runCmd(t, srv, "me")
	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
