package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/revisahub/revisahub/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns what it printed.
func executeCommand(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

func writeJSON(t *testing.T, w http.ResponseWriter, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

// newBackend serves the read endpoints for profile p1 and answers every chat message
// with reply. Returns the base URL including the /api prefix.
func newBackend(t *testing.T, reply string) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sessions/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []api.SessionSummary{
			{ID: "s1", ProfileID: "p1", Title: "Mitose", Subject: "Biologia", UpdatedAt: "2025-03-01T10:00:00"},
		})
	})
	mux.HandleFunc("GET /api/sessions/p1/s1/messages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []api.HistoryMessage{
			{ID: "h1", SessionID: "s1", Role: "user", Content: "o que é mitose?", Timestamp: "2025-03-01T10:00:00"},
			{ID: "h2", SessionID: "s1", Role: "assistant", Content: "É a divisão celular.", Timestamp: "2025-03-01T10:00:05"},
		})
	})
	mux.HandleFunc("GET /api/progress/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, api.Progress{TotalSessions: 1, TotalMessages: 2, FavoriteSubject: "Biologia"})
	})
	mux.HandleFunc("GET /api/streak/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, api.Streak{CurrentStreak: 3, LongestStreak: 4, StreakCalendar: []string{"", "", "", "", "", "", "2025-03-01"}})
	})
	mux.HandleFunc("POST /api/chat", func(w http.ResponseWriter, r *http.Request) {
		var request api.ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		writeJSON(t, w, api.ChatResponse{Response: reply, MessageID: "m1", SessionID: request.SessionID})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL + "/api"
}
