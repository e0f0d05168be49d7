package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/trendintel/internal/trendapi"
)

type fakeServer struct {
	mu       sync.Mutex
	settings []trendapi.SettingRequest
	cycles   int
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_analyzed": 1234,
			"emails_sent":    5,
			"virality_rate":  12.5,
			"bot_active":     false,
		})
	})
	mux.HandleFunc("/trends", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		var req trendapi.SettingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.settings = append(f.settings, req)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/run-cycle", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.cycles++
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "started", "message": "cycle queued"})
	})
	return mux
}

// execute runs the root command against srv and returns stdout.
func execute(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TRENDINTEL_API_URL", srvURL)
	t.Setenv("TRENDINTEL_LOG_FILE", filepath.Join(t.TempDir(), "cli.log"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	out, err := execute(t, srv.URL, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "12.5%")
	assert.Contains(t, out, "STOPPED")
}

func TestTrendsCommand_EmptyAndUnknownCategory(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	out, err := execute(t, srv.URL, "trends", "--category", "Gaming")
	require.NoError(t, err)
	assert.Contains(t, out, "No trending videos found for this category.")

	_, err = execute(t, srv.URL, "trends", "--category", "Cooking")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")

	trendsCategory = trendapi.CategoryAll
}

func TestBotCommand_WritesSetting(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	out, err := execute(t, srv.URL, "bot", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Automation RUNNING")

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.settings, 1)
	assert.Equal(t, trendapi.SettingRequest{Key: trendapi.SettingBotActive, Value: "1"}, fake.settings[0])
}

func TestBotCommand_RejectsUnknownAction(t *testing.T) {
	srv := httptest.NewServer((&fakeServer{}).handler())
	defer srv.Close()

	_, err := execute(t, srv.URL, "bot", "maybe")
	require.Error(t, err)
}

func TestRunCommand(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	out, err := execute(t, srv.URL, "run")
	require.NoError(t, err)
	assert.Contains(t, out, cycleStarted)
	assert.Contains(t, out, "cycle queued")
	assert.Equal(t, 1, fake.cycles)
}

func TestAnalyzeCommand_InvalidURL(t *testing.T) {
	_, err := execute(t, "http://127.0.0.1:1", "analyze", "not a url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a url")
}
