package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFeedCommand_PrintsPage(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"reels": []map[string]any{
					{"id": "R1", "title": "Sunrise over Lisbon", "likes": 1240},
					{"id": "R2", "title": "Night market", "likes": 7},
				},
				"cursor":   "c2",
				"has_more": true,
			},
		})
	}))
	defer srv.Close()

	if _, err := runCLI(t, "likes", "add", "R2"); err != nil {
		t.Fatalf("likes add: %v", err)
	}
	out, err := runCLI(t, "--api-url", srv.URL, "feed")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	for _, want := range []string{"♡ 1.2K", "R1 Sunrise over Lisbon", "♥ 7", "reels feed --cursor c2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestFeedCommand_APIURLFlagOverridesInvalidEnv(t *testing.T) {
	setupEnv(t)
	t.Setenv("REELS_API_BASE_URL", "not-a-url")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"reels":[{"id":"R1","title":"Harbour","likes":3}],"has_more":false}}`))
	}))
	defer srv.Close()

	out, err := runCLI(t, "--api-url", srv.URL, "feed")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !strings.Contains(out, "R1 Harbour") {
		t.Fatalf("expected reel from flagged API, got %q", out)
	}
}

func TestFeedCommand_ServerError(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := runCLI(t, "--api-url", srv.URL, "feed"); err == nil {
		t.Fatal("expected feed error")
	}
}
