package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sitecheckhq/sitecheck/internal/models"
)

// captureOutput helps capture stdout during command execution.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestListAssets_TableOutput(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, SiteID: 1, Name: "boiler-1", Description: "east wing"},
		{ID: 2, SiteID: 1, Name: "lift-2", Description: "north shaft"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/assets" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(assets)
	}))
	defer srv.Close()

	t.Setenv("SITECHECK_API_URL", srv.URL)
	t.Setenv("SITECHECK_TOKEN", "test-token")

	cmd := listAssetsCmd()

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	if !strings.Contains(out, "boiler-1") || !strings.Contains(out, "lift-2") {
		t.Fatalf("expected asset names in output, got: %s", out)
	}
}

func TestListAssets_JSONOutput(t *testing.T) {
	assets := []models.Asset{
		{ID: 1, SiteID: 1, Name: "boiler-1", Description: "east wing"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(assets)
	}))
	defer srv.Close()

	t.Setenv("SITECHECK_API_URL", srv.URL)
	t.Setenv("SITECHECK_TOKEN", "test-token")

	cmd := listAssetsCmd()
	_ = cmd.Flags().Set("json", "true")

	out := captureOutput(t, func() {
		cmd.Run(cmd, []string{})
	})

	var decoded []models.Asset
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(decoded) != 1 || decoded[0].Name != "boiler-1" {
		t.Fatalf("unexpected decoded output: %+v", decoded)
	}
}
