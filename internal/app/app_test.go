package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giserh/wtss.py/internal/config"
)

func testConfig(host, storePath string) *config.Config {
	cfg := &config.Config{
		AppName:      "wtss",
		LogLevel:     "error",
		Host:         host,
		Timeout:      5 * time.Second,
		CheckStatus:  true,
		OutputFormat: "json",
		StorageType:  "none",
	}
	if storePath != "" {
		cfg.StorageType = "bbolt"
		cfg.BBoltPath = storePath
	}
	return cfg
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/wtss/list_coverages", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coverages":["mod13q1_512"]}`))
	})
	mux.HandleFunc("/wtss/time_series", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("coverage") != "mod13q1_512" || q.Get("attributes") != "red,nir" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"result":{"timeline":["2020-01-01"],"attributes":[{"attribute":"red","values":[1]},{"attribute":"nir","values":[2]}]}}`))
	})
	return httptest.NewServer(mux)
}

func TestRunCoverages(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	cli, err := New(testConfig(srv.URL, ""), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer cli.Close()

	var buf bytes.Buffer
	cli.out = &buf

	if err := cli.Run(context.Background(), []string{"coverages"}); err != nil {
		t.Fatalf("Run coverages: %v", err)
	}
	if !strings.Contains(buf.String(), "mod13q1_512") {
		t.Fatalf("expected coverage name in output, got %s", buf.String())
	}
}

func TestRunSeriesStoresSnapshot(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	cli, err := New(testConfig(srv.URL, t.TempDir()+"/snapshots.db"), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer cli.Close()

	var buf bytes.Buffer
	cli.out = &buf

	args := []string{"series", "mod13q1_512", "red,nir", "-12", "-54", "2020-01-01", "2020-01-17"}
	if err := cli.Run(context.Background(), args); err != nil {
		t.Fatalf("Run series: %v", err)
	}
	if !strings.Contains(buf.String(), "timeline") {
		t.Fatalf("expected time series document in output, got %s", buf.String())
	}

	buf.Reset()
	if err := cli.Run(context.Background(), []string{"snapshots"}); err != nil {
		t.Fatalf("Run snapshots: %v", err)
	}
	const wantKey = "mod13q1_512/-12,-54/2020-01-01..2020-01-17"
	if !strings.Contains(buf.String(), wantKey) {
		t.Fatalf("expected snapshot key %q, got %s", wantKey, buf.String())
	}

	buf.Reset()
	if err := cli.Run(context.Background(), []string{"snapshot", wantKey}); err != nil {
		t.Fatalf("Run snapshot: %v", err)
	}
	if !strings.Contains(buf.String(), "2020-01-01") {
		t.Fatalf("expected archived document, got %s", buf.String())
	}
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	cli, err := New(testConfig(srv.URL, ""), nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer cli.Close()

	if err := cli.Run(context.Background(), []string{"harvest"}); err == nil {
		t.Fatal("expected unknown command error, got nil")
	}
}

func TestNewRequiresHost(t *testing.T) {
	cfg := testConfig("", "")
	cfg.ServicesFile = ""
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected missing host error, got nil")
	}
}
