package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/samvad-hq/swgoh-comlink-go/internal/config"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/comlink"
	"github.com/samvad-hq/swgoh-comlink-go/pkg/publishers"
)

func writePublishers(t *testing.T, sinkURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	raw := "publishers:\n  - id: sink\n    type: http\n    http:\n      url: " + sinkURL + "\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write publishers: %v", err)
	}
	return path
}

func testConfig(t *testing.T, comlinkURL, publishersFile string) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:        "swgoh-comlink",
		ComlinkURL:     comlinkURL,
		StatsURL:       comlinkURL,
		RequestTimeout: 5 * time.Second,
		PublishersFile: publishersFile,
		PollInterval:   time.Minute,
		StorageType:    "bbolt",
		BBoltPath:      filepath.Join(t.TempDir(), "versions.db"),
	}
}

func TestWatcherAnnouncesVersionsToSinks(t *testing.T) {
	comlinkSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/metadata" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latestGamedataVersion":"g1","latestLocalizationBundleVersion":"l1"}`))
	}))
	defer comlinkSrv.Close()

	var (
		mu     sync.Mutex
		events []publishers.Event
	)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var evt publishers.Event
		if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		events = append(events, evt)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer sink.Close()

	cfg := testConfig(t, comlinkSrv.URL, writePublishers(t, sink.URL))
	w, err := NewWatcher(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.close()

	if err := w.service.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("expected 2 events at sink, got %d", len(events))
	}
	if events[0].Kind != publishers.KindGameData || events[0].Version != "g1" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Source != comlinkSrv.URL {
		t.Fatalf("Source = %q", events[1].Source)
	}
}

func TestNewWatcherRequiresPublishers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yaml")
	if err := os.WriteFile(path, []byte("publishers: []\n"), 0o644); err != nil {
		t.Fatalf("write publishers: %v", err)
	}
	if _, err := NewWatcher(context.Background(), testConfig(t, "http://localhost:3000", path), nil); err == nil {
		t.Fatalf("expected error without publishers")
	}
}

func TestComlinkOptionsAppliesCredentials(t *testing.T) {
	cfg := testConfig(t, "http://localhost:3000/", "")
	cfg.AccessKey = "ak"
	cfg.SecretKey = "sk"

	w := ComlinkOptions(cfg, nil)
	if len(w) != 5 {
		t.Fatalf("expected credentials option to be appended, got %d options", len(w))
	}

	cfg.AccessKey, cfg.SecretKey = "", ""
	if got := len(ComlinkOptions(cfg, nil)); got != 4 {
		t.Fatalf("expected 4 options without credentials, got %d", got)
	}
}

func TestClientSummaryReportsSigning(t *testing.T) {
	summary := clientSummary(comlink.Config{URL: "http://localhost:3000", AccessKey: "ak", SecretKey: "REDACTED"})
	if summary["signed"] != true {
		t.Fatalf("expected signed client, got %v", summary["signed"])
	}
	if _, leaked := summary["secret_key"]; leaked {
		t.Fatalf("summary must not carry the secret")
	}

	summary = clientSummary(comlink.Config{URL: "http://localhost:3000", AccessKey: "ak"})
	if summary["signed"] != false {
		t.Fatalf("expected unsigned client without a secret")
	}
}
