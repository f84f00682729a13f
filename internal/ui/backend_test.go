package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
	"github.com/AnthonyBarbaro/stashhub/internal/config"
	"github.com/AnthonyBarbaro/stashhub/internal/job"
)

type fakeResult struct {
	ok  bool
	msg string
}

// fakeBackend is an in-process stand-in for the inventory backend. Status
// texts are served in order; the last one repeats for every later poll.
type fakeBackend struct {
	mu        sync.Mutex
	brands    []string
	statuses  []string
	statusIdx int

	updateResult fakeResult
	runResult    fakeResult
	setupResult  fakeResult

	// updateRaw, when set, is served verbatim instead of a JSON envelope.
	updateRaw string

	brandCalls  int
	updateCalls int
	runCalls    int
	setupCalls  int

	lastEmails string
	lastBrands []string
	lastSetup  api.Setup
}

func newFakeBackend(brands ...string) *fakeBackend {
	return &fakeBackend{
		brands:       brands,
		updateResult: fakeResult{ok: true, msg: "Scrape started"},
		runResult:    fakeResult{ok: true, msg: "Pipeline started"},
		setupResult:  fakeResult{ok: true, msg: "Settings saved"},
	}
}

func (f *fakeBackend) setStatuses(lines ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = lines
	f.statusIdx = 0
}

func (f *fakeBackend) callCounts() (brands, update, run, setup int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.brandCalls, f.updateCalls, f.runCalls, f.setupCalls
}

func (f *fakeBackend) recordedRun() (string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastEmails, f.lastBrands
}

func (f *fakeBackend) recordedSetup() api.Setup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastSetup
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/brands", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.brandCalls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.brands)
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		text := "No status yet."
		if len(f.statuses) > 0 {
			text = f.statuses[f.statusIdx]
			if f.statusIdx < len(f.statuses)-1 {
				f.statusIdx++
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(text))
	})
	mux.HandleFunc("/update-files", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.updateCalls++
		if f.updateRaw != "" {
			w.Write([]byte(f.updateRaw))
			return
		}
		writeEnvelope(w, f.updateResult)
	})
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Emails string   `json:"emails"`
			Brands []string `json:"brands"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.runCalls++
		f.lastEmails = req.Emails
		f.lastBrands = req.Brands
		writeEnvelope(w, f.runResult)
	})
	mux.HandleFunc("/setup", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string            `json:"username"`
			Password string            `json:"password"`
			StoreMap map[string]string `json:"store_map"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		defer f.mu.Unlock()
		f.setupCalls++
		f.lastSetup = api.Setup{
			Username: req.Username,
			Password: req.Password,
			StoreMap: req.StoreMap,
		}
		writeEnvelope(w, f.setupResult)
	})
	return mux
}

func writeEnvelope(w http.ResponseWriter, res fakeResult) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ok": res.ok, "msg": res.msg})
}

// newTestApp wires a real client and watcher against the fake backend and
// returns a sized app. The watcher polls fast so flow tests finish quickly.
func newTestApp(t *testing.T, backend *fakeBackend) App {
	t.Helper()
	return newTestAppOn(t, backend, false)
}

func newTestAppOn(t *testing.T, backend *fakeBackend, startOnSetup bool) App {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	client := api.NewClient(srv.URL, 2*time.Second, log)
	watcher := job.NewWatcher(client, 25*time.Millisecond, 2*time.Second, log)

	a := NewApp(testConfig(srv.URL), client, watcher, log, startOnSetup)
	return sendWindowSize(a, 120, 40)
}

func testConfig(url string) *config.Config {
	return &config.Config{
		Backend: config.BackendConfig{URL: url, TimeoutSeconds: 2},
		Poll:    config.PollConfig{IntervalSeconds: 1, TimeoutSeconds: 2},
		UI: config.UIConfig{
			ScrapeMessage: "Updating files...",
			ReportMessage: "Uploading to Google Drive and sending email…",
		},
	}
}

func sendKey(a App, key string) App {
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return m.(App)
}

func sendSpecialKey(a App, t tea.KeyType) App {
	m, _ := a.Update(tea.KeyMsg{Type: t})
	return m.(App)
}

func sendWindowSize(a App, w, h int) App {
	m, _ := a.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m.(App)
}

// pump executes cmd and feeds the resulting message back into the app,
// mirroring one turn of the runtime. It returns the follow-up command so
// callers can chain submit, poll, and reload steps.
func pump(t *testing.T, a App, cmd tea.Cmd) (App, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command to run")
	}
	m, next := a.Update(cmd())
	return m.(App), next
}
