package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/domain"
	"truthrecruit-engine/internal/events"
	"truthrecruit-engine/internal/pipeline"
	"truthrecruit-engine/internal/provider"
	"truthrecruit-engine/internal/secrets"
	"truthrecruit-engine/internal/store"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type memStore struct {
	mu      sync.Mutex
	reports map[string]domain.CompanyAnalysis
	purged  int64
}

func (m *memStore) Save(_ context.Context, a domain.CompanyAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[a.CompanyID] = a
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (domain.CompanyAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.reports[id]
	if !ok {
		return domain.CompanyAnalysis{}, store.ErrNotFound
	}
	return a, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.reports, id)
	return nil
}

func (m *memStore) PurgeExpired(context.Context) (int64, error) { return m.purged, nil }
func (m *memStore) Close() error                                { return nil }

type panicAnalyzer struct{}

func (panicAnalyzer) Analyze(context.Context, pipeline.Request) (domain.CompanyAnalysis, error) {
	panic("boom")
}

type testServer struct {
	handler http.Handler
	store   *memStore
	hub     *events.Hub
	cfgVal  *atomic.Value
	cfgPath string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	now := func() time.Time { return fixedNow }
	st := &memStore{reports: map[string]domain.CompanyAnalysis{}}
	hub := events.NewHub()

	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	if err := config.SaveAtomic(cfgPath, config.Default()); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}
	var cfgVal atomic.Value
	cfgVal.Store(config.Default())

	li := provider.NewMockLinkedIn(now)
	runner := &pipeline.Runner{
		Providers: provider.Set{Company: li, Jobs: li, Sentiment: provider.NewMockGlassdoor(1)},
		Store:     st,
		Publisher: hub,
		Config:    func() config.Config { return cfgVal.Load().(config.Config) },
		Now:       now,
		Logger:    zap.NewNop(),
	}

	mux := NewMux(Deps{
		Analyzer:    runner,
		Store:       st,
		Hub:         hub,
		Logger:      zap.NewNop(),
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
		Version:     "test",
		Now:         now,
	})
	return &testServer{
		handler: Handler(mux, zap.NewNop()),
		store:   st,
		hub:     hub,
		cfgVal:  &cfgVal,
		cfgPath: cfgPath,
	}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func decodeAnalysis(t *testing.T, w *httptest.ResponseRecorder) AnalysisResponse {
	t.Helper()
	var resp AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestAnalyze_KnownCompany(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/analyze", `{"linkedinUrl":"https://www.linkedin.com/company/microsoft"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	resp := decodeAnalysis(t, w)
	if !resp.Success || resp.Data == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Data.Company.Name != "Microsoft" {
		t.Fatalf("company = %q", resp.Data.Company.Name)
	}
	if resp.Error != "" {
		t.Fatalf("error should be empty, got %q", resp.Error)
	}
	if !strings.Contains(w.Body.String(), `"processingTime":`) {
		t.Fatalf("processingTime missing: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing X-Request-ID header")
	}

	// stored under its company id
	g := s.do(http.MethodGet, "/api/reports/"+resp.Data.CompanyID, "")
	if g.Code != http.StatusOK {
		t.Fatalf("report status = %d", g.Code)
	}
	var stored domain.CompanyAnalysis
	if err := json.Unmarshal(g.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if stored.CompanyID != resp.Data.CompanyID {
		t.Fatalf("stored id = %q", stored.CompanyID)
	}
}

func TestAnalyze_BadURL(t *testing.T) {
	s := newTestServer(t)

	cases := map[string]string{
		`{"linkedinUrl":""}`:                                    "URL is required",
		`{"linkedinUrl":"not a url"}`:                           "Please enter a valid URL",
		`{"linkedinUrl":"https://example.com/company/acme"}`:    "Please enter a valid LinkedIn URL",
		`{"linkedinUrl":"https://www.linkedin.com/in/someone"}`: "Please enter a LinkedIn company page URL",
	}
	for body, want := range cases {
		w := s.do(http.MethodPost, "/api/analyze", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", body, w.Code)
		}
		resp := decodeAnalysis(t, w)
		if resp.Success || resp.Error != want || resp.Data != nil {
			t.Fatalf("%s: response = %+v, want error %q", body, resp, want)
		}
	}
}

func TestAnalyze_BadJSONAndEmail(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/analyze", `{"linkedinUrl":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad json status = %d", w.Code)
	}
	if resp := decodeAnalysis(t, w); resp.Error != msgInvalidRequest {
		t.Fatalf("bad json error = %q", resp.Error)
	}

	w = s.do(http.MethodPost, "/api/analyze", `{"linkedinUrl":"https://www.linkedin.com/company/google","userEmail":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad email status = %d", w.Code)
	}
	if resp := decodeAnalysis(t, w); resp.Error != pipeline.MsgInvalidEmail {
		t.Fatalf("bad email error = %q", resp.Error)
	}
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/analyze", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAnalyze_PublishesToHub(t *testing.T) {
	s := newTestServer(t)
	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	s.do(http.MethodPost, "/api/analyze", `{"linkedinUrl":"https://www.linkedin.com/company/netflix"}`)

	select {
	case msg := <-ch:
		var e events.Event
		if err := json.Unmarshal([]byte(msg), &e); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if e.Type != events.TypeAnalysisCompleted {
			t.Fatalf("type = %q", e.Type)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event published")
	}
}

func TestReports_NotFoundAndDelete(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/reports/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if apiErr.Error.Code != "not_found" || apiErr.Error.RequestID == "" {
		t.Fatalf("envelope = %+v", apiErr)
	}

	s.store.reports["r1"] = domain.CompanyAnalysis{CompanyID: "r1"}
	if w := s.do(http.MethodDelete, "/api/reports/r1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/reports/r1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/reports/a/b", ""); w.Code != http.StatusNotFound {
		t.Fatalf("nested path status = %d", w.Code)
	}
}

func TestReports_PurgeIsLocalOnly(t *testing.T) {
	s := newTestServer(t)
	s.store.purged = 3

	r := httptest.NewRequest(http.MethodPost, "/api/reports/purge", nil)
	r.RemoteAddr = "10.0.0.5:1234"
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("remote status = %d", w.Code)
	}

	r = httptest.NewRequest(http.MethodPost, "/api/reports/purge", nil)
	r.RemoteAddr = "127.0.0.1:1234"
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("local status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"purged":3`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body["ok"] != true || body["version"] != "test" || body["time"] != "2026-10-18T12:00:00Z" {
		t.Fatalf("body = %v", body)
	}
}

func TestConfig_GetPutValidate(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/config", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var cfg config.Config
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}

	cfg.Logging.Level = "DEBUG"
	b, _ := json.Marshal(cfg)
	w = s.do(http.MethodPut, "/config", string(b))
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := s.cfgVal.Load().(config.Config).Logging.Level; got != "debug" {
		t.Fatalf("live level = %q, want debug", got)
	}

	cfg.Scoring.OverallWeights.CompanyStability = 0.5
	b, _ = json.Marshal(cfg)
	w = s.do(http.MethodPut, "/config", string(b))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid put status = %d", w.Code)
	}
	var vr config.Validation
	if err := json.Unmarshal(w.Body.Bytes(), &vr); err != nil || len(vr.Errors) == 0 {
		t.Fatalf("expected validation errors, got %s", w.Body.String())
	}

	w = s.do(http.MethodPut, "/config", `{"nope":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown field status = %d", w.Code)
	}

	w = s.do(http.MethodGet, "/config/validate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("validate status = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &vr); err != nil || len(vr.Errors) != 0 {
		t.Fatalf("live config should validate: %s", w.Body.String())
	}
}

func TestSecrets_SetRedisPassword(t *testing.T) {
	keyring.MockInit()
	s := newTestServer(t)
	cfg := s.cfgVal.Load().(config.Config)
	cfg.Store.RedisKeyringAccount = "truthrecruit:redis"
	s.cfgVal.Store(cfg)

	r := httptest.NewRequest(http.MethodPost, "/api/secrets/redis", bytes.NewBufferString(`{"password":"pw"}`))
	r.RemoteAddr = "127.0.0.1:5555"
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	pw, err := secrets.GetRedisPassword("truthrecruit:redis")
	if err != nil || pw != "pw" {
		t.Fatalf("password = %q, err = %v", pw, err)
	}
}

func TestSecrets_DeleteRedisPassword(t *testing.T) {
	keyring.MockInit()
	t.Setenv(secrets.RedisPasswordEnv, "")
	s := newTestServer(t)
	cfg := s.cfgVal.Load().(config.Config)
	cfg.Store.RedisKeyringAccount = "truthrecruit:redis"
	s.cfgVal.Store(cfg)

	if err := secrets.SetRedisPassword("truthrecruit:redis", "pw"); err != nil {
		t.Fatalf("SetRedisPassword: %v", err)
	}

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodDelete, "/api/secrets/redis", nil)
		r.RemoteAddr = "127.0.0.1:5555"
		w := httptest.NewRecorder()
		s.handler.ServeHTTP(w, r)
		if w.Code != http.StatusNoContent {
			t.Fatalf("delete #%d status = %d, want %d (body %s)", i+1, w.Code, http.StatusNoContent, w.Body.String())
		}
	}

	if _, err := secrets.GetRedisPassword("truthrecruit:redis"); !errors.Is(err, secrets.ErrNoPassword) {
		t.Fatalf("GetRedisPassword err = %v, want %v", err, secrets.ErrNoPassword)
	}

	r := httptest.NewRequest(http.MethodDelete, "/api/secrets/redis", nil)
	r.RemoteAddr = "203.0.113.9:5555"
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	if w.Code != http.StatusForbidden {
		t.Fatalf("remote delete status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRecover(t *testing.T) {
	var cfgVal atomic.Value
	cfgVal.Store(config.Default())
	h := Handler(NewMux(Deps{
		Analyzer: panicAnalyzer{},
		Store:    store.Noop{},
		Hub:      events.NewHub(),
		CfgVal:   &cfgVal,
	}), zap.NewNop())

	r := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"linkedinUrl":"x"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal_error") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestCors_Preflight(t *testing.T) {
	s := newTestServer(t)
	r := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t)
	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("X-Request-ID = %q", got)
	}
}

func TestEvents_StreamsPingThenAnalysis(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content-type = %q", ct)
	}

	lines := make(chan string, 16)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if strings.HasPrefix(sc.Text(), "data: ") {
				lines <- strings.TrimPrefix(sc.Text(), "data: ")
			}
		}
		close(lines)
	}()

	next := func() events.Event {
		t.Helper()
		select {
		case l, ok := <-lines:
			if !ok {
				t.Fatalf("stream closed")
			}
			var e events.Event
			if err := json.Unmarshal([]byte(l), &e); err != nil {
				t.Fatalf("decode %q: %v", l, err)
			}
			return e
		case <-ctx.Done():
			t.Fatalf("timed out waiting for event")
		}
		return events.Event{}
	}

	if e := next(); e.Type != "ping" {
		t.Fatalf("first event = %q, want ping", e.Type)
	}

	body := strings.NewReader(`{"linkedinUrl":"https://www.linkedin.com/company/google"}`)
	post, err := http.Post(srv.URL+"/api/analyze", "application/json", body)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	post.Body.Close()

	if e := next(); e.Type != events.TypeAnalysisCompleted {
		t.Fatalf("event = %q, want %q", e.Type, events.TypeAnalysisCompleted)
	}
}
