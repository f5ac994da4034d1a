package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/fixture"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/mes/session"
	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoPassword = "demo123"
	JWTSecret    = "nimo-mes-test-secret"
)

// Epoch the fixed instant every test clock starts at
var Epoch = time.Date(2025, 12, 3, 9, 0, 0, 0, time.UTC)

// Clock a manually advanced time source
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestEnv holds test environment resources
type TestEnv struct {
	T        *testing.T
	Config   *config.Config
	Clock    *Clock
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *sse.Hub
	Sessions *session.Memory
}

type Option func(*config.Config)

// Permissive disables transition enforcement
func Permissive() Option {
	return func(c *config.Config) { c.Workflow.EnforceTransitions = false }
}

// JWTTokens switches login to signed tokens
func JWTTokens() Option {
	return func(c *config.Config) {
		c.Auth.TokenMode = config.TokenModeJWT
		c.Auth.JWTSecret = JWTSecret
	}
}

// TestConfig the defaults a fresh deployment runs with
func TestConfig(opts ...Option) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Log.Level = "error"
	cfg.Auth.TokenMode = config.TokenModeMock
	cfg.Auth.Issuer = "nimo-mes-test"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.SessionBackend = config.SessionBackendMemory
	cfg.Fixtures.Source = config.FixtureSourceEmbed
	cfg.Workflow.EnforceTransitions = true
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// NewTestEnv seeds a fresh overlay from the embedded fixtures
func NewTestEnv(t *testing.T, opts ...Option) *TestEnv {
	t.Helper()
	repository.PasswordCost = bcrypt.MinCost

	ds, err := fixture.Load(context.Background(), fixture.Embedded())
	if err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}
	repos, err := repository.NewRepositories(ds)
	if err != nil {
		t.Fatalf("Failed to seed repositories: %v", err)
	}

	cfg := TestConfig(opts...)
	clock := NewClock(Epoch)
	sessions := session.NewMemory(clock.Now)
	hub := sse.NewHub(nil)
	svc := service.NewServices(repos, service.Deps{
		Config:   cfg,
		Sessions: sessions,
		Events:   hub,
		Now:      clock.Now,
	})
	return &TestEnv{
		T:        t,
		Config:   cfg,
		Clock:    clock,
		Repos:    repos,
		Services: svc,
		Hub:      hub,
		Sessions: sessions,
	}
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// MockToken the token the mock login issues for userID
func MockToken(userID string) string {
	return service.MockTokenPrefix + userID
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses a JSON object body
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ParseList parses a JSON array body
func ParseList(w *httptest.ResponseRecorder) []map[string]interface{} {
	var result []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// Decode unmarshals the body into v or fails the test
func Decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}
