package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/heartmarshall/shadowing-backend/internal/auth"
	"github.com/heartmarshall/shadowing-backend/internal/config"
	"github.com/heartmarshall/shadowing-backend/internal/observe"
	"github.com/heartmarshall/shadowing-backend/internal/service/practice"
	"github.com/heartmarshall/shadowing-backend/internal/transport/middleware"
	"github.com/heartmarshall/shadowing-backend/internal/transport/rest"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestHandler(t *testing.T, scorePerMinute int) (http.Handler, *auth.JWTManager) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	metrics, err := observe.NewMetrics(noop.NewMeterProvider())
	require.NoError(t, err)

	// Scoring needs no storage; the repositories stay unset.
	svc := practice.NewService(logger, nil, nil, nil, nil, metrics, practice.DefaultConfig())

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	jwt := auth.NewJWTManager(testSecret, "shadowing", time.Minute)
	cfg := &config.Config{
		Server:    config.ServerConfig{MaxBodyBytes: 1 << 20, ScoreRatePerMinute: scorePerMinute},
		CORS:      config.CORSConfig{AllowedOrigins: "*"},
		Telemetry: config.TelemetryConfig{MetricsPath: "/metrics"},
	}

	return newHandler(handlerDeps{
		cfg:       cfg,
		logger:    logger,
		service:   svc,
		metrics:   metrics,
		scrape:    http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "shadowing_up 1\n") }),
		checks:    map[string]rest.Pinger{"database": okPinger{}},
		validator: jwt,
		limiter:   limiter,
	}), jwt
}

func scoreRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/practice/score",
		strings.NewReader(`{"reference":"A: I like green tea.","transcription":"i like green tea"}`))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestHandler_OperationalRoutes(t *testing.T) {
	handler, _ := newTestHandler(t, 10)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shadowing_up")
}

func TestHandler_ScoreRequiresLearner(t *testing.T) {
	handler, jwt := newTestHandler(t, 10)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, scoreRequest(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "anonymous")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, scoreRequest("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "invalid token")
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	token, err := jwt.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, scoreRequest(token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"overallScore":100`)
}

func TestHandler_ScoreRateLimited(t *testing.T) {
	handler, jwt := newTestHandler(t, 1)

	token, err := jwt.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, scoreRequest(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, scoreRequest(token))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second, slog.New(slog.DiscardHandler)) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
