package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/logging"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"golang.org/x/time/rate"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
	assert.NoError(t, err)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.collection.stats = func(ctx context.Context, userID string) (*models.CollectionStats, error) {
		return &models.CollectionStats{}, nil
	}

	env.do(http.MethodGet, "/collection/stats", "", true)

	rec := env.do(http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pokecollection_http_requests_total{method="GET",path="/collection/stats",status="200"} 1`)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{common.ErrDuplicateEmail, http.StatusBadRequest},
		{fmt.Errorf("error creating user: %w", common.ErrDuplicateUsername), http.StatusBadRequest},
		{fmt.Errorf("%w: %w", common.ErrValidation, common.ErrWeakPassword), http.StatusBadRequest},
		{common.ErrWrongPassword, http.StatusBadRequest},
		{common.ErrInvalidCredentials, http.StatusUnauthorized},
		{common.ErrTokenExpired, http.StatusUnauthorized},
		{common.ErrInvalidSignature, http.StatusUnauthorized},
		{common.ErrItemNotFound, http.StatusNotFound},
		{common.ErrCatalogUnavailable, http.StatusBadGateway},
		{fmt.Errorf("error saving item: %w: %w", common.ErrValidation, &pgconn.PgError{Code: "22001"}), http.StatusBadRequest},
		{fmt.Errorf("error saving item: %w", common.ErrInvalidQuantity), http.StatusBadRequest},
		{errors.New("sql: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, msg := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		if status == http.StatusInternalServerError {
			assert.Equal(t, "internal server error", msg)
		}
	}
}

func TestWriteError_DebugExposesDetail(t *testing.T) {
	users := &fakeUsers{
		deleteAccount: func(ctx context.Context, userID string) error {
			return errors.New("disk on fire")
		},
	}
	s := NewRESTServer(Options{Debug: true}, logging.Nop{}, users, &fakeCollection{}, &fakeCatalog{})
	env := &testEnv{users: users, server: s}

	rec := env.do(http.MethodDelete, "/users/profile", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk on fire")
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(rate.Every(time.Hour), 1)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
	assert.Same(t, l.GetLimiter("10.0.0.1"), l.GetLimiter("10.0.0.1"))
}

// stopRecorder signals when the server logs its shutdown.
type stopRecorder struct {
	logging.Nop
	stopped chan struct{}
}

func (r *stopRecorder) Info(ctx context.Context, msg string, args ...any) {
	if msg == "Stopping REST server..." {
		close(r.stopped)
	}
}

func (r *stopRecorder) With(...any) logging.Logger { return r }

func TestRun_ListenFailureReleasesShutdownGoroutine(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	rec := &stopRecorder{stopped: make(chan struct{})}
	s := NewRESTServer(Options{Address: busy.Addr().String()}, rec, &fakeUsers{}, &fakeCollection{}, &fakeCatalog{})

	// The parent context is never cancelled.
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return on a busy address")
	}

	select {
	case <-rec.stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown goroutine still waiting")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := NewRESTServer(Options{Address: "127.0.0.1:0"}, logging.Nop{}, &fakeUsers{}, &fakeCollection{}, &fakeCatalog{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
