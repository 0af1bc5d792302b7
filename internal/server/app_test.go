package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnguye65/pokecollection/internal/logging"
	"github.com/tnguye65/pokecollection/internal/server/config"
	"github.com/tnguye65/pokecollection/internal/server/repositories/repomanager"
)

type blockingRunner struct {
	err error
}

func (r *blockingRunner) Run(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	return nil
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = ""

	app, err := NewApp(context.Background(), cfg)
	assert.Nil(t, app)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key is empty")
}

func TestNewApp_WiresRESTServer(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	app := newApp(cfg, logging.Nop{}, db, repomanager.NewPostgresRepositoryManager())
	assert.NotNil(t, app.server)
	assert.Same(t, db, app.db)
}

func TestApp_RunReturnsOnCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	app := &App{logger: logging.Nop{}, db: db, server: &blockingRunner{}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_RunReturnsOnServerError(t *testing.T) {
	app := &App{logger: logging.Nop{}, server: &blockingRunner{err: errors.New("address in use")}}

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
