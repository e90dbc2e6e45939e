package db

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	apperrors "userhub/internal/errors"
	"userhub/internal/model"
)

// State is the lifecycle state of the store connection.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnecting:
		return "disconnecting"
	default:
		return "unknown"
	}
}

// Store owns the single connection to the record store. Opening is
// asynchronous: the process starts serving immediately in the connecting
// state and readiness flips once the dial succeeds.
type Store struct {
	state       atomic.Int32
	pingTimeout time.Duration

	mu sync.RWMutex
	db *gorm.DB
}

// Open starts a connection attempt in the background and returns immediately.
func Open(dsn string, pingTimeout time.Duration) *Store {
	if pingTimeout <= 0 {
		pingTimeout = 2 * time.Second
	}
	s := &Store{pingTimeout: pingTimeout}
	s.state.Store(int32(StateConnecting))
	go s.dial(dsn)
	return s
}

func (s *Store) dial(dsn string) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("store connect failed: %v", err)
		s.state.Store(int32(StateDisconnected))
		return
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Printf("store connect failed: %v", err)
		s.state.Store(int32(StateDisconnected))
		return
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// The unique index on email must exist before any write is accepted.
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Printf("store auto-migrate failed: %v", err)
		s.state.Store(int32(StateDisconnected))
		return
	}

	s.mu.Lock()
	s.db = gormDB
	s.mu.Unlock()
	s.state.Store(int32(StateConnected))
	log.Printf("store connected")
}

// State reports the current connection lifecycle state.
func (s *Store) State() State {
	return State(s.state.Load())
}

// DB returns the gorm handle, or nil while not connected.
func (s *Store) DB() *gorm.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

// Ping issues a minimal round-trip and returns its latency. Health checks are
// the only callers; CRUD paths fail naturally when the store is down.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	gormDB := s.DB()
	if gormDB == nil || s.State() != StateConnected {
		return 0, apperrors.ErrStoreUnavailable
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return 0, apperrors.ErrStoreUnavailable
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()

	start := time.Now()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return 0, apperrors.ErrStoreUnavailable
	}
	return time.Since(start), nil
}

// Close tears the connection down.
func (s *Store) Close() error {
	s.state.Store(int32(StateDisconnecting))

	s.mu.Lock()
	gormDB := s.db
	s.db = nil
	s.mu.Unlock()

	defer s.state.Store(int32(StateDisconnected))
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
