// Package sqlstore keeps the key-value pairs in a SQLite or PostgreSQL table.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/idilsaglam/tada/internal/store"
)

// DBType identifies the database engine behind a Store.
type DBType int

const (
	DBTypeSQLite DBType = iota
	DBTypePostgres
)

// RWLocker is satisfied by sync.RWMutex; postgres uses a no-op one.
type RWLocker interface {
	RLock()
	RUnlock()
	Lock()
	Unlock()
}

type noopLocker struct{}

func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}
func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}

// Store implements store.Interface on a kv table.
type Store struct {
	db     *sqlx.DB
	dbType DBType
	mu     RWLocker
}

// New opens the database at dbURL and makes sure the kv table exists.
// postgres:// and postgresql:// URLs select PostgreSQL, anything else is a SQLite path.
func New(dbURL string) (*Store, error) {
	dbType := detectDBType(dbURL)

	var db *sqlx.DB
	var err error
	var locker RWLocker

	switch dbType {
	case DBTypePostgres:
		db, err = connectPostgres(dbURL)
		locker = noopLocker{}
	default:
		db, err = connectSQLite(dbURL)
		locker = &sync.RWMutex{}
	}
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, dbType: dbType, mu: locker}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Debug("initialized store", "type", s.dbTypeName())
	return s, nil
}

func detectDBType(url string) DBType {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DBTypePostgres
	}
	return DBTypeSQLite
}

func connectSQLite(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	// single writer
	db.SetMaxOpenConns(1)
	return db, nil
}

func connectPostgres(dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func (s *Store) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`
	if s.dbType == DBTypePostgres {
		schema = `
			CREATE TABLE IF NOT EXISTS kv (
				key TEXT PRIMARY KEY,
				value BYTEA NOT NULL,
				updated_at TIMESTAMP DEFAULT NOW()
			)`
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Store) dbTypeName() string {
	if s.dbType == DBTypePostgres {
		return "postgres"
	}
	return "sqlite"
}

// Get retrieves the value for the given key.
// Returns store.ErrNotFound if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.db.GetContext(ctx, &value, s.adoptQuery("SELECT value FROM kv WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return value, nil
}

// Set creates the key or overwrites its value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == nil {
		value = []byte{}
	}
	query := s.adoptQuery(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Delete removes the key. Returns store.ErrNotFound if the key does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, s.adoptQuery("DELETE FROM kv WHERE key = ?"), key)
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Keys lists stored keys in name order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	if err := s.db.SelectContext(ctx, &keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// adoptQuery converts ? placeholders and excluded. to PostgreSQL syntax.
func (s *Store) adoptQuery(query string) string {
	if s.dbType != DBTypePostgres {
		return query
	}
	query = strings.ReplaceAll(query, "excluded.", "EXCLUDED.")

	result := make([]byte, 0, len(query)+10)
	paramNum := 1
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			result = append(result, query[i])
			continue
		}
		result = append(result, '$')
		result = append(result, strconv.Itoa(paramNum)...)
		paramNum++
	}
	return string(result)
}
