package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mutecomm/go-sqlcipher/v4"
	_ "modernc.org/sqlite"
)

const (
	// driverEncrypted is registered by go-sqlcipher
	driverEncrypted = "sqlite3"
	// driverPlain is registered by modernc.org/sqlite
	driverPlain = "sqlite"
)

// ErrAlreadyRunning is returned when another process holds the database
var ErrAlreadyRunning = errors.New("pomodolist is already running against this database")

type DB struct {
	*sql.DB
}

// Open opens the SQLite database at dbPath. A non-empty password opens it
// through SQLCipher; an empty password opens a plain database.
func Open(dbPath, password string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	driver, connStr := driverPlain, dbPath
	if password != "" {
		driver = driverEncrypted
		connStr = fmt.Sprintf("%s?_key=%s", dbPath, url.QueryEscape(password))
	}

	sqlDB, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection holds the exclusive lock for the life of the process
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	// Single process per database: the lock is held until Close. It must be
	// set before the switch to WAL.
	if _, err := sqlDB.Exec("PRAGMA locking_mode = EXCLUSIVE"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to set locking mode: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, lockError("failed to enable WAL mode", err)
	}

	// An empty exclusive transaction takes the lock now; locking_mode keeps
	// it after COMMIT
	if _, err := sqlDB.Exec("BEGIN EXCLUSIVE"); err != nil {
		sqlDB.Close()
		return nil, lockError("failed to lock database", err)
	}
	if _, err := sqlDB.Exec("COMMIT"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to lock database: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}

// lockError maps SQLITE_BUSY/SQLITE_LOCKED to ErrAlreadyRunning
func lockError(msg string, err error) error {
	text := strings.ToLower(err.Error())
	if strings.Contains(text, "locked") || strings.Contains(text, "busy") {
		return fmt.Errorf("%w (%s)", ErrAlreadyRunning, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
