// audit_backend.go: Storage backends for the audit trail
//
// Two backends are provided: JSONL files (human-readable, grep-able,
// trivially shipped to log aggregators) and SQLite (queryable single-file
// audit database). The backend is selected from the configured output
// file's extension.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// auditBackend abstracts audit storage. Implementations must be safe for
// concurrent use.
type auditBackend interface {
	// Write persists a batch of audit events.
	Write(events []AuditEvent) error

	// Flush commits pending writes to durable storage.
	Flush() error

	// Close releases all resources. The backend must not be used afterwards.
	Close() error
}

// newAuditBackend selects a backend from the output file extension:
// .db means SQLite, everything else appends JSONL. A SQLite backend that
// fails to initialize degrades to JSONL beside the requested path, so audit
// setup never prevents application startup.
func newAuditBackend(config AuditConfig) (auditBackend, error) {
	if filepath.Ext(config.OutputFile) == ".db" {
		backend, err := newSQLiteBackend(config.OutputFile)
		if err == nil {
			return backend, nil
		}
		fallback := config.OutputFile[:len(config.OutputFile)-len(".db")] + ".jsonl"
		jsonl, jerr := newJSONLBackend(fallback)
		if jerr != nil {
			return nil, fmt.Errorf("all audit backends failed - SQLite: %w, JSONL: %v", err, jerr)
		}
		return jsonl, nil
	}
	return newJSONLBackend(config.OutputFile)
}

// jsonlAuditBackend appends one JSON object per line to a file.
type jsonlAuditBackend struct {
	file *os.File
	mu   sync.Mutex
}

func newJSONLBackend(path string) (*jsonlAuditBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304 -- path comes from AuditConfig
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &jsonlAuditBackend{file: file}, nil
}

func (j *jsonlAuditBackend) Write(events []AuditEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, e := range events {
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode audit event: %w", err)
		}
		if _, err := j.file.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("failed to append audit event: %w", err)
		}
	}
	return nil
}

func (j *jsonlAuditBackend) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Sync()
}

func (j *jsonlAuditBackend) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// sqliteAuditBackend stores audit events in a single-file SQLite database.
//
// WAL journaling keeps writers from blocking readers, a busy timeout avoids
// "database is locked" errors when several processes share the trail, and
// NORMAL synchronous mode trades at most the last second of events for a
// large write-throughput win, which is acceptable for audit data.
type sqliteAuditBackend struct {
	db     *sql.DB
	insert *sql.Stmt
	mu     sync.Mutex
	closed bool
}

func newSQLiteBackend(path string) (*sqliteAuditBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create audit database directory: %w", err)
	}

	db, err := sql.Open("sqlite3",
		fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}

	backend := &sqliteAuditBackend{db: db}
	if err := backend.initializeSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	insert, err := db.Prepare(`
		INSERT INTO ini_audit (timestamp, event, file_path, section, key, status, detail, process_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	backend.insert = insert

	return backend, nil
}

func (s *sqliteAuditBackend) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ini_audit (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		event TEXT NOT NULL,
		file_path TEXT,
		section TEXT,
		key TEXT,
		status TEXT,
		detail TEXT,
		process_id INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_ini_audit_timestamp ON ini_audit(timestamp);
	CREATE INDEX IF NOT EXISTS idx_ini_audit_event ON ini_audit(event);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	return nil
}

// Write inserts the batch inside one transaction so a crash never leaves a
// partially written batch behind.
func (s *sqliteAuditBackend) Write(events []AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("audit backend is closed")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	stmt := tx.Stmt(s.insert)
	for _, e := range events {
		if _, err := stmt.Exec(e.Timestamp, e.Event, e.FilePath, e.Section, e.Key, e.Status, e.Detail, e.ProcessID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert audit event: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit batch: %w", err)
	}
	return nil
}

// Flush is a no-op: each Write commits its own transaction.
func (s *sqliteAuditBackend) Flush() error {
	return nil
}

func (s *sqliteAuditBackend) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.insert != nil {
		_ = s.insert.Close()
	}
	return s.db.Close()
}
