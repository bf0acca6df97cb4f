// audit_test.go - Audit trail tests for the JSONL and SQLite backends
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLogger(t *testing.T, outputFile string) *AuditLogger {
	t.Helper()
	logger, err := NewAuditLogger(AuditConfig{
		Enabled:       true,
		OutputFile:    outputFile,
		BufferSize:    16,
		FlushInterval: time.Hour, // flush manually in tests
	})
	if err != nil {
		t.Fatalf("NewAuditLogger failed: %v", err)
	}
	return logger
}

func readJSONLEvents(t *testing.T, path string) []AuditEvent {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open audit file: %v", err)
	}
	defer func() { _ = file.Close() }()

	var events []AuditEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("bad audit line %q: %v", scanner.Text(), err)
		}
		events = append(events, e)
	}
	return events
}

func TestAuditJSONLBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger := newTestLogger(t, path)

	logger.LogLoad("/etc/app.ini", 3)
	logger.LogLookup("server", "port", Found)
	logger.LogLookup("server", "missing", UsedDefault)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events := readJSONLEvents(t, path)
	if len(events) != 3 {
		t.Fatalf("event count = %d, want 3", len(events))
	}
	if events[0].Event != "config_load" || events[0].FilePath != "/etc/app.ini" {
		t.Errorf("load event = %+v", events[0])
	}
	if events[1].Status != "found" || events[2].Status != "default" {
		t.Errorf("lookup statuses = %q, %q", events[1].Status, events[2].Status)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("event timestamp not set")
	}
	if events[0].ProcessID != os.Getpid() {
		t.Errorf("process id = %d, want %d", events[0].ProcessID, os.Getpid())
	}
}

func TestAuditSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	logger := newTestLogger(t, path)

	logger.LogLoad("/etc/app.ini", 2)
	logger.LogLoadFailure("/etc/missing.ini", os.ErrNotExist)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open audit database: %v", err)
	}
	defer func() { _ = db.Close() }()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM ini_audit").Scan(&count); err != nil {
		t.Fatalf("failed to query audit table: %v", err)
	}
	if count != 2 {
		t.Errorf("audit rows = %d, want 2", count)
	}

	var event string
	if err := db.QueryRow("SELECT event FROM ini_audit WHERE file_path = ?", "/etc/missing.ini").Scan(&event); err != nil {
		t.Fatalf("failed to query failure event: %v", err)
	}
	if event != "config_load_failed" {
		t.Errorf("failure event = %q", event)
	}
}

func TestAuditBufferFlushOnFill(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	logger, err := NewAuditLogger(AuditConfig{
		Enabled:       true,
		OutputFile:    path,
		BufferSize:    2,
		FlushInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewAuditLogger failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.LogLookup("a", "x", Found)
	logger.LogLookup("a", "y", Found)

	// Buffer size reached, events must already be on disk without Close.
	events := readJSONLEvents(t, path)
	if len(events) != 2 {
		t.Errorf("event count before close = %d, want 2", len(events))
	}
}

func TestAuditDisabledLoggerIsNoop(t *testing.T) {
	logger, err := NewAuditLogger(AuditConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewAuditLogger failed: %v", err)
	}
	logger.LogLoad("anything", 1)
	if err := logger.Flush(); err != nil {
		t.Errorf("Flush on disabled logger = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close on disabled logger = %v", err)
	}
}

func TestLoadWithAudit(t *testing.T) {
	tmpDir := t.TempDir()
	confPath := filepath.Join(tmpDir, "app.ini")
	if err := os.WriteFile(confPath, []byte("[a]\nx=1\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	auditPath := filepath.Join(tmpDir, "audit.jsonl")
	logger := newTestLogger(t, auditPath)

	doc, err := LoadWithAudit(confPath, logger)
	if err != nil || doc == nil {
		t.Fatalf("LoadWithAudit failed: %v", err)
	}
	if _, err := LoadWithAudit(filepath.Join(tmpDir, "missing.ini"), logger); err == nil {
		t.Fatal("expected load failure")
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events := readJSONLEvents(t, auditPath)
	if len(events) != 2 {
		t.Fatalf("event count = %d, want 2", len(events))
	}
	if events[0].Event != "config_load" || events[1].Event != "config_load_failed" {
		t.Errorf("events = %q, %q", events[0].Event, events[1].Event)
	}
}

func TestLoadWithAuditNilLogger(t *testing.T) {
	tmpDir := t.TempDir()
	confPath := filepath.Join(tmpDir, "app.ini")
	if err := os.WriteFile(confPath, []byte("x=1\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadWithAudit(confPath, nil); err != nil {
		t.Errorf("nil logger must degrade to plain Load: %v", err)
	}
}
