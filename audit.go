// audit.go: Audit trail for configuration loads and lookups
//
// The audit logger records which configuration files were loaded and which
// values were read, for accountability in production environments. Events
// are buffered and flushed in the background so the hot path stays cheap.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// AuditEvent is a single auditable event.
type AuditEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	FilePath  string    `json:"file_path,omitempty"`
	Section   string    `json:"section,omitempty"`
	Key       string    `json:"key,omitempty"`
	Status    string    `json:"status,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	ProcessID int       `json:"process_id"`
}

// AuditConfig configures the audit system. OutputFile selects the backend:
// a .db extension stores events in SQLite, anything else appends JSONL.
type AuditConfig struct {
	Enabled       bool          `json:"enabled"`
	OutputFile    string        `json:"output_file"`
	BufferSize    int           `json:"buffer_size"`
	FlushInterval time.Duration `json:"flush_interval"`
}

// DefaultAuditConfig returns a JSONL audit trail under the system temp
// directory with conservative buffering.
func DefaultAuditConfig() AuditConfig {
	return AuditConfig{
		Enabled:       true,
		OutputFile:    filepath.Join(os.TempDir(), "ini", "audit.jsonl"),
		BufferSize:    256,
		FlushInterval: 5 * time.Second,
	}
}

// AuditLogger buffers audit events and flushes them to a pluggable backend
// (JSONL or SQLite). All methods are safe for concurrent use. A disabled
// logger accepts events and drops them.
type AuditLogger struct {
	config  AuditConfig
	backend auditBackend
	buffer  []AuditEvent
	mu      sync.Mutex
	ticker  *time.Ticker
	stopCh  chan struct{}
	stopped sync.Once
	pid     int
}

// NewAuditLogger creates an audit logger with the given configuration and
// starts the background flush loop. A disabled configuration yields a
// logger whose methods are no-ops.
func NewAuditLogger(config AuditConfig) (*AuditLogger, error) {
	logger := &AuditLogger{
		config: config,
		pid:    os.Getpid(),
		stopCh: make(chan struct{}),
	}
	if !config.Enabled {
		return logger, nil
	}

	backend, err := newAuditBackend(config)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeAuditError, "failed to create audit backend")
	}
	logger.backend = backend

	if logger.config.BufferSize <= 0 {
		logger.config.BufferSize = 256
	}
	if logger.config.FlushInterval <= 0 {
		logger.config.FlushInterval = 5 * time.Second
	}
	logger.buffer = make([]AuditEvent, 0, logger.config.BufferSize)

	logger.ticker = time.NewTicker(logger.config.FlushInterval)
	go logger.flushLoop()

	return logger, nil
}

// LogLoad records a successful configuration load.
func (a *AuditLogger) LogLoad(path string, sections int) {
	a.log(AuditEvent{
		Event:    "config_load",
		FilePath: path,
		Detail:   "sections=" + strconv.Itoa(sections),
	})
}

// LogLoadFailure records a failed configuration load.
func (a *AuditLogger) LogLoadFailure(path string, err error) {
	a.log(AuditEvent{
		Event:    "config_load_failed",
		FilePath: path,
		Detail:   err.Error(),
	})
}

// LogLookup records a typed value lookup and its tri-state outcome.
func (a *AuditLogger) LogLookup(section, key string, status Status) {
	a.log(AuditEvent{
		Event:   "config_lookup",
		Section: section,
		Key:     key,
		Status:  status.String(),
	})
}

// log buffers one event, stamping it with the cached wall clock. The buffer
// is handed to the backend once full.
func (a *AuditLogger) log(e AuditEvent) {
	if a == nil || a.backend == nil {
		return
	}
	e.Timestamp = timecache.CachedTime()
	e.ProcessID = a.pid

	a.mu.Lock()
	a.buffer = append(a.buffer, e)
	full := len(a.buffer) >= a.config.BufferSize
	a.mu.Unlock()

	if full {
		_ = a.Flush()
	}
}

// Flush writes all buffered events to the backend and syncs it.
func (a *AuditLogger) Flush() error {
	if a == nil || a.backend == nil {
		return nil
	}
	a.mu.Lock()
	pending := a.buffer
	a.buffer = make([]AuditEvent, 0, a.config.BufferSize)
	a.mu.Unlock()

	if len(pending) > 0 {
		if err := a.backend.Write(pending); err != nil {
			return errors.Wrap(err, ErrCodeAuditError, "audit write failed")
		}
	}
	return a.backend.Flush()
}

// Close flushes pending events, stops the background loop and releases the
// backend. Close is idempotent.
func (a *AuditLogger) Close() error {
	if a == nil || a.backend == nil {
		return nil
	}
	var err error
	a.stopped.Do(func() {
		close(a.stopCh)
		a.ticker.Stop()
		if ferr := a.Flush(); ferr != nil {
			err = ferr
		}
		if cerr := a.backend.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}

func (a *AuditLogger) flushLoop() {
	for {
		select {
		case <-a.ticker.C:
			_ = a.Flush()
		case <-a.stopCh:
			return
		}
	}
}
