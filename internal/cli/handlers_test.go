// CLI handler tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/haipome/ini"
)

func newAuditLogger(t *testing.T, path string) *ini.AuditLogger {
	t.Helper()
	logger, err := ini.NewAuditLogger(ini.AuditConfig{
		Enabled:       true,
		OutputFile:    path,
		BufferSize:    8,
		FlushInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewAuditLogger failed: %v", err)
	}
	return logger
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.ini")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

const sampleConfig = `
proc = demo

[server]
host = localhost
port = 0x1F90
debug = true
listen = 127.0.0.1:8080
`

func TestGetCommand(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	tests := []struct {
		name string
		args []string
	}{
		{"string value", []string{"get", path, "host", "--section", "server"}},
		{"hex int value", []string{"get", path, "port", "--section", "server", "--type", "int"}},
		{"bool value", []string{"get", path, "debug", "--section", "server", "--type", "bool"}},
		{"ipv4 value", []string{"get", path, "listen", "--section", "server", "--type", "ipv4"}},
		{"global value", []string{"get", path, "proc"}},
		{"missing key with default", []string{"get", path, "nosuch", "--default", "fallback"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewManager().Run(tt.args); err != nil {
				t.Errorf("Run(%v) failed: %v", tt.args, err)
			}
		})
	}
}

func TestGetCommandErrors(t *testing.T) {
	path := writeConfig(t, "[s]\nn = abc\n")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"get", filepath.Join(t.TempDir(), "none.ini"), "k"}},
		{"unconvertible value", []string{"get", path, "n", "--section", "s", "--type", "int"}},
		{"unknown type", []string{"get", path, "n", "--section", "s", "--type", "complex"}},
		{"missing arguments", []string{"get"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewManager().Run(tt.args); err == nil {
				t.Errorf("Run(%v) succeeded, want error", tt.args)
			}
		})
	}
}

func TestSectionsAndKeysCommands(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	if err := NewManager().Run([]string{"sections", path}); err != nil {
		t.Errorf("sections failed: %v", err)
	}
	if err := NewManager().Run([]string{"keys", path, "--section", "server"}); err != nil {
		t.Errorf("keys failed: %v", err)
	}
	if err := NewManager().Run([]string{"keys", path, "--section", "nosuch"}); err == nil {
		t.Error("keys on missing section succeeded, want error")
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	if err := NewManager().Run([]string{"dump", path}); err != nil {
		t.Errorf("text dump failed: %v", err)
	}
	if err := NewManager().Run([]string{"dump", path, "--format", "yaml"}); err != nil {
		t.Errorf("yaml dump failed: %v", err)
	}
	if err := NewManager().Run([]string{"dump", path, "--format", "toml"}); err == nil {
		t.Error("unsupported format succeeded, want error")
	}
}

func TestLintCommand(t *testing.T) {
	clean := writeConfig(t, "[a]\nx = 1\n")
	if err := NewManager().Run([]string{"lint", clean}); err != nil {
		t.Errorf("lint on clean file failed: %v", err)
	}

	dirty := writeConfig(t, "[a]\nmalformed line\n")
	if err := NewManager().Run([]string{"lint", dirty}); err == nil {
		t.Error("lint on dirty file succeeded, want findings error")
	}
}

func TestCLIWithAudit(t *testing.T) {
	tmpDir := t.TempDir()
	confPath := filepath.Join(tmpDir, "test.ini")
	if err := os.WriteFile(confPath, []byte("[a]\nx = 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	logger := newAuditLogger(t, filepath.Join(tmpDir, "audit.jsonl"))
	defer func() { _ = logger.Close() }()

	manager := NewManager().WithAudit(logger)
	if err := manager.Run([]string{"get", confPath, "x", "--section", "a"}); err != nil {
		t.Errorf("audited get failed: %v", err)
	}
}
