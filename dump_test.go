// dump_test.go - Debug presentation and export tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestDumpTextLayout(t *testing.T) {
	doc := Parse([]byte("pre = 1\n[b]\ny = 2\nx = 3\n"))

	var buf bytes.Buffer
	if err := doc.Dump(&buf); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "[global]\npre = 1\n") {
		t.Errorf("dump must start with the global section:\n%s", out)
	}
	// Keys are sorted within a section.
	if !strings.Contains(out, "[b]\nx = 3\ny = 2\n") {
		t.Errorf("section b not dumped with sorted keys:\n%s", out)
	}
}

func TestDumpNilDocument(t *testing.T) {
	var doc *Document
	if err := doc.Dump(&bytes.Buffer{}); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestToMapCopies(t *testing.T) {
	doc := Parse([]byte("[a]\nx = 1\n"))

	m := doc.ToMap()
	m["a"]["x"] = "tampered"

	if got := mustValue(t, doc, "a", "x"); got != "1" {
		t.Errorf("document mutated through ToMap copy: %q", got)
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	doc := Parse([]byte("pre = 1\n[server]\nhost = localhost\nport = 8080\n"))

	var buf bytes.Buffer
	if err := doc.ExportYAML(&buf); err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var decoded map[string]map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(decoded, doc.ToMap()) {
		t.Errorf("yaml round trip = %v, want %v", decoded, doc.ToMap())
	}
	// Raw values stay strings in the export.
	if decoded["server"]["port"] != "8080" {
		t.Errorf("port exported as %q, want raw string", decoded["server"]["port"])
	}
}
