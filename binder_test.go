// binder_test.go - Binding tests for the fluent variable binder
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"net/netip"
	"testing"
)

func TestBinderAppliesAllKinds(t *testing.T) {
	doc := Parse([]byte(`
[server]
host = example.com
port = 8080
workers = 0x10
max = 18446744073709551615
debug = true
ratio = 0.75
listen = 127.0.0.1:9000
`))

	var (
		host    string
		port    int
		workers int64
		max     uint64
		debug   bool
		ratio   float64
		listen  netip.AddrPort
	)

	err := NewBinder(doc).
		BindString(&host, "server", "host", "localhost").
		BindInt(&port, "server", "port", 80).
		BindInt64(&workers, "server", "workers", 1).
		BindUint64(&max, "server", "max", 0).
		BindBool(&debug, "server", "debug", false).
		BindFloat64(&ratio, "server", "ratio", 1.0).
		BindAddrPort(&listen, "server", "listen", "0.0.0.0:0").
		Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if host != "example.com" {
		t.Errorf("host = %q", host)
	}
	if port != 8080 {
		t.Errorf("port = %d", port)
	}
	if workers != 16 {
		t.Errorf("workers = %d, want base-16 detection", workers)
	}
	if max != 18446744073709551615 {
		t.Errorf("max = %d", max)
	}
	if !debug {
		t.Error("debug = false")
	}
	if ratio != 0.75 {
		t.Errorf("ratio = %f", ratio)
	}
	if want := netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), 9000); listen != want {
		t.Errorf("listen = %v, want %v", listen, want)
	}
}

func TestBinderDefaults(t *testing.T) {
	doc := Parse([]byte("[empty]\n"))

	var (
		host   string
		port   int
		listen netip.AddrPort
	)
	err := NewBinder(doc).
		BindString(&host, "empty", "host", "localhost").
		BindInt(&port, "empty", "port", 80).
		BindAddrPort(&listen, "empty", "listen", "10.1.1.1:53").
		Apply()
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if host != "localhost" || port != 80 {
		t.Errorf("defaults = (%q, %d)", host, port)
	}
	if want := netip.AddrPortFrom(netip.MustParseAddr("10.1.1.1"), 53); listen != want {
		t.Errorf("listen default = %v, want %v", listen, want)
	}
}

func TestBinderConversionFailure(t *testing.T) {
	doc := Parse([]byte("[s]\nport = not-a-number\n"))

	var port int
	err := NewBinder(doc).
		BindInt(&port, "s", "port", 80).
		Apply()
	if err == nil {
		t.Fatal("expected error for unparseable bound value")
	}
	if port == 80 {
		t.Error("found-but-unconvertible must not fall back to the default")
	}
}

func TestBinderNilDocument(t *testing.T) {
	var host string
	err := NewBinder(nil).
		BindString(&host, "s", "host", "x").
		Apply()
	if err == nil {
		t.Fatal("expected error for nil document")
	}
}
