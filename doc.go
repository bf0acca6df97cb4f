// doc.go: Package documentation for the ini library
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package ini is a read-only parser and typed accessor layer for INI
// configuration files.
//
// A single call to Load (or Parse for in-memory text) builds an immutable
// Document: a set of named sections, each holding key/value properties.
// Properties declared before the first [section] header live in the implicit
// "global" section, which always exists. Parsing is single-pass and never
// fails on malformed content: comment lines (# or ; as the first non-blank
// character) are discarded, backslash line continuations are joined before
// classification, duplicate section headers merge, duplicate keys overwrite
// (last occurrence wins), and lines that are neither a section header nor a
// key=value pair are skipped. The only hard failure is an unreadable source
// file.
//
// Typed access follows a uniform tri-state contract. Every accessor takes a
// section name (empty resolves to the global section), a key and a
// caller-supplied default, and returns the converted value together with a
// Status:
//
//	Found       (0)  value present and converted
//	UsedDefault (1)  section or key absent, default returned
//	ConvError   (-1) value present but not convertible, or invalid arguments
//
// A value that exists but does not parse as the requested type is always an
// error, never a silent fallback to the default. Integer accessors detect
// the numeric base from the text: 0x/0X selects hexadecimal, a leading zero
// selects octal, anything else is decimal.
//
//	doc, err := ini.Load("app.ini")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	port, status, err := doc.ReadUint16("server", "port", 8080)
//
// Beyond the accessors the package provides a fluent Binder for populating
// plain variables in one pass, a Lint pass that reports structural
// anomalies the parser tolerates, YAML/text export for diagnostics, an
// optional audit trail (JSONL or SQLite backed) for configuration loads,
// and a ConfigManager that layers command-line flags over file values.
//
// A Document is immutable after construction and safe for unsynchronized
// concurrent reads.
package ini
