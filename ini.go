// ini.go: Document model and load entry points
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"fmt"
	"os"
	"sort"

	"github.com/agilira/go-errors"
)

// GlobalSection is the name of the implicit section that holds properties
// declared before the first [section] header. It always exists, even when
// the source declares nothing outside explicit sections.
const GlobalSection = "global"

// Error codes for the ini library
const (
	ErrCodeFileNotFound     = "INI_FILE_NOT_FOUND"
	ErrCodeInvalidArgs      = "INI_INVALID_ARGS"
	ErrCodeConversionFailed = "INI_CONVERSION_FAILED"
	ErrCodeInvalidDefault   = "INI_INVALID_DEFAULT"
	ErrCodeInvalidConfig    = "INI_INVALID_CONFIG"
	ErrCodeAuditError       = "INI_AUDIT_ERROR"
	ErrCodeExportError      = "INI_EXPORT_ERROR"
)

// Section is a named group of key/value properties. Section names and keys
// are case-sensitive. Sections are immutable after parsing.
type Section struct {
	name   string
	values map[string]string
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Len returns the number of keys in the section.
func (s *Section) Len() int {
	return len(s.values)
}

// Keys returns the section's key names in sorted order. Insertion order is
// not preserved across duplicate-key overwrites, so sorted order is the only
// deterministic presentation.
func (s *Section) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the raw string value for key and whether it exists.
func (s *Section) Value(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Document is the root handle returned by a successful parse. It owns all
// sections and is immutable after construction, making it safe for
// unsynchronized concurrent reads.
type Document struct {
	sections map[string]*Section
	order    []string // section names in first-declaration order
}

func newDocument() *Document {
	doc := &Document{
		sections: make(map[string]*Section),
	}
	doc.section(GlobalSection)
	return doc
}

// section returns the named section, creating and appending it on first use.
// Only called during parsing; the Document is read-only afterwards.
func (d *Document) section(name string) *Section {
	if sec, ok := d.sections[name]; ok {
		return sec
	}
	sec := &Section{
		name:   name,
		values: make(map[string]string),
	}
	d.sections[name] = sec
	d.order = append(d.order, name)
	return sec
}

// Section returns the named section and whether it exists. An empty name
// resolves to the global section.
func (d *Document) Section(name string) (*Section, bool) {
	if name == "" {
		name = GlobalSection
	}
	sec, ok := d.sections[name]
	return sec, ok
}

// Sections returns all sections in first-declaration order, the global
// section first.
func (d *Document) Sections() []*Section {
	out := make([]*Section, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.sections[name])
	}
	return out
}

// Len returns the number of sections, including the global section.
func (d *Document) Len() int {
	return len(d.order)
}

// Load reads and parses an INI file. The only hard failure is an unreadable
// file; malformed content inside the file never aborts the parse.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is caller-provided intentionally
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeFileNotFound,
			fmt.Sprintf("cannot read ini file %q", path))
	}
	return Parse(data), nil
}

// LoadWithAudit is Load with an audit trail entry recorded for the load.
// A nil logger degrades to a plain Load.
func LoadWithAudit(path string, logger *AuditLogger) (*Document, error) {
	doc, err := Load(path)
	if logger != nil {
		if err != nil {
			logger.LogLoadFailure(path, err)
		} else {
			logger.LogLoad(path, doc.Len())
		}
	}
	return doc, err
}

// Parse builds a Document from raw INI text. It never fails: every in-text
// anomaly is resolved by the skip/merge/overwrite policies.
func Parse(data []byte) *Document {
	doc := newDocument()
	cursor := doc.sections[GlobalSection]

	for _, line := range logicalLines(data) {
		kind, name, value := classifyLine(line.text)
		switch kind {
		case lineSection:
			cursor = doc.section(name)
		case lineKeyValue:
			cursor.values[name] = value
		case lineMalformed:
			// Skipped. A single bad line must not abort the rest of the file.
		}
	}
	return doc
}
