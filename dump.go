// dump.go: Debug presentation and export of a parsed Document
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"fmt"
	"io"

	"github.com/agilira/go-errors"
	"go.yaml.in/yaml/v3"
)

// Dump writes a human-readable tree of the Document to w: sections in
// declaration order, keys sorted within each section. This is a pure
// read-only traversal for diagnostics.
func (d *Document) Dump(w io.Writer) error {
	if d == nil {
		return errors.New(ErrCodeInvalidArgs, "nil document")
	}
	for _, sec := range d.Sections() {
		if _, err := fmt.Fprintf(w, "[%s]\n", sec.Name()); err != nil {
			return errors.Wrap(err, ErrCodeExportError, "dump write failed")
		}
		for _, key := range sec.Keys() {
			value, _ := sec.Value(key)
			if _, err := fmt.Fprintf(w, "%s = %s\n", key, value); err != nil {
				return errors.Wrap(err, ErrCodeExportError, "dump write failed")
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return errors.Wrap(err, ErrCodeExportError, "dump write failed")
		}
	}
	return nil
}

// ToMap returns the Document as a section -> key -> raw value map. The maps
// are fresh copies; mutating them does not affect the Document.
func (d *Document) ToMap() map[string]map[string]string {
	if d == nil {
		return nil
	}
	out := make(map[string]map[string]string, len(d.order))
	for _, sec := range d.Sections() {
		values := make(map[string]string, sec.Len())
		for k, v := range sec.values {
			values[k] = v
		}
		out[sec.Name()] = values
	}
	return out
}

// ExportYAML writes the Document to w as a two-level YAML mapping of
// sections to key/value pairs. Raw values are emitted as strings, exactly
// as they appeared in the source.
func (d *Document) ExportYAML(w io.Writer) error {
	if d == nil {
		return errors.New(ErrCodeInvalidArgs, "nil document")
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.ToMap()); err != nil {
		return errors.Wrap(err, ErrCodeExportError, "yaml export failed")
	}
	return enc.Close()
}
