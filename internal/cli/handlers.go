// Command handlers for the ini CLI
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"os"

	"github.com/agilira/go-errors"
	"github.com/agilira/orpheus/pkg/orpheus"

	"github.com/haipome/ini"
)

// handleGet looks up one key and prints the converted value.
func (m *Manager) handleGet(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	key := ctx.GetArg(1)
	if filePath == "" || key == "" {
		return errors.New(ini.ErrCodeInvalidArgs, "usage: ini get <file> <key> [--section=] [--type=] [--default=]")
	}

	doc, err := m.load(filePath)
	if err != nil {
		return err
	}

	section := ctx.GetFlagString("section")
	valueType := ctx.GetFlagString("type")
	def := ctx.GetFlagString("default")

	output, status, err := readTyped(doc, section, key, valueType, def)
	if m.auditLogger != nil {
		m.auditLogger.LogLookup(section, key, status)
	}
	if err != nil {
		return err
	}

	fmt.Println(output)
	if status == ini.UsedDefault {
		fmt.Fprintf(os.Stderr, "(default: key %q not found)\n", key)
	}
	return nil
}

// handleSections prints the section names in declaration order.
func (m *Manager) handleSections(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	if filePath == "" {
		return errors.New(ini.ErrCodeInvalidArgs, "usage: ini sections <file>")
	}

	doc, err := m.load(filePath)
	if err != nil {
		return err
	}
	for _, sec := range doc.Sections() {
		fmt.Printf("%s (%d keys)\n", sec.Name(), sec.Len())
	}
	return nil
}

// handleKeys prints the keys of one section.
func (m *Manager) handleKeys(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	if filePath == "" {
		return errors.New(ini.ErrCodeInvalidArgs, "usage: ini keys <file> [--section=]")
	}

	doc, err := m.load(filePath)
	if err != nil {
		return err
	}

	name := ctx.GetFlagString("section")
	sec, ok := doc.Section(name)
	if !ok {
		return errors.New(ini.ErrCodeInvalidArgs, fmt.Sprintf("section %q not found", name))
	}
	for _, key := range sec.Keys() {
		value, _ := sec.Value(key)
		fmt.Printf("%s = %s\n", key, value)
	}
	return nil
}

// handleDump prints the whole document as text or YAML.
func (m *Manager) handleDump(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	if filePath == "" {
		return errors.New(ini.ErrCodeInvalidArgs, "usage: ini dump <file> [--format=text|yaml]")
	}

	doc, err := m.load(filePath)
	if err != nil {
		return err
	}

	switch format := ctx.GetFlagString("format"); format {
	case "", "text":
		return doc.Dump(os.Stdout)
	case "yaml", "yml":
		return doc.ExportYAML(os.Stdout)
	default:
		return errors.New(ini.ErrCodeInvalidArgs, fmt.Sprintf("unsupported dump format %q", format))
	}
}

// handleLint reports tolerated anomalies; a clean file exits quietly.
func (m *Manager) handleLint(ctx *orpheus.Context) error {
	filePath := ctx.GetArg(0)
	if filePath == "" {
		return errors.New(ini.ErrCodeInvalidArgs, "usage: ini lint <file>")
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path is user-provided intentionally
	if err != nil {
		return errors.Wrap(err, ini.ErrCodeFileNotFound, fmt.Sprintf("cannot read %q", filePath))
	}

	diags := ini.Lint(data)
	for _, diag := range diags {
		fmt.Printf("%s: %s\n", filePath, diag)
	}
	if len(diags) > 0 {
		return errors.New(ini.ErrCodeInvalidConfig,
			fmt.Sprintf("%d finding(s) in %s", len(diags), filePath))
	}
	return nil
}

// load parses the file and records the access in the audit trail.
func (m *Manager) load(path string) (*ini.Document, error) {
	return ini.LoadWithAudit(path, m.auditLogger)
}
