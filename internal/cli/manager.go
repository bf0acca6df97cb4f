// Command-line interface for the ini library
//
// This package implements the `ini` tool on the Orpheus framework:
// typed lookups, section/key listing, document dumps and structural lint
// for INI files, all built on the read-only parser in the root package.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"github.com/agilira/orpheus/pkg/orpheus"

	"github.com/haipome/ini"
)

// Manager wires the Orpheus application to the ini library. An optional
// audit logger records every file access the tool performs.
type Manager struct {
	app         *orpheus.App
	auditLogger *ini.AuditLogger
}

// NewManager creates the CLI manager with the full command tree.
func NewManager() *Manager {
	app := orpheus.New("ini").
		SetDescription("Read-only INI file inspection with typed lookups").
		SetVersion("1.0.0")

	manager := &Manager{app: app}
	manager.setupCommands()
	return manager
}

// WithAudit enables audit logging for all CLI operations.
func (m *Manager) WithAudit(auditLogger *ini.AuditLogger) *Manager {
	m.auditLogger = auditLogger
	return m
}

// Run executes the CLI application with the provided arguments.
func (m *Manager) Run(args []string) error {
	return m.app.Run(args)
}

// setupCommands registers the command tree.
func (m *Manager) setupCommands() {
	// get <file> <key> [--section=] [--type=string] [--default=]
	getCmd := orpheus.NewCommand("get", "Look up a typed value").
		AddFlag("section", "s", "", "Section name (empty selects the global section)").
		AddFlag("type", "t", "string", "Value type (string|int|int64|uint|uint64|float|bool|ipv4)").
		AddFlag("default", "d", "", "Default value used when the key is absent").
		SetHandler(m.handleGet)
	m.app.AddCommand(getCmd)

	// sections <file>
	sectionsCmd := orpheus.NewCommand("sections", "List sections in declaration order").
		SetHandler(m.handleSections)
	m.app.AddCommand(sectionsCmd)

	// keys <file> [--section=]
	keysCmd := orpheus.NewCommand("keys", "List keys of a section").
		AddFlag("section", "s", "", "Section name (empty selects the global section)").
		SetHandler(m.handleKeys)
	m.app.AddCommand(keysCmd)

	// dump <file> [--format=text|yaml]
	dumpCmd := orpheus.NewCommand("dump", "Dump the parsed document").
		AddFlag("format", "f", "text", "Output format (text|yaml)").
		SetHandler(m.handleDump)
	m.app.AddCommand(dumpCmd)

	// lint <file>
	lintCmd := orpheus.NewCommand("lint", "Report structural anomalies the parser tolerates").
		SetHandler(m.handleLint)
	m.app.AddCommand(lintCmd)
}
