// validation.go: Structural lint for INI text
//
// The parser deliberately skips anything it cannot classify; Lint is the
// opt-in surface that reports those tolerated anomalies so they can be
// fixed at the source. Linting never affects parsing.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira System Libraries
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"fmt"
	"strings"
	"unicode"
)

// Diagnostic is one non-fatal finding from Lint, located by the physical
// line number the offending logical line started on.
type Diagnostic struct {
	Line    int
	Message string
}

// String formats the diagnostic as "line N: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Lint reports structural anomalies the parser would silently tolerate:
// malformed lines, suspicious section headers, and keys containing control
// or non-printable characters. An empty result means the text parses
// without any skipped content.
func Lint(data []byte) []Diagnostic {
	var diags []Diagnostic

	for _, line := range logicalLines(data) {
		kind, key, _ := classifyLine(line.text)
		switch kind {
		case lineSection:
			if msg := checkSectionName(key); msg != "" {
				diags = append(diags, Diagnostic{Line: line.num, Message: msg})
			}
		case lineKeyValue:
			if msg := checkKey(key); msg != "" {
				diags = append(diags, Diagnostic{Line: line.num, Message: msg})
			}
		case lineMalformed:
			diags = append(diags, Diagnostic{
				Line:    line.num,
				Message: fmt.Sprintf("skipped line %q: neither section header nor key=value", line.text),
			})
		}
	}
	return diags
}

// checkSectionName flags section names the parser accepts but that usually
// indicate a typo, such as nested brackets or an empty name.
func checkSectionName(name string) string {
	if name == "" {
		return "empty section name: declares a literal empty-string section, not the global section"
	}
	if strings.ContainsAny(name, "[]") {
		return fmt.Sprintf("section name %q contains brackets: nested sections are not supported", name)
	}
	return ""
}

// checkKey flags keys containing characters that almost always come from a
// corrupted or hostile source. Null bytes and control characters are called
// out explicitly; any other non-printable rune is reported generically.
func checkKey(key string) string {
	if key == "" {
		return "empty key name"
	}
	for _, char := range key {
		if char == '\x00' {
			return fmt.Sprintf("key %q contains a null byte", key)
		}
		if char < 32 && char != '\t' {
			return fmt.Sprintf("key %q contains a control character", key)
		}
		if !unicode.IsPrint(char) && char != '\t' {
			return fmt.Sprintf("key %q contains a non-printable character", key)
		}
	}
	return ""
}
