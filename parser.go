// parser.go: Line normalization and classification for INI text
//
// The parse pipeline is strictly sequential: physical lines are joined
// across backslash continuations, the joined result is trimmed and checked
// against the comment markers, and each surviving logical line is classified
// as a section header, a key=value pair, or malformed.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import "strings"

// logicalLine is one line after continuation joining and trimming, tagged
// with the physical line number (1-based) it started on.
type logicalLine struct {
	text string
	num  int
}

// logicalLines normalizes raw INI text into logical lines. Continuation
// joining happens before comment and blank classification, so a comment
// line ending in a backslash swallows the following physical line too.
func logicalLines(data []byte) []logicalLine {
	physical := strings.Split(string(data), "\n")
	logical := make([]logicalLine, 0, len(physical))

	for i := 0; i < len(physical); i++ {
		start := i + 1
		line := strings.TrimSuffix(physical[i], "\r")

		// Join continuations: drop the backslash, append the next physical
		// line directly, no separator inserted.
		for strings.HasSuffix(line, `\`) && i+1 < len(physical) {
			i++
			line = line[:len(line)-1] + strings.TrimSuffix(physical[i], "\r")
		}
		// A continuation on the final physical line has nothing to join.
		line = strings.TrimSuffix(line, `\`)

		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		logical = append(logical, logicalLine{text: line, num: start})
	}
	return logical
}

// lineKind is the classification of one logical line.
type lineKind int

const (
	lineSection lineKind = iota
	lineKeyValue
	lineMalformed
)

// classifyLine classifies a logical line. For section headers it returns
// the trimmed section name (an empty name is a literal empty-string section,
// not the global sentinel); for key=value lines it returns the trimmed key
// and value around the first '='.
func classifyLine(line string) (lineKind, string, string) {
	if len(line) >= 2 && line[0] == '[' && line[len(line)-1] == ']' {
		return lineSection, strings.TrimSpace(line[1 : len(line)-1]), ""
	}

	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return lineMalformed, "", ""
	}
	key := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	return lineKeyValue, key, value
}
