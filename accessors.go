// accessors.go: Typed accessor layer with a uniform tri-state contract
//
// Every accessor resolves a section (empty name means the global section)
// and a key, then converts the raw string value to the requested type.
// Absent section or key falls back to the caller-supplied default; a value
// that exists but does not convert is always an error, never a silent
// default.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/agilira/go-errors"
)

// Status is the tri-state outcome of a typed accessor. The numeric values
// are part of the contract: 0 found, 1 defaulted, -1 error.
type Status int

const (
	// Found means the value was present and converted successfully.
	Found Status = 0
	// UsedDefault means the section or key was absent and the default stands.
	UsedDefault Status = 1
	// ConvError means the value was present but not convertible, or the
	// call arguments were invalid.
	ConvError Status = -1
)

// String returns a human-readable status name for logs and diagnostics.
func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case UsedDefault:
		return "default"
	case ConvError:
		return "error"
	default:
		return "unknown"
	}
}

// lookup resolves section and key to the raw string value. The second
// return reports whether the key was present. A non-nil error means the
// call arguments were invalid, not that the key was missing.
func (d *Document) lookup(section, key string) (string, bool, error) {
	if d == nil {
		return "", false, errors.New(ErrCodeInvalidArgs, "nil document")
	}
	if key == "" {
		return "", false, errors.New(ErrCodeInvalidArgs, "empty key")
	}
	if section == "" {
		section = GlobalSection
	}
	sec, ok := d.sections[section]
	if !ok {
		return "", false, nil
	}
	v, ok := sec.values[key]
	return v, ok, nil
}

// ReadString returns the raw string value of section/key, or def when the
// section or key is absent.
func (d *Document) ReadString(section, key, def string) (string, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return "", ConvError, err
	}
	if !ok {
		return def, UsedDefault, nil
	}
	return raw, Found, nil
}

// ReadStringN copies the string value of section/key (or def when absent)
// into buf, truncated to len(buf)-1 bytes. The copy is NUL-terminated and
// any unused buffer space is zeroed, preserving the bounded-buffer contract
// of C-style consumers. Truncation is not an error.
func (d *Document) ReadStringN(section, key string, buf []byte, def string) (Status, error) {
	if len(buf) == 0 {
		return ConvError, errors.New(ErrCodeInvalidArgs, "empty destination buffer")
	}
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return ConvError, err
	}
	status := Found
	if !ok {
		raw = def
		status = UsedDefault
	}
	for i := range buf {
		buf[i] = 0
	}
	copy(buf[:len(buf)-1], raw)
	return status, nil
}

// detectBase splits a (sign-stripped) numeric literal into digits and base:
// 0x/0X selects 16, a leading 0 with more digits following selects 8,
// anything else is decimal.
func detectBase(s string) (string, int) {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:], 16
	}
	if len(s) > 1 && s[0] == '0' {
		return s[1:], 8
	}
	return s, 10
}

func parseSigned(raw string, bits int) (int64, error) {
	sign := ""
	s := raw
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	digits, base := detectBase(s)
	return strconv.ParseInt(sign+digits, base, bits)
}

func parseUnsigned(raw string, bits int) (uint64, error) {
	digits, base := detectBase(raw)
	return strconv.ParseUint(digits, base, bits)
}

// readSigned is the shared path for all signed integer widths.
func (d *Document) readSigned(section, key string, def int64, bits int) (int64, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return 0, ConvError, err
	}
	if !ok {
		return def, UsedDefault, nil
	}
	v, perr := parseSigned(raw, bits)
	if perr != nil {
		return 0, ConvError, errors.Wrap(perr, ErrCodeConversionFailed,
			fmt.Sprintf("value %q of key %q is not a valid int%d", raw, key, bits))
	}
	return v, Found, nil
}

// readUnsigned is the shared path for all unsigned integer widths.
func (d *Document) readUnsigned(section, key string, def uint64, bits int) (uint64, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return 0, ConvError, err
	}
	if !ok {
		return def, UsedDefault, nil
	}
	v, perr := parseUnsigned(raw, bits)
	if perr != nil {
		return 0, ConvError, errors.Wrap(perr, ErrCodeConversionFailed,
			fmt.Sprintf("value %q of key %q is not a valid uint%d", raw, key, bits))
	}
	return v, Found, nil
}

// ReadInt reads a platform int value with automatic base detection.
func (d *Document) ReadInt(section, key string, def int) (int, Status, error) {
	v, status, err := d.readSigned(section, key, int64(def), strconv.IntSize)
	return int(v), status, err
}

// ReadInt8 reads an int8 value with automatic base detection.
func (d *Document) ReadInt8(section, key string, def int8) (int8, Status, error) {
	v, status, err := d.readSigned(section, key, int64(def), 8)
	return int8(v), status, err
}

// ReadInt16 reads an int16 value with automatic base detection.
func (d *Document) ReadInt16(section, key string, def int16) (int16, Status, error) {
	v, status, err := d.readSigned(section, key, int64(def), 16)
	return int16(v), status, err
}

// ReadInt32 reads an int32 value with automatic base detection.
func (d *Document) ReadInt32(section, key string, def int32) (int32, Status, error) {
	v, status, err := d.readSigned(section, key, int64(def), 32)
	return int32(v), status, err
}

// ReadInt64 reads an int64 value with automatic base detection.
func (d *Document) ReadInt64(section, key string, def int64) (int64, Status, error) {
	return d.readSigned(section, key, def, 64)
}

// ReadUint reads a platform uint value with automatic base detection.
func (d *Document) ReadUint(section, key string, def uint) (uint, Status, error) {
	v, status, err := d.readUnsigned(section, key, uint64(def), strconv.IntSize)
	return uint(v), status, err
}

// ReadUint8 reads a uint8 value with automatic base detection.
func (d *Document) ReadUint8(section, key string, def uint8) (uint8, Status, error) {
	v, status, err := d.readUnsigned(section, key, uint64(def), 8)
	return uint8(v), status, err
}

// ReadUint16 reads a uint16 value with automatic base detection.
func (d *Document) ReadUint16(section, key string, def uint16) (uint16, Status, error) {
	v, status, err := d.readUnsigned(section, key, uint64(def), 16)
	return uint16(v), status, err
}

// ReadUint32 reads a uint32 value with automatic base detection.
func (d *Document) ReadUint32(section, key string, def uint32) (uint32, Status, error) {
	v, status, err := d.readUnsigned(section, key, uint64(def), 32)
	return uint32(v), status, err
}

// ReadUint64 reads a uint64 value with automatic base detection.
func (d *Document) ReadUint64(section, key string, def uint64) (uint64, Status, error) {
	return d.readUnsigned(section, key, def, 64)
}

// ReadFloat32 reads a single-precision float using standard decimal or
// scientific notation.
func (d *Document) ReadFloat32(section, key string, def float32) (float32, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return 0, ConvError, err
	}
	if !ok {
		return def, UsedDefault, nil
	}
	v, perr := strconv.ParseFloat(raw, 32)
	if perr != nil {
		return 0, ConvError, errors.Wrap(perr, ErrCodeConversionFailed,
			fmt.Sprintf("value %q of key %q is not a valid float32", raw, key))
	}
	return float32(v), Found, nil
}

// ReadFloat64 reads a double-precision float using standard decimal or
// scientific notation.
func (d *Document) ReadFloat64(section, key string, def float64) (float64, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return 0, ConvError, err
	}
	if !ok {
		return def, UsedDefault, nil
	}
	v, perr := strconv.ParseFloat(raw, 64)
	if perr != nil {
		return 0, ConvError, errors.Wrap(perr, ErrCodeConversionFailed,
			fmt.Sprintf("value %q of key %q is not a valid float64", raw, key))
	}
	return v, Found, nil
}

// ReadBool reads a boolean value. The raw text is matched case-insensitively
// against "true" and "false"; any other content leaves the default standing
// rather than raising a conversion error.
func (d *Document) ReadBool(section, key string, def bool) (bool, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return false, ConvError, err
	}
	if !ok {
		return def, UsedDefault, nil
	}
	switch {
	case strings.EqualFold(raw, "true"):
		return true, Found, nil
	case strings.EqualFold(raw, "false"):
		return false, Found, nil
	default:
		return def, UsedDefault, nil
	}
}

// ReadIPv4 reads an IPv4 address with port, accepting "ip:port" or
// "ip port". The default is itself "ip:port" text and, when used, is parsed
// through the same routine, so a malformed default is also an error.
func (d *Document) ReadIPv4(section, key, def string) (netip.AddrPort, Status, error) {
	raw, ok, err := d.lookup(section, key)
	if err != nil {
		return netip.AddrPort{}, ConvError, err
	}
	if !ok {
		ap, perr := parseIPv4Port(def)
		if perr != nil {
			return netip.AddrPort{}, ConvError, errors.Wrap(perr, ErrCodeInvalidDefault,
				fmt.Sprintf("default %q is not a valid ipv4 address with port", def))
		}
		return ap, UsedDefault, nil
	}
	ap, perr := parseIPv4Port(raw)
	if perr != nil {
		return netip.AddrPort{}, ConvError, errors.Wrap(perr, ErrCodeConversionFailed,
			fmt.Sprintf("value %q of key %q is not a valid ipv4 address with port", raw, key))
	}
	return ap, Found, nil
}

// parseIPv4Port parses "ip:port" or "ip port" into a netip.AddrPort. The
// address must be dotted-quad IPv4 and the port an unsigned 16-bit integer.
func parseIPv4Port(s string) (netip.AddrPort, error) {
	idx := strings.IndexAny(s, ": ")
	if idx < 0 {
		return netip.AddrPort{}, fmt.Errorf("missing port separator in %q", s)
	}
	host := strings.TrimSpace(s[:idx])
	portText := strings.TrimSpace(s[idx+1:])

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid ipv4 address %q: %w", host, err)
	}
	if !addr.Is4() {
		return netip.AddrPort{}, fmt.Errorf("address %q is not dotted-quad ipv4", host)
	}
	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid port %q: %w", portText, err)
	}
	return netip.AddrPortFrom(addr, uint16(port)), nil
}
