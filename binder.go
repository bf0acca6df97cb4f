// binder.go - Zero-reflection binding of INI values to plain variables
//
// The binder collects binding intents through a fluent API and applies them
// in a single pass over the Document. Targets are stored as unsafe.Pointer
// with a compile-time type discriminator, so applying a binding costs no
// reflection and no allocation; the public Bind* methods keep the surface
// fully type-safe.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ini

import (
	"fmt"
	"net/netip"
	"strconv"
	"unsafe"

	"github.com/agilira/go-errors"
)

// bindKind discriminates the target type of a binding.
type bindKind uint8

const (
	bindString bindKind = iota
	bindInt
	bindInt64
	bindUint64
	bindBool
	bindFloat64
	bindAddrPort
)

// binding is a single collected intent: where to write, where to read from,
// and what to fall back to. The default is kept in its textual form so every
// kind shares one representation.
type binding struct {
	target   unsafe.Pointer // #nosec G103 -- set only from typed pointers in the Bind* methods
	section  string
	key      string
	defValue string
	kind     bindKind
}

// Binder collects typed bindings against a Document and applies them in one
// pass. Bindings are validated fail-fast: the first conversion error aborts
// Apply and reports the offending section/key.
type Binder struct {
	doc      *Document
	bindings []binding
	err      error
}

// NewBinder creates a Binder for the given Document.
func NewBinder(doc *Document) *Binder {
	return &Binder{
		doc:      doc,
		bindings: make([]binding, 0, 16),
	}
}

// BindString binds a string value.
func (b *Binder) BindString(target *string, section, key, def string) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: def,
		kind:     bindString,
	})
	return b
}

// BindInt binds a platform int value.
func (b *Binder) BindInt(target *int, section, key string, def int) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: strconv.Itoa(def),
		kind:     bindInt,
	})
	return b
}

// BindInt64 binds an int64 value.
func (b *Binder) BindInt64(target *int64, section, key string, def int64) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: strconv.FormatInt(def, 10),
		kind:     bindInt64,
	})
	return b
}

// BindUint64 binds a uint64 value.
func (b *Binder) BindUint64(target *uint64, section, key string, def uint64) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: strconv.FormatUint(def, 10),
		kind:     bindUint64,
	})
	return b
}

// BindBool binds a boolean value.
func (b *Binder) BindBool(target *bool, section, key string, def bool) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: strconv.FormatBool(def),
		kind:     bindBool,
	})
	return b
}

// BindFloat64 binds a float64 value.
func (b *Binder) BindFloat64(target *float64, section, key string, def float64) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: strconv.FormatFloat(def, 'f', -1, 64),
		kind:     bindFloat64,
	})
	return b
}

// BindAddrPort binds an IPv4 address with port. The default is "ip:port"
// text, parsed through the same routine as a found value.
func (b *Binder) BindAddrPort(target *netip.AddrPort, section, key, def string) *Binder {
	b.bindings = append(b.bindings, binding{
		target:   unsafe.Pointer(target), // #nosec G103
		section:  section,
		key:      key,
		defValue: def,
		kind:     bindAddrPort,
	})
	return b
}

// Apply executes all collected bindings in a single pass. The first failure
// stops the pass and is returned wrapped with the offending key.
func (b *Binder) Apply() error {
	if b.err != nil {
		return b.err
	}
	if b.doc == nil {
		return errors.New(ErrCodeInvalidArgs, "nil document")
	}

	for _, bd := range b.bindings {
		if err := b.applyBinding(bd); err != nil {
			return errors.Wrap(err, ErrCodeInvalidConfig,
				fmt.Sprintf("failed to bind %q in section %q", bd.key, bd.section))
		}
	}
	return nil
}

// applyBinding resolves one binding and writes through the raw pointer.
func (b *Binder) applyBinding(bd binding) error {
	raw, ok, err := b.doc.lookup(bd.section, bd.key)
	if err != nil {
		return err
	}
	if !ok {
		raw = bd.defValue
	}

	switch bd.kind {
	case bindString:
		*(*string)(bd.target) = raw
	case bindInt:
		v, perr := parseSigned(raw, strconv.IntSize)
		if perr != nil {
			return perr
		}
		*(*int)(bd.target) = int(v)
	case bindInt64:
		v, perr := parseSigned(raw, 64)
		if perr != nil {
			return perr
		}
		*(*int64)(bd.target) = v
	case bindUint64:
		v, perr := parseUnsigned(raw, 64)
		if perr != nil {
			return perr
		}
		*(*uint64)(bd.target) = v
	case bindBool:
		v, perr := strconv.ParseBool(raw)
		if perr != nil {
			return perr
		}
		*(*bool)(bd.target) = v
	case bindFloat64:
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return perr
		}
		*(*float64)(bd.target) = v
	case bindAddrPort:
		v, perr := parseIPv4Port(raw)
		if perr != nil {
			return perr
		}
		*(*netip.AddrPort)(bd.target) = v
	default:
		return errors.New(ErrCodeInvalidArgs, fmt.Sprintf("unsupported binding kind: %d", bd.kind))
	}
	return nil
}
