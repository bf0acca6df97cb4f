// Typed lookup helpers shared by CLI handlers
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"
	"strconv"

	"github.com/agilira/go-errors"

	"github.com/haipome/ini"
)

// readTyped performs one typed lookup and formats the result for printing.
// The default arrives as text (CLI flags are strings) and is converted to
// the requested type before the lookup, so a malformed default fails the
// same way a malformed value does.
func readTyped(doc *ini.Document, section, key, valueType, def string) (string, ini.Status, error) {
	switch valueType {
	case "", "string":
		v, status, err := doc.ReadString(section, key, def)
		return v, status, err

	case "int", "int64":
		defVal, perr := parseDefaultInt(def)
		if perr != nil {
			return "", ini.ConvError, perr
		}
		v, status, err := doc.ReadInt64(section, key, defVal)
		return strconv.FormatInt(v, 10), status, err

	case "uint", "uint64":
		defVal, perr := parseDefaultUint(def)
		if perr != nil {
			return "", ini.ConvError, perr
		}
		v, status, err := doc.ReadUint64(section, key, defVal)
		return strconv.FormatUint(v, 10), status, err

	case "float", "float64":
		defVal := 0.0
		if def != "" {
			var perr error
			defVal, perr = strconv.ParseFloat(def, 64)
			if perr != nil {
				return "", ini.ConvError, errors.Wrap(perr, ini.ErrCodeInvalidDefault,
					fmt.Sprintf("default %q is not a valid float", def))
			}
		}
		v, status, err := doc.ReadFloat64(section, key, defVal)
		return strconv.FormatFloat(v, 'g', -1, 64), status, err

	case "bool":
		defVal := false
		if def != "" {
			var perr error
			defVal, perr = strconv.ParseBool(def)
			if perr != nil {
				return "", ini.ConvError, errors.Wrap(perr, ini.ErrCodeInvalidDefault,
					fmt.Sprintf("default %q is not a valid bool", def))
			}
		}
		v, status, err := doc.ReadBool(section, key, defVal)
		return strconv.FormatBool(v), status, err

	case "ipv4":
		v, status, err := doc.ReadIPv4(section, key, def)
		if err != nil {
			return "", status, err
		}
		return v.String(), status, nil

	default:
		return "", ini.ConvError, errors.New(ini.ErrCodeInvalidArgs,
			fmt.Sprintf("unsupported value type %q", valueType))
	}
}

func parseDefaultInt(def string) (int64, error) {
	if def == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(def, 0, 64)
	if err != nil {
		return 0, errors.Wrap(err, ini.ErrCodeInvalidDefault,
			fmt.Sprintf("default %q is not a valid integer", def))
	}
	return v, nil
}

func parseDefaultUint(def string) (uint64, error) {
	if def == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(def, 0, 64)
	if err != nil {
		return 0, errors.Wrap(err, ini.ErrCodeInvalidDefault,
			fmt.Sprintf("default %q is not a valid unsigned integer", def))
	}
	return v, nil
}
