// ini: command-line INI file inspection
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/haipome/ini/internal/cli"
)

func main() {
	manager := cli.NewManager()
	if err := manager.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ini: %v\n", err)
		os.Exit(1)
	}
}
