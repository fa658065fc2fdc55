// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker
//
// Swiretap - Telink SWire Protocol Decoder
//
// A CLI tool for decoding the Telink SWire single-wire debug protocol
// from logic captures into human-readable transaction events.

package main

import (
	"os"

	"github.com/hacst/swire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
