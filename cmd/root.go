// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Decode option flags
	bitRate    int
	addrBytes  int
	sampleRate float64
	configPath string

	// Capture source flags
	captureFile string
	portName    string
	baudRate    int

	// WebSocket source flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool
)

var rootCmd = &cobra.Command{
	Use:   "swiretap",
	Short: "Telink SWire protocol decoder",
	Long: `Swiretap - A CLI tool for decoding the Telink SWire single-wire debug
protocol (TLSR825x, TLSR826x, and related BLE SoCs) from logic captures.

SWire encodes each bit as five timing units on one wire; swiretap turns a
stream of edge timestamps into bits, bytes and START/ADDR/RW/DATA/END
transaction events, with timing and framing anomalies annotated inline.

Capture sources:
  VCD file:     --file capture.vcd
  Raw samples:  --file capture.bin --samplerate 48000000
  Serial:       --port /dev/ttyUSB0 [--baud 115200] --samplerate <hz>
  WebSocket:    --url ws://host/path [--username user] --samplerate <hz>

Raw sample streams carry one channel packed 8 samples per byte, LSB first.
For WebSocket authentication the password is read from the SWIRETAP_PASSWORD
environment variable, or prompted interactively if not set.`,
	Version: "1.0.0",
}

func init() {
	rootCmd.PersistentFlags().IntVar(&bitRate, "bitrate", 960000, "SWire bit rate (bits/sec)")
	rootCmd.PersistentFlags().IntVar(&addrBytes, "addr-bytes", 3, "Address width in bytes (2 or 3)")
	rootCmd.PersistentFlags().Float64Var(&sampleRate, "samplerate", 0, "Capture sample rate in Hz (required for raw/serial/WebSocket sources)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration file")

	rootCmd.PersistentFlags().StringVarP(&captureFile, "file", "f", "", "Capture file (.vcd or raw packed samples)")
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (serial only)")

	rootCmd.PersistentFlags().StringVarP(&wsURL, "url", "u", "", "WebSocket URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
