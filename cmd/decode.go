// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"fmt"

	"github.com/hacst/swire/pkg/swire"
	"github.com/spf13/cobra"
)

var (
	showBits   bool
	errorsOnly bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a capture and print protocol events",
	Long: `Decode SWire pulses into protocol events and print one line per event.

Bit-level annotations are hidden by default; --show-bits restores them.
With --errors-only, only timing, framing and protocol anomalies are shown.`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().BoolVar(&showBits, "show-bits", false, "Show bit-level events")
	decodeCmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "Show only error events")
}

func runDecode(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	src, closer, connInfo, err := OpenEdgeSource(opts)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	fmt.Printf("Swiretap - SWire Decode\n")
	fmt.Printf("Source: %s\n\n", connInfo)

	sink := swire.SinkFunc(func(e swire.Event) {
		if errorsOnly && e.Class != swire.EventError {
			return
		}
		if !showBits && (e.Class == swire.EventBit || e.Class == swire.EventCmdBit) {
			return
		}
		fmt.Println(swire.FormatEvent(e))
	})

	decoder, err := swire.NewDecoder(opts.DecoderConfig(), sink)
	if err != nil {
		return err
	}
	return decoder.Run(src)
}
