// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"fmt"
	"time"

	"github.com/hacst/swire/pkg/swire"
	"github.com/spf13/cobra"
)

var (
	showAll       bool
	statsInterval int
)

var errorDetectionCmd = &cobra.Command{
	Use:   "error_detection",
	Short: "Detect and analyze decode anomalies",
	Long: `Track SWire decode anomalies with statistics.

This command highlights each anomaly as it is detected:
  - Bad pulse timing (neither the 0 nor the 1 window fits)
  - Frame gaps (stalled line inside a byte or read sequence)
  - Protocol violations (unexpected START, invalid command, missing START)

By default only errors are displayed; use --show-all to display every
transaction event too. Statistics summaries are printed at configurable
intervals and once at the end of the capture.`,
	RunE: runErrorDetection,
}

func init() {
	rootCmd.AddCommand(errorDetectionCmd)
	errorDetectionCmd.Flags().BoolVar(&showAll, "show-all", false, "Show all events (not just errors)")
	errorDetectionCmd.Flags().IntVar(&statsInterval, "stats-interval", 10, "Statistics update interval (seconds)")
}

func runErrorDetection(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("Swiretap - Error Detection\n")
	fmt.Printf("Source: %s\n\n", connInfo)

	stats := swire.NewStatistics()
	interval := time.Duration(statsInterval) * time.Second
	lastStats := time.Now()

	sink := swire.SinkFunc(func(e swire.Event) {
		stats.Update(e)

		if e.Class == swire.EventError {
			fmt.Printf("\033[1;31m%s\033[0m\n", swire.FormatEvent(e))
		} else if showAll && e.Class != swire.EventBit && e.Class != swire.EventCmdBit {
			fmt.Println(swire.FormatEvent(e))
		}

		if interval > 0 && time.Since(lastStats) >= interval {
			fmt.Print(stats.String())
			lastStats = time.Now()
		}
	})

	decoder, err := swire.NewDecoder(opts.DecoderConfig(), sink)
	if err != nil {
		return err
	}
	if err := decoder.Run(src); err != nil {
		return err
	}

	fmt.Print(stats.String())
	return nil
}
