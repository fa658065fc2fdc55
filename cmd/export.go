// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"fmt"
	"os"

	"github.com/hacst/swire/pkg/swire"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Decode a capture and export the events as CBOR",
	Long: `Decode a capture and write the full event stream to a CBOR file.

Each event is one CBOR record with start sample, end sample, class and
labels, in emission order, for downstream machine processing.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (required)")
	exportCmd.MarkFlagRequired("out")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	var events swire.Collector
	decoder, err := swire.NewDecoder(opts.DecoderConfig(), &events)
	if err != nil {
		return err
	}
	if err := decoder.Run(src); err != nil {
		return err
	}

	out, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", exportOut, err)
	}
	defer out.Close()

	if err := swire.WriteEvents(out, events.Events); err != nil {
		return err
	}

	fmt.Printf("Exported %d events from %s to %s\n", len(events.Events), connInfo, exportOut)
	return nil
}
