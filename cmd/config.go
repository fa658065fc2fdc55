// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"fmt"
	"os"

	"github.com/hacst/swire/pkg/swire"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Options is the resolved run configuration. A YAML file can preset any
// of these; command-line flags win over file values.
type Options struct {
	BitRate    int     `yaml:"bitrate"`
	AddrBytes  int     `yaml:"addr_bytes"`
	SampleRate float64 `yaml:"samplerate"`

	File     string `yaml:"file"`
	Port     string `yaml:"port"`
	Baud     int    `yaml:"baud"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
}

// DefaultOptions returns the built-in defaults
func DefaultOptions() Options {
	return Options{
		BitRate:   swire.DEFAULT_BIT_RATE,
		AddrBytes: swire.DEFAULT_ADDR_BYTES,
		Baud:      115200,
	}
}

// LoadOptions reads a YAML options file over the defaults
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config %s: %v", path, err)
	}
	return opts, nil
}

// DecoderConfig converts the options into a decoder configuration
func (o Options) DecoderConfig() swire.Config {
	return swire.Config{
		BitRate:   o.BitRate,
		AddrBytes: o.AddrBytes,
	}
}

// Validate checks everything that can be checked before opening the
// capture source
func (o Options) Validate() error {
	if err := o.DecoderConfig().Validate(); err != nil {
		return err
	}

	sources := 0
	if o.File != "" {
		sources++
	}
	if o.Port != "" {
		sources++
	}
	if o.URL != "" {
		sources++
	}
	if sources == 0 {
		return fmt.Errorf("no capture source: use --file, --port or --url")
	}
	if sources > 1 {
		return fmt.Errorf("conflicting capture sources: use only one of --file, --port, --url")
	}
	return nil
}

// resolveOptions merges the optional config file with the flags the
// user actually set on the command line.
func resolveOptions(cmd *cobra.Command) (Options, error) {
	opts := DefaultOptions()
	if configPath != "" {
		var err error
		opts, err = LoadOptions(configPath)
		if err != nil {
			return opts, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("bitrate") {
		opts.BitRate = bitRate
	}
	if flags.Changed("addr-bytes") {
		opts.AddrBytes = addrBytes
	}
	if flags.Changed("samplerate") {
		opts.SampleRate = sampleRate
	}
	if flags.Changed("file") {
		opts.File = captureFile
	}
	if flags.Changed("port") {
		opts.Port = portName
	}
	if flags.Changed("baud") {
		opts.Baud = baudRate
	}
	if flags.Changed("url") {
		opts.URL = wsURL
	}
	if flags.Changed("username") {
		opts.Username = wsUsername
	}

	return opts, opts.Validate()
}
