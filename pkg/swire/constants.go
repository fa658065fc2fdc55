// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

// Protocol timing, in unit-times. One bit occupies five units: a 0 is
// 1 unit LOW + 4 units HIGH, a 1 is 4 units LOW + 1 unit HIGH.
const (
	UNITS_PER_BIT = 5

	// Valid low-pulse windows
	ZERO_LOW_MIN = 0.5
	ZERO_LOW_MAX = 1.5
	ONE_LOW_MIN  = 3.5
	ONE_LOW_MAX  = 4.5

	// Midpoint between the two windows, used to pick the reported
	// bit value. Validity is decided by the windows above.
	BIT_THRESHOLD = 2.5

	// Maximum inter-edge gap inside a frame (~2 bit times)
	MAX_BIT_GAP = 10.0
)

// Command byte values (master frames with CMD=1)
const (
	CMD_START = 0x5A
	CMD_END   = 0xFF
)

// Frame sizes
const (
	MASTER_FRAME_BITS = 9 // 1 CMD bit + 8 data bits
	SLAVE_FRAME_BITS  = 8 // data bits only
)

// Consecutive timing errors that force a resynchronization
const MAX_TIMING_ERRORS = 3

// RW/ID byte layout
const (
	RW_READ_MASK  = 0x80
	SLAVE_ID_MASK = 0x7F
)

// Decoder States
const (
	STATE_IDLE            = iota // Waiting for START
	STATE_ADDR_FIRST             // First address byte
	STATE_ADDR_REST              // Remaining address bytes
	STATE_RW_ID                  // Read/Write + slave ID byte
	STATE_DATA                   // Master write data
	STATE_READ_TRIG              // Waiting for master trigger pulse
	STATE_READ_DATA              // Accumulating slave data bits
	STATE_SLAVE_END              // Slave end unit
	STATE_READ_TRIG_OR_END       // Next: trigger or END byte?
)

// Default run options
const (
	DEFAULT_BIT_RATE   = 960000
	DEFAULT_ADDR_BYTES = 3
)
