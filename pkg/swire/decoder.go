// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoSampleRate is returned when decoding is attempted without a
// known sample rate. This is the only fatal decode condition; every
// in-band anomaly is reported as an EventError annotation instead.
var ErrNoSampleRate = errors.New("cannot decode without a sample rate")

// EdgeSource delivers a strictly ordered stream of signal transitions
// as sample indices. WaitFalling and WaitRising block until the next
// edge of the requested polarity and return io.EOF at end of capture.
type EdgeSource interface {
	SampleRate() (float64, error)
	WaitFalling() (int64, error)
	WaitRising() (int64, error)
}

// Config holds the run-scoped decode options
type Config struct {
	BitRate   int // Protocol bit rate in bits/sec
	AddrBytes int // Address width in bytes (2 or 3)
}

// DefaultConfig returns the standard SWire options
func DefaultConfig() Config {
	return Config{
		BitRate:   DEFAULT_BIT_RATE,
		AddrBytes: DEFAULT_ADDR_BYTES,
	}
}

// Validate checks the config for a decode run
func (c Config) Validate() error {
	if c.BitRate <= 0 {
		return fmt.Errorf("invalid bit rate: %d", c.BitRate)
	}
	if c.AddrBytes != 2 && c.AddrBytes != 3 {
		return fmt.Errorf("invalid address width: %d bytes (must be 2 or 3)", c.AddrBytes)
	}
	return nil
}

// bitSpan is one classified bit with its fixed 5-unit sample slot
type bitSpan struct {
	value int
	start int64
	end   int64
}

// Decoder turns edge timestamps into SWire protocol events. All decode
// state lives in the instance; one Decoder serves exactly one run.
type Decoder struct {
	cfg  Config
	sink EventSink

	unit float64 // samples per protocol unit

	state     int
	bits      []bitSpan // bits of the frame being assembled
	addr      uint32
	addrStart int64
	addrLeft  int
	isRead    bool
	errors    int

	lastRise int64
	haveRise bool
}

// NewDecoder creates a decoder emitting events to sink
func NewDecoder(cfg Config, sink EventSink) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{
		cfg:   cfg,
		sink:  sink,
		state: STATE_IDLE,
		bits:  make([]bitSpan, 0, MASTER_FRAME_BITS),
	}, nil
}

// resync drops all in-progress framing state. The triggering anomaly
// has already been annotated; resync itself emits nothing.
func (d *Decoder) resync() {
	d.bits = d.bits[:0]
	d.errors = 0
	d.state = STATE_IDLE
	d.isRead = false
}

func (d *Decoder) put(ss, es int64, class EventClass, labels ...string) {
	d.sink.Put(Event{Start: ss, End: es, Class: class, Labels: labels})
}

// Run decodes pulses from src until it is exhausted. A clean end of
// capture returns nil; an unfinished trailing transaction is dropped
// without an event. Any other source failure is returned as-is.
func (d *Decoder) Run(src EdgeSource) error {
	rate, err := src.SampleRate()
	if err != nil {
		return err
	}
	if rate <= 0 {
		return ErrNoSampleRate
	}
	d.unit = rate / (float64(d.cfg.BitRate) * UNITS_PER_BIT)

	for {
		fall, err := src.WaitFalling()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		// Framing error: gap too long within a byte or during a
		// read sequence. Resync before touching the new pulse.
		inFrame := len(d.bits) > 0 || d.state == STATE_READ_DATA || d.state == STATE_SLAVE_END
		if d.haveRise && inFrame && float64(fall-d.lastRise) > d.unit*MAX_BIT_GAP {
			d.put(d.lastRise, fall, EventError, "Frame gap", "GAP")
			d.resync()
		}

		rise, err := src.WaitRising()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		lowTime := float64(rise - fall)
		d.lastRise = rise
		d.haveRise = true

		isValid0 := lowTime >= d.unit*ZERO_LOW_MIN && lowTime <= d.unit*ZERO_LOW_MAX
		isValid1 := lowTime >= d.unit*ONE_LOW_MIN && lowTime <= d.unit*ONE_LOW_MAX

		if !isValid0 && !isValid1 {
			d.put(fall, rise, EventError, "Bad timing", "TIME")
			d.errors++
			if d.errors >= MAX_TIMING_ERRORS {
				d.resync()
			}
			continue
		}
		d.errors = 0

		bit := 0
		if lowTime > d.unit*BIT_THRESHOLD {
			bit = 1
		}
		// Fixed slot width regardless of the measured pulse
		bitEnd := int64(float64(fall) + d.unit*UNITS_PER_BIT)

		d.processPulse(bit, fall, rise, bitEnd)
	}
}

// processPulse applies one classified pulse to the transaction state
// machine. Every state handles every possible pulse.
func (d *Decoder) processPulse(bit int, fall, rise, bitEnd int64) {
	switch d.state {
	case STATE_READ_TRIG:
		// The trigger is structurally a short LOW unit; the
		// classified value is not used.
		d.put(fall, rise, EventTrigger, "Trigger", "T", ">")
		d.state = STATE_READ_DATA
		return

	case STATE_READ_DATA:
		d.put(fall, bitEnd, EventBit, fmt.Sprintf("%d", bit))
		d.bits = append(d.bits, bitSpan{bit, fall, bitEnd})
		if len(d.bits) == SLAVE_FRAME_BITS {
			d.decodeSlaveByte()
			d.state = STATE_SLAVE_END
		}
		return

	case STATE_SLAVE_END:
		// Spacer unit between slave byte and what follows
		d.state = STATE_READ_TRIG_OR_END
		return

	case STATE_READ_TRIG_OR_END:
		if bit == 1 {
			// CMD=1: an END byte is starting, switch to the
			// 9-bit master frame path
			d.put(fall, bitEnd, EventCmdBit, fmt.Sprintf("%d", bit))
			d.bits = append(d.bits, bitSpan{bit, fall, bitEnd})
			d.state = STATE_DATA
		} else {
			d.put(fall, rise, EventTrigger, "Trigger", "T", ">")
			d.state = STATE_READ_DATA
		}
		return
	}

	// Master byte handling: the frame's end unit completes the byte
	if len(d.bits) == MASTER_FRAME_BITS {
		d.decodeMasterByte()
		return
	}

	class := EventBit
	if len(d.bits) == 0 {
		class = EventCmdBit
	}
	d.put(fall, bitEnd, class, fmt.Sprintf("%d", bit))
	d.bits = append(d.bits, bitSpan{bit, fall, bitEnd})
}

// decodeSlaveByte reduces 8 accumulated bits to one slave data byte
func (d *Decoder) decodeSlaveByte() {
	byteVal := 0
	for i := 0; i < SLAVE_FRAME_BITS; i++ {
		byteVal = byteVal<<1 | d.bits[i].value
	}
	ss, es := d.bits[0].start, d.bits[SLAVE_FRAME_BITS-1].end
	d.put(ss, es, EventByte, fmt.Sprintf("0x%02X", byteVal))
	d.put(ss, es, EventDataSlave, fmt.Sprintf("0x%02X", byteVal))
	d.bits = d.bits[:0]
}

// decodeMasterByte reduces 9 accumulated bits (CMD + 8 data, MSB
// first) to one byte and interprets it in the current state.
func (d *Decoder) decodeMasterByte() {
	cmd := d.bits[0].value
	byteVal := 0
	for i := 0; i < MASTER_FRAME_BITS-1; i++ {
		byteVal = byteVal<<1 | d.bits[i+1].value
	}
	ss, es := d.bits[0].start, d.bits[MASTER_FRAME_BITS-1].end

	// START always opens a fresh transaction, even mid-stream
	if cmd == 1 && byteVal == CMD_START {
		if d.state != STATE_IDLE {
			d.put(ss, es, EventError, "Unexpected START", "RESYNC")
		}
		d.put(ss, es, EventByte, fmt.Sprintf("0x%02X", byteVal))
		d.put(ss, es, EventStart, "START", "S")
		d.state = STATE_ADDR_FIRST
		d.addrLeft = d.cfg.AddrBytes
		d.addr = 0
		d.bits = d.bits[:0]
		d.errors = 0
		return
	}

	d.put(ss, es, EventByte, fmt.Sprintf("0x%02X", byteVal))

	switch {
	case cmd == 1:
		if byteVal == CMD_END {
			d.put(ss, es, EventEnd, "END", "E")
		} else {
			d.put(ss, es, EventError, fmt.Sprintf("Invalid CMD: 0x%02X", byteVal), "BAD CMD")
		}
		d.state = STATE_IDLE
		d.isRead = false

	case d.state == STATE_IDLE:
		d.put(ss, es, EventError, "Missing START", "NO START")

	case d.state == STATE_ADDR_FIRST:
		d.addr = uint32(byteVal)
		d.addrStart = ss
		d.addrLeft--
		if d.addrLeft > 0 {
			d.state = STATE_ADDR_REST
		} else {
			d.put(ss, es, EventAddr, fmt.Sprintf("ADDR: 0x%02X", d.addr), fmt.Sprintf("0x%02X", d.addr))
			d.state = STATE_RW_ID
		}

	case d.state == STATE_ADDR_REST:
		d.addr = d.addr<<8 | uint32(byteVal)
		d.addrLeft--
		if d.addrLeft == 0 {
			// Digit width matches the configured address size
			hex := fmt.Sprintf("0x%0*X", d.cfg.AddrBytes*2, d.addr)
			d.put(d.addrStart, es, EventAddr, "ADDR: "+hex, hex)
			d.state = STATE_RW_ID
		}

	case d.state == STATE_RW_ID:
		d.isRead = byteVal&RW_READ_MASK != 0
		slaveID := byteVal & SLAVE_ID_MASK
		rw := "W"
		if d.isRead {
			rw = "R"
		}
		d.put(ss, es, EventRW, fmt.Sprintf("%s ID:%d", rw, slaveID), rw)
		if d.isRead {
			d.state = STATE_READ_TRIG
		} else {
			d.state = STATE_DATA
		}

	default:
		d.put(ss, es, EventDataMaster, fmt.Sprintf("0x%02X", byteVal))
	}

	d.bits = d.bits[:0]
}
