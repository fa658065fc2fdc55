// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

// Package capture provides edge-stream sources for the SWire decoder:
// in-memory replays, packed logic-sample streams, and VCD files.
package capture

import (
	"errors"
	"io"
)

// ErrNoSampleRate is returned by sources whose sample rate was never set
var ErrNoSampleRate = errors.New("capture source has no sample rate")

// Edge is one signal transition at a sample index
type Edge struct {
	Sample int64
	Rising bool
}

// Replay feeds a recorded edge list to the decoder
type Replay struct {
	rate  float64
	edges []Edge
	pos   int
}

// NewReplay creates a replay source over an ordered edge list
func NewReplay(sampleRate float64, edges []Edge) *Replay {
	return &Replay{rate: sampleRate, edges: edges}
}

// SampleRate returns the capture's sample rate
func (r *Replay) SampleRate() (float64, error) {
	if r.rate <= 0 {
		return 0, ErrNoSampleRate
	}
	return r.rate, nil
}

// WaitFalling returns the next falling edge, skipping any rising edges
// before it. Returns io.EOF when the capture is exhausted.
func (r *Replay) WaitFalling() (int64, error) {
	return r.wait(false)
}

// WaitRising returns the next rising edge
func (r *Replay) WaitRising() (int64, error) {
	return r.wait(true)
}

func (r *Replay) wait(rising bool) (int64, error) {
	for r.pos < len(r.edges) {
		e := r.edges[r.pos]
		r.pos++
		if e.Rising == rising {
			return e.Sample, nil
		}
	}
	return 0, io.EOF
}

// Reset rewinds the replay to the first edge
func (r *Replay) Reset() {
	r.pos = 0
}
