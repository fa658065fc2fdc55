// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package capture

import (
	"bufio"
	"io"
)

// SampleSource converts a packed one-channel logic-sample stream into
// edges. Each byte carries 8 consecutive samples, LSB first (the
// layout logic analyzers use for single-channel binary dumps). The
// line is assumed to idle high before the first sample.
type SampleSource struct {
	r    *bufio.Reader
	rate float64

	sample int64 // index of the next sample to read
	prev   int   // level of the previous sample
	cur    byte
	nbits  int
}

// NewSampleSource creates a sample source over r. The sample rate must
// be supplied by the host; the raw stream does not carry it.
func NewSampleSource(r io.Reader, sampleRate float64) *SampleSource {
	return &SampleSource{
		r:    bufio.NewReader(r),
		rate: sampleRate,
		prev: 1,
	}
}

// SampleRate returns the host-supplied sample rate
func (s *SampleSource) SampleRate() (float64, error) {
	if s.rate <= 0 {
		return 0, ErrNoSampleRate
	}
	return s.rate, nil
}

// WaitFalling blocks until the next high-to-low transition
func (s *SampleSource) WaitFalling() (int64, error) {
	return s.wait(0)
}

// WaitRising blocks until the next low-to-high transition
func (s *SampleSource) WaitRising() (int64, error) {
	return s.wait(1)
}

func (s *SampleSource) wait(level int) (int64, error) {
	for {
		v, err := s.next()
		if err != nil {
			return 0, err
		}
		prev := s.prev
		s.prev = v
		if prev != v && v == level {
			return s.sample - 1, nil
		}
	}
}

// next returns the level of the next sample
func (s *SampleSource) next() (int, error) {
	if s.nbits == 0 {
		b, err := s.r.ReadByte()
		if err != nil {
			return 0, err
		}
		s.cur = b
		s.nbits = 8
	}
	v := int(s.cur & 1)
	s.cur >>= 1
	s.nbits--
	s.sample++
	return v, nil
}
