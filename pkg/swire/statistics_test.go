// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

import (
	"strings"
	"testing"
)

func TestStatisticsUpdate(t *testing.T) {
	s := NewStatistics()

	events := []Event{
		{Class: EventStart, Labels: []string{"START", "S"}},
		{Class: EventCmdBit, Labels: []string{"1"}},
		{Class: EventBit, Labels: []string{"0"}},
		{Class: EventByte, Labels: []string{"0x12"}},
		{Class: EventAddr, Labels: []string{"ADDR: 0x123456", "0x123456"}},
		{Class: EventRW, Labels: []string{"W ID:5", "W"}},
		{Class: EventDataMaster, Labels: []string{"0xAA"}},
		{Class: EventDataSlave, Labels: []string{"0xBB"}},
		{Class: EventTrigger, Labels: []string{"Trigger", "T", ">"}},
		{Class: EventEnd, Labels: []string{"END", "E"}},
		{Class: EventError, Labels: []string{"Bad timing", "TIME"}},
		{Class: EventError, Labels: []string{"Frame gap", "GAP"}},
		{Class: EventError, Labels: []string{"Missing START", "NO START"}},
	}
	for _, e := range events {
		s.Update(e)
	}

	if s.TotalEvents != uint64(len(events)) {
		t.Errorf("TotalEvents = %d, want %d", s.TotalEvents, len(events))
	}
	if s.Bits != 2 {
		t.Errorf("Bits = %d, want 2", s.Bits)
	}
	if s.Transactions != 1 || s.Ends != 1 {
		t.Errorf("Transactions/Ends = %d/%d, want 1/1", s.Transactions, s.Ends)
	}
	if s.Errors != 3 {
		t.Errorf("Errors = %d, want 3", s.Errors)
	}
	if s.TimingErrors != 1 || s.FrameGaps != 1 || s.ProtocolErrors != 1 {
		t.Errorf("error breakdown = %d/%d/%d, want 1/1/1",
			s.TimingErrors, s.FrameGaps, s.ProtocolErrors)
	}
}

func TestStatisticsString(t *testing.T) {
	s := NewStatistics()
	s.Update(Event{Class: EventStart, Labels: []string{"START", "S"}})
	s.Update(Event{Class: EventError, Labels: []string{"Frame gap", "GAP"}})

	out := s.String()
	for _, want := range []string{"Total Events", "Transactions", "Errors", "Frame Gaps"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestStatisticsReset(t *testing.T) {
	s := NewStatistics()
	s.Update(Event{Class: EventByte, Labels: []string{"0x00"}})
	s.Reset()

	if s.TotalEvents != 0 || s.Bytes != 0 {
		t.Errorf("Reset left counters: total=%d bytes=%d", s.TotalEvents, s.Bytes)
	}
}
