// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

import (
	"strings"
	"testing"
)

func TestFormatClass(t *testing.T) {
	tests := []struct {
		class EventClass
		want  string
	}{
		{EventBit, "BIT"},
		{EventCmdBit, "CMD-BIT"},
		{EventByte, "BYTE"},
		{EventStart, "START"},
		{EventAddr, "ADDR"},
		{EventRW, "R/W"},
		{EventDataMaster, "DATA-M"},
		{EventDataSlave, "DATA-S"},
		{EventEnd, "END"},
		{EventTrigger, "TRIG"},
		{EventError, "ERROR"},
		{EventClass(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := FormatClass(tt.class); got != tt.want {
			t.Errorf("FormatClass(%d) = %q, want %q", tt.class, got, tt.want)
		}
	}
}

func TestFormatEvent(t *testing.T) {
	e := Event{
		Start:  1000,
		End:    5500,
		Class:  EventAddr,
		Labels: []string{"ADDR: 0x123456", "0x123456"},
	}

	line := FormatEvent(e)
	for _, want := range []string{"1000", "5500", "ADDR", "ADDR: 0x123456"} {
		if !strings.Contains(line, want) {
			t.Errorf("FormatEvent output %q missing %q", line, want)
		}
	}
}

func TestEventLabels(t *testing.T) {
	e := Event{Labels: []string{"Trigger", "T", ">"}}
	if e.Label() != "Trigger" {
		t.Errorf("Label = %q", e.Label())
	}
	if e.ShortLabel() != ">" {
		t.Errorf("ShortLabel = %q", e.ShortLabel())
	}

	empty := Event{}
	if empty.Label() != "" || empty.ShortLabel() != "" {
		t.Error("labels of an empty event should be empty strings")
	}
}
