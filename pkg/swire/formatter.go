// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

import "fmt"

// FormatEvent formats an event into a single human-readable line
func FormatEvent(e Event) string {
	return fmt.Sprintf("[%10d..%10d] %-7s %s", e.Start, e.End, FormatClass(e.Class), e.Label())
}

// FormatClass returns the human-readable name for an event class
func FormatClass(class EventClass) string {
	switch class {
	case EventBit:
		return "BIT"
	case EventCmdBit:
		return "CMD-BIT"
	case EventByte:
		return "BYTE"
	case EventStart:
		return "START"
	case EventAddr:
		return "ADDR"
	case EventRW:
		return "R/W"
	case EventDataMaster:
		return "DATA-M"
	case EventDataSlave:
		return "DATA-S"
	case EventEnd:
		return "END"
	case EventTrigger:
		return "TRIG"
	case EventError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
