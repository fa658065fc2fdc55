// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

import (
	"fmt"
	"time"
)

// Statistics tracks decoded event counts and error rates
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalEvents  uint64
	Bits         uint64
	Bytes        uint64
	Transactions uint64 // START events
	Ends         uint64
	Addresses    uint64
	Directions   uint64
	MasterData   uint64
	SlaveData    uint64
	Triggers     uint64

	Errors         uint64
	TimingErrors   uint64
	FrameGaps      uint64
	ProtocolErrors uint64

	// Rates (calculated)
	EventRate float64 // events/sec
	ErrorRate float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// Update updates the counters for one decoded event
func (s *Statistics) Update(e Event) {
	s.TotalEvents++

	switch e.Class {
	case EventBit, EventCmdBit:
		s.Bits++
	case EventByte:
		s.Bytes++
	case EventStart:
		s.Transactions++
	case EventEnd:
		s.Ends++
	case EventAddr:
		s.Addresses++
	case EventRW:
		s.Directions++
	case EventDataMaster:
		s.MasterData++
	case EventDataSlave:
		s.SlaveData++
	case EventTrigger:
		s.Triggers++
	case EventError:
		s.Errors++
		// The short label identifies the anomaly class
		switch e.ShortLabel() {
		case "TIME":
			s.TimingErrors++
		case "GAP":
			s.FrameGaps++
		default:
			s.ProtocolErrors++
		}
	}

	s.LastUpdateTime = time.Now()
}

// CalculateRates calculates event and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.EventRate = float64(s.TotalEvents) / elapsed
		s.ErrorRate = float64(s.Errors) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var errorPercent float64
	if s.TotalEvents > 0 {
		errorPercent = float64(s.Errors) * 100.0 / float64(s.TotalEvents)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Events:    %8d\n", s.TotalEvents)
	result += fmt.Sprintf("Bits:            %8d\n", s.Bits)
	result += fmt.Sprintf("Bytes:           %8d\n", s.Bytes)
	result += fmt.Sprintf("Transactions:    %8d started, %d ended\n", s.Transactions, s.Ends)

	if s.Addresses > 0 {
		result += fmt.Sprintf("Addresses:       %8d\n", s.Addresses)
	}
	if s.MasterData > 0 {
		result += fmt.Sprintf("Master Data:     %8d\n", s.MasterData)
	}
	if s.SlaveData > 0 {
		result += fmt.Sprintf("Slave Data:      %8d\n", s.SlaveData)
	}
	if s.Triggers > 0 {
		result += fmt.Sprintf("Read Triggers:   %8d\n", s.Triggers)
	}

	if s.Errors > 0 {
		result += fmt.Sprintf("Errors:          %8d (%.1f%%)\n", s.Errors, errorPercent)
		if s.TimingErrors > 0 {
			result += fmt.Sprintf("  Bad Timing:       %5d\n", s.TimingErrors)
		}
		if s.FrameGaps > 0 {
			result += fmt.Sprintf("  Frame Gaps:       %5d\n", s.FrameGaps)
		}
		if s.ProtocolErrors > 0 {
			result += fmt.Sprintf("  Protocol Errors:  %5d\n", s.ProtocolErrors)
		}
	}

	result += fmt.Sprintf("Event Rate:      %8.1f events/sec\n", s.EventRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	*s = Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}
