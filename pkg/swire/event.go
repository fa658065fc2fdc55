// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

// EventClass identifies the kind of a decoded annotation event
type EventClass int

const (
	EventBit EventClass = iota
	EventCmdBit
	EventByte
	EventStart
	EventAddr
	EventRW
	EventDataMaster
	EventDataSlave
	EventEnd
	EventTrigger
	EventError
)

// Event is one decoded annotation: a labeled half-open sample interval.
// Labels are ordered longest first, shortest last.
type Event struct {
	Start  int64
	End    int64
	Class  EventClass
	Labels []string
}

// Label returns the long-form label
func (e Event) Label() string {
	if len(e.Labels) == 0 {
		return ""
	}
	return e.Labels[0]
}

// ShortLabel returns the most compact label
func (e Event) ShortLabel() string {
	if len(e.Labels) == 0 {
		return ""
	}
	return e.Labels[len(e.Labels)-1]
}

// EventSink receives decoded events in emission order
type EventSink interface {
	Put(e Event)
}

// SinkFunc adapts a function to the EventSink interface
type SinkFunc func(e Event)

// Put implements EventSink
func (f SinkFunc) Put(e Event) {
	f(e)
}

// Collector is an EventSink that accumulates events in memory
type Collector struct {
	Events []Event
}

// Put implements EventSink
func (c *Collector) Put(e Event) {
	c.Events = append(c.Events, e)
}

// ByClass returns the collected events of one class, in order
func (c *Collector) ByClass(class EventClass) []Event {
	var out []Event
	for _, e := range c.Events {
		if e.Class == class {
			out = append(out, e)
		}
	}
	return out
}
