// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package swire

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// eventRecord is the on-disk CBOR layout of one event. Integer keys
// keep the records compact for long captures.
type eventRecord struct {
	Start  int64    `cbor:"1,keyasint"`
	End    int64    `cbor:"2,keyasint"`
	Class  int      `cbor:"3,keyasint"`
	Labels []string `cbor:"4,keyasint"`
}

// WriteEvents writes a decoded event stream to w as a sequence of
// CBOR records, in emission order.
func WriteEvents(w io.Writer, events []Event) error {
	enc := cbor.NewEncoder(w)
	for _, e := range events {
		rec := eventRecord{
			Start:  e.Start,
			End:    e.End,
			Class:  int(e.Class),
			Labels: e.Labels,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode event: %v", err)
		}
	}
	return nil
}

// ReadEvents reads a CBOR event stream written by WriteEvents
func ReadEvents(r io.Reader) ([]Event, error) {
	dec := cbor.NewDecoder(r)
	var events []Event
	for {
		var rec eventRecord
		err := dec.Decode(&rec)
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode event: %v", err)
		}
		events = append(events, Event{
			Start:  rec.Start,
			End:    rec.End,
			Class:  EventClass(rec.Class),
			Labels: rec.Labels,
		})
	}
}
