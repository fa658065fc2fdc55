// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package capture

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseVCD reads a value-change-dump capture and returns a replay over
// the first 1-bit wire it declares. The sample rate is derived from
// $timescale (one timestamp tick = one sample). Initial value records
// set the line level without producing an edge.
func ParseVCD(r io.Reader) (*Replay, error) {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	s.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		rate      float64
		wireID    string
		directive string
		tokens    []string
		edges     []Edge
		t         int64
		level     = -1
		skipNext  bool
	)

	for s.Scan() {
		tok := s.Text()

		if skipNext {
			skipNext = false
			continue
		}

		if directive != "" {
			if tok == "$end" {
				switch directive {
				case "$timescale":
					var err error
					rate, err = parseTimescale(strings.Join(tokens, ""))
					if err != nil {
						return nil, err
					}
				case "$var":
					// $var <type> <size> <id> <name...>
					if wireID == "" && len(tokens) >= 3 && tokens[1] == "1" {
						wireID = tokens[2]
					}
				}
				directive = ""
				tokens = nil
			} else {
				tokens = append(tokens, tok)
			}
			continue
		}

		switch {
		case tok == "$dumpvars" || tok == "$dumpall" || tok == "$dumpon" ||
			tok == "$dumpoff" || tok == "$end":
			// Value-change blocks, no declaration payload

		case strings.HasPrefix(tok, "$"):
			directive = tok

		case tok[0] == '#':
			v, err := strconv.ParseInt(tok[1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid timestamp %q", tok)
			}
			t = v

		case tok[0] == 'b' || tok[0] == 'B':
			// Vector change: value token followed by the id token
			skipNext = true

		case tok[0] == 'r' || tok[0] == 'R':
			skipNext = true

		default:
			// Scalar change: value character + id
			if len(tok) < 2 || tok[1:] != wireID {
				continue
			}
			var v int
			switch tok[0] {
			case '0':
				v = 0
			case '1':
				v = 1
			default:
				// x/z: keep the previous level
				continue
			}
			if level == -1 {
				level = v
			} else if v != level {
				edges = append(edges, Edge{Sample: t, Rising: v == 1})
				level = v
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if rate <= 0 {
		return nil, fmt.Errorf("VCD capture has no $timescale")
	}
	if wireID == "" {
		return nil, fmt.Errorf("VCD capture declares no 1-bit wire")
	}
	return NewReplay(rate, edges), nil
}

// parseTimescale converts a timescale like "10ns" to samples/sec
func parseTimescale(ts string) (float64, error) {
	i := 0
	for i < len(ts) && ts[i] >= '0' && ts[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid $timescale %q", ts)
	}
	mag, err := strconv.Atoi(ts[:i])
	if err != nil || mag <= 0 {
		return 0, fmt.Errorf("invalid $timescale %q", ts)
	}

	// Ticks per second for a 1-unit timescale
	var freq float64
	switch strings.TrimSpace(ts[i:]) {
	case "s":
		freq = 1
	case "ms":
		freq = 1e3
	case "us":
		freq = 1e6
	case "ns":
		freq = 1e9
	case "ps":
		freq = 1e12
	case "fs":
		freq = 1e15
	default:
		return 0, fmt.Errorf("invalid $timescale unit in %q", ts)
	}

	return freq / float64(mag), nil
}
