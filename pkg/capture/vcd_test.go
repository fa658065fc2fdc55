// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Stefan Hacker

package capture

import (
	"strings"
	"testing"
)

const testVCD = `$date today $end
$version swiretap test $end
$timescale 10 ns $end
$scope module logic $end
$var wire 1 ! swire $end
$var wire 8 " junk [7:0] $end
$upscope $end
$enddefinitions $end
$dumpvars
1!
b10101010 "
$end
#100
0!
#150
1!
#400
0!
#420
x!
#500
1!
`

func TestParseVCD(t *testing.T) {
	r, err := ParseVCD(strings.NewReader(testVCD))
	if err != nil {
		t.Fatalf("ParseVCD: %v", err)
	}

	// 10 ns per tick = 100 MHz
	rate, err := r.SampleRate()
	if err != nil || rate != 1e8 {
		t.Errorf("SampleRate = %v, %v; want 1e8", rate, err)
	}

	// Initial value sets the level without an edge; x keeps it
	want := []Edge{
		{100, false},
		{150, true},
		{400, false},
		{500, true},
	}
	for _, w := range want {
		var got int64
		if w.Rising {
			got, err = r.WaitRising()
		} else {
			got, err = r.WaitFalling()
		}
		if err != nil || got != w.Sample {
			t.Fatalf("edge at %d (rising=%v): got %d, %v", w.Sample, w.Rising, got, err)
		}
	}
}

func TestParseVCDMissingTimescale(t *testing.T) {
	vcd := "$var wire 1 ! swire $end\n$enddefinitions $end\n#0\n1!\n"
	if _, err := ParseVCD(strings.NewReader(vcd)); err == nil {
		t.Error("expected error for missing $timescale")
	}
}

func TestParseVCDMissingWire(t *testing.T) {
	vcd := "$timescale 1 us $end\n$enddefinitions $end\n#0\n"
	if _, err := ParseVCD(strings.NewReader(vcd)); err == nil {
		t.Error("expected error for missing 1-bit wire")
	}
}

func TestParseTimescale(t *testing.T) {
	tests := []struct {
		in   string
		rate float64
		ok   bool
	}{
		{"1ns", 1e9, true},
		{"10ns", 1e8, true},
		{"100us", 1e4, true},
		{"1s", 1, true},
		{"2ps", 5e11, true},
		{"", 0, false},
		{"ns", 0, false},
		{"10xs", 0, false},
	}

	for _, tt := range tests {
		rate, err := parseTimescale(tt.in)
		if tt.ok && (err != nil || rate != tt.rate) {
			t.Errorf("parseTimescale(%q) = %v, %v; want %v", tt.in, rate, err, tt.rate)
		}
		if !tt.ok && err == nil {
			t.Errorf("parseTimescale(%q): expected error", tt.in)
		}
	}
}
