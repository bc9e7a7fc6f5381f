// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package loader_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hallgrim/microstep/pkg/loader"
)

// S8 — Hex-text round trip.
func TestParseRoundTrip(t *testing.T) {
	input := "; comment\n10, 2a   // load A\n0xFF\n"

	got, err := loader.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{0x10, 0x2A, 0xFF}
	if !bytes.Equal(got, want) {
		t.Errorf("want %#v, have %#v", want, got)
	}
}

// S9 — Hex-text syntax error.
func TestParseSyntaxError(t *testing.T) {
	_, err := loader.Parse(strings.NewReader("10 ZZ FF\n"))
	if err == nil {
		t.Fatal("expected an error")
	}

	synErr, ok := err.(*loader.SyntaxError)
	if !ok {
		t.Fatalf("want *loader.SyntaxError, have %T", err)
	}

	if synErr.Line != 1 {
		t.Errorf("Line: want 1, have %d", synErr.Line)
	}
	if synErr.Token != "ZZ" {
		t.Errorf("Token: want %q, have %q", "ZZ", synErr.Token)
	}
}

func TestParseCommentVariants(t *testing.T) {
	input := "10 # trailing\n; whole line\n// also whole line\n2A\n"

	got, err := loader.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{0x10, 0x2A}
	if !bytes.Equal(got, want) {
		t.Errorf("want %#v, have %#v", want, got)
	}
}

func TestParseByteOutOfRange(t *testing.T) {
	_, err := loader.Parse(strings.NewReader("100\n"))
	if err == nil {
		t.Fatal("expected an error for a token above 0xFF")
	}
}

func TestParseEmptyInput(t *testing.T) {
	got, err := loader.Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("want empty output, have %#v", got)
	}
}
