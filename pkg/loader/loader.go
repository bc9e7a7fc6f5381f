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

// Package loader parses the hex-text program format: whitespace-separated
// byte tokens, one or many per line, with '#', ';' and '//' line comments.
// Tokens may carry an optional 0x/0X prefix and embedded commas or
// underscores, which are stripped before parsing. Parse errors never reach
// pkg/cpu; they are returned to the caller as a *SyntaxError naming the
// offending line and token.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SyntaxError reports a hex-text token that could not be parsed as a byte.
type SyntaxError struct {
	Line  int
	Token string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: invalid byte token %q", err.Line, err.Token)
}

// Parse reads r as a hex-text program and returns the decoded bytes, in
// order. It stops at the first malformed token and returns a *SyntaxError.
func Parse(r io.Reader) ([]byte, error) {
	var out []byte

	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		text := stripComment(scanner.Text())

		for _, raw := range strings.Fields(text) {
			tok := normalizeToken(raw)
			if tok == "" {
				continue
			}

			v, err := strconv.ParseUint(tok, 16, 16)
			if err != nil || v > 0xFF {
				return nil, &SyntaxError{Line: line, Token: raw}
			}

			out = append(out, byte(v))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

// stripComment truncates line at the first '#', ';' or "//" marker.
func stripComment(line string) string {
	if i := strings.IndexAny(line, "#;"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return line
}

// normalizeToken strips commas and underscores and an optional 0x/0X
// prefix, leaving a bare hex digit string suitable for strconv.ParseUint.
func normalizeToken(tok string) string {
	tok = strings.ReplaceAll(tok, ",", "")
	tok = strings.ReplaceAll(tok, "_", "")

	if len(tok) > 2 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X') {
		tok = tok[2:]
	}

	return tok
}
