// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package sqlscript runs MySQL schema scripts statement by statement. It is a
// one-time bootstrap tool and is kept apart from the operator session.
package sqlscript // import "github.com/buypy/backoffice/internal/sqlscript"

import (
	"bufio"
	"io"
	"strings"
)

// DefaultDelimiter ends statements until a DELIMITER line changes it.
const DefaultDelimiter = ";"

// Split reads a script and returns its statements without delimiters.
// "DELIMITER x" lines (any case) switch the delimiter and are not part of any
// statement. Text after the last delimiter is returned as a final statement.
func Split(r io.Reader) ([]string, error) {
	var (
		stmts []string
		buf   strings.Builder
		delim = DefaultDelimiter
	)
	flush := func() {
		s := strings.TrimSpace(buf.String())
		buf.Reset()
		s = strings.TrimSpace(strings.TrimSuffix(s, delim))
		if s != "" {
			stmts = append(stmts, s)
		}
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if fields := strings.Fields(trimmed); len(fields) >= 2 && strings.EqualFold(fields[0], "delimiter") {
			delim = fields[1]
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if strings.HasSuffix(strings.TrimSpace(buf.String()), delim) {
			flush()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return stmts, nil
}

// Summary returns the first line of stmt cut to max runes.
func Summary(stmt string, max int) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return truncate(strings.TrimSpace(line), max)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
