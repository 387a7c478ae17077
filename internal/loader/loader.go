// Package loader reads scattering curves from delimited ASCII files.
//
// Supported layouts, detected per file:
//   - 2 columns: x, y
//   - 3 columns: x, y, y_err
//   - 4 columns: x, y, x_err, y_err (x_err is discarded)
//   - more:      first three columns are taken as x, y, y_err
//
// Rows with non-finite values or non-positive x/y are dropped, since the
// curves are destined for log-log display.
package loader

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table holds one parsed curve. YErr is nil for two-column files.
type Table struct {
	X    []float64
	Y    []float64
	YErr []float64
}

// Load reads and parses a scattering data file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	delim := DetectDelimiter(lines)

	t := &Table{}
	cols := 0
	inData := false
	for i, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "%") {
			continue
		}
		fields := splitFields(s, delim)
		if len(fields) == 0 {
			// Delimiters only, e.g. a ",,," row from a spreadsheet export.
			continue
		}
		if !inData {
			// Still in the header: any line whose first field does not
			// parse as a number is header text.
			if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
				continue
			}
			inData = true
			cols = len(fields)
			if cols < 2 {
				return nil, fmt.Errorf("%s: need at least 2 columns, got %d", path, cols)
			}
		}
		row := make([]float64, len(fields))
		for j, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad value %q: %w", path, i+1, fld, err)
			}
			row[j] = v
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%s:%d: need at least 2 columns, got %d", path, i+1, len(row))
		}

		x, y := row[0], row[1]
		var yerr float64
		hasErr := false
		switch {
		case len(row) == 3:
			yerr, hasErr = row[2], true
		case len(row) == 4:
			// x, y, x_err, y_err: keep y_err only.
			yerr, hasErr = row[3], true
		case len(row) > 4:
			// Wider tables: take the first three columns.
			yerr, hasErr = row[2], true
		}

		if !finite(x) || !finite(y) || (hasErr && !finite(yerr)) {
			continue
		}
		if x <= 0 || y <= 0 {
			continue
		}
		t.X = append(t.X, x)
		t.Y = append(t.Y, y)
		if hasErr {
			t.YErr = append(t.YErr, yerr)
		}
	}

	if len(t.X) == 0 {
		return nil, fmt.Errorf("%s: no valid data points", path)
	}
	if len(t.YErr) > 0 && len(t.YErr) != len(t.Y) {
		// Mixed row widths; drop the partial error column.
		t.YErr = nil
	}
	return t, nil
}

// DetectDelimiter inspects up to ten non-comment lines and picks the most
// frequent of tab, comma and semicolon. An empty string means whitespace.
func DetectDelimiter(lines []string) string {
	var sample []string
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "%") {
			continue
		}
		sample = append(sample, line)
		if len(sample) == 10 {
			break
		}
	}

	tabs, commas, semis := 0, 0, 0
	for _, line := range sample {
		tabs += strings.Count(line, "\t")
		commas += strings.Count(line, ",")
		semis += strings.Count(line, ";")
	}
	switch {
	case tabs > commas && tabs > semis:
		return "\t"
	case commas > semis:
		return ","
	case semis > 0:
		return ";"
	}
	return ""
}

func splitFields(line, delim string) []string {
	var parts []string
	if delim == "" {
		parts = strings.Fields(line)
	} else {
		parts = strings.Split(line, delim)
	}
	fields := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
