package flatdb

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// resolveHeaders determines the ordered column-name list at load time.
//
// Three modes:
//  1. Predefined headers with a header line: the file's first line is
//     consumed and discarded (or, with strict headers, compared as a set
//     against the predefined names) and the predefined headers win.
//  2. No predefined headers, file has a header line: the first line,
//     trimmed per field, becomes the header set.
//  3. No predefined headers, no header line: the first data line is read
//     to count fields and headers are synthesized as "0".."n-1". That
//     line is returned as pending so the caller treats it as data.
func resolveHeaders(dec *decoder, cfg *Config) (headers []string, pending []string, err error) {
	if len(cfg.Headers) > 0 && cfg.HasHeaders {
		if cfg.StrictHeaders {
			err = verifyStrictHeaders(dec, cfg.Headers)
			if err != nil {
				return nil, nil, err
			}

			return append([]string(nil), cfg.Headers...), nil, nil
		}

		// Lenient: skip the file's header line and override it.
		_, err = dec.readRecord()
		if err != nil && err != io.EOF {
			return nil, nil, fmt.Errorf("skip header line: %w", err)
		}

		return append([]string(nil), cfg.Headers...), nil, nil
	}

	if cfg.HasHeaders {
		record, rerr := dec.readRecord()
		if rerr == io.EOF {
			return nil, nil, fmt.Errorf("%w: file is empty", ErrMissingHeader)
		}

		if rerr != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMissingHeader, rerr)
		}

		headers = make([]string, len(record))
		seen := make(map[string]bool, len(record))

		for i, name := range record {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, nil, fmt.Errorf("%w: empty column name at position %d", ErrMissingHeader, i)
			}

			if seen[name] {
				return nil, nil, fmt.Errorf("%w: duplicate column %q", ErrHeaderMismatch, name)
			}

			seen[name] = true
			headers[i] = name
		}

		return headers, nil, nil
	}

	// Headerless: peek the first data line to learn the column count,
	// then hand that line back as data.
	record, rerr := dec.readRecord()
	if rerr == io.EOF {
		return nil, nil, nil
	}

	if rerr != nil {
		return nil, nil, fmt.Errorf("read first data line: %w", rerr)
	}

	headers = make([]string, len(record))
	for i := range record {
		headers[i] = strconv.Itoa(i)
	}

	return headers, record, nil
}

// verifyStrictHeaders reads the file's header line and compares it
// against the predefined set as two sets. Order is irrelevant; any
// missing or extra name fails with [ErrHeaderMismatch] naming both sets.
func verifyStrictHeaders(dec *decoder, want []string) error {
	record, err := dec.readRecord()
	if err == io.EOF {
		return fmt.Errorf("%w: expected %q, file is empty", ErrHeaderMismatch, want)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrHeaderMismatch, err)
	}

	found := make([]string, len(record))
	for i, name := range record {
		found[i] = strings.TrimSpace(name)
	}

	if headerSetsEqual(want, found) {
		return nil
	}

	return fmt.Errorf("%w: expected %s, found %s",
		ErrHeaderMismatch, formatHeaderSet(want), formatHeaderSet(found))
}

func headerSetsEqual(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, name := range a {
		as[name] = true
	}

	bs := make(map[string]bool, len(b))
	for _, name := range b {
		bs[name] = true
	}

	// Compare as deduplicated sets so a repeated name on one side
	// cannot stand in for a missing one.
	if len(as) != len(bs) {
		return false
	}

	for name := range bs {
		if !as[name] {
			return false
		}
	}

	return true
}

func formatHeaderSet(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	return "[" + strings.Join(sorted, ", ") + "]"
}
