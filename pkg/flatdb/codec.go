package flatdb

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// dialect holds the single-byte delimiter, enclosure, and escape
// characters of the file format.
type dialect struct {
	delim  byte
	quote  byte
	escape byte
}

// decoder reads delimited records from a stream. Enclosed fields may
// contain delimiters, escaped characters, doubled enclosures, and
// physical newlines.
type decoder struct {
	r *bufio.Reader
	d dialect

	// line is the physical line number (1-based) where the most
	// recently returned record started.
	line     int
	consumed int
}

func newDecoder(r io.Reader, d dialect) *decoder {
	return &decoder{r: bufio.NewReader(r), d: d}
}

// readRecord returns the fields of the next record. It returns io.EOF
// once the stream is exhausted. A record ends at an unenclosed newline
// or at end of input.
func (dec *decoder) readRecord() ([]string, error) {
	// Detect clean EOF before committing to a record.
	if _, err := dec.r.Peek(1); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}

		return nil, err
	}

	dec.line = dec.consumed + 1

	var (
		fields   []string
		field    bytes.Buffer
		enclosed bool
	)

	for {
		b, err := dec.r.ReadByte()
		if err == io.EOF {
			fields = append(fields, field.String())

			return fields, nil
		}

		if err != nil {
			return nil, err
		}

		if enclosed {
			switch b {
			case dec.d.escape:
				nb, nerr := dec.r.ReadByte()
				if nerr == io.EOF {
					field.WriteByte(b)
					fields = append(fields, field.String())

					return fields, nil
				}

				if nerr != nil {
					return nil, nerr
				}

				field.WriteByte(nb)

			case dec.d.quote:
				// A doubled enclosure inside an enclosed field is a
				// literal enclosure character.
				nb, nerr := dec.r.ReadByte()
				if nerr == nil && nb == dec.d.quote {
					field.WriteByte(dec.d.quote)

					continue
				}

				if nerr == nil {
					_ = dec.r.UnreadByte()
				}

				enclosed = false

			case '\n':
				dec.consumed++
				field.WriteByte(b)

			default:
				field.WriteByte(b)
			}

			continue
		}

		switch b {
		case dec.d.quote:
			if field.Len() == 0 {
				enclosed = true
			} else {
				field.WriteByte(b)
			}

		case dec.d.delim:
			fields = append(fields, field.String())
			field.Reset()

		case '\n':
			dec.consumed++
			fields = append(fields, field.String())

			return fields, nil

		case '\r':
			nb, nerr := dec.r.ReadByte()
			if nerr == nil && nb == '\n' {
				dec.consumed++
				fields = append(fields, field.String())

				return fields, nil
			}

			if nerr == nil {
				_ = dec.r.UnreadByte()
			}

			field.WriteByte('\r')

		default:
			field.WriteByte(b)
		}
	}
}

// blankRecord reports whether a record came from an empty line. Such
// lines are skipped during load rather than rejected.
func blankRecord(fields []string) bool {
	return len(fields) == 1 && fields[0] == ""
}

// encodeRecord appends one delimited record (with trailing newline) to
// buf. Fields containing the delimiter, enclosure, escape, or a newline
// are enclosed, with embedded enclosure and escape characters escaped.
func encodeRecord(buf *bytes.Buffer, fields []string, d dialect) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(d.delim)
		}

		if !needsEnclosure(f, d) {
			buf.WriteString(f)

			continue
		}

		buf.WriteByte(d.quote)

		for j := 0; j < len(f); j++ {
			b := f[j]
			if b == d.quote || b == d.escape {
				buf.WriteByte(d.escape)
			}

			buf.WriteByte(b)
		}

		buf.WriteByte(d.quote)
	}

	buf.WriteByte('\n')
}

func needsEnclosure(f string, d dialect) bool {
	return strings.ContainsAny(f, string([]byte{d.delim, d.quote, d.escape, '\n', '\r'}))
}
