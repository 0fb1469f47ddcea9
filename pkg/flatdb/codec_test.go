package flatdb

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var defaultDialect = dialect{delim: ',', quote: '"', escape: '\\'}

func readAll(t *testing.T, input string, d dialect) [][]string {
	t.Helper()

	dec := newDecoder(strings.NewReader(input), d)

	var records [][]string

	for {
		fields, err := dec.readRecord()
		if err == io.EOF {
			return records
		}

		if err != nil {
			t.Fatalf("readRecord: %v", err)
		}

		records = append(records, fields)
	}
}

func TestDecoderRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			"plain rows",
			"a,b,c\n1,2,3\n",
			[][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			"no trailing newline",
			"a,b\n1,2",
			[][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			"crlf line endings",
			"a,b\r\n1,2\r\n",
			[][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			"enclosed field with delimiter",
			"\"Doe, John\",2\n",
			[][]string{{"Doe, John", "2"}},
		},
		{
			"escaped enclosure inside field",
			"\"say \\\"hi\\\"\",x\n",
			[][]string{{`say "hi"`, "x"}},
		},
		{
			"doubled enclosure inside field",
			"\"say \"\"hi\"\"\",x\n",
			[][]string{{`say "hi"`, "x"}},
		},
		{
			"newline inside enclosed field",
			"\"line1\nline2\",x\n",
			[][]string{{"line1\nline2", "x"}},
		},
		{
			"empty fields",
			"a,,c\n",
			[][]string{{"a", "", "c"}},
		},
		{
			"escaped backslash",
			"\"c:\\\\tmp\",x\n",
			[][]string{{`c:\tmp`, "x"}},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := readAll(t, testCase.input, defaultDialect)
			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecoderCustomDialect(t *testing.T) {
	t.Parallel()

	d := dialect{delim: ';', quote: '\'', escape: '\\'}

	got := readAll(t, "a;'x;y';c\n", d)

	want := [][]string{{"a", "x;y", "c"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoderLineNumbers(t *testing.T) {
	t.Parallel()

	dec := newDecoder(strings.NewReader("a,b\n\"x\ny\",2\nlast,3\n"), defaultDialect)

	_, err := dec.readRecord()
	if err != nil || dec.line != 1 {
		t.Fatalf("first record: line = %d, err = %v, want line 1", dec.line, err)
	}

	// Second record spans physical lines 2-3.
	_, err = dec.readRecord()
	if err != nil || dec.line != 2 {
		t.Fatalf("second record: line = %d, err = %v, want line 2", dec.line, err)
	}

	_, err = dec.readRecord()
	if err != nil || dec.line != 4 {
		t.Fatalf("third record: line = %d, err = %v, want line 4", dec.line, err)
	}
}

func TestEncodeRecordRoundTrip(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"plain", "fields", "here"},
		{"with, delimiter", `with "quote"`, `with \backslash`},
		{"multi\nline", "", "last"},
	}

	var buf bytes.Buffer
	for _, fields := range records {
		encodeRecord(&buf, fields, defaultDialect)
	}

	got := readAll(t, buf.String(), defaultDialect)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
