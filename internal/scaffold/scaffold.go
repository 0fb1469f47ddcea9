// Package scaffold generates store declaration files.
//
// A declaration is a JSONC document matching the flatdb Config shape.
// The generator fills a fixed template from a data-file path and an
// optional primary key, so new stores start from a complete, commented
// configuration instead of a bare path.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// Options configures a generated declaration.
type Options struct {
	// DataPath is the delimited data file the declaration points at.
	// Required. Written into the declaration as given, so relative
	// paths stay relative to the declaration file.
	DataPath string

	// PrimaryKey optionally names the lookup column.
	PrimaryKey string

	// OutPath is where the declaration is written. Defaults to
	// DataPath with a ".csv" suffix trimmed, plus ".store.jsonc"
	// ("users.csv" becomes "users.store.jsonc").
	OutPath string
}

// ErrNoDataPath reports a missing data path.
var ErrNoDataPath = errors.New("scaffold: data path is required")

// declTemplate is the generated declaration. Trailing commas and
// comments are fine: declarations are parsed as JSONC.
const declTemplate = `// Store declaration for {{.DataPath}}.
// Generated by flatdb scaffold; edit freely.
{
	"path": {{quote .DataPath}},

	// File dialect.
	"delimiter": ",",
	"enclosure": "\"",
	"escape": "\\",
	"has_headers": true,

	// Mutation policy.
	"writable": true,
	"append_only": false,
	"backup_enabled": false,
	"auto_flush": false,
{{- if .PrimaryKey}}

	// Lookup column for find-by-key.
	"primary_key": {{quote .PrimaryKey}},
{{- end}}
}
`

var tmpl = template.Must(template.New("declaration").
	Funcs(template.FuncMap{"quote": func(s string) string { return fmt.Sprintf("%q", s) }}).
	Parse(declTemplate))

// Render returns the declaration bytes for opts. Output is
// deterministic for a given Options value.
func Render(opts Options) ([]byte, error) {
	if opts.DataPath == "" {
		return nil, ErrNoDataPath
	}

	var buf bytes.Buffer

	err := tmpl.Execute(&buf, opts)
	if err != nil {
		return nil, fmt.Errorf("render declaration: %w", err)
	}

	// Self-check: the output must be valid JSONC.
	_, err = hujson.Standardize(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("rendered declaration is not valid JSONC: %w", err)
	}

	return buf.Bytes(), nil
}

// Generate renders the declaration and writes it atomically. Returns
// the output path.
func Generate(opts Options) (string, error) {
	data, err := Render(opts)
	if err != nil {
		return "", err
	}

	out := opts.OutPath
	if out == "" {
		out = strings.TrimSuffix(opts.DataPath, ".csv") + ".store.jsonc"
	}

	err = atomic.WriteFile(out, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("write declaration %s: %w", out, err)
	}

	return out, nil
}
