package flatdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config describes a store: where its data lives, the file dialect, how
// headers resolve, which columns are cast, and which mutations are
// permitted.
//
// The zero Config is not usable; start from [DefaultConfig].
type Config struct {
	// Path is the backing data file. Required for [Open]; ignored by
	// [OpenReader].
	Path string `json:"path"`

	// Delimiter, Enclosure, and Escape are the single-character file
	// dialect. Defaults: "," / `"` / `\`.
	Delimiter string `json:"delimiter"`
	Enclosure string `json:"enclosure"`
	Escape    string `json:"escape"`

	// HasHeaders reports whether the file's first line is a header
	// line. Default true.
	HasHeaders bool `json:"has_headers"`

	// Headers, when non-empty, predefines the header set instead of
	// reading it from the file.
	Headers []string `json:"headers,omitempty"`

	// StrictHeaders requires the file's header line to equal Headers as
	// a set. Only meaningful when both Headers and HasHeaders are set.
	StrictHeaders bool `json:"strict_headers,omitempty"`

	// CastRules maps column names to target type names ("int", "float",
	// "bool", "string"). Unknown names pass values through unchanged.
	CastRules map[string]string `json:"cast_rules,omitempty"`

	// Writable permits mutations and flushes. Default true.
	Writable bool `json:"writable"`

	// AppendOnly permits insert but rejects update, upsert, and delete.
	AppendOnly bool `json:"append_only,omitempty"`

	// BackupEnabled copies the data file to a timestamped .bak before
	// every flush that would overwrite it.
	BackupEnabled bool `json:"backup_enabled,omitempty"`

	// AutoFlush flushes after every successful mutation.
	AutoFlush bool `json:"auto_flush,omitempty"`

	// PrimaryKey designates the column used by [Store.Find]. Optional.
	PrimaryKey string `json:"primary_key,omitempty"`
}

// DefaultConfig returns a Config for path with the classic CSV dialect,
// a header line, and writes enabled.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		Delimiter:  ",",
		Enclosure:  `"`,
		Escape:     `\`,
		HasHeaders: true,
		Writable:   true,
	}
}

// Declaration file errors.
var (
	errDeclarationPath = errors.New("declaration has no path")
	errDialectChar     = errors.New("dialect characters must be exactly one byte")
	errDuplicateHeader = errors.New("duplicate header name")
)

// LoadDeclaration reads a store declaration file: a JSONC document (JSON
// with comments and trailing commas) matching the Config shape. A
// relative data path is resolved against the declaration's directory.
func LoadDeclaration(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read declaration %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("declaration %s: invalid JSONC: %w", path, err)
	}

	// Absent fields keep their defaults.
	cfg := DefaultConfig("")

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("declaration %s: invalid JSON: %w", path, err)
	}

	if cfg.Path == "" {
		return Config{}, fmt.Errorf("declaration %s: %w", path, errDeclarationPath)
	}

	if !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}

	validateErr := cfg.validate()
	if validateErr != nil {
		return Config{}, fmt.Errorf("declaration %s: %w", path, validateErr)
	}

	return cfg, nil
}

// validate checks the dialect and header configuration. The data path is
// checked by [Open], not here, because reader-backed stores have none.
func (c *Config) validate() error {
	for _, ch := range []string{c.Delimiter, c.Enclosure, c.Escape} {
		if len(ch) != 1 {
			return fmt.Errorf("%w: delimiter=%q enclosure=%q escape=%q",
				errDialectChar, c.Delimiter, c.Enclosure, c.Escape)
		}
	}

	if c.Delimiter == c.Enclosure {
		return fmt.Errorf("%w: delimiter and enclosure are both %q", errDialectChar, c.Delimiter)
	}

	seen := make(map[string]bool, len(c.Headers))

	for _, h := range c.Headers {
		if seen[h] {
			return fmt.Errorf("%w: %q", errDuplicateHeader, h)
		}

		seen[h] = true
	}

	if c.PrimaryKey != "" && len(c.Headers) > 0 && !seen[c.PrimaryKey] {
		return fmt.Errorf("%w: primary key %q not in headers %q", ErrColumnNotFound, c.PrimaryKey, c.Headers)
	}

	return nil
}

func (c *Config) dialect() dialect {
	return dialect{
		delim:  c.Delimiter[0],
		quote:  c.Enclosure[0],
		escape: c.Escape[0],
	}
}
