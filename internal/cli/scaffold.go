package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/internal/scaffold"
)

// ScaffoldCmd creates the "scaffold" command.
func ScaffoldCmd() *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	path := flags.String("path", "", "data file the declaration points at")
	pk := flags.String("primary-key", "", "primary key column")
	out := flags.StringP("out", "o", "", "declaration file to write (default <data>.store.jsonc)")

	return &Command{
		Flags: flags,
		Usage: "scaffold --path <file> [flags]",
		Short: "Generate a store declaration file",
		Long: `Generate a commented *.store.jsonc declaration for a data file.

The generated file carries every setting with its default value plus a
comment, ready to edit. Pass --primary-key to enable key lookups.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			written, err := scaffold.Generate(scaffold.Options{
				DataPath:   *path,
				PrimaryKey: *pk,
				OutPath:    *out,
			})
			if err != nil {
				return err
			}

			o.Println("wrote", written)

			return nil
		},
	}
}
