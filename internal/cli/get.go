package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
)

// GetCmd creates the "get" command.
func GetCmd(env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "get [<decl>] <key>",
		Short: "Look up one row by primary key",
		Long: `Look up a single row by its primary key.

The store declaration must set "primary_key". Comparison is loose, so
"get 7" matches a row whose key column was cast to the integer 7.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			decl, rest, err := declPath(args, env)
			if err != nil {
				return err
			}

			if len(rest) != 1 {
				return fmt.Errorf("expected exactly one key argument, got %d", len(rest))
			}

			store, _, err := openStore(decl)
			if err != nil {
				return err
			}

			row, err := store.Find(rest[0])
			if err != nil {
				return err
			}

			if row == nil {
				return fmt.Errorf("no row with key %q", rest[0])
			}

			printRow(o, store.Headers(), row)

			return nil
		},
	}
}
