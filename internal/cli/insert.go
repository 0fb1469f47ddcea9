package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"
)

// InsertCmd creates the "insert" command.
func InsertCmd(env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	set := flags.StringArray("set", nil, "column=value to store (repeatable)")

	return &Command{
		Flags: flags,
		Usage: "insert [<decl>] --set col=val...",
		Short: "Append a new row",
		Long: `Append a new row to the store.

Columns not named with --set are stored as null. Values are cast
according to the declaration's cast rules. Insert works on append-only
stores; the store must be writable. The change is flushed to disk
unless auto_flush is disabled.`,
		Exec: func(_ context.Context, _ *IO, args []string) error {
			decl, _, err := declPath(args, env)
			if err != nil {
				return err
			}

			if len(*set) == 0 {
				return errors.New("at least one --set column=value is required")
			}

			fields, err := parsePairs(*set, "set")
			if err != nil {
				return err
			}

			store, cfg, err := openStore(decl)
			if err != nil {
				return err
			}

			if err := store.Insert(rowFromSet(fields)); err != nil {
				return err
			}

			return persist(store, cfg)
		},
	}
}
