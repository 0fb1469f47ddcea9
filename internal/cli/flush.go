package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// FlushCmd creates the "flush" command.
func FlushCmd(env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "flush [<decl>]",
		Short: "Rewrite the data file from the store",
		Long: `Load the store and write it straight back to its data file.

Useful for normalizing a file after hand edits: enclosure, escaping
and blank lines come out canonical. Takes a timestamped backup first
when the declaration enables backups.`,
		Exec: func(_ context.Context, _ *IO, args []string) error {
			decl, _, err := declPath(args, env)
			if err != nil {
				return err
			}

			store, _, err := openStore(decl)
			if err != nil {
				return err
			}

			return store.Flush()
		},
	}
}
