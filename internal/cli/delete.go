package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"
)

// DeleteCmd creates the "delete" command.
func DeleteCmd(env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	where := flags.StringArray("where", nil, "filter on column=value (repeatable)")
	all := flags.Bool("all", false, "allow deleting without --where")

	return &Command{
		Flags: flags,
		Usage: "delete [<decl>] --where col=val...",
		Short: "Remove matching rows",
		Long: `Remove every row matching the --where conditions.

Deleting without conditions wipes the whole store, so it must be
confirmed with --all. Rejected on read-only and append-only stores.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			decl, _, err := declPath(args, env)
			if err != nil {
				return err
			}

			if len(*where) == 0 && !*all {
				return errors.New("refusing to delete every row without --all")
			}

			conds, err := parsePairs(*where, "where")
			if err != nil {
				return err
			}

			store, cfg, err := openStore(decl)
			if err != nil {
				return err
			}

			n, err := store.DeleteWhere(conds)
			if err != nil {
				return err
			}

			o.Printf("deleted %d row(s)\n", n)

			return persist(store, cfg)
		},
	}
}
