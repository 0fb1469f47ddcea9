package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"
)

// UpdateCmd creates the "update" command.
func UpdateCmd(env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	where := flags.StringArray("where", nil, "filter on column=value (repeatable)")
	set := flags.StringArray("set", nil, "column=value to change (repeatable)")
	upsert := flags.Bool("upsert", false, "insert a new row when nothing matches")

	return &Command{
		Flags: flags,
		Usage: "update [<decl>] --where ... --set ...",
		Short: "Modify matching rows",
		Long: `Modify every row matching the --where conditions.

With no --where all rows are updated. --upsert changes the first match
only, or appends a new row built from the --where and --set pairs when
nothing matches. Rejected on read-only and append-only stores.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			decl, _, err := declPath(args, env)
			if err != nil {
				return err
			}

			if len(*set) == 0 {
				return errors.New("at least one --set column=value is required")
			}

			conds, err := parsePairs(*where, "where")
			if err != nil {
				return err
			}

			fields, err := parsePairs(*set, "set")
			if err != nil {
				return err
			}

			store, cfg, err := openStore(decl)
			if err != nil {
				return err
			}

			if *upsert {
				// Fold the conditions into the written fields so a
				// fresh row carries its matching values too.
				merged := make(map[string]any, len(conds)+len(fields))
				for column, v := range conds {
					merged[column] = v
				}
				for column, v := range fields {
					merged[column] = v
				}

				if err := store.UpsertWhere(conds, merged); err != nil {
					return err
				}
			} else {
				n, err := store.UpdateWhere(conds, fields)
				if err != nil {
					return err
				}

				o.Printf("updated %d row(s)\n", n)
			}

			return persist(store, cfg)
		},
	}
}
