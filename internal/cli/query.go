package cli

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// QueryCmd creates the "query" command.
func QueryCmd(env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	where := flags.StringArray("where", nil, "filter on column=value (repeatable)")
	sel := flags.StringSlice("select", nil, "columns to project")
	first := flags.Bool("first", false, "print only the first matching row")
	pluck := flags.String("pluck", "", "print a single column, one value per line")
	value := flags.String("value", "", "print the named column of the first match")
	count := flags.Bool("count", false, "print only the match count")

	return &Command{
		Flags: flags,
		Usage: "query [<decl>] [flags]",
		Short: "Filter and project rows",
		Long: `Filter and project rows of a store.

Conditions use loose comparison, so --where active=true matches rows
whose active column is the string "1". With no flags, all rows are
listed. --first, --pluck, --value and --count are mutually exclusive.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			decl, _, err := declPath(args, env)
			if err != nil {
				return err
			}

			modes := 0
			for _, on := range []bool{*first, *pluck != "", *value != "", *count} {
				if on {
					modes++
				}
			}

			if modes > 1 {
				return errors.New("--first, --pluck, --value and --count are mutually exclusive")
			}

			store, _, err := openStore(decl)
			if err != nil {
				return err
			}

			conds, err := parsePairs(*where, "where")
			if err != nil {
				return err
			}

			q := store.Query()
			for column, v := range conds {
				q = q.Where(column, v)
			}

			if len(*sel) > 0 {
				q = q.Select(*sel...)
			}

			switch {
			case *count:
				rows, err := q.Get()
				if err != nil {
					return err
				}

				o.Println(len(rows))

			case *first:
				row, err := q.First()
				if err != nil {
					return err
				}

				if row == nil {
					return errors.New("no matching row")
				}

				printRow(o, store.Headers(), row)

			case *pluck != "":
				vals, err := q.Pluck(*pluck)
				if err != nil {
					return err
				}

				for _, v := range vals {
					o.Println(v.Text())
				}

			case *value != "":
				v, err := q.Value(*value)
				if err != nil {
					return err
				}

				o.Println(v.Text())

			default:
				rows, err := q.Get()
				if err != nil {
					return err
				}

				printRows(o, store.Headers(), rows)
				o.ErrPrintln(fmt.Sprintf("%d row(s)", len(rows)))
			}

			return nil
		},
	}
}
