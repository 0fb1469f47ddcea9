package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/flatdb/pkg/flatdb"
)

// ShellCmd creates the "shell" command.
func ShellCmd(in io.Reader, env map[string]string) *Command {
	flags := flag.NewFlagSet("", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "shell [<decl>]",
		Short: "Interactive store session",
		Long: `Open a store and run commands against it interactively.

Type 'help' inside the shell for the command list. Mutations stay in
memory until 'flush' unless the declaration enables auto_flush.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			decl, _, err := declPath(args, env)
			if err != nil {
				return err
			}

			store, _, err := openStore(decl)
			if err != nil {
				return err
			}

			sh := &shell{store: store, o: o}

			if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				return sh.runInteractive(decl)
			}

			if in == nil {
				return errors.New("shell needs an input stream")
			}

			return sh.runScripted(in)
		},
	}
}

// shell is the interactive command loop.
type shell struct {
	store *flatdb.Store
	o     *IO
}

func shellHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".flatdb_history")
}

// runInteractive drives the loop with readline editing and history.
func (sh *shell) runInteractive(decl string) error {
	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetCompleter(sh.completer)

	if f, err := os.Open(shellHistoryFile()); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	sh.o.Printf("flatdb shell - %s (%d rows)\n", decl, sh.store.Len())
	sh.o.Println("Type 'help' for available commands.")
	sh.o.Println()

	defer func() {
		if path := shellHistoryFile(); path != "" {
			if f, err := os.Create(path); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}
	}()

	for {
		line, err := ln.Prompt("flatdb> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				sh.o.Println("\nBye!")

				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ln.AppendHistory(line)

		if done := sh.dispatch(line); done {
			sh.o.Println("Bye!")

			return nil
		}
	}
}

// runScripted reads commands line by line without terminal handling,
// so the shell works under pipes and in tests.
func (sh *shell) runScripted(in io.Reader) error {
	sc := bufio.NewScanner(in)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if done := sh.dispatch(line); done {
			return nil
		}
	}

	return sc.Err()
}

// dispatch runs one shell line. Returns true on exit.
func (sh *shell) dispatch(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true

	case "help", "?":
		sh.printHelp()

	case "rows", "ls", "list":
		sh.cmdRows(args)

	case "where":
		sh.cmdRows(args)

	case "select":
		sh.cmdSelect(args)

	case "get":
		sh.cmdGet(args)

	case "first":
		sh.cmdFirst(args)

	case "pluck":
		sh.cmdPluck(args)

	case "value":
		sh.cmdValue(args)

	case "count":
		sh.cmdCount(args)

	case "insert":
		sh.cmdInsert(args)

	case "delete", "del":
		sh.cmdDelete(args)

	case "flush", "save":
		sh.report(sh.store.Flush())

	case "headers":
		sh.o.Println(strings.Join(sh.store.Headers(), ", "))

	default:
		sh.o.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false
}

func (sh *shell) printHelp() {
	sh.o.Println(`Commands:
  rows                          List all rows (aliases: ls, list)
  where <col=val>...            List rows matching all conditions
  select <cols> [col=val]...    Project columns, comma separated
  get <key>                     Look up one row by primary key
  first [col=val]...            Print the first matching row
  pluck <col> [col=val]...      Print one column of matching rows
  value <col> [col=val]...      Print one column of the first match
  count [col=val]...            Count matching rows
  insert <col=val>...           Append a row
  delete <col=val>...           Remove matching rows
  flush                         Write the store back to disk
  headers                       Show column names
  help                          Show this help
  exit / quit / q               Exit`)
}

// query builds a query from col=val arguments.
func (sh *shell) query(conds []string) (*flatdb.Query, bool) {
	pairs, err := parsePairs(conds, "where")
	if err != nil {
		sh.o.Println("error:", err)

		return nil, false
	}

	q := sh.store.Query()
	for column, v := range pairs {
		q = q.Where(column, v)
	}

	return q, true
}

func (sh *shell) cmdRows(args []string) {
	q, ok := sh.query(args)
	if !ok {
		return
	}

	rows, err := q.Get()
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	printRows(sh.o, sh.store.Headers(), rows)
	sh.o.Printf("%d row(s)\n", len(rows))
}

func (sh *shell) cmdSelect(args []string) {
	if len(args) < 1 {
		sh.o.Println("usage: select <col,col,...> [col=val]...")

		return
	}

	q, ok := sh.query(args[1:])
	if !ok {
		return
	}

	cols := strings.Split(args[0], ",")

	rows, err := q.Select(cols...).Get()
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	printRows(sh.o, sh.store.Headers(), rows)
	sh.o.Printf("%d row(s)\n", len(rows))
}

func (sh *shell) cmdGet(args []string) {
	if len(args) != 1 {
		sh.o.Println("usage: get <key>")

		return
	}

	row, err := sh.store.Find(args[0])
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	if row == nil {
		sh.o.Println("not found")

		return
	}

	printRow(sh.o, sh.store.Headers(), row)
}

func (sh *shell) cmdFirst(args []string) {
	q, ok := sh.query(args)
	if !ok {
		return
	}

	row, err := q.First()
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	if row == nil {
		sh.o.Println("not found")

		return
	}

	printRow(sh.o, sh.store.Headers(), row)
}

func (sh *shell) cmdPluck(args []string) {
	if len(args) < 1 {
		sh.o.Println("usage: pluck <col> [col=val]...")

		return
	}

	q, ok := sh.query(args[1:])
	if !ok {
		return
	}

	vals, err := q.Pluck(args[0])
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	for _, v := range vals {
		sh.o.Println(v.Text())
	}
}

func (sh *shell) cmdValue(args []string) {
	if len(args) < 1 {
		sh.o.Println("usage: value <col> [col=val]...")

		return
	}

	q, ok := sh.query(args[1:])
	if !ok {
		return
	}

	v, err := q.Value(args[0])
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	sh.o.Println(v.Text())
}

func (sh *shell) cmdCount(args []string) {
	q, ok := sh.query(args)
	if !ok {
		return
	}

	rows, err := q.Get()
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	sh.o.Println(len(rows))
}

func (sh *shell) cmdInsert(args []string) {
	if len(args) == 0 {
		sh.o.Println("usage: insert <col=val>...")

		return
	}

	fields, err := parsePairs(args, "set")
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	sh.report(sh.store.Insert(rowFromSet(fields)))
}

func (sh *shell) cmdDelete(args []string) {
	if len(args) == 0 {
		sh.o.Println("usage: delete <col=val>...")

		return
	}

	pairs, err := parsePairs(args, "where")
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	n, err := sh.store.DeleteWhere(pairs)
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	sh.o.Printf("deleted %d row(s)\n", n)
}

func (sh *shell) report(err error) {
	if err != nil {
		sh.o.Println("error:", err)

		return
	}

	sh.o.Println("ok")
}

// completer offers command names, then column names for arguments.
func (sh *shell) completer(line string) []string {
	commands := []string{
		"rows", "where ", "select ", "get ", "first ", "pluck ",
		"value ", "count", "insert ", "delete ", "flush", "headers",
		"help", "exit",
	}

	if !strings.Contains(line, " ") {
		var out []string

		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(line)) {
				out = append(out, c)
			}
		}

		return out
	}

	idx := strings.LastIndex(line, " ") + 1
	prefix, partial := line[:idx], line[idx:]

	var out []string

	for _, h := range sh.store.Headers() {
		if strings.HasPrefix(h, partial) {
			out = append(out, prefix+h+"=")
		}
	}

	return out
}
