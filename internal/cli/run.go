// Package cli implements the flatdb command-line interface.
package cli

import (
	"context"
	"io"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	cmds := []*Command{
		QueryCmd(env),
		GetCmd(env),
		InsertCmd(env),
		UpdateCmd(env),
		DeleteCmd(env),
		FlushCmd(env),
		ScaffoldCmd(),
		ShellCmd(in, env),
	}

	if len(args) < 2 {
		printUsage(o, cmds)

		return 0
	}

	name := args[1]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(o, cmds)

		return 0
	}

	for _, c := range cmds {
		if c.Name() == name {
			return c.Run(context.Background(), o, args[2:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(o, cmds)

	return 1
}

func printUsage(o *IO, cmds []*Command) {
	o.Println("flatdb - delimited-file backed row store")
	o.Println()
	o.Println("Usage: flatdb <command> [arguments]")
	o.Println()
	o.Println("Commands:")

	for _, c := range cmds {
		o.Println(c.HelpLine())
	}

	o.Println()
	o.Println("Most commands take a store declaration file (*.store.jsonc) as")
	o.Println("their first argument, or read it from $FLATDB_STORE.")
}
