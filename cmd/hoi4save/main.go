package main

import (
	"fmt"
	"io"
	"os"
)

func usage(w io.Writer) {
	fmt.Fprintf(w, `Usage: hoi4save <command> [options] [args]

Commands:
  info [-json] FILE...      print player and in-game date of saves
  dump [-n N] FILE          print the token stream of a save
  backup                    copy the save to a timestamped backup
  list                      list backups with their labels
  restore QUERY             restore the backup matching QUERY
  watch                     back up the save every time it changes;
                            reads "restore QUERY", "backup" and "list"
                            lines from stdin while watching

backup, list, restore and watch take:
  -config FILE              YAML or INI settings file
  -save FILE                save to watch (overrides the config)
  -compression none|lz4|zstd
`)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	case "info":
		err = runInfo(rest, stdout, stderr)
	case "dump":
		err = runDump(rest, stdout)
	case "backup":
		err = runBackup(rest, stdout)
	case "list":
		err = runList(rest, stdout)
	case "restore":
		err = runRestore(rest, stdout)
	case "watch":
		err = runWatch(rest, os.Stdin, stdout)
	default:
		fmt.Fprintf(stderr, "hoi4save: unknown command %q\n", cmd)
		usage(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "hoi4save %s: %v\n", cmd, err)
		return 1
	}
	return 0
}
