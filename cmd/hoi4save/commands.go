package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"hoi4save/internal/config"
	"hoi4save/internal/keeper"
)

// keeperFlags registers the settings flags shared by the store
// commands and returns a loader for the resulting keeper.
func keeperFlags(fs *flag.FlagSet) func() (*keeper.Keeper, error) {
	configPath := fs.String("config", "", "path to YAML or INI config file")
	savePath := fs.String("save", "", "save file to back up")
	compression := fs.String("compression", "", "backup compression: none, lz4 or zstd")

	return func() (*keeper.Keeper, error) {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		if *savePath != "" {
			cfg.SavePath = *savePath
		}
		if *compression != "" {
			cfg.Compression = *compression
		}
		return keeper.New(cfg, cfg.Logger())
	}
}

func runBackup(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	load := keeperFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := load()
	if err != nil {
		return err
	}
	e, err := k.Backup()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s | %s\n", e.Name, e.Label)
	return nil
}

func runList(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	load := keeperFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := load()
	if err != nil {
		return err
	}
	entries, err := k.Store().List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%-48s | %s\n", e.Name, e.Label)
	}
	return nil
}

func runRestore(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	load := keeperFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected a backup label or file name")
	}
	k, err := load()
	if err != nil {
		return err
	}
	e, err := k.Restore(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "restored %s (%s)\n", e.Name, e.Label)
	return nil
}

func runWatch(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	load := keeperFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	k, err := load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Restores go through the running keeper so its watcher does not
	// back the restored file up again.
	go serveCommands(ctx, k, stdin, stdout)
	return k.Run(ctx)
}

// serveCommands reads one command per line from r until r ends or ctx
// is done: "restore QUERY", "backup", "list" or "help".
func serveCommands(ctx context.Context, k *keeper.Keeper, r io.Reader, w io.Writer) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(sc.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "restore":
			if arg == "" {
				fmt.Fprintln(w, "usage: restore QUERY")
				continue
			}
			e, err := k.Restore(arg)
			if err != nil {
				fmt.Fprintf(w, "restore failed: %v\n", err)
				continue
			}
			fmt.Fprintf(w, "restored %s (%s)\n", e.Name, e.Label)
		case "backup":
			e, err := k.Backup()
			if err != nil {
				fmt.Fprintf(w, "backup failed: %v\n", err)
				continue
			}
			fmt.Fprintf(w, "%s | %s\n", e.Name, e.Label)
		case "list":
			entries, err := k.Store().List()
			if err != nil {
				fmt.Fprintf(w, "list failed: %v\n", err)
				continue
			}
			for _, e := range entries {
				fmt.Fprintf(w, "%-48s | %s\n", e.Name, e.Label)
			}
		case "help":
			fmt.Fprintln(w, "commands: restore QUERY, backup, list, help")
		default:
			fmt.Fprintf(w, "unknown command %q\n", cmd)
		}
	}
}
