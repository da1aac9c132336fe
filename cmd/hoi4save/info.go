package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"hoi4save/pkg/savefile"
)

var errSomeFailed = errors.New("some files could not be decoded")

type fileSummary struct {
	File string `json:"file"`
	savefile.Summary
}

func runInfo(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print JSON lines")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("no files given")
	}

	failed := false
	enc := json.NewEncoder(stdout)
	for _, arg := range fs.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			failed = true
			continue
		}
		if info.IsDir() {
			fmt.Fprintf(stderr, "%s: is a directory\n", arg)
			failed = true
			continue
		}

		sum, err := savefile.DecodeFile(arg)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			failed = true
			continue
		}

		if *asJSON {
			if err := enc.Encode(fileSummary{File: arg, Summary: sum}); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(stdout, "== File \"%s\" ==\n", arg)
		fmt.Fprintln(stdout, "Player:", sum.Player)
		fmt.Fprintln(stdout, "Date:", sum.DisplayDate)
		fmt.Fprintln(stdout, "Raw Date:", sum.RawDate)
		fmt.Fprintln(stdout)
	}
	if failed {
		return errSomeFailed
	}
	return nil
}

func runDump(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	limit := fs.Int("n", 64, "stop after this many tokens (0 for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one file")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	stream, err := savefile.VerifyHeader(data)
	if err != nil {
		return err
	}

	sc := savefile.NewScanner(stream)
	for n := 0; *limit == 0 || n < *limit; n++ {
		off := sc.Offset() + len(savefile.Magic)
		tok, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "OFFSET %d: Code=%d Kind=%s Depth=%d Text=%s\n",
			off, tok.Code, tok.Kind, sc.Depth(), tok.Text)
	}
	return nil
}
