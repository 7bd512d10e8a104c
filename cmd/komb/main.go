package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rychenberg/komb/cmd"
)

const globalUsage = `Usage: %s <subcommand> [options]
       %s config.ini

subcommands:
  combine             Combine the data files of a config file into one output file.
  stats               Show statistics of the data files of a config file.
  view                Show the samples read from the data files of a config file.
  version             Show version

Run %s <subcommand> -h to show help for subcommand.

environment:
  KOMB_LOG_LEVEL      debug, info, warn or error (default info)
  KOMB_LOG_FORMAT     text or json (default text)
  KOMB_WORKERS        number of data files read in parallel (default 4)
`

func main() {
	os.Exit(run())
}

var cmdName = filepath.Base(os.Args[0])

var (
	version string
	commit  string
	date    string
)

func run() int {
	flag.Usage = func() {
		fmt.Printf(globalUsage, cmdName, cmdName, cmdName)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	env, err := cmd.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	logger, err := cmd.NewLogger(env, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	slog.SetDefault(logger)

	var c cmd.Command
	switch args[0] {
	case "combine":
		c = &cmd.CombineCommand{Workers: env.Workers, Logger: logger}
	case "stats":
		c = &cmd.StatsCommand{Workers: env.Workers, Logger: logger}
	case "view":
		c = &cmd.ViewCommand{Workers: env.Workers, Logger: logger}
	case "version":
		showVersion()
		return 0
	default:
		if len(args) == 1 && strings.HasSuffix(strings.ToLower(args[0]), ".ini") {
			// komb config.ini, as in earlier versions.
			args = []string{"combine", args[0]}
			c = &cmd.CombineCommand{Workers: env.Workers, Logger: logger}
			break
		}
		flag.Usage()
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s %s [options] [config.ini]\n\noptions:\n", cmdName, args[0])
		fs.PrintDefaults()
	}
	err = c.Parse(fs, args[1:])
	if err == nil {
		err = c.Execute()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		var roerr *cmd.RequiredOptionError
		if errors.As(err, &roerr) {
			fmt.Fprintf(os.Stderr, "\n")
			roerr.Usage()
		}
		return 2
	}
	return 0
}

func showVersion() {
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Commit:  %s\n", commit)
	fmt.Printf("Date:    %s\n", date)
}
