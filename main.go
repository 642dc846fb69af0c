package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jpappel/squint/cmd"
	"github.com/jpappel/squint/pkg/data"
	"github.com/jpappel/squint/pkg/query"
)

const VERSION = "0.1.0"
const ExitCommand = 2 // exit because of a command parsing error

func addGlobalFlagUsage(fs *flag.FlagSet) func() {
	return func() {
		f := fs.Output()
		fmt.Fprintln(f, "Usage of", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintln(f, "\nGlobal Flags:")
		flag.PrintDefaults()
	}
}

func main() {
	globalFlags := cmd.GlobalFlags{}
	cmd.SetupGlobalFlags(flag.CommandLine, &globalFlags)

	optimizeFs := flag.NewFlagSet("optimize", flag.ExitOnError)
	historyFs := flag.NewFlagSet("history", flag.ExitOnError)
	shellFs := flag.NewFlagSet("shell", flag.ExitOnError)
	serverFs := flag.NewFlagSet("server", flag.ExitOnError)
	examplesFs := flag.NewFlagSet("examples", flag.ExitOnError)

	// set default usage for flagsets without subcommands
	shellFs.Usage = addGlobalFlagUsage(shellFs)
	examplesFs.Usage = addGlobalFlagUsage(examplesFs)

	flag.Parse()
	args := flag.Args()

	optimizeFlags := cmd.OptimizeFlags{Outputer: query.DefaultOutput{}}
	historyFlags := cmd.HistoryFlags{}
	serverFlags := cmd.ServerFlags{Port: 8080}

	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "No Command provided")
		cmd.PrintHelp(os.Stderr)
		cmd.PrintGlobalFlags(os.Stderr)
		os.Exit(ExitCommand)
	}
	command := args[0]

	switch command {
	case "optimize", "o":
		cmd.SetupOptimizeFlags(args[1:], optimizeFs, &optimizeFlags)
	case "history":
		cmd.SetupHistoryFlags(args[1:], historyFs, &historyFlags)
	case "server":
		cmd.SetupServerFlags(args[1:], serverFs, &serverFlags)
	case "examples":
		examplesFs.Parse(args[1:])
	case "help":
		cmd.PrintHelp(os.Stdout)
		cmd.PrintGlobalFlags(os.Stdout)
		return
	case "shell":
		shellFs.Parse(args[1:])
	default:
		fmt.Fprintln(os.Stderr, "Unrecognized command: ", command)
		cmd.PrintHelp(os.Stderr)
		os.Exit(ExitCommand)
	}

	slogLevel := &slog.LevelVar{}
	loggerOpts := &slog.HandlerOptions{Level: slogLevel}
	switch globalFlags.LogLevel {
	case "debug":
		slogLevel.Set(slog.LevelDebug)
		loggerOpts.AddSource = true
	case "info":
		slogLevel.Set(slog.LevelInfo)
	case "warn":
		slogLevel.Set(slog.LevelWarn)
	case "error":
		slogLevel.Set(slog.LevelError)
	default:
		fmt.Fprintln(os.Stderr, "Unrecognized log level:", globalFlags.LogLevel)
		os.Exit(ExitCommand)
	}

	var logFile *os.File
	var err error
	switch globalFlags.LogFile {
	case "":
		logFile = os.Stderr
	case "-":
		logFile = os.Stdout
	default:
		logFile, err = os.Create(globalFlags.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot use log file `%s`: %s", globalFlags.LogFile, err)
			os.Exit(1)
		}
		defer logFile.Close()
	}

	var logHandler slog.Handler
	if globalFlags.LogJson {
		logHandler = slog.NewJSONHandler(logFile, loggerOpts)
	} else {
		// strip time
		loggerOpts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		}
		logHandler = slog.NewTextHandler(logFile, loggerOpts)
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	scorer := cmd.LoadScorer(globalFlags)
	history := data.NewHistory(globalFlags.DBPath)

	// command specific
	var exitCode int
	switch command {
	case "optimize", "o":
		statement := strings.Join(optimizeFs.Args(), " ")
		exitCode = int(cmd.RunOptimize(optimizeFlags, scorer, history, statement))
	case "examples":
		exitCode = int(cmd.RunExamples(scorer, optimizeFlags.Outputer))
	case "history":
		exitCode = int(cmd.RunHistory(historyFlags, history))
	case "server":
		exitCode = int(cmd.RunServer(serverFlags, scorer, history))
	case "shell":
		exitCode = int(cmd.RunShell(globalFlags, scorer, history, VERSION))
	}

	history.Close()
	os.Exit(exitCode)
}
