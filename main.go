package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/catalogdb/internal/cli"
	"github.com/mrlokans/catalogdb/internal/config"
	"github.com/mrlokans/catalogdb/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every subcommand in internal/cli.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "load":
		cmd = cli.NewLoadCommand()
	case "normalize":
		cmd = cli.NewNormalizeCommand()
	case "report":
		cmd = cli.NewReportCommand()

	case "-h", "--help", "help":
		printUsage()
		return

	case "version", "--version":
		fmt.Printf("catalogdb %s (%s)\n", Version, Commit)
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve      Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  load       Normalize the book and review files into the database\n")
	fmt.Fprintf(os.Stderr, "  normalize  Print normalized rows for one input file as JSON lines\n")
	fmt.Fprintf(os.Stderr, "  report     Print the catalog reports from a running server\n")
	fmt.Fprintf(os.Stderr, "  version    Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
