package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/catalogdb/internal/config"
	"github.com/mrlokans/catalogdb/internal/report"
	"github.com/mrlokans/catalogdb/internal/reportclient"
)

type ReportCommand struct {
	ServerURL string
	Format    string
	Only      string
	Timeout   time.Duration

	format report.Format
	names  []string
	out    io.Writer
}

func NewReportCommand() *ReportCommand {
	return &ReportCommand{out: os.Stdout}
}

func (cmd *ReportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	fs.StringVar(&cmd.ServerURL, "server", config.DefaultServerURL, "Base URL of a running catalogdb server")
	fs.StringVar(&cmd.Format, "format", string(report.FormatTable), "Output format: table, yaml or json")
	fs.StringVar(&cmd.Only, "only", "", "Comma-separated report names to print (default: all)")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Timeout for all report requests")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s report [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Fetch the catalog reports from a running server and print them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nReports: %s\n", strings.Join(reportclient.Names(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s report -server http://catalog:8188 -format yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s report -only cheapest_book,most_expensive_book -format json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := report.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	cmd.format = format

	cmd.names = nil
	for _, name := range strings.Split(cmd.Only, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cmd.names = append(cmd.names, name)
		}
	}

	return nil
}

func (cmd *ReportCommand) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	if cmd.format == "" {
		cmd.format = report.FormatTable
	}

	client := reportclient.New(cmd.ServerURL)
	results, err := client.Run(ctx, cmd.names...)
	if err != nil {
		return err
	}

	sections := make([]report.Section, 0, len(results))
	unreachable := 0
	for _, r := range results {
		sections = append(sections, toSection(r))
		var statusErr *reportclient.StatusError
		if r.Err != nil && !errors.As(r.Err, &statusErr) {
			unreachable++
		}
	}

	if err := report.Render(out, cmd.format, sections); err != nil {
		return fmt.Errorf("failed to render reports: %w", err)
	}
	// Per-report HTTP errors are part of the output; only a server that
	// answered nothing at all fails the command.
	if unreachable > 0 && unreachable == len(results) {
		return fmt.Errorf("no report could be fetched from %s", cmd.ServerURL)
	}
	return nil
}

func toSection(r reportclient.Result) report.Section {
	s := report.Section{Name: r.Name, Title: r.Heading}
	if r.Err != nil {
		s.Err = r.Err.Error()
		return s
	}
	for _, f := range r.Fields {
		s.Fields = append(s.Fields, report.Field{Name: f.Name, Value: f.Value})
	}
	return s
}
