package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as csv or json" }
func (*exportCmd) Usage() string {
	return `flucas export [-o <file>] csv|json

  Exports the ledger to FLUCAS.csv, for spreadsheets, or FLUDAT.json, a
  backup that can be imported back. Use -o - to write to the standard output.
  Nothing is written when the ledger is empty.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to FLUCAS.csv or FLUDAT.json.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Errore: indica il formato, csv o json.")
		return subcommands.ExitUsageError
	}
	format := f.Arg(0)
	if format != "csv" && format != "json" {
		fmt.Fprintf(stderr, "Errore: formato %q sconosciuto, usa csv o json.\n", format)
		return subcommands.ExitUsageError
	}

	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	var buf bytes.Buffer
	output := c.output
	switch format {
	case "csv":
		err = cashflow.ExportCSV(&buf, ledger.Snapshot(), ledger.Balance())
		if output == "" {
			output = cashflow.CSVFilename
		}
	case "json":
		err = cashflow.ExportJSON(&buf, ledger.Snapshot())
		if output == "" {
			output = cashflow.JSONFilename
		}
	}
	if errors.Is(err, cashflow.ErrNothingToExport) {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}

	if output == "-" {
		stdout.Write(buf.Bytes())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Esportate %d operazioni in %s\n", ledger.Len(), output)
	return subcommands.ExitSuccess
}
