package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cashflow"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `flucas query <jsonpath>

  Evaluates a JSONPath expression on the JSON backup of the ledger and prints
  the result as JSON.

Usage Examples:
$ flucas query '$[?(@.kind=="ENTRATA")].description'
$ flucas query '$[?(@.toBeReimbursed && !@.reimbursed)].amount'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

// Query evaluates expr on the JSON document of entries.
func Query(expr string, entries []cashflow.Entry) (any, error) {
	var buf bytes.Buffer
	if err := cashflow.EncodeEntries(&buf, entries); err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, err
	}
	return jsonpath.Get(expr, doc)
}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Errore: indica l'espressione JSONPath.")
		return subcommands.ExitUsageError
	}
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	result, err := Query(f.Arg(0), ledger.Snapshot())
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, string(out))
	return subcommands.ExitSuccess
}
