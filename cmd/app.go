// Package cmd implements the CLI application to manage a cash-flow ledger.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/storage"
	"github.com/google/subcommands"
)

// Commands are the subcommands of flucas, by group.
func commands() map[string][]subcommands.Command {
	return map[string][]subcommands.Command{
		"entries": {&addCmd{}, &editCmd{}, &rmCmd{}},
		"views":   {&lsCmd{}, &balanceCmd{}, &reportCmd{}, &queryCmd{}, &watchCmd{}},
		"files":   {&exportCmd{}, &importCmd{}, &fmtCmd{}},
		"other":   {&serveCmd{}, &assistCmd{}, &topicCmd{}},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range commands() {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const defaultStore = "file:.flucas"

var storeFlag = flag.String("store", "", "Store URI (file:<dir>, sqlite:<path>, postgres:<dsn>). Defaults to $"+EnvStore+" or "+defaultStore)

// Verbose enables diagnostics on stderr.
var Verbose = flag.Bool("v", false, "Print diagnostics. Defaults to $"+EnvVerbose)

// standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// StoreURI returns the store selected by the flag, the environment or the default.
func StoreURI() string {
	if *storeFlag != "" {
		return *storeFlag
	}
	if v := os.Getenv(EnvStore); v != "" {
		return v
	}
	return defaultStore
}

// SetupLogging sends diagnostics to stderr when verbose, discards them otherwise.
func SetupLogging() {
	if !*Verbose {
		*Verbose, _ = strconv.ParseBool(os.Getenv(EnvVerbose))
	}
	log.SetFlags(0)
	log.SetPrefix("flucas: ")
	if *Verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
}

// openLedger loads the ledger from the store. Every mutation of the returned
// ledger is saved. The store must be closed by the caller.
func openLedger(ctx context.Context) (*storage.Local, *cashflow.Ledger, error) {
	store, err := storage.OpenLocal(ctx, StoreURI())
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open store %q: %w", StoreURI(), err)
	}
	return store, store.Ledger(ctx), nil
}

// printMarkdown renders md for the terminal, or prints it as is when stdout is not one.
func printMarkdown(md string) {
	f, ok := stdout.(*os.File)
	if !ok || !isTerminal(f) {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		log.Printf("cannot create markdown renderer: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("cannot render markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
// Anything but a yes, including the end of input, is a no.
func confirm(question string) bool {
	fmt.Fprintf(stderr, "%s [s/N] ", question)
	answer, err := readLine(stdin)
	if err != nil && answer == "" {
		fmt.Fprintln(stderr)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sì", "y", "yes":
		return true
	}
	return false
}

// readLine reads up to the end of line without buffering, so that
// successive questions read successive lines.
func readLine(r io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return b.String(), nil
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			return b.String(), err
		}
	}
}

// reportValidation prints the user message of a validation error.
func reportValidation(err error) {
	fmt.Fprintln(stderr, userMessage(err))
}
