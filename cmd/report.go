package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cashflow/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type reportCmd struct {
	html   bool
	output string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "print the full statement of the ledger" }
func (*reportCmd) Usage() string {
	return `flucas report [-html] [-o <file>]

  Prints the balance, the totals and all entries grouped by month.
  Use -html for an HTML page instead of markdown.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.html, "html", false, "Convert the report to HTML.")
	f.StringVar(&c.output, "o", "", "Write the report to a file instead of the standard output.")
}

// toHTML converts markdown, tables included, to an HTML page.
func toHTML(md string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.New(goldmark.WithExtensions(extension.GFM)).Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("cannot convert report to html: %w", err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"it\">\n<head><meta charset=\"utf-8\"><title>FLUCAS</title></head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	md := renderer.RenderReport(renderer.NewReport(ledger))
	if !c.html && c.output == "" {
		printMarkdown(md)
		return subcommands.ExitSuccess
	}

	out := []byte(md)
	if c.html {
		if out, err = toHTML(md); err != nil {
			fmt.Fprintln(stderr, userMessage(err))
			return subcommands.ExitFailure
		}
	}
	if c.output == "" {
		stdout.Write(out)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, out, 0o644); err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
