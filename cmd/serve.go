package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/cashflow/server"
	"github.com/gin-gonic/gin"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the ledger over a local REST API" }
func (*serveCmd) Usage() string {
	return `flucas serve [-addr host:port]

  Serves the ledger as JSON:

    GET    /entries              all entries, newest first
    GET    /entries/{id}         one entry
    POST   /entries              add an entry
    PUT    /entries/{id}         replace an entry
    DELETE /entries/{id}?confirm=true
    GET    /balance              balance and totals
    GET    /export/csv|json      download FLUCAS.csv or FLUDAT.json
    POST   /import?confirm=true  replace the ledger with a FLUDAT.json payload

  Every change is saved to the store.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "localhost:8080", "Address to listen on.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, ledger, err := openLedger(ctx)
	if err != nil {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	defer store.Close()

	if !*Verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    c.addr,
		Handler: server.New(ledger).Handler(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	fmt.Fprintf(stderr, "In ascolto su http://%s (Ctrl-C per terminare)\n", c.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintln(stderr, userMessage(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
