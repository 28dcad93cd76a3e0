// Package server exposes a ledger through a REST API on localhost.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/gin-gonic/gin"
)

// HeaderNotice carries benign notices of responses without body.
const HeaderNotice = "X-Flucas-Notice"

// Server serves a single ledger. Requests are serialized, the ledger is
// never accessed concurrently.
type Server struct {
	mu     sync.Mutex
	ledger *cashflow.Ledger
	today  func() date.Date
}

// New returns a Server for l.
func New(l *cashflow.Ledger) *Server {
	return &Server{ledger: l, today: date.Today}
}

// amount accepts a JSON number or string.
type amount string

func (a *amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = amount(n.String())
	return nil
}

// entryRequest is the body of POST and PUT requests, the raw content of an entry form.
type entryRequest struct {
	Kind           string `json:"kind"`
	Description    string `json:"description"`
	Amount         amount `json:"amount"`
	Date           string `json:"date"`
	ToBeReimbursed bool   `json:"toBeReimbursed"`
	Reimbursed     bool   `json:"reimbursed"`
}

// draft turns the request into a form.
func (r entryRequest) draft(id string) (*cashflow.Draft, error) {
	d := cashflow.NewDraft()
	d.ID = id
	if r.Kind != "" {
		k, err := cashflow.ParseKind(r.Kind)
		if err != nil {
			return nil, &cashflow.ValidationError{Field: "kind", Message: err.Error()}
		}
		d.Kind = k
	}
	d.Description = r.Description
	d.Amount = string(r.Amount)
	d.Date = r.Date
	d.SetToBeReimbursed(r.ToBeReimbursed)
	d.SetReimbursed(r.Reimbursed)
	return d, nil
}

// Handler returns the http handler of the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.serialize)

	r.GET("/entries", s.listEntries)
	r.GET("/entries/:id", s.getEntry)
	r.POST("/entries", s.createEntry)
	r.PUT("/entries/:id", s.updateEntry)
	r.DELETE("/entries/:id", s.deleteEntry)
	r.GET("/balance", s.balance)
	r.GET("/export/:format", s.export)
	r.POST("/import", s.importEntries)
	return r
}

// serialize holds the ledger lock for the whole request.
func (s *Server) serialize(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Next()
}

func badRequest(c *gin.Context, err error) {
	var verr *cashflow.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) listEntries(c *gin.Context) {
	entries := slices.Collect(s.ledger.Sorted())
	if entries == nil {
		entries = []cashflow.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) getEntry(c *gin.Context) {
	e, ok := s.ledger.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "operazione non trovata"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) createEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.apply(c, req, "", http.StatusCreated)
}

// updateEntry replaces the whole entry, or creates it under this id.
func (s *Server) updateEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.apply(c, req, c.Param("id"), http.StatusOK)
}

func (s *Server) apply(c *gin.Context, req entryRequest, id string, status int) {
	d, err := req.draft(id)
	if err != nil {
		badRequest(c, err)
		return
	}
	intent, err := d.Submit(s.today())
	if err != nil {
		badRequest(c, err)
		return
	}
	e, err := s.ledger.Apply(intent)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(status, e)
}

// deleteEntry requires confirm=true, there is no undo.
func (s *Server) deleteEntry(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusConflict, gin.H{"error": "Sei sicuro di voler eliminare questa operazione?", "confirm": "true"})
		return
	}
	s.ledger.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) balance(c *gin.Context) {
	t := s.ledger.Totals()
	b := s.ledger.Balance()
	c.JSON(http.StatusOK, gin.H{
		"balance":    b,
		"formatted":  b.String(),
		"income":     t.Income,
		"expense":    t.Expense,
		"pending":    t.Pending,
		"reimbursed": t.Reimbursed,
		"count":      t.Count,
	})
}

func (s *Server) export(c *gin.Context) {
	var buf bytes.Buffer
	var err error
	var filename, contentType string
	switch c.Param("format") {
	case "csv":
		filename, contentType = cashflow.CSVFilename, "text/csv; charset=utf-8"
		err = cashflow.ExportCSV(&buf, s.ledger.Snapshot(), s.ledger.Balance())
	case "json":
		filename, contentType = cashflow.JSONFilename, "application/json; charset=utf-8"
		err = cashflow.ExportJSON(&buf, s.ledger.Snapshot())
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "formato sconosciuto, usa csv o json"})
		return
	}
	if errors.Is(err, cashflow.ErrNothingToExport) {
		c.Header(HeaderNotice, err.Error())
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// importEntries replaces the ledger. A non empty ledger is only replaced with confirm=true.
func (s *Server) importEntries(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		badRequest(c, err)
		return
	}
	var entries []cashflow.Entry
	if c.Query("strict") == "true" {
		entries, err = cashflow.ImportJSONStrict(bytes.NewReader(data))
	} else {
		entries, err = cashflow.ImportJSON(bytes.NewReader(data))
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	if s.ledger.Len() > 0 && c.Query("confirm") != "true" {
		msg := fmt.Sprintf("L'importazione sostituirà le %d operazioni esistenti.", s.ledger.Len())
		c.JSON(http.StatusConflict, gin.H{"error": msg, "confirm": "true"})
		return
	}
	s.ledger.ReplaceAll(entries)
	var problems []string
	for _, err := range s.ledger.Check() {
		problems = append(problems, strings.ReplaceAll(err.Error(), "\n", "; "))
	}
	c.JSON(http.StatusOK, gin.H{"imported": s.ledger.Len(), "problems": problems})
}
