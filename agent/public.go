package agent

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/etnz/cashflow/docs"
	"github.com/etnz/cashflow/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of solving the user's request.
			The user keeps a personal cash-flow ledger of incomes and expenses, in euros, and speaks italian.

			Learn about the expert's skills from the Tools and ask them questions.
			They keep the context of your previous questions.

			Devise a plan of questions to ask the experts and come up with the best answer, in italian.
			Never invent an amount: every figure must come from an expert.
			Before asking an expert to record an entry, make sure the user approved its description, amount and kind.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper returns the expert in charge of l.
func NewBookkeeper(l *cashflow.Ledger) *Expert {
	lib := Tools(l)
	return &Expert{
		Name: "Bookkeeper",
		Description: `The Bookkeeper reads and edits the user's cash-flow ledger.
		Ask the Bookkeeper about the balance, the incomes and expenses of any period,
		the expenses waiting for a reimbursement, or to record a new entry.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are the bookkeeper of the user's cash-flow ledger.
				Each entry is an income (ENTRATA) or an expense (USCITA), with a description,
				a positive amount in euros, a date, and optionally a reimbursement status.
				The balance is the sum of incomes minus the sum of expenses.

				Use the Tools to answer, they return markdown documents in italian.
				Quote the figures as they are written, in the italian format.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a Function with a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// dateSchema describes a date argument.
func dateSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Description: description + "\n\n" + must(docs.GetTopic("dates")),
	}
}

// Tools returns the functions operating on l.
func Tools(l *cashflow.Ledger) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Saldo",
				Description: "Saldo returns the current balance, with the totals of incomes, expenses, and reimbursements.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return success(id, "Saldo", renderer.RenderBalance(&renderer.Balance{Balance: l.Balance(), Totals: l.Totals()}))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Operazioni",
				Description: "Operazioni lists the entries of a period, newest first, with the totals of the period.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"from": dateSchema("First day of the period. All entries since the beginning when missing."),
						"to":   dateSchema("Last day of the period. All entries up to the end when missing."),
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of the entries."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				from, err := dateArg(args, "from")
				if err != nil {
					return failure(id, "Operazioni", err)
				}
				to, err := dateArg(args, "to")
				if err != nil {
					return failure(id, "Operazioni", err)
				}
				r := date.Between(from, to)
				entries := slices.Collect(cashflow.Within(r, l.Sorted()))
				return success(id, "Operazioni", renderer.RenderList(renderer.NewList(r, entries)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Rendiconto",
				Description: "Rendiconto returns the whole ledger grouped by month, with the totals of each month.",
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown document."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return success(id, "Rendiconto", renderer.RenderReport(renderer.NewReport(l)))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Registra",
				Description: "Registra records a new entry in the ledger. Only call it once the user approved the entry.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"kind":           {Type: genai.TypeString, Enum: []string{string(cashflow.Income), string(cashflow.Expense)}},
						"description":    {Type: genai.TypeString},
						"amount":         {Type: genai.TypeNumber, Description: "Positive amount in euros."},
						"date":           dateSchema("Day of the entry. Today when missing."),
						"toBeReimbursed": {Type: genai.TypeBoolean, Description: "The expense is expected to be reimbursed."},
					},
					Required: []string{"kind", "description", "amount"},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "The new balance."},
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				e, err := record(l, args)
				if err != nil {
					return failure(id, "Registra", err)
				}
				return success(id, "Registra", fmt.Sprintf("Operazione %s registrata. Saldo Attuale: %s", e.ID, l.Balance()))
			},
		},
	}
}

// record adds the entry described by args to l.
func record(l *cashflow.Ledger, args map[string]any) (cashflow.Entry, error) {
	d := cashflow.NewDraft()
	if s, ok := args["kind"].(string); ok {
		k, err := cashflow.ParseKind(s)
		if err != nil {
			return cashflow.Entry{}, err
		}
		d.Kind = k
	}
	d.Description, _ = args["description"].(string)
	switch v := args["amount"].(type) {
	case float64:
		d.Amount = cashflow.M(v).Decimal().String()
	case string:
		d.Amount = v
	}
	d.Date, _ = args["date"].(string)
	if b, ok := args["toBeReimbursed"].(bool); ok {
		d.SetToBeReimbursed(b)
	}

	intent, err := d.Submit(date.Today())
	var verr *cashflow.ValidationError
	if errors.As(err, &verr) {
		return cashflow.Entry{}, errors.New(verr.Message)
	}
	if err != nil {
		return cashflow.Entry{}, err
	}
	return l.Apply(intent)
}

// dateArg returns the optional date argument name.
func dateArg(args map[string]any, name string) (date.Date, error) {
	v, ok := args[name]
	if !ok {
		return date.Date{}, nil
	}
	s, ok := v.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	if s == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}, fmt.Errorf("argument %q must be a valid date, got %q. Below is the doc about the date format\n\n%s", name, s, must(docs.GetTopic("dates")))
	}
	return d, nil
}
