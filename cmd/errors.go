package cmd

import (
	"errors"

	"github.com/etnz/cashflow"
)

// userMessage returns the message to show for err.
func userMessage(err error) string {
	var verr *cashflow.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return "Errore: " + err.Error()
}
