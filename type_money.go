package cashflow

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the only currency a ledger is kept in.
const Currency = "EUR"

// displayFraction is the number of decimals shown and stored for user input.
const displayFraction = 2

// italian renders amounts like "1.234,56 €".
var italian = money.NewFormatter(displayFraction, ",", ".", "€", "1 $")

// italianPlain renders amounts like "1.234,56", for spreadsheets.
var italianPlain = money.NewFormatter(displayFraction, ",", ".", "", "1")

// Money represents an amount of euros. Arithmetic is exact, rounding only
// happens on display.
type Money struct {
	value decimal.Decimal
}

// M returns value as Money.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic(fmt.Sprintf("unsupported type %T", value))
	}
}

// ParseMoney parses an amount typed by a user or read from a legacy file.
//
// When the text contains a comma it is the decimal separator and dots are
// thousands separators ("1.234,5"), otherwise the dot is the decimal
// separator ("1234.5"). A trailing or leading "€" is ignored.
func ParseMoney(s string) (Money, error) {
	str := strings.TrimSpace(s)
	str = strings.TrimSpace(strings.Trim(str, "€"))
	str = strings.ReplaceAll(str, " ", "")
	if strings.Contains(str, ",") {
		str = strings.ReplaceAll(str, ".", "")
		str = strings.Replace(str, ",", ".", 1)
	}
	if str == "" {
		return Money{}, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// minor returns the amount in cents, rounded half away from zero.
func (m Money) minor() int64 { return m.value.Round(displayFraction).Shift(displayFraction).IntPart() }

// String returns the amount formatted like "1.234,56 €".
func (m Money) String() string { return italian.Format(m.minor()) }

// Localized returns the amount formatted like "1.234,56", without the currency symbol.
func (m Money) Localized() string { return italianPlain.Format(m.minor()) }

// SignedString returns the string representation of the money value with a sign.
func (m Money) SignedString() string {
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// Round returns m rounded to the cent.
func (m Money) Round() Money { return Money{value: m.value.Round(displayFraction)} }

// MarshalJSON writes the amount as a plain JSON number with all its digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

// UnmarshalJSON reads a JSON number, or a string holding an amount in any
// format accepted by ParseMoney.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return fmt.Errorf("invalid amount %s: %w", v, err)
		}
		m.value = d
	case string:
		parsed, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = parsed
	case nil:
		*m = Money{}
	default:
		return fmt.Errorf("invalid amount %s", data)
	}
	return nil
}
