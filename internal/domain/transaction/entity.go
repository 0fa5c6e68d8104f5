package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

var typeAliases = map[string]Type{
	"income":  TypeIncome,
	"gelir":   TypeIncome,
	"expense": TypeExpense,
	"gider":   TypeExpense,
}

func ParseType(s string) (Type, error) {
	if t, ok := typeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Transaction is a cash ledger entry. Canceled entries stay in the audit list
// but never count toward a sum.
type Transaction struct {
	ID            string
	Type          Type
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
	Canceled      bool
	CreatedBy     string
	AppointmentID *string
	CreatedAt     time.Time
}

// IsIncome treats anything that is not income as an expense.
func (t Transaction) IsIncome() bool {
	parsed, err := ParseType(string(t.Type))
	return err == nil && parsed == TypeIncome
}
