package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidLedger marks a ledger that fails structural validation.
var ErrInvalidLedger = errors.New("invalid ledger")

// Transaction is one dated ledger row. Income and expenses are separate
// rows sharing the same schema: a salary row carries Income with zero
// Spending, an expense row the reverse. Category is required free-form text.
type Transaction struct {
	Date     time.Time       // transaction date (day precision)
	Income   decimal.Decimal // money in, non-negative
	Spending decimal.Decimal // money out, non-negative
	Category string          // e.g. "Salary", "Food", "Housing"
}

// Ledger is the transaction set for one analysis run. The boundary builds
// it once; the pipeline only reads it. Loading a new data source means
// building a new Ledger, never mutating this one.
type Ledger []Transaction

// Validate checks the structural invariants the analysis stage relies on:
// at least one row, a date and category on every row, no negative amounts.
func (l Ledger) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: no transactions", ErrInvalidLedger)
	}
	for i, tx := range l {
		if tx.Date.IsZero() {
			return fmt.Errorf("%w: row %d: missing date", ErrInvalidLedger, i+1)
		}
		if tx.Category == "" {
			return fmt.Errorf("%w: row %d: missing category", ErrInvalidLedger, i+1)
		}
		if tx.Income.IsNegative() {
			return fmt.Errorf("%w: row %d: negative income %s", ErrInvalidLedger, i+1, tx.Income)
		}
		if tx.Spending.IsNegative() {
			return fmt.Errorf("%w: row %d: negative spending %s", ErrInvalidLedger, i+1, tx.Spending)
		}
	}
	return nil
}
