package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactType is the BitMEX transactType column.
type TransactType string

const (
	Deposit     TransactType = "Deposit"
	Withdrawal  TransactType = "Withdrawal"
	RealisedPNL TransactType = "RealisedPNL"
	Funding     TransactType = "Funding"
)

// TransactStatus is the BitMEX transactStatus column.
type TransactStatus string

const (
	Completed TransactStatus = "Completed"
	Pending   TransactStatus = "Pending"
	Canceled  TransactStatus = "Canceled"
)

// Record is one row of the wallet history export. WalletBalance is the
// balance reported by the exchange after the row was applied.
type Record struct {
	TransactID    string
	Type          TransactType
	Status        TransactStatus
	Currency      string
	Amount        decimal.Decimal
	Fee           decimal.Decimal
	WalletBalance decimal.Decimal
	Timestamp     time.Time
	Text          string
}

// Predicate selects records.
type Predicate func(Record) bool

// OfType matches rows of the given transact type, any status.
func OfType(t TransactType) Predicate {
	return func(r Record) bool { return r.Type == t }
}

// CompletedOfType matches completed rows of the given transact type.
func CompletedOfType(t TransactType) Predicate {
	return func(r Record) bool { return r.Type == t && r.Status == Completed }
}

// Filter returns the matching records in their original order.
// The input slice is not modified.
func Filter(records []Record, keep Predicate) []Record {
	var out []Record
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
