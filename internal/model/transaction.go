package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
)

// TransactionType classifies a ledger entry.
type TransactionType int

// Transaction types. Values start at 1 so the zero value can mean
// "any type" in queries.
const (
	TransactionDefault TransactionType = iota + 1
	// TransactionPurchase records stocking inventory.
	TransactionPurchase
	// TransactionSales records revenue made from sales.
	TransactionSales
	// TransactionLoan records income or expense by loan.
	TransactionLoan
	// TransactionSubsidy records income from a subsidy.
	TransactionSubsidy
)

func (t TransactionType) String() string {
	switch t {
	case TransactionDefault:
		return "default"
	case TransactionPurchase:
		return "purchase"
	case TransactionSales:
		return "sales"
	case TransactionLoan:
		return "loan"
	case TransactionSubsidy:
		return "subsidy"
	default:
		return fmt.Sprintf("transaction_type(%d)", int(t))
	}
}

// Transaction is one immutable entry in a business's ledger. Expenses
// carry negative dollar amounts. Entries are appended, never deleted.
type Transaction struct {
	Title   string          `json:"title"`
	Dollars decimal.Decimal `json:"dollars"`
	Week    int             `json:"week"`
	Type    TransactionType `json:"transaction_type"`
}

func (t Transaction) String() string {
	return fmt.Sprintf("W%d : %s : %s", t.Week, common.FormatDollars(t.Dollars), t.Title)
}
