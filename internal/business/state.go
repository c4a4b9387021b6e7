package business

import (
	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/inventory"
	"github.com/spaghetto/manager/internal/model"
)

// State is a full snapshot of a business, the unit of persistence.
// Loading is an atomic replace of the whole aggregate.
type State struct {
	Balance       *decimal.Decimal
	Inventory     []*model.StockLedger
	Transactions  []model.Transaction
	EmployeeCount int
	Loans         []*model.Loan
	Offers        []*model.Loan
	TotalWeeks    int
	Metadata      Metadata
}

// Snapshot captures the business's state for serialization.
func (b *Business) Snapshot() State {
	st := State{
		Inventory:     b.inventory.All(),
		Transactions:  append([]model.Transaction(nil), b.transactions...),
		EmployeeCount: b.employeeCount,
		Loans:         b.loans.All(),
		Offers:        b.offers.All(),
		TotalWeeks:    b.totalWeeks,
		Metadata:      b.metadata,
	}
	if b.hasBalance {
		bal := b.balance
		st.Balance = &bal
	}
	return st
}

// Restore builds a business from a snapshot.
func Restore(cfg Config, st State) *Business {
	b := New(cfg)
	if st.Balance != nil {
		b.SetBalance(*st.Balance)
	}
	b.inventory = inventory.New(st.Inventory...)
	b.transactions = append([]model.Transaction(nil), st.Transactions...)
	b.employeeCount = st.EmployeeCount
	b.loans = inventory.New(st.Loans...)
	b.offers = inventory.New(st.Offers...)
	b.totalWeeks = st.TotalWeeks
	b.metadata = st.Metadata
	return b
}
