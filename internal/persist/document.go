// Package persist converts engine state to and from the structured
// save document. The document is plain JSON with currency as exact
// decimal strings; an optional base64 wrapping is tolerated on the way
// in so the I/O layer can store either form.
package persist

import (
	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/model"
	"github.com/spaghetto/manager/internal/restaurant"
)

// Document is the serialized form of a restaurant.
type Document struct {
	Balance       *decimal.Decimal `json:"balance"`
	Inventory     []ledgerRecord   `json:"inventory"`
	Transactions  []txRecord       `json:"transactions"`
	EmployeeCount int              `json:"employee_count"`
	Loans         []loanRecord     `json:"loans"`
	Dishes        []dishRecord     `json:"dishes"`
	TotalWeeks    int              `json:"total_weeks"`
	Metadata      metadataRecord   `json:"metadata"`
}

type ledgerRecord struct {
	Name string      `json:"name"`
	Unit string      `json:"unit"`
	Lots []model.Lot `json:"lots"`
}

type txRecord struct {
	Title   string                `json:"title"`
	Dollars decimal.Decimal       `json:"dollars"`
	Week    int                   `json:"week"`
	Type    model.TransactionType `json:"transaction_type"`
}

type requirementRecord struct {
	Type  model.RequirementType `json:"type"`
	Lower *decimal.Decimal      `json:"lower"`
	Upper *decimal.Decimal      `json:"upper"`
}

type loanRecord struct {
	Name           string              `json:"name"`
	Term           int                 `json:"term"`
	Requirements   []requirementRecord `json:"requirements"`
	Amount         decimal.Decimal     `json:"amount"`
	Rate           decimal.Decimal     `json:"rate"`
	InterestType   model.InterestType  `json:"interest_type"`
	PaybackType    model.PaybackType   `json:"payback_type"`
	RemainingWeeks int                 `json:"remaining_weeks"`
}

type dishRecord struct {
	Name         string          `json:"name"`
	Items        []model.Item    `json:"items"`
	Price        decimal.Decimal `json:"price"`
	Sales        *int            `json:"sales"`
	ExpenseItems []model.Item    `json:"expenses_items"`
}

type metadataRecord struct {
	Popularity *float64          `json:"popularity,omitempty"`
	LoanOffers []loanRecord      `json:"loan_offers,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// FromState builds a document from a restaurant snapshot.
func FromState(st restaurant.State) Document {
	doc := Document{
		Balance:       st.Balance,
		EmployeeCount: st.EmployeeCount,
		TotalWeeks:    st.TotalWeeks,
		Metadata: metadataRecord{
			Popularity: st.Metadata.Popularity,
			Extra:      st.Metadata.Extra,
		},
	}

	for _, ledger := range st.Inventory {
		doc.Inventory = append(doc.Inventory, ledgerRecord{
			Name: ledger.Name,
			Unit: ledger.Unit,
			Lots: ledger.Lots(),
		})
	}
	for _, t := range st.Transactions {
		doc.Transactions = append(doc.Transactions, txRecord(t))
	}
	for _, loan := range st.Loans {
		doc.Loans = append(doc.Loans, loanToRecord(loan))
	}
	for _, loan := range st.Offers {
		doc.Metadata.LoanOffers = append(doc.Metadata.LoanOffers, loanToRecord(loan))
	}
	for _, dish := range st.Dishes {
		doc.Dishes = append(doc.Dishes, dishRecord{
			Name:         dish.Name,
			Items:        dish.Items,
			Price:        dish.Price,
			Sales:        dish.Sales,
			ExpenseItems: dish.ExpenseItems,
		})
	}
	return doc
}

// ToState rebuilds a restaurant snapshot from a document.
func (doc Document) ToState() restaurant.State {
	st := restaurant.State{
		State: business.State{
			Balance:       doc.Balance,
			EmployeeCount: doc.EmployeeCount,
			TotalWeeks:    doc.TotalWeeks,
			Metadata: business.Metadata{
				Popularity: doc.Metadata.Popularity,
				Extra:      doc.Metadata.Extra,
			},
		},
	}

	for _, rec := range doc.Inventory {
		ledger := model.NewStockLedger(rec.Name, rec.Unit)
		for _, lot := range rec.Lots {
			ledger.AddLot(lot)
		}
		st.Inventory = append(st.Inventory, ledger)
	}
	for _, rec := range doc.Transactions {
		st.Transactions = append(st.Transactions, model.Transaction(rec))
	}
	for _, rec := range doc.Loans {
		st.Loans = append(st.Loans, recordToLoan(rec))
	}
	for _, rec := range doc.Metadata.LoanOffers {
		st.Offers = append(st.Offers, recordToLoan(rec))
	}
	for _, rec := range doc.Dishes {
		st.Dishes = append(st.Dishes, &model.Dish{
			Name:         rec.Name,
			Items:        rec.Items,
			Price:        rec.Price,
			Sales:        rec.Sales,
			ExpenseItems: rec.ExpenseItems,
		})
	}
	return st
}

func loanToRecord(loan *model.Loan) loanRecord {
	rec := loanRecord{
		Name:           loan.Name,
		Term:           loan.Term,
		Amount:         loan.Amount,
		Rate:           loan.Rate,
		InterestType:   loan.InterestType,
		PaybackType:    loan.PaybackType,
		RemainingWeeks: loan.RemainingWeeks,
	}
	for _, req := range loan.Requirements {
		rec.Requirements = append(rec.Requirements, requirementRecord(req))
	}
	return rec
}

func recordToLoan(rec loanRecord) *model.Loan {
	loan := &model.Loan{
		Name:           rec.Name,
		Term:           rec.Term,
		Amount:         rec.Amount,
		Rate:           rec.Rate,
		InterestType:   rec.InterestType,
		PaybackType:    rec.PaybackType,
		RemainingWeeks: rec.RemainingWeeks,
	}
	for _, req := range rec.Requirements {
		loan.Requirements = append(loan.Requirements, model.Requirement(req))
	}
	return loan
}
