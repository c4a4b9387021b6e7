package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
)

// InterestType is a closed set of interest schemes. Compound variants
// carry their compounding periods per year as the enum value; simple
// interest carries zero.
type InterestType int

// Interest schemes.
const (
	InterestSimple           InterestType = 0
	InterestCompoundAnnually InterestType = 1
	InterestCompoundMonthly  InterestType = 12
	InterestCompoundBiweekly InterestType = 24
	InterestCompoundWeekly   InterestType = 48
)

// PeriodsPerYear returns the compounding frequency, or zero for
// simple interest.
func (t InterestType) PeriodsPerYear() int {
	return int(t)
}

func (t InterestType) String() string {
	switch t {
	case InterestSimple:
		return "simple"
	case InterestCompoundAnnually:
		return "compound annually"
	case InterestCompoundMonthly:
		return "compound monthly"
	case InterestCompoundBiweekly:
		return "compound biweekly"
	case InterestCompoundWeekly:
		return "compound weekly"
	default:
		return fmt.Sprintf("interest_type(%d)", int(t))
	}
}

// PaybackType is the cadence at which loan installments fall due.
// The enum value is the number of weeks between payments.
type PaybackType int

// Payback cadences.
const (
	PaybackWeekly   PaybackType = 1
	PaybackBiweekly PaybackType = 2
	PaybackMonthly  PaybackType = 4
	PaybackAnnually PaybackType = 48
)

// Weeks returns the number of weeks between payments.
func (t PaybackType) Weeks() int {
	return int(t)
}

func (t PaybackType) String() string {
	switch t {
	case PaybackWeekly:
		return "weekly"
	case PaybackBiweekly:
		return "biweekly"
	case PaybackMonthly:
		return "monthly"
	case PaybackAnnually:
		return "annually"
	default:
		return fmt.Sprintf("payback_type(%d)", int(t))
	}
}

// WeeksPerYear is the simulation calendar: 4 weeks a month, 12 months a year.
const WeeksPerYear = 48

// Loan is a loan or subsidy offer. A term of zero years denotes a
// subsidy: its amount is granted once and never repaid.
type Loan struct {
	Name           string
	Term           int // years; 0 denotes a subsidy
	Requirements   []Requirement
	Amount         decimal.Decimal // principal
	Rate           decimal.Decimal // annual
	InterestType   InterestType
	PaybackType    PaybackType
	RemainingWeeks int
}

// NewLoan creates a loan with its repayment countdown initialized to
// the full term.
func NewLoan(name string, term int, amount, rate decimal.Decimal,
	interest InterestType, payback PaybackType, reqs []Requirement) *Loan {
	return &Loan{
		Name:           name,
		Term:           term,
		Requirements:   reqs,
		Amount:         amount,
		Rate:           rate,
		InterestType:   interest,
		PaybackType:    payback,
		RemainingWeeks: term * WeeksPerYear,
	}
}

// Key returns the loan's collection key.
func (l *Loan) Key() string {
	return l.Name
}

func (l *Loan) String() string {
	return l.Name
}

// IsSubsidy reports whether this loan is a subsidy (no term, no repayment).
func (l *Loan) IsSubsidy() bool {
	return l.Term == 0
}

// InterestDue returns the total interest over the loan's term: simple
// interest is principal x rate x term; compound interest is
// principal x (1+rate/n)^(n x term) - principal with n periods per year.
func (l *Loan) InterestDue() decimal.Decimal {
	if l.IsSubsidy() {
		return decimal.Decimal{}
	}

	term := decimal.NewFromInt(int64(l.Term))
	if l.InterestType == InterestSimple {
		return l.Amount.Mul(l.Rate).Mul(term)
	}

	n := int64(l.InterestType.PeriodsPerYear())
	base := decimal.NewFromInt(1).Add(l.Rate.Div(decimal.NewFromInt(n)))
	grown := l.Amount.Mul(base.Pow(decimal.NewFromInt(n * int64(l.Term))))
	return grown.Sub(l.Amount)
}

// Balance returns principal plus total interest due.
func (l *Loan) Balance() decimal.Decimal {
	return l.Amount.Add(l.InterestDue())
}

// NumPayments returns the number of scheduled installments.
func (l *Loan) NumPayments() int {
	if l.IsSubsidy() {
		return 0
	}
	return l.Term * WeeksPerYear / l.PaybackType.Weeks()
}

// NormalPayment returns the amount due on a regular installment,
// rounded to the cent.
func (l *Loan) NormalPayment() decimal.Decimal {
	if l.IsSubsidy() {
		return decimal.Decimal{}
	}
	return common.RoundDollars(l.Balance().Div(decimal.NewFromInt(int64(l.NumPayments()))))
}

// FinalPayment returns the amount due on the last installment: the
// remainder of the balance after the regular installments, or a full
// installment when the balance divides evenly.
func (l *Loan) FinalPayment() decimal.Decimal {
	if l.IsSubsidy() {
		return decimal.Decimal{}
	}
	payment := l.Balance().Mod(l.NormalPayment())
	if payment.IsZero() {
		return l.NormalPayment()
	}
	return payment
}

// RemainingPayments returns how many installments are left on the countdown.
func (l *Loan) RemainingPayments() int {
	if l.IsSubsidy() {
		return 0
	}
	return l.RemainingWeeks / l.PaybackType.Weeks()
}

// NextPayment returns the amount of the next installment. afterStep
// indicates the weekly countdown has already been decremented for the
// current tick, which shifts the final-payment threshold by one so the
// last payment lands on the week the countdown reaches zero.
func (l *Loan) NextPayment(afterStep bool) decimal.Decimal {
	if l.IsSubsidy() {
		return decimal.Decimal{}
	}

	threshold := 1
	if afterStep {
		threshold = 2
	}
	if l.RemainingPayments() < threshold {
		return l.FinalPayment()
	}
	return l.NormalPayment()
}

// Check reports whether a business qualifies for this loan. A loan
// with no requirements trivially qualifies.
func (l *Loan) Check(m Metrics) bool {
	for _, req := range l.Requirements {
		if !req.Check(m) {
			return false
		}
	}
	return true
}
