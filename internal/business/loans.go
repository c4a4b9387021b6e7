package business

import (
	"fmt"
	"log/slog"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
)

// PayLoan withdraws the loan's next due installment. On insufficient
// funds the installment is deferred: the countdown is extended by one
// payback period and the NSF fee is the only money taken. A fully paid
// loan leaves the active book.
func (b *Business) PayLoan(loan *model.Loan) bool {
	due := loan.NextPayment(true)
	title := fmt.Sprintf("Loan payment: %s", loan.Name)

	if !b.Withdraw(title, due, model.TransactionLoan, false, true) {
		loan.RemainingWeeks += loan.PaybackType.Weeks()
		slog.Debug("loan payment deferred", "loan", loan.Name, "due", due,
			"remaining_weeks", loan.RemainingWeeks)
		return false
	}

	if loan.RemainingWeeks <= 0 {
		b.loans.Discard(loan.Name)
		slog.Info("loan paid off", "loan", loan.Name)
	}
	return true
}

// ApplyLoan deposits the loan amount and, unless it is a subsidy, adds
// the loan to the active book. Holding a loan of the same name already
// is an error.
func (b *Business) ApplyLoan(loan *model.Loan) error {
	if b.loans.Contains(loan.Name) {
		return fmt.Errorf("%w: already holding loan %q", common.ErrDuplicateEntry, loan.Name)
	}

	if loan.IsSubsidy() {
		b.Deposit(fmt.Sprintf("Subsidy received: %s", loan.Name), loan.Amount, model.TransactionSubsidy, true)
		return nil
	}

	b.Deposit(fmt.Sprintf("Loan received: %s", loan.Name), loan.Amount, model.TransactionLoan, true)
	b.loans.Add(loan)
	return nil
}
