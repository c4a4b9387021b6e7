package business

import (
	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
)

// MonthlyRevenue averages the magnitude of SALES transactions over the
// trailing year (or less for a younger business), per elapsed month.
// With no matching transactions it returns zero.
func (b *Business) MonthlyRevenue() decimal.Decimal {
	return b.monthlyAverage(model.TransactionSales)
}

// MonthlyExpenses averages the magnitude of PURCHASE transactions over
// the trailing year, per elapsed month.
func (b *Business) MonthlyExpenses() decimal.Decimal {
	return b.monthlyAverage(model.TransactionPurchase)
}

func (b *Business) monthlyAverage(ttype model.TransactionType) decimal.Decimal {
	elapsed := b.totalWeeks
	if elapsed > WeeksPerYear {
		elapsed = WeeksPerYear
	}

	txs := b.Transactions(TransactionQuery{
		After: b.totalWeeks - elapsed,
		Type:  ttype,
	})
	if len(txs) == 0 {
		return decimal.Decimal{}
	}

	months := elapsed / WeeksPerMonth
	if months == 0 {
		months = 1
	}

	sum := decimal.Decimal{}
	for _, t := range txs {
		sum = sum.Add(t.Dollars.Abs())
	}
	return common.RoundDollars(sum.Div(decimal.NewFromInt(int64(months))))
}
