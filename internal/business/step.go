package business

import (
	"fmt"
	"log/slog"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
)

// Calendar constants: 4 weeks to a month, 12 months to a year.
const (
	WeeksPerMonth = 4
	WeeksPerYear  = model.WeeksPerYear
)

// TotalWeeks returns the simulation clock.
func (b *Business) TotalWeeks() int {
	return b.totalWeeks
}

// Week returns the week within the current month (0-3).
func (b *Business) Week() int {
	return b.totalWeeks % WeeksPerMonth
}

// Month returns the month within the current year (0-11).
func (b *Business) Month() int {
	return b.totalWeeks / WeeksPerMonth % 12
}

// Year returns the current year (0-based).
func (b *Business) Year() int {
	return b.totalWeeks / WeeksPerYear
}

// FormatDate formats a week as "Y1 M2 W3" (1-based).
func FormatDate(week int) string {
	month := week / WeeksPerMonth % 12
	year := week / WeeksPerYear
	week %= WeeksPerMonth
	return fmt.Sprintf("Y%d M%d W%d", year+1, month+1, week+1)
}

// Step advances the clock week by week so that week, month, and year
// boundaries fire in strict chronological order for every intervening
// tick. A negative count is a validation error.
func (b *Business) Step(weeks int) error {
	if weeks < 0 {
		return fmt.Errorf("%w: cannot step %d weeks", common.ErrInvalidArgument, weeks)
	}

	for i := 0; i < weeks; i++ {
		b.tick()
	}
	return nil
}

// tick advances one week. Per tick: loan countdowns decrement, then the
// week boundary, then (every 4 weeks) the month boundary, then (every
// 48 weeks) the year boundary.
func (b *Business) tick() {
	b.totalWeeks++

	for _, loan := range b.loans.All() {
		loan.RemainingWeeks--
	}

	b.onNextWeek()
	if b.totalWeeks%WeeksPerMonth == 0 {
		b.onNextMonth()
	}
	if b.totalWeeks%WeeksPerYear == 0 {
		b.onNextYear()
	}
}

func (b *Business) onNextWeek() {
	for _, loan := range b.loans.All() {
		switch loan.PaybackType {
		case model.PaybackWeekly:
			b.PayLoan(loan)
		case model.PaybackBiweekly:
			if b.totalWeeks%2 == 0 {
				b.PayLoan(loan)
			}
		}
	}

	if b.hooks.NextWeek != nil {
		b.hooks.NextWeek(b.totalWeeks)
	}
}

func (b *Business) onNextMonth() {
	slog.Debug("month boundary", "week", b.totalWeeks, "date", FormatDate(b.totalWeeks))

	for _, loan := range b.loans.All() {
		if loan.PaybackType == model.PaybackMonthly {
			b.PayLoan(loan)
		}
	}

	if b.hooks.NextMonth != nil {
		b.hooks.NextMonth(b.totalWeeks)
	}
}

func (b *Business) onNextYear() {
	slog.Debug("year boundary", "week", b.totalWeeks, "year", b.Year())

	for _, loan := range b.loans.All() {
		if loan.PaybackType == model.PaybackAnnually {
			b.PayLoan(loan)
		}
	}

	if b.hooks.NextYear != nil {
		b.hooks.NextYear(b.totalWeeks)
	}
}
