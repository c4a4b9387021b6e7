package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
)

// Metrics exposes the business figures loan requirements are checked
// against.
type Metrics interface {
	MonthlyRevenue() decimal.Decimal
	MonthlyExpenses() decimal.Decimal
	Employees() int
}

// RequirementType identifies which business metric a loan requirement
// constrains.
type RequirementType int

// Requirement types.
const (
	RequirementMonthlyRevenue RequirementType = iota + 1
	RequirementMonthlyExpense
	RequirementEmployees
)

func (t RequirementType) String() string {
	switch t {
	case RequirementMonthlyRevenue:
		return "monthly_revenue"
	case RequirementMonthlyExpense:
		return "monthly_expense"
	case RequirementEmployees:
		return "employees"
	default:
		return fmt.Sprintf("requirement_type(%d)", int(t))
	}
}

// Requirement is an inclusive bound on one business metric. A nil bound
// is unbounded on that side.
type Requirement struct {
	Type  RequirementType
	Lower *decimal.Decimal
	Upper *decimal.Decimal
}

// Check reports whether the business metric falls within the bounds.
func (r Requirement) Check(m Metrics) bool {
	var value decimal.Decimal
	switch r.Type {
	case RequirementMonthlyRevenue:
		value = m.MonthlyRevenue()
	case RequirementMonthlyExpense:
		value = m.MonthlyExpenses()
	case RequirementEmployees:
		value = decimal.NewFromInt(int64(m.Employees()))
	default:
		return false
	}

	if r.Lower != nil && value.LessThan(*r.Lower) {
		return false
	}
	if r.Upper != nil && value.GreaterThan(*r.Upper) {
		return false
	}
	return true
}

func (r Requirement) String() string {
	v := r.formatBounds()
	switch r.Type {
	case RequirementMonthlyRevenue:
		return fmt.Sprintf("%s in average revenue per month", v)
	case RequirementMonthlyExpense:
		return fmt.Sprintf("%s in average expenses per month", v)
	case RequirementEmployees:
		n := 0
		if r.Lower != nil {
			n = int(r.Lower.IntPart())
		}
		return fmt.Sprintf("employs %s %s", v, common.Plural("person", n, "people"))
	default:
		return "none"
	}
}

func (r Requirement) formatBounds() string {
	format := func(d decimal.Decimal) string {
		if r.Type == RequirementEmployees {
			return d.String()
		}
		return common.FormatDollars(d)
	}

	switch {
	case r.Lower != nil && r.Upper != nil:
		return fmt.Sprintf("%s-%s", format(*r.Lower), format(*r.Upper))
	case r.Lower != nil:
		return fmt.Sprintf("at least %s", format(*r.Lower))
	case r.Upper != nil:
		return fmt.Sprintf("at most %s", format(*r.Upper))
	default:
		return "none"
	}
}
