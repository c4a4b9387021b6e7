// Package restaurant specializes the business core with a dish menu
// and the monthly demand simulation that drives it.
package restaurant

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/inventory"
	"github.com/spaghetto/manager/internal/model"
)

// Restaurant is a business with a menu of dishes. Each simulated month
// it refreshes popularity, projects dish sales, and realizes them
// against inventory.
type Restaurant struct {
	*business.Business

	dishes *inventory.Inventory[*model.Dish]
}

// New creates an empty restaurant.
func New(cfg business.Config) *Restaurant {
	r := &Restaurant{
		Business: business.New(cfg),
		dishes:   inventory.New[*model.Dish](),
	}
	r.SetHooks(business.Hooks{
		NextMonth: func(int) { r.onNextMonth() },
	})
	return r
}

// Dishes returns the menu.
func (r *Restaurant) Dishes() *inventory.Inventory[*model.Dish] {
	return r.dishes
}

// AddDish puts a dish on the menu. Adding an existing name is a no-op.
func (r *Restaurant) AddDish(dish *model.Dish) {
	r.dishes.Add(dish)
}

// RemoveDish takes a dish off the menu by name.
func (r *Restaurant) RemoveDish(name string) error {
	return r.dishes.Remove(name)
}

// onNextMonth runs the demand cycle: refresh popularity, project sales
// for the new month, then realize them. Realization must come after
// projection so it uses fresh figures.
func (r *Restaurant) onNextMonth() {
	r.UpdatePopularity()
	r.UpdateSales(false)
	r.UpdateExpenses()
}

// CostOfDish prices n servings of a dish from inventory. With average
// set it uses each ingredient's average unit cost; otherwise the
// lot-aware consumption cost under the given draw-down policy. A
// missing or empty ingredient is a domain error.
func (r *Restaurant) CostOfDish(dish *model.Dish, n int, average, lowestFirst bool) (decimal.Decimal, error) {
	total := decimal.Decimal{}

	for _, req := range dish.Items {
		ledger, ok := r.Inventory().Get(req.Name)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: ingredient %q for dish %q",
				common.ErrNotFound, req.Name, dish.Name)
		}

		needed := req.Quantity * n
		if average {
			unit, err := ledger.AverageUnitPrice()
			if err != nil {
				return decimal.Decimal{}, fmt.Errorf("dish %q: %w", dish.Name, err)
			}
			total = total.Add(unit.Mul(decimal.NewFromInt(int64(needed))))
			continue
		}

		cost, err := ledger.CostOf(needed, lowestFirst)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("dish %q: %w", dish.Name, err)
		}
		total = total.Add(cost)
	}
	return total, nil
}

// SellDish consumes the ingredients for a number of servings, drawing
// cheapest lots first, and returns the total value consumed. When any
// ingredient is missing or short it sells nothing and reports false;
// stock is never partially consumed. With simulate set it prices the
// sale without touching inventory.
func (r *Restaurant) SellDish(dish *model.Dish, quantity int, simulate bool) (decimal.Decimal, bool) {
	// All-or-nothing: verify stock for every ingredient first.
	for _, req := range dish.Items {
		ledger, ok := r.Inventory().Get(req.Name)
		if !ok || ledger.Quantity() < req.Quantity*quantity {
			return decimal.Decimal{}, false
		}
	}

	if simulate {
		cost, err := r.CostOfDish(dish, quantity, false, true)
		if err != nil {
			return decimal.Decimal{}, false
		}
		return cost, true
	}

	total := decimal.Decimal{}
	for _, req := range dish.Items {
		ledger, _ := r.Inventory().Get(req.Name)
		consumed := req.Quantity * quantity

		value, err := ledger.Subtract(consumed, true)
		if err != nil {
			// Unreachable after the verification pass.
			return decimal.Decimal{}, false
		}

		dish.AddExpense(model.Item{
			Name:     req.Name,
			Quantity: consumed,
			Unit:     req.Unit,
			Price:    value,
		})
		total = total.Add(value)
	}
	return total, true
}
