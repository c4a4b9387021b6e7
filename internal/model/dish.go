package model

import (
	"github.com/shopspring/decimal"
)

// Dish is a named recipe on a restaurant's menu. Its required items are
// ingredients, not priced goods, so their price fields are zeroed.
//
// Sales holds the unit count realized for the last simulated month, or
// nil before the first projection. ExpenseItems records the actual cost
// paid per ingredient over the same period.
type Dish struct {
	Name         string
	Items        []Item
	Price        decimal.Decimal
	Sales        *int
	ExpenseItems []Item
}

// NewDish creates a dish, zeroing the price on each required item.
func NewDish(name string, price decimal.Decimal, items []Item) *Dish {
	reqs := make([]Item, len(items))
	for i, it := range items {
		it.Price = decimal.Decimal{}
		reqs[i] = it
	}
	return &Dish{Name: name, Items: reqs, Price: price}
}

// Key returns the dish's menu key.
func (d *Dish) Key() string {
	return d.Name
}

func (d *Dish) String() string {
	return d.Name
}

// Expenses returns the total ingredient cost recorded for the period.
func (d *Dish) Expenses() decimal.Decimal {
	total := decimal.Decimal{}
	for _, it := range d.ExpenseItems {
		total = total.Add(it.Price)
	}
	return total
}

// Revenue returns price times realized sales, or zero before any
// sales have been recorded.
func (d *Dish) Revenue() decimal.Decimal {
	if d.Sales == nil {
		return decimal.Decimal{}
	}
	return d.Price.Mul(decimal.NewFromInt(int64(*d.Sales)))
}

// SetSales records a realized monthly unit count.
func (d *Dish) SetSales(n int) {
	d.Sales = &n
}

// ResetPeriod clears the per-month expense attribution before a new
// round of realization.
func (d *Dish) ResetPeriod() {
	d.ExpenseItems = nil
}

// AddExpense accumulates ingredient cost into the period's expense
// items, merging with an existing record for the same ingredient.
func (d *Dish) AddExpense(item Item) {
	for i := range d.ExpenseItems {
		if d.ExpenseItems[i].Name == item.Name && d.ExpenseItems[i].Unit == item.Unit {
			d.ExpenseItems[i].Quantity += item.Quantity
			d.ExpenseItems[i].Price = d.ExpenseItems[i].Price.Add(item.Price)
			return
		}
	}
	d.ExpenseItems = append(d.ExpenseItems, item)
}
