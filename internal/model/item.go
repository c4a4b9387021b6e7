// Package model defines the domain types of the business simulation:
// items, lot-tracked stock, transactions, dishes, and loans.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
)

// Item is a transient quantity of a named good at a total price.
// It is the currency of purchases and recipe requirements; durable
// stock lives in StockLedger.
type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

// NewItem creates an item with its total price rounded to the cent.
func NewItem(name string, quantity int, unit string, price decimal.Decimal) Item {
	return Item{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		Price:    common.RoundDollars(price),
	}
}

// Key returns the item's inventory key.
func (i Item) Key() string {
	return i.Name
}

func (i Item) String() string {
	return fmt.Sprintf("%d %s", i.Quantity, i.Name)
}

// Add combines two quantities of the same good, summing quantity and price.
// It fails when the names or units differ.
func (i Item) Add(other Item) (Item, error) {
	if i.Name != other.Name {
		return Item{}, fmt.Errorf("%w: cannot add %q to %q", common.ErrItemMismatch, other.Name, i.Name)
	}
	if i.Unit != other.Unit {
		return Item{}, fmt.Errorf("%w: cannot add item in %q units to another in %q units",
			common.ErrItemMismatch, other.Unit, i.Unit)
	}
	return Item{
		Name:     i.Name,
		Quantity: i.Quantity + other.Quantity,
		Unit:     i.Unit,
		Price:    i.Price.Add(other.Price),
	}, nil
}

// Sub removes another quantity of the same good, with the same
// name/unit validation as Add.
func (i Item) Sub(other Item) (Item, error) {
	if i.Name != other.Name {
		return Item{}, fmt.Errorf("%w: cannot subtract %q from %q", common.ErrItemMismatch, other.Name, i.Name)
	}
	if i.Unit != other.Unit {
		return Item{}, fmt.Errorf("%w: cannot subtract item in %q units from another in %q units",
			common.ErrItemMismatch, other.Unit, i.Unit)
	}
	return Item{
		Name:     i.Name,
		Quantity: i.Quantity - other.Quantity,
		Unit:     i.Unit,
		Price:    i.Price.Sub(other.Price),
	}, nil
}

// UnitPrice returns the average price per unit, or zero for an empty item.
func (i Item) UnitPrice() decimal.Decimal {
	if i.Quantity == 0 {
		return decimal.Decimal{}
	}
	return i.Price.Div(decimal.NewFromInt(int64(i.Quantity)))
}
