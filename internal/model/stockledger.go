package model

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
)

// Lot is a quantity of one good purchased at one unit price. Lots at
// the same unit price merge; a lot never holds a non-positive quantity.
type Lot struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// StockLedger tracks a named, unit-measured good split into price-tagged
// lots, supporting weighted consumption and valuation. Consumption draws
// lots down cheapest-first (or dearest-first), not in insertion order.
type StockLedger struct {
	Name string
	Unit string

	lots []Lot // sorted ascending by price
}

// NewStockLedger creates an empty ledger for a named good.
func NewStockLedger(name, unit string) *StockLedger {
	return &StockLedger{Name: name, Unit: unit}
}

// LedgerFromItem creates a ledger seeded with a single lot at the
// item's average unit price.
func LedgerFromItem(item Item) *StockLedger {
	l := NewStockLedger(item.Name, item.Unit)
	l.AddLot(Lot{Quantity: item.Quantity, Price: item.UnitPrice()})
	return l
}

// Key returns the ledger's inventory key. Two ledgers for the same good
// are the same entry for collection membership regardless of lot contents.
func (l *StockLedger) Key() string {
	return l.Name
}

func (l *StockLedger) String() string {
	q := l.Quantity()
	return fmt.Sprintf("%d %s of %s", q, common.Plural(l.Unit, q), l.Name)
}

// Quantity returns the total units held across all lots.
func (l *StockLedger) Quantity() int {
	total := 0
	for _, lot := range l.lots {
		total += lot.Quantity
	}
	return total
}

// Value returns the total value held across all lots (unrounded).
func (l *StockLedger) Value() decimal.Decimal {
	total := decimal.Decimal{}
	for _, lot := range l.lots {
		total = total.Add(lot.Price.Mul(decimal.NewFromInt(int64(lot.Quantity))))
	}
	return total
}

// AverageUnitPrice returns total value divided by total quantity.
// The ledger must hold stock; callers guard the zero-quantity case.
func (l *StockLedger) AverageUnitPrice() (decimal.Decimal, error) {
	q := l.Quantity()
	if q == 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %q holds no stock", common.ErrInsufficientQuantity, l.Name)
	}
	return l.Value().Div(decimal.NewFromInt(int64(q))), nil
}

// Lots returns a copy of the ledger's lots, ordered by ascending price.
func (l *StockLedger) Lots() []Lot {
	out := make([]Lot, len(l.lots))
	copy(out, l.lots)
	return out
}

// AddLot merges a lot into the bucket matching its unit price.
// Lots with no quantity are ignored.
func (l *StockLedger) AddLot(lot Lot) {
	if lot.Quantity <= 0 {
		return
	}
	for i := range l.lots {
		if l.lots[i].Price.Equal(lot.Price) {
			l.lots[i].Quantity += lot.Quantity
			return
		}
	}
	l.lots = append(l.lots, lot)
	sort.Slice(l.lots, func(i, j int) bool {
		return l.lots[i].Price.LessThan(l.lots[j].Price)
	})
}

// AddItem converts an item to a lot at its average unit price and merges
// it in. The item must match the ledger's name and unit.
func (l *StockLedger) AddItem(item Item) error {
	if item.Name != l.Name {
		return fmt.Errorf("%w: cannot add %q to %q", common.ErrItemMismatch, item.Name, l.Name)
	}
	if item.Unit != l.Unit {
		return fmt.Errorf("%w: cannot add item in %q units to a ledger in %q units",
			common.ErrItemMismatch, item.Unit, l.Unit)
	}
	l.AddLot(Lot{Quantity: item.Quantity, Price: item.UnitPrice()})
	return nil
}

// Merge folds every lot of another ledger for the same good into this one.
func (l *StockLedger) Merge(other *StockLedger) error {
	if other.Name != l.Name || other.Unit != l.Unit {
		return fmt.Errorf("%w: cannot merge %q (%s) into %q (%s)",
			common.ErrItemMismatch, other.Name, other.Unit, l.Name, l.Unit)
	}
	for _, lot := range other.lots {
		l.AddLot(lot)
	}
	return nil
}

// CostOf values n units using the same lot-selection order as Subtract
// without mutating the ledger. The value is not rounded to the cent.
func (l *StockLedger) CostOf(n int, lowestFirst bool) (decimal.Decimal, error) {
	if n > l.Quantity() {
		return decimal.Decimal{}, fmt.Errorf("%w: cannot value %d of %q with only %d available",
			common.ErrInsufficientQuantity, n, l.Name, l.Quantity())
	}

	value := decimal.Decimal{}
	for _, lot := range l.ordered(lowestFirst) {
		if n <= 0 {
			break
		}
		consumed := min(n, lot.Quantity)
		n -= consumed
		value = value.Add(lot.Price.Mul(decimal.NewFromInt(int64(consumed))))
	}
	return value, nil
}

// Subtract consumes n units, drawing down the cheapest (or dearest) lots
// first and pruning lots that reach zero. It returns the total value
// removed, unrounded.
func (l *StockLedger) Subtract(n int, lowestFirst bool) (decimal.Decimal, error) {
	if n > l.Quantity() {
		return decimal.Decimal{}, fmt.Errorf("%w: cannot subtract %d of %q with only %d available",
			common.ErrInsufficientQuantity, n, l.Name, l.Quantity())
	}

	value := decimal.Decimal{}
	for n > 0 {
		idx := 0
		if !lowestFirst {
			idx = len(l.lots) - 1
		}
		lot := &l.lots[idx]

		consumed := min(n, lot.Quantity)
		lot.Quantity -= consumed
		n -= consumed
		value = value.Add(lot.Price.Mul(decimal.NewFromInt(int64(consumed))))

		if lot.Quantity <= 0 {
			l.lots = append(l.lots[:idx], l.lots[idx+1:]...)
		}
	}
	return value, nil
}

// ordered returns the lots in consumption order for the given policy.
func (l *StockLedger) ordered(lowestFirst bool) []Lot {
	lots := l.Lots()
	if !lowestFirst {
		for i, j := 0, len(lots)-1; i < j; i, j = i+1, j-1 {
			lots[i], lots[j] = lots[j], lots[i]
		}
	}
	return lots
}
