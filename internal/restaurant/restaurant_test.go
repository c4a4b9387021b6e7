package restaurant

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestRestaurant stocks Flour in two lots: 10 units at $1.00 and
// 5 units at $2.00.
func newTestRestaurant(balance string) *Restaurant {
	r := New(business.DefaultConfig())
	r.SetBalance(dec(balance))

	flour := model.NewStockLedger("Flour", "gram")
	flour.AddLot(model.Lot{Quantity: 10, Price: dec("1.00")})
	flour.AddLot(model.Lot{Quantity: 5, Price: dec("2.00")})
	r.Inventory().Add(flour)
	return r
}

// flourDish needs two grams of flour per serving.
func flourDish(name, price string) *model.Dish {
	return model.NewDish(name, dec(price), []model.Item{
		{Name: "Flour", Quantity: 2, Unit: "gram"},
	})
}

func TestRestaurant_Menu(t *testing.T) {
	r := newTestRestaurant("100")
	r.AddDish(flourDish("Focaccia", "8.00"))
	r.AddDish(flourDish("Focaccia", "99.00")) // duplicate name is a no-op

	dish, ok := r.Dishes().Get("Focaccia")
	if !ok || !dish.Price.Equal(dec("8.00")) {
		t.Fatalf("menu entry = %+v, %v; want the first Focaccia", dish, ok)
	}

	if err := r.RemoveDish("Focaccia"); err != nil {
		t.Fatalf("RemoveDish() unexpected error: %v", err)
	}
	if err := r.RemoveDish("Focaccia"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("RemoveDish() error = %v, want ErrNotFound", err)
	}
}

func TestRestaurant_CostOfDish(t *testing.T) {
	r := newTestRestaurant("100")
	dish := flourDish("Focaccia", "8.00")

	// Lot-aware: 6 grams from the $1.00 lot.
	got, err := r.CostOfDish(dish, 3, false, true)
	if err != nil {
		t.Fatalf("CostOfDish() unexpected error: %v", err)
	}
	if !got.Equal(dec("6.00")) {
		t.Errorf("lot-aware cost = %s, want 6.00", got)
	}

	// Highest-first: 5 grams at $2.00 plus 1 at $1.00.
	got, err = r.CostOfDish(dish, 3, false, false)
	if err != nil {
		t.Fatalf("CostOfDish() unexpected error: %v", err)
	}
	if !got.Equal(dec("11.00")) {
		t.Errorf("highest-first cost = %s, want 11.00", got)
	}

	// Average: 6 grams at 20/15 dollars each.
	got, err = r.CostOfDish(dish, 3, true, true)
	if err != nil {
		t.Fatalf("CostOfDish() unexpected error: %v", err)
	}
	if got.Round(2).String() != "8.00" {
		t.Errorf("average cost = %s, want 8.00", got.Round(2))
	}
}

func TestRestaurant_CostOfDishMissingIngredient(t *testing.T) {
	r := newTestRestaurant("100")
	dish := model.NewDish("Carbonara", dec("14.00"), []model.Item{
		{Name: "Flour", Quantity: 1, Unit: "gram"},
		{Name: "Guanciale", Quantity: 1, Unit: "gram"},
	})

	if _, err := r.CostOfDish(dish, 1, true, true); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("CostOfDish() error = %v, want ErrNotFound", err)
	}
}

func TestRestaurant_SellDish(t *testing.T) {
	r := newTestRestaurant("100")
	dish := flourDish("Focaccia", "8.00")

	value, ok := r.SellDish(dish, 6, false)
	if !ok {
		t.Fatal("covered sale reported failure")
	}
	// 12 grams cheapest-first: 10 at $1.00 plus 2 at $2.00.
	if !value.Equal(dec("14.00")) {
		t.Errorf("consumed value = %s, want 14.00", value)
	}

	flour, _ := r.Inventory().Get("Flour")
	if got := flour.Quantity(); got != 3 {
		t.Errorf("Flour left = %d, want 3", got)
	}

	// Expense attribution accumulated on the dish.
	if len(dish.ExpenseItems) != 1 {
		t.Fatalf("expense items = %+v, want one Flour record", dish.ExpenseItems)
	}
	if dish.ExpenseItems[0].Quantity != 12 || !dish.ExpenseItems[0].Price.Equal(dec("14.00")) {
		t.Errorf("expense record = %+v, want 12 grams at 14.00", dish.ExpenseItems[0])
	}
	if !dish.Expenses().Equal(dec("14.00")) {
		t.Errorf("Expenses() = %s, want 14.00", dish.Expenses())
	}
}

func TestRestaurant_SellDishAllOrNothing(t *testing.T) {
	r := newTestRestaurant("100")
	dish := model.NewDish("Carbonara", dec("14.00"), []model.Item{
		{Name: "Flour", Quantity: 1, Unit: "gram"},
		{Name: "Guanciale", Quantity: 1, Unit: "gram"},
	})

	if _, ok := r.SellDish(dish, 1, false); ok {
		t.Fatal("sale with a missing ingredient reported success")
	}

	// No partial consumption.
	flour, _ := r.Inventory().Get("Flour")
	if got := flour.Quantity(); got != 15 {
		t.Errorf("Flour consumed on a failed sale: %d left, want 15", got)
	}

	// Short stock fails the same way.
	if _, ok := r.SellDish(flourDish("Focaccia", "8.00"), 8, false); ok {
		t.Error("sale of 16 grams against 15 in stock reported success")
	}
}

func TestRestaurant_SellDishSimulate(t *testing.T) {
	r := newTestRestaurant("100")
	dish := flourDish("Focaccia", "8.00")

	value, ok := r.SellDish(dish, 6, true)
	if !ok || !value.Equal(dec("14.00")) {
		t.Fatalf("simulated sale = %s, %v; want 14.00, true", value, ok)
	}

	flour, _ := r.Inventory().Get("Flour")
	if got := flour.Quantity(); got != 15 {
		t.Errorf("simulation consumed stock: %d left, want 15", got)
	}
	if len(dish.ExpenseItems) != 0 {
		t.Errorf("simulation recorded expenses: %+v", dish.ExpenseItems)
	}
}
