package business

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestBusiness(balance string) *Business {
	b := New(DefaultConfig())
	b.SetBalance(dec(balance))
	return b
}

func TestBusiness_Deposit(t *testing.T) {
	b := New(DefaultConfig())
	if b.HasBalance() {
		t.Fatal("fresh business should not report an initialized balance")
	}

	// Deposits credit the magnitude regardless of sign.
	b.Deposit("Opening", dec("-250.00"), model.TransactionDefault, true)

	if !b.HasBalance() {
		t.Error("deposit should initialize the balance")
	}
	if got := b.Balance(); !got.Equal(dec("250.00")) {
		t.Errorf("Balance() = %s, want 250.00", got)
	}

	txs := b.Transactions(TransactionQuery{})
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if !txs[0].Dollars.Equal(dec("250.00")) {
		t.Errorf("logged dollars = %s, want 250.00", txs[0].Dollars)
	}
}

func TestBusiness_WithdrawCovered(t *testing.T) {
	b := newTestBusiness("100.00")

	if !b.Withdraw("Rent", dec("60"), model.TransactionDefault, false, true) {
		t.Fatal("covered withdrawal should succeed")
	}
	if got := b.Balance(); !got.Equal(dec("40.00")) {
		t.Errorf("Balance() = %s, want 40.00", got)
	}

	txs := b.Transactions(TransactionQuery{})
	if len(txs) != 1 || !txs[0].Dollars.Equal(dec("-60.00")) {
		t.Errorf("expected one -60.00 entry, got %+v", txs)
	}
}

func TestBusiness_WithdrawNSF(t *testing.T) {
	b := newTestBusiness("100.00")

	if b.Withdraw("Pasta machine", dec("120"), model.TransactionPurchase, false, true) {
		t.Fatal("uncovered withdrawal should fail")
	}

	// The requested amount is never taken; only the flat fee is.
	if got := b.Balance(); !got.Equal(dec("55.00")) {
		t.Errorf("Balance() = %s, want 55.00", got)
	}

	txs := b.Transactions(TransactionQuery{})
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Title != "Declined transaction with NSF fee: Pasta machine" {
		t.Errorf("declined title = %q", txs[0].Title)
	}
	if !txs[0].Dollars.Equal(dec("-45.00")) {
		t.Errorf("declined dollars = %s, want -45.00", txs[0].Dollars)
	}
}

func TestBusiness_WithdrawForce(t *testing.T) {
	b := newTestBusiness("10.00")

	if !b.Withdraw("Overdraft", dec("25"), model.TransactionDefault, true, false) {
		t.Fatal("forced withdrawal should succeed")
	}
	if got := b.Balance(); !got.Equal(dec("-15.00")) {
		t.Errorf("Balance() = %s, want -15.00", got)
	}
	if len(b.Transactions(TransactionQuery{})) != 0 {
		t.Error("unlogged withdrawal recorded a transaction")
	}
}

func TestBusiness_BuyItem(t *testing.T) {
	b := newTestBusiness("50.00")

	ok, err := b.BuyItem(model.NewItem("Flour", 10, "gram", dec("10.00")))
	if err != nil || !ok {
		t.Fatalf("BuyItem() = %v, %v; want success", ok, err)
	}
	if got := b.Balance(); !got.Equal(dec("40.00")) {
		t.Errorf("Balance() = %s, want 40.00", got)
	}

	ledger, found := b.Inventory().Get("Flour")
	if !found {
		t.Fatal("Flour missing from inventory after purchase")
	}
	if ledger.Quantity() != 10 {
		t.Errorf("Flour quantity = %d, want 10", ledger.Quantity())
	}

	// A second purchase at a different unit price adds a lot.
	if ok, err := b.BuyItem(model.NewItem("Flour", 5, "gram", dec("10.00"))); err != nil || !ok {
		t.Fatalf("second BuyItem() = %v, %v; want success", ok, err)
	}
	if got := ledger.Quantity(); got != 15 {
		t.Errorf("Flour quantity after restock = %d, want 15", got)
	}
	if got := len(ledger.Lots()); got != 2 {
		t.Errorf("Flour lots = %d, want 2", got)
	}
}

func TestBusiness_BuyItemInsufficientFunds(t *testing.T) {
	b := newTestBusiness("50.00")

	ok, err := b.BuyItem(model.NewItem("Truffle", 1, "gram", dec("500.00")))
	if err != nil {
		t.Fatalf("BuyItem() unexpected error: %v", err)
	}
	if ok {
		t.Fatal("unaffordable purchase reported success")
	}

	// The NSF fee is charged but no stock arrives.
	if got := b.Balance(); !got.Equal(dec("5.00")) {
		t.Errorf("Balance() = %s, want 5.00", got)
	}
	if b.Inventory().Contains("Truffle") {
		t.Error("failed purchase added stock")
	}
}

func TestBusiness_BuyItemUnitMismatch(t *testing.T) {
	b := newTestBusiness("100.00")
	if _, err := b.BuyItem(model.NewItem("Flour", 10, "gram", dec("10.00"))); err != nil {
		t.Fatal(err)
	}
	before := b.Balance()

	_, err := b.BuyItem(model.NewItem("Flour", 1, "cup", dec("1.00")))
	if !errors.Is(err, common.ErrItemMismatch) {
		t.Fatalf("BuyItem() wrong-unit error = %v, want ErrItemMismatch", err)
	}
	// Validation happens before any money moves.
	if !b.Balance().Equal(before) {
		t.Errorf("unit-mismatch purchase moved money: %s -> %s", before, b.Balance())
	}
}

func TestBusiness_TransactionsQuery(t *testing.T) {
	b := newTestBusiness("10000.00")
	for i := 0; i < 6; i++ {
		b.Deposit(fmt.Sprintf("Sale %d", i), dec("10"), model.TransactionSales, true)
		if err := b.Step(1); err != nil {
			t.Fatal(err)
		}
	}
	b.Withdraw("Supplies", dec("30"), model.TransactionPurchase, false, true)

	all := b.Transactions(TransactionQuery{})
	if len(all) != 7 {
		t.Fatalf("expected 7 transactions, got %d", len(all))
	}

	// A limit keeps the most recent entries.
	tail := b.Transactions(TransactionQuery{Limit: 2})
	if len(tail) != 2 {
		t.Fatalf("limited query returned %d entries", len(tail))
	}
	if tail[0].Title != "Sale 5" || tail[1].Title != "Supplies" {
		t.Errorf("trailing entries = %q, %q", tail[0].Title, tail[1].Title)
	}

	sales := b.Transactions(TransactionQuery{Type: model.TransactionSales})
	if len(sales) != 6 {
		t.Errorf("sales query returned %d entries, want 6", len(sales))
	}

	recent := b.Transactions(TransactionQuery{After: 4})
	if len(recent) != 3 {
		t.Errorf("After=4 query returned %d entries, want 3", len(recent))
	}

	big := b.Transactions(TransactionQuery{Filter: func(t model.Transaction) bool {
		return t.Dollars.IsNegative()
	}})
	if len(big) != 1 || big[0].Title != "Supplies" {
		t.Errorf("filtered query = %+v, want only Supplies", big)
	}
}

func TestBusiness_StepNegative(t *testing.T) {
	b := newTestBusiness("0")
	if err := b.Step(-1); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("Step(-1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestBusiness_StepFiresHooksInOrder(t *testing.T) {
	b := newTestBusiness("0")

	var events []string
	b.SetHooks(Hooks{
		NextWeek:  func(week int) { events = append(events, fmt.Sprintf("W%d", week)) },
		NextMonth: func(week int) { events = append(events, fmt.Sprintf("M%d", week)) },
		NextYear:  func(week int) { events = append(events, fmt.Sprintf("Y%d", week)) },
	})

	if err := b.Step(48); err != nil {
		t.Fatal(err)
	}

	var weeks, months, years int
	for _, e := range events {
		switch e[0] {
		case 'W':
			weeks++
		case 'M':
			months++
		case 'Y':
			years++
		}
	}
	if weeks != 48 || months != 12 || years != 1 {
		t.Fatalf("hook counts = %d weeks, %d months, %d years; want 48/12/1", weeks, months, years)
	}

	// Boundaries fire in order within a tick: W4 immediately before M4,
	// and the year closes W48, M48, Y48.
	if events[3] != "W4" || events[4] != "M4" {
		t.Errorf("month boundary out of order: %v", events[3:5])
	}
	last := events[len(events)-3:]
	if last[0] != "W48" || last[1] != "M48" || last[2] != "Y48" {
		t.Errorf("year boundary out of order: %v", last)
	}

	if b.TotalWeeks() != 48 || b.Year() != 1 || b.Month() != 0 || b.Week() != 0 {
		t.Errorf("clock = W%d (Y%d M%d W%d), want the start of year 2",
			b.TotalWeeks(), b.Year(), b.Month(), b.Week())
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		week int
		want string
	}{
		{0, "Y1 M1 W1"},
		{3, "Y1 M1 W4"},
		{4, "Y1 M2 W1"},
		{47, "Y1 M12 W4"},
		{48, "Y2 M1 W1"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.week); got != tt.want {
			t.Errorf("FormatDate(%d) = %q, want %q", tt.week, got, tt.want)
		}
	}
}

func TestBusiness_MonthlyMetrics(t *testing.T) {
	b := newTestBusiness("10000.00")

	if !b.MonthlyRevenue().IsZero() {
		t.Error("fresh business should report zero monthly revenue")
	}

	// Two months of activity: $200 in sales and $80 in purchases.
	for month := 0; month < 2; month++ {
		b.Deposit("Dish sales", dec("100"), model.TransactionSales, true)
		b.Withdraw("Groceries", dec("40"), model.TransactionPurchase, false, true)
		if err := b.Step(4); err != nil {
			t.Fatal(err)
		}
	}

	if got := b.MonthlyRevenue(); !got.Equal(dec("100.00")) {
		t.Errorf("MonthlyRevenue() = %s, want 100.00", got)
	}
	if got := b.MonthlyExpenses(); !got.Equal(dec("40.00")) {
		t.Errorf("MonthlyExpenses() = %s, want 40.00", got)
	}
}
