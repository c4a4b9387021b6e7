package persist

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
	"github.com/spaghetto/manager/internal/restaurant"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// richRestaurant exercises every document section: lots, transactions,
// an active loan, an offer, a projected dish, and cached metadata.
func richRestaurant(t *testing.T) *restaurant.Restaurant {
	t.Helper()

	r := restaurant.New(business.DefaultConfig())
	r.SetBalance(dec("1234.56"))
	r.SetEmployees(3)

	flour := model.NewStockLedger("Flour", "gram")
	flour.AddLot(model.Lot{Quantity: 10, Price: dec("1.00")})
	flour.AddLot(model.Lot{Quantity: 5, Price: dec("2.00")})
	r.Inventory().Add(flour)

	r.Deposit("Opening", dec("1000"), model.TransactionDefault, true)
	r.Withdraw("Groceries", dec("40"), model.TransactionPurchase, false, true)

	lower := dec("500")
	loan := model.NewLoan("Gnocchi National", 1, dec("1000"), dec("0.10"),
		model.InterestCompoundMonthly, model.PaybackMonthly,
		[]model.Requirement{{Type: model.RequirementMonthlyRevenue, Lower: &lower}})
	r.Loans().Add(loan)

	offer := model.NewLoan("Orzo Community Assistance Grant", 0, dec("5000"),
		decimal.Decimal{}, model.InterestSimple, model.PaybackMonthly, nil)
	r.Offers().Add(offer)

	dish := model.NewDish("Focaccia", dec("8.00"), []model.Item{
		{Name: "Flour", Quantity: 2, Unit: "gram"},
	})
	dish.SetSales(42)
	dish.AddExpense(model.Item{Name: "Flour", Quantity: 84, Unit: "gram", Price: dec("92.40")})
	r.AddDish(dish)

	r.UpdatePopularity()
	r.Metadata().Extra = map[string]string{"theme": "marinara"}
	return r
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	r := richRestaurant(t)

	data, err := Marshal(r.Snapshot())
	require.NoError(t, err)

	st, err := Unmarshal(data)
	require.NoError(t, err)
	restored := restaurant.Restore(business.DefaultConfig(), st)

	assert.True(t, restored.Balance().Equal(dec("2194.56")), "balance = %s", restored.Balance())
	assert.Equal(t, 3, restored.Employees())

	flour, ok := restored.Inventory().Get("Flour")
	require.True(t, ok, "Flour missing after round trip")
	lots := flour.Lots()
	require.Len(t, lots, 2)
	assert.Equal(t, 10, lots[0].Quantity)
	assert.True(t, lots[1].Price.Equal(dec("2.00")))

	txs := restored.Transactions(business.TransactionQuery{})
	require.Len(t, txs, 2)
	assert.Equal(t, "Groceries", txs[1].Title)
	assert.True(t, txs[1].Dollars.Equal(dec("-40.00")), "dollars = %s", txs[1].Dollars)

	loan, ok := restored.Loans().Get("Gnocchi National")
	require.True(t, ok, "loan missing after round trip")
	assert.Equal(t, model.InterestCompoundMonthly, loan.InterestType)
	assert.Equal(t, 48, loan.RemainingWeeks)
	require.Len(t, loan.Requirements, 1)
	require.NotNil(t, loan.Requirements[0].Lower)
	assert.True(t, loan.Requirements[0].Lower.Equal(dec("500")))
	assert.Nil(t, loan.Requirements[0].Upper)

	offer, ok := restored.Offers().Get("Orzo Community Assistance Grant")
	require.True(t, ok, "offer missing after round trip")
	assert.True(t, offer.IsSubsidy())

	dish, ok := restored.Dishes().Get("Focaccia")
	require.True(t, ok, "dish missing after round trip")
	require.NotNil(t, dish.Sales)
	assert.Equal(t, 42, *dish.Sales)
	require.Len(t, dish.ExpenseItems, 1)
	assert.True(t, dish.ExpenseItems[0].Price.Equal(dec("92.40")))

	assert.NotNil(t, restored.Metadata().Popularity, "popularity lost in round trip")
	assert.Equal(t, "marinara", restored.Metadata().Extra["theme"])
}

func TestMarshalUsesDecimalStrings(t *testing.T) {
	r := restaurant.New(business.DefaultConfig())
	r.SetBalance(dec("1234.56"))

	data, err := Marshal(r.Snapshot())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"balance": "1234.56"`),
		"currency not serialized as a decimal string:\n%s", data)
}

func TestUnmarshalWrapped(t *testing.T) {
	r := richRestaurant(t)
	data, err := Marshal(r.Snapshot())
	require.NoError(t, err)

	st, err := Unmarshal(Wrap(data))
	require.NoError(t, err)
	require.NotNil(t, st.Balance)
	assert.True(t, st.Balance.Equal(dec("2194.56")), "balance = %s", st.Balance)
}

func TestUnmarshalCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n "},
		{"not json or base64", "!!not-a-save!!"},
		{"truncated json", `{"balance": "12`},
		{"unknown field", `{"balance": "12", "mystery": 1}`},
		{"base64 of garbage", "bm90IGEgc2F2ZQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			assert.ErrorIs(t, err, common.ErrCorruptSave)
		})
	}
}

func TestUnmarshalFreshDocument(t *testing.T) {
	// A minimal document hydrates to an empty, uninitialized state.
	st, err := Unmarshal([]byte(`{"balance": null, "inventory": [], "transactions": [],
		"employee_count": 0, "loans": [], "dishes": [], "total_weeks": 0, "metadata": {}}`))
	require.NoError(t, err)

	r := restaurant.Restore(business.DefaultConfig(), st)
	assert.False(t, r.HasBalance(), "null balance restored as initialized")
	assert.Zero(t, r.TotalWeeks())
	assert.Zero(t, r.Inventory().Len())
	assert.Zero(t, r.Dishes().Len())
}
