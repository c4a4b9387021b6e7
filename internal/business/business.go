// Package business implements the financial core of the simulation:
// the balance, the append-only transaction log, inventory purchases,
// the simulation clock, and loan servicing.
package business

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/inventory"
	"github.com/spaghetto/manager/internal/model"
)

// Config holds construction options for a business.
type Config struct {
	// NSFFee is charged in lieu of the requested amount when a
	// withdrawal exceeds the balance.
	NSFFee decimal.Decimal
	// Rand drives loan-offer generation. Fix the seed for
	// reproducible offers.
	Rand *rand.Rand
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NSFFee: decimal.NewFromInt(45),
	}
}

// Hooks are callbacks fired while stepping the clock, after the
// built-in per-tick processing. The argument is the current week.
type Hooks struct {
	NextWeek  func(week int)
	NextMonth func(week int)
	NextYear  func(week int)
}

// Metadata carries derived figures cached between steps. It round-trips
// through the save document.
type Metadata struct {
	// Popularity is the smoothed customer-draw score, nil until first
	// computed.
	Popularity *float64
	// Extra holds free-form annotations from the presentation layer.
	Extra map[string]string
}

// Business is the root aggregate: balance, inventory, transaction log,
// active loans, and the simulation clock. Every business owns its state
// exclusively; nothing is shared between instances.
type Business struct {
	balance       decimal.Decimal
	hasBalance    bool
	inventory     *inventory.Inventory[*model.StockLedger]
	transactions  []model.Transaction
	employeeCount int
	loans         *inventory.Inventory[*model.Loan]
	offers        *inventory.Inventory[*model.Loan]
	totalWeeks    int
	metadata      Metadata
	nsfFee        decimal.Decimal
	rng           *rand.Rand
	hooks         Hooks
}

// New creates an empty business. Balance stays uninitialized until the
// setup flow deposits into it or SetBalance is called.
func New(cfg Config) *Business {
	if cfg.NSFFee.IsZero() {
		cfg.NSFFee = DefaultConfig().NSFFee
	}
	return &Business{
		inventory: inventory.New[*model.StockLedger](),
		loans:     inventory.New[*model.Loan](),
		offers:    inventory.New[*model.Loan](),
		nsfFee:    cfg.NSFFee,
		rng:       cfg.Rand,
	}
}

// SetHooks registers step callbacks. A Restaurant uses this to run its
// monthly demand simulation.
func (b *Business) SetHooks(h Hooks) {
	b.hooks = h
}

// Balance returns the current balance, zero if uninitialized.
func (b *Business) Balance() decimal.Decimal {
	return b.balance
}

// HasBalance reports whether the balance has been initialized.
func (b *Business) HasBalance() bool {
	return b.hasBalance
}

// SetBalance initializes or overwrites the balance without logging a
// transaction. Setup-flow use only.
func (b *Business) SetBalance(d decimal.Decimal) {
	b.balance = common.RoundDollars(d)
	b.hasBalance = true
}

// Employees returns the employee count.
func (b *Business) Employees() int {
	return b.employeeCount
}

// SetEmployees sets the employee count.
func (b *Business) SetEmployees(n int) {
	b.employeeCount = n
}

// Inventory returns the business's stock, keyed by item name.
func (b *Business) Inventory() *inventory.Inventory[*model.StockLedger] {
	return b.inventory
}

// Loans returns the active loan book.
func (b *Business) Loans() *inventory.Inventory[*model.Loan] {
	return b.loans
}

// Offers returns the cached loan-offer menu.
func (b *Business) Offers() *inventory.Inventory[*model.Loan] {
	return b.offers
}

// SetOffers replaces the cached loan-offer menu.
func (b *Business) SetOffers(offers *inventory.Inventory[*model.Loan]) {
	b.offers = offers
}

// Metadata returns a pointer to the business's cached figures.
func (b *Business) Metadata() *Metadata {
	return &b.metadata
}

// NSFFee returns the fee charged on declined withdrawals.
func (b *Business) NSFFee() decimal.Decimal {
	return b.nsfFee
}

// Rand returns the business's random source, seeding a fresh one on
// first use if none was injected.
func (b *Business) Rand() *rand.Rand {
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return b.rng
}

// AddTransaction appends an entry to the ledger at the current week,
// rounded to the cent. Expenses are negative.
func (b *Business) AddTransaction(title string, dollars decimal.Decimal, ttype model.TransactionType) {
	b.transactions = append(b.transactions, model.Transaction{
		Title:   title,
		Dollars: common.RoundDollars(dollars),
		Week:    b.totalWeeks,
		Type:    ttype,
	})
}

// Deposit credits the balance with the magnitude of amount. It always
// succeeds; log controls whether a transaction is recorded.
func (b *Business) Deposit(title string, amount decimal.Decimal, ttype model.TransactionType, log bool) bool {
	amount = amount.Abs()
	b.balance = b.balance.Add(amount)
	b.hasBalance = true
	if log {
		b.AddTransaction(title, amount, ttype)
	}
	slog.Debug("deposit", "title", title, "amount", amount, "balance", b.balance)
	return true
}

// Withdraw debits the magnitude of amount when it is covered (or force
// is set), logging the expense and returning true. On insufficient
// funds it debits the NSF fee instead, logs the declined transaction,
// and returns false; the requested amount is never taken.
func (b *Business) Withdraw(title string, amount decimal.Decimal, ttype model.TransactionType, force, log bool) bool {
	amount = amount.Abs()

	if force || b.balance.GreaterThanOrEqual(amount) {
		b.balance = b.balance.Sub(amount)
		if log {
			b.AddTransaction(title, amount.Neg(), ttype)
		}
		slog.Debug("withdraw", "title", title, "amount", amount, "balance", b.balance)
		return true
	}

	b.balance = b.balance.Sub(b.nsfFee)
	b.AddTransaction(fmt.Sprintf("Declined transaction with NSF fee: %s", title), b.nsfFee.Neg(), ttype)
	slog.Debug("withdraw declined", "title", title, "amount", amount, "fee", b.nsfFee, "balance", b.balance)
	return false
}

// BuyItem purchases an item with the balance and merges it into the
// inventory. On insufficient funds the inventory is untouched. A
// unit mismatch with existing stock fails before any money moves.
func (b *Business) BuyItem(item model.Item) (bool, error) {
	ledger, exists := b.inventory.Get(item.Name)
	if exists && ledger.Unit != item.Unit {
		return false, fmt.Errorf("%w: %q is stocked in %q units, not %q",
			common.ErrItemMismatch, item.Name, ledger.Unit, item.Unit)
	}

	if !b.Withdraw(item.String(), item.Price, model.TransactionPurchase, false, true) {
		return false, nil
	}

	if exists {
		if err := ledger.AddItem(item); err != nil {
			return false, err
		}
	} else {
		b.inventory.Add(model.LedgerFromItem(item))
	}
	return true, nil
}

// TransactionQuery filters the ledger. Zero values leave a dimension
// unfiltered.
type TransactionQuery struct {
	// Limit keeps only the most recent N entries after sorting.
	Limit int
	// After keeps entries at or past the given week.
	After int
	// Type keeps entries of one transaction type.
	Type model.TransactionType
	// Filter is an arbitrary predicate.
	Filter func(model.Transaction) bool
}

// Transactions returns ledger entries sorted ascending by week. With a
// limit, the trailing (most recent) slice is returned.
func (b *Business) Transactions(q TransactionQuery) []model.Transaction {
	query := make([]model.Transaction, 0, len(b.transactions))
	for _, t := range b.transactions {
		if t.Week < q.After {
			continue
		}
		if q.Type != 0 && t.Type != q.Type {
			continue
		}
		if q.Filter != nil && !q.Filter(t) {
			continue
		}
		query = append(query, t)
	}

	// Appends happen in week order already; the stable sort guards
	// restored saves.
	sort.SliceStable(query, func(i, j int) bool {
		return query[i].Week < query[j].Week
	})

	if q.Limit > 0 && len(query) > q.Limit {
		query = query[len(query)-q.Limit:]
	}
	return query
}
