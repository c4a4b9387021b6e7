package restaurant

import (
	"log/slog"
	"math"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/model"
)

// Simulation tuning constants. The popularity curve coefficients are
// carried verbatim for output reproducibility; do not retune without a
// product decision.
const (
	popularityScale     = 1000.0
	popularityShape     = 2.15
	popularityRate      = 3.0 / 1_250_000
	popularityFloor     = 100.0
	popularitySmoothing = 0.9

	baseMonthlyDemand   = 480.0
	openHoursFactor     = 14.0 / 16.0 // service hours over a full day shift
	priceDecayRate      = 1.0 / 30.0
	costRatioSlope      = 4.0
	costRatioMidpoint   = 1.0
	maxPopularityFactor = 5.0
)

// PopularityCurve maps a balance to a raw popularity score on a
// generalized logistic curve, floored at 100.
func PopularityCurve(balance decimal.Decimal) float64 {
	b, _ := balance.Float64()
	score := popularityScale / math.Pow(1+popularityShape*math.Exp(-popularityRate*b), 2)
	return math.Max(popularityFloor, score)
}

// Popularity returns the cached smoothed score, or the raw curve value
// before any update has run.
func (r *Restaurant) Popularity() float64 {
	if p := r.Metadata().Popularity; p != nil {
		return *p
	}
	return PopularityCurve(r.Balance())
}

// UpdatePopularity recomputes the popularity score from the balance,
// blending 90% of the previous score with 10% of the new one so a
// windfall doesn't swing customer draw overnight. The blended score is
// cached and returned.
func (r *Restaurant) UpdatePopularity() float64 {
	score := PopularityCurve(r.Balance())

	md := r.Metadata()
	if md.Popularity != nil {
		score = popularitySmoothing*(*md.Popularity) + (1-popularitySmoothing)*score
	}
	md.Popularity = &score

	slog.Debug("popularity updated", "score", score)
	return score
}

// UpdateSales projects each dish's monthly unit sales from its price,
// the restaurant's popularity, and its ingredient cost. With noneOnly
// set, only dishes that have never been projected are touched.
//
// Qualitative shape: higher price means fewer sales, higher popularity
// more, and a cost-to-price ratio near or above one (an underpriced
// dish) is penalized. Demand is split evenly across the menu.
func (r *Restaurant) UpdateSales(noneOnly bool) {
	menuSize := r.dishes.Len()
	if menuSize == 0 {
		return
	}

	pop := math.Min(math.Max(r.Popularity(), 0), 1000)
	popFactor := math.Min(maxPopularityFactor, math.Pow(pop/200+0.5, 2))

	for _, dish := range r.dishes.All() {
		if noneOnly && dish.Sales != nil {
			continue
		}

		price, _ := dish.Price.Float64()

		// Average ingredient cost; a dish with unstocked ingredients
		// projects on price alone.
		costRatio := 0.0
		if cost, err := r.CostOfDish(dish, 1, true, true); err == nil && price > 0 {
			c, _ := cost.Float64()
			costRatio = c / price
		}

		costFactor := 1 / (1 + math.Exp(costRatioSlope*(costRatio-costRatioMidpoint)))
		priceFactor := math.Exp(-priceDecayRate * price)

		projected := baseMonthlyDemand * popFactor * openHoursFactor *
			costFactor * priceFactor / float64(menuSize)
		dish.SetSales(int(projected))

		slog.Debug("sales projected", "dish", dish.Name, "units", int(projected),
			"cost_ratio", costRatio)
	}
}

// UpdateExpenses realizes each dish's projected sales against
// inventory, one serving at a time round-robin across the menu so
// dishes sharing scarce ingredients are starved fairly rather than in
// menu order. A dish whose stock runs out has its recorded sales
// reduced to what was actually realized. Total revenue is deposited as
// a single SALES transaction. Returns (revenue, expenses).
func (r *Restaurant) UpdateExpenses() (decimal.Decimal, decimal.Decimal) {
	remaining := make(map[string]int)
	realized := make(map[string]int)

	for _, dish := range r.dishes.All() {
		dish.ResetPeriod()
		if dish.Sales != nil {
			remaining[dish.Name] = *dish.Sales
		}
	}

	revenue := decimal.Decimal{}
	for more := true; more; {
		more = false
		for _, dish := range r.dishes.All() {
			if remaining[dish.Name] <= 0 {
				continue
			}

			if _, ok := r.SellDish(dish, 1, false); !ok {
				// Out of stock: record only what was realized.
				dish.SetSales(realized[dish.Name])
				remaining[dish.Name] = 0
				continue
			}

			realized[dish.Name]++
			remaining[dish.Name]--
			revenue = revenue.Add(dish.Price)
			if remaining[dish.Name] > 0 {
				more = true
			}
		}
	}

	expenses := decimal.Decimal{}
	for _, dish := range r.dishes.All() {
		expenses = expenses.Add(dish.Expenses())
	}

	if revenue.IsPositive() {
		r.Deposit("Monthly dish sales", revenue, model.TransactionSales, true)
	}

	slog.Debug("sales realized", "revenue", revenue, "expenses", expenses,
		"week", r.TotalWeeks(), "date", business.FormatDate(r.TotalWeeks()))
	return revenue, expenses
}
