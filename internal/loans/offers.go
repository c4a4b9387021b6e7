// Package loans generates the randomized loan and subsidy offers a
// business may qualify for.
package loans

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/model"
)

// Rank is the archetype of a lender's offer, controlling its amount and
// requirement ranges.
type Rank int

// Offer archetypes.
const (
	// RankStartup targets young businesses: small principals, light
	// requirements.
	RankStartup Rank = iota + 1
	// RankSmallBusiness targets established businesses: larger
	// principals gated on revenue and headcount.
	RankSmallBusiness
	// RankFinancialNeed is subsidy-shaped: grants gated on low revenue
	// or high expenses.
	RankFinancialNeed
)

type bankProfile struct {
	name string
	rank Rank
}

// The lender catalogue. Names are flavor; the rank drives generation.
var catalogue = []bankProfile{
	{"Ravioli Credit Union Startup Loan", RankStartup},
	{"Banca di Linguine New Venture Loan", RankStartup},
	{"Tortellini Trust Founders' Loan", RankStartup},
	{"Fusilli First Small Business Loan", RankSmallBusiness},
	{"Banca di Linguine Growth Loan", RankSmallBusiness},
	{"Rigatoni Regional Business Loan", RankSmallBusiness},
	{"Penne Provincial Relief Fund", RankFinancialNeed},
	{"Orzo Community Assistance Grant", RankFinancialNeed},
	{"Gnocchi Hardship Subsidy", RankFinancialNeed},
}

var interestTypes = []model.InterestType{
	model.InterestSimple,
	model.InterestCompoundAnnually,
	model.InterestCompoundMonthly,
	model.InterestCompoundBiweekly,
	model.InterestCompoundWeekly,
}

var paybackTypes = []model.PaybackType{
	model.PaybackWeekly,
	model.PaybackBiweekly,
	model.PaybackMonthly,
	model.PaybackAnnually,
}

// Generator produces loan-offer menus from an injected random source,
// so a fixed seed yields a reproducible menu.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator over the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Menu generates up to n offers from a shuffled lender catalogue.
func (g *Generator) Menu(n int) []*model.Loan {
	banks := make([]bankProfile, len(catalogue))
	copy(banks, catalogue)
	g.rng.Shuffle(len(banks), func(i, j int) {
		banks[i], banks[j] = banks[j], banks[i]
	})

	if n > len(banks) {
		n = len(banks)
	}

	offers := make([]*model.Loan, 0, n)
	for _, bank := range banks[:n] {
		offers = append(offers, g.generate(bank))
	}
	return offers
}

func (g *Generator) generate(bank bankProfile) *model.Loan {
	switch bank.rank {
	case RankSmallBusiness:
		return model.NewLoan(
			bank.name,
			2+g.rng.Intn(4), // 2-5 years
			g.dollars(20_000, 100_000),
			g.rate(0.02, 0.06),
			pick(g.rng, interestTypes),
			pick(g.rng, paybackTypes),
			g.requirements(bank.rank),
		)
	case RankFinancialNeed:
		// Subsidies: no term, no repayment, requirement-gated.
		return model.NewLoan(
			bank.name,
			0,
			g.dollars(1_000, 10_000),
			decimal.Decimal{},
			model.InterestSimple,
			model.PaybackMonthly,
			g.requirements(bank.rank),
		)
	default: // RankStartup
		return model.NewLoan(
			bank.name,
			1+g.rng.Intn(3), // 1-3 years
			g.dollars(5_000, 25_000),
			g.rate(0.03, 0.08),
			pick(g.rng, interestTypes),
			pick(g.rng, paybackTypes),
			g.requirements(bank.rank),
		)
	}
}

// requirements generates 1..N internally consistent requirement bounds
// per the rank's rules. Ranges here are tunable policy.
func (g *Generator) requirements(rank Rank) []model.Requirement {
	var reqs []model.Requirement

	switch rank {
	case RankSmallBusiness:
		lower := g.dollars(500, 5_000)
		reqs = append(reqs, model.Requirement{
			Type:  model.RequirementMonthlyRevenue,
			Lower: &lower,
		})
		if g.rng.Intn(2) == 0 {
			minEmp := decimal.NewFromInt(int64(1 + g.rng.Intn(5)))
			reqs = append(reqs, model.Requirement{
				Type:  model.RequirementEmployees,
				Lower: &minEmp,
			})
		}
	case RankFinancialNeed:
		upper := g.dollars(1_000, 4_000)
		reqs = append(reqs, model.Requirement{
			Type:  model.RequirementMonthlyRevenue,
			Upper: &upper,
		})
		if g.rng.Intn(2) == 0 {
			minExp := g.dollars(500, 2_000)
			reqs = append(reqs, model.Requirement{
				Type:  model.RequirementMonthlyExpense,
				Lower: &minExp,
			})
		}
	default: // RankStartup
		if g.rng.Intn(2) == 0 {
			maxEmp := decimal.NewFromInt(int64(2 + g.rng.Intn(9)))
			reqs = append(reqs, model.Requirement{
				Type:  model.RequirementEmployees,
				Upper: &maxEmp,
			})
		}
	}
	return reqs
}

// dollars returns a whole-dollar amount in [lo, hi].
func (g *Generator) dollars(lo, hi int) decimal.Decimal {
	return decimal.NewFromInt(int64(lo + g.rng.Intn(hi-lo+1)))
}

// rate returns an annual rate in [lo, hi] with basis-point precision.
func (g *Generator) rate(lo, hi float64) decimal.Decimal {
	r := lo + g.rng.Float64()*(hi-lo)
	return decimal.NewFromFloat(r).Round(4)
}

func pick[T any](rng *rand.Rand, options []T) T {
	return options[rng.Intn(len(options))]
}
