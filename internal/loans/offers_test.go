package loans

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spaghetto/manager/internal/model"
)

func rankOf(name string) Rank {
	for _, bank := range catalogue {
		if bank.name == name {
			return bank.rank
		}
	}
	return 0
}

func TestGenerator_MenuDeterministic(t *testing.T) {
	a := NewGenerator(rand.New(rand.NewSource(7))).Menu(5)
	b := NewGenerator(rand.New(rand.NewSource(7))).Menu(5)

	if len(a) != 5 || len(b) != 5 {
		t.Fatalf("menu sizes = %d, %d; want 5", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Errorf("offer %d differs: %q vs %q", i, a[i].Name, b[i].Name)
		}
		if !a[i].Amount.Equal(b[i].Amount) || !a[i].Rate.Equal(b[i].Rate) {
			t.Errorf("offer %q terms differ across identical seeds", a[i].Name)
		}
	}
}

func TestGenerator_MenuUniqueLenders(t *testing.T) {
	offers := NewGenerator(rand.New(rand.NewSource(3))).Menu(9)
	seen := make(map[string]bool)
	for _, o := range offers {
		if seen[o.Name] {
			t.Errorf("lender %q appears twice", o.Name)
		}
		seen[o.Name] = true
	}
}

func TestGenerator_MenuClampsToCatalogue(t *testing.T) {
	offers := NewGenerator(rand.New(rand.NewSource(1))).Menu(100)
	if len(offers) != len(catalogue) {
		t.Errorf("Menu(100) returned %d offers, want %d", len(offers), len(catalogue))
	}
}

func TestGenerator_OfferRanges(t *testing.T) {
	// Sweep many seeds so every rank's ranges are exercised.
	for seed := int64(0); seed < 20; seed++ {
		for _, offer := range NewGenerator(rand.New(rand.NewSource(seed))).Menu(9) {
			switch rankOf(offer.Name) {
			case RankStartup:
				assertBetweenInt(t, offer.Name, "term", offer.Term, 1, 3)
				assertBetween(t, offer.Name, "amount", offer.Amount, "5000", "25000")
				assertBetween(t, offer.Name, "rate", offer.Rate, "0.03", "0.08")
			case RankSmallBusiness:
				assertBetweenInt(t, offer.Name, "term", offer.Term, 2, 5)
				assertBetween(t, offer.Name, "amount", offer.Amount, "20000", "100000")
				assertBetween(t, offer.Name, "rate", offer.Rate, "0.02", "0.06")
			case RankFinancialNeed:
				if !offer.IsSubsidy() {
					t.Errorf("%s: financial-need offer is not a subsidy", offer.Name)
				}
				assertBetween(t, offer.Name, "amount", offer.Amount, "1000", "10000")
				if !offer.Rate.IsZero() {
					t.Errorf("%s: subsidy rate = %s, want 0", offer.Name, offer.Rate)
				}
			default:
				t.Errorf("offer %q not in the catalogue", offer.Name)
			}
		}
	}
}

func TestGenerator_RequirementsMatchRank(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		for _, offer := range NewGenerator(rand.New(rand.NewSource(seed))).Menu(9) {
			switch rankOf(offer.Name) {
			case RankSmallBusiness:
				if len(offer.Requirements) == 0 {
					t.Errorf("%s: small-business offer has no requirements", offer.Name)
					continue
				}
				first := offer.Requirements[0]
				if first.Type != model.RequirementMonthlyRevenue || first.Lower == nil {
					t.Errorf("%s: first requirement = %+v, want a revenue floor", offer.Name, first)
				}
			case RankFinancialNeed:
				if len(offer.Requirements) == 0 {
					t.Errorf("%s: financial-need offer has no requirements", offer.Name)
					continue
				}
				first := offer.Requirements[0]
				if first.Type != model.RequirementMonthlyRevenue || first.Upper == nil {
					t.Errorf("%s: first requirement = %+v, want a revenue ceiling", offer.Name, first)
				}
			case RankStartup:
				// At most an employee ceiling.
				for _, req := range offer.Requirements {
					if req.Type != model.RequirementEmployees || req.Upper == nil {
						t.Errorf("%s: unexpected startup requirement %+v", offer.Name, req)
					}
				}
			}

			// Bounds must never be contradictory.
			for _, req := range offer.Requirements {
				if req.Lower != nil && req.Upper != nil && req.Lower.GreaterThan(*req.Upper) {
					t.Errorf("%s: requirement bounds inverted: %+v", offer.Name, req)
				}
			}
		}
	}
}

func assertBetween(t *testing.T, name, field string, got decimal.Decimal, lo, hi string) {
	t.Helper()
	if got.LessThan(decimal.RequireFromString(lo)) || got.GreaterThan(decimal.RequireFromString(hi)) {
		t.Errorf("%s: %s = %s, want within [%s, %s]", name, field, got, lo, hi)
	}
}

func assertBetweenInt(t *testing.T, name, field string, got, lo, hi int) {
	t.Helper()
	if got < lo || got > hi {
		t.Errorf("%s: %s = %d, want within [%d, %d]", name, field, got, lo, hi)
	}
}
