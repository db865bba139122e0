// Package behavior synthesizes documented behavioral-data profiles for the
// scoring request. Profiles mirror real distributions (excellent, good,
// average, developing) and are weighted toward the middle of the population.
package behavior

import (
	"math/rand/v2"

	"github.com/nexis-platform/trust-cli/internal/model"
)

// Generator produces randomized behavioral profiles. The random source is
// injectable so flows that need reproducibility can pin one.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a Generator backed by rng, or by a fresh PCG source
// when rng is nil.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// Profile weights: 25% excellent, 35% good, 30% average, 10% developing.
const (
	excellentCut = 0.25
	goodCut      = 0.60
	averageCut   = 0.90
)

// Sample returns one randomized behavioral profile.
func (g *Generator) Sample() model.BehavioralData {
	switch r := g.rng.Float64(); {
	case r < excellentCut:
		return g.excellent()
	case r < goodCut:
		return g.good()
	case r < averageCut:
		return g.average()
	default:
		return g.developing()
	}
}

// Default is the canonical good-profile record used when a deterministic
// payload is needed (demos, contract tests).
func Default() model.BehavioralData {
	return model.BehavioralData{
		UtilityPaymentMonths:      18,
		UtilityPaymentConsistency: 0.95,
		MonthlyTransactionCount:   52,
		TransactionRegularity:     0.88,
		SpendingVolatility:        0.12,
		AvgMonthEndBalance:        25000.0,
		SavingsGrowthRate:         0.15,
		WithdrawalDiscipline:      0.82,
		IncomeRegularity:          0.90,
		IncomeStabilityMonths:     18,
		AccountTenureMonths:       42,
		AddressStabilityYears:     3.5,
		DiscretionaryIncomeRatio:  0.22,
	}
}

func (g *Generator) excellent() model.BehavioralData {
	return model.BehavioralData{
		UtilityPaymentMonths:      g.intIn(18, 24),
		UtilityPaymentConsistency: g.floatIn(0.92, 1.00),
		MonthlyTransactionCount:   g.intIn(50, 70),
		TransactionRegularity:     g.floatIn(0.85, 1.00),
		SpendingVolatility:        g.floatIn(0.00, 0.15),
		AvgMonthEndBalance:        g.floatIn(20000, 50000),
		SavingsGrowthRate:         g.floatIn(0.12, 0.30),
		WithdrawalDiscipline:      g.floatIn(0.80, 1.00),
		IncomeRegularity:          g.floatIn(0.85, 1.00),
		IncomeStabilityMonths:     g.intIn(18, 25),
		AccountTenureMonths:       g.intIn(36, 60),
		AddressStabilityYears:     g.floatIn(2.5, 6.0),
		DiscretionaryIncomeRatio:  g.floatIn(0.18, 0.30),
	}
}

func (g *Generator) good() model.BehavioralData {
	return model.BehavioralData{
		UtilityPaymentMonths:      g.intIn(12, 18),
		UtilityPaymentConsistency: g.floatIn(0.80, 0.92),
		MonthlyTransactionCount:   g.intIn(35, 50),
		TransactionRegularity:     g.floatIn(0.70, 0.85),
		SpendingVolatility:        g.floatIn(0.15, 0.30),
		AvgMonthEndBalance:        g.floatIn(10000, 25000),
		SavingsGrowthRate:         g.floatIn(0.05, 0.17),
		WithdrawalDiscipline:      g.floatIn(0.65, 0.85),
		IncomeRegularity:          g.floatIn(0.70, 0.85),
		IncomeStabilityMonths:     g.intIn(12, 19),
		AccountTenureMonths:       g.intIn(24, 42),
		AddressStabilityYears:     g.floatIn(1.5, 4.0),
		DiscretionaryIncomeRatio:  g.floatIn(0.12, 0.22),
	}
}

func (g *Generator) average() model.BehavioralData {
	return model.BehavioralData{
		UtilityPaymentMonths:      g.intIn(8, 14),
		UtilityPaymentConsistency: g.floatIn(0.65, 0.80),
		MonthlyTransactionCount:   g.intIn(25, 40),
		TransactionRegularity:     g.floatIn(0.55, 0.70),
		SpendingVolatility:        g.floatIn(0.25, 0.45),
		AvgMonthEndBalance:        g.floatIn(5000, 15000),
		SavingsGrowthRate:         g.floatIn(0.00, 0.08),
		WithdrawalDiscipline:      g.floatIn(0.50, 0.70),
		IncomeRegularity:          g.floatIn(0.55, 0.70),
		IncomeStabilityMonths:     g.intIn(6, 13),
		AccountTenureMonths:       g.intIn(12, 30),
		AddressStabilityYears:     g.floatIn(0.8, 2.8),
		DiscretionaryIncomeRatio:  g.floatIn(0.08, 0.16),
	}
}

func (g *Generator) developing() model.BehavioralData {
	return model.BehavioralData{
		UtilityPaymentMonths:      g.intIn(4, 8),
		UtilityPaymentConsistency: g.floatIn(0.50, 0.65),
		MonthlyTransactionCount:   g.intIn(15, 30),
		TransactionRegularity:     g.floatIn(0.40, 0.55),
		SpendingVolatility:        g.floatIn(0.40, 0.65),
		AvgMonthEndBalance:        g.floatIn(2000, 7000),
		SavingsGrowthRate:         g.floatIn(-0.05, 0.03),
		WithdrawalDiscipline:      g.floatIn(0.35, 0.55),
		IncomeRegularity:          g.floatIn(0.40, 0.55),
		IncomeStabilityMonths:     g.intIn(3, 7),
		AccountTenureMonths:       g.intIn(6, 18),
		AddressStabilityYears:     g.floatIn(0.3, 1.5),
		DiscretionaryIncomeRatio:  g.floatIn(0.03, 0.10),
	}
}

func (g *Generator) intIn(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo)
}

func (g *Generator) floatIn(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
