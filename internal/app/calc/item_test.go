package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateItemCostBase(t *testing.T) {
	// 2 × 0.10 × 100 часов, без скидок
	cost, err := CalculateItemCost(
		Item{Quantity: 2, UnitPrice: 0.10},
		BillingParams{Duration: 100, DurationUnit: "hours"},
	)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cost.BaseCost)
	assert.Equal(t, 20.0, cost.FinalCost)
	assert.Equal(t, 0.0, cost.IOPSCost)
	assert.Equal(t, 100.0, cost.DurationInBillingUnit)
	assert.False(t, cost.IsMonthly)
}

func TestCalculateItemCostCommitmentDiscount(t *testing.T) {
	// compute с резервированием на год: скидка 40%
	cost, err := CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 100, Category: "compute"},
		BillingParams{Duration: 100, DurationUnit: "hours", CommitmentPeriod: PeriodOneYear},
	)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, cost.BaseCost)
	assert.Equal(t, 40.0, cost.CommitmentDiscountPct)
	assert.Equal(t, 4000.0, cost.CommitmentDiscount)
	assert.Equal(t, 6000.0, cost.CostAfterCommitment)
	assert.Equal(t, 6000.0, cost.FinalCost)
}

func TestCalculateItemCostGlobalDiscountAfterCommitment(t *testing.T) {
	// глобальная скидка считается от 6000, а не от 10000
	cost, err := CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 100, Category: "compute"},
		BillingParams{
			Duration:          100,
			DurationUnit:      "hours",
			CommitmentPeriod:  PeriodOneYear,
			GlobalDiscountPct: 10,
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 600.0, cost.GlobalDiscount)
	assert.Equal(t, 5400.0, cost.FinalCost)
}

func TestCalculateItemCostPerMonthFlag(t *testing.T) {
	// флаг PER_MONTH переключает базис на месяцы: 1 год = 12 месяцев
	cost, err := CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 50, Flags: "BASE,PER_MONTH"},
		BillingParams{Duration: 1, DurationUnit: "years"},
	)
	require.NoError(t, err)

	assert.True(t, cost.IsMonthly)
	assert.Equal(t, 12.0, cost.DurationInBillingUnit)
	assert.Equal(t, 600.0, cost.BaseCost)
}

func TestCalculateItemCostIOPS(t *testing.T) {
	// надбавка за IOPS складывается в базовую стоимость
	cost, err := CalculateItemCost(
		Item{
			Quantity:      1,
			UnitPrice:     1,
			Category:      "storage",
			IOPSUnitPrice: 0.01,
			IOPSQuantity:  500,
		},
		BillingParams{Duration: 10, DurationUnit: "hours"},
	)
	require.NoError(t, err)

	assert.Equal(t, 50.0, cost.IOPSCost)  // 500 × 0.01 × 10
	assert.Equal(t, 60.0, cost.BaseCost)  // 10 + 50
	assert.Equal(t, 60.0, cost.FinalCost) // storage без скидок

	// одного поля IOPS недостаточно - надбавки нет
	cost, err = CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 1, IOPSUnitPrice: 0.01},
		BillingParams{Duration: 10, DurationUnit: "hours"},
	)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost.IOPSCost)
	assert.Equal(t, 10.0, cost.BaseCost)
}

func TestCalculateItemCostZeroQuantity(t *testing.T) {
	// нулевое количество - нулевые суммы, но проценты скидок сообщаются
	cost, err := CalculateItemCost(
		Item{Quantity: 0, UnitPrice: 100, Category: "compute"},
		BillingParams{Duration: 100, DurationUnit: "hours", CommitmentPeriod: PeriodThreeYears},
	)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cost.BaseCost)
	assert.Equal(t, 0.0, cost.FinalCost)
	assert.Equal(t, 50.0, cost.CommitmentDiscountPct)
}

func TestCalculateItemCostRounding(t *testing.T) {
	// денежные поля округляются до 2 знаков при выдаче
	cost, err := CalculateItemCost(
		Item{Quantity: 3, UnitPrice: 0.333},
		BillingParams{Duration: 1, DurationUnit: "hours"},
	)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cost.BaseCost) // 0.999 → 1.00

	// длительность в расчетных единицах - до 4 знаков
	cost, err = CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 1, Flags: FlagPerMonth},
		BillingParams{Duration: 1, DurationUnit: "weeks"},
	)
	require.NoError(t, err)
	assert.Equal(t, 0.2309, cost.DurationInBillingUnit) // 1/4.33 = 0.23094...
}

func TestCalculateItemCostErrors(t *testing.T) {
	// нечисловая длительность - ошибка, а не нулевой дефолт
	_, err := CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 1},
		BillingParams{Duration: math.NaN(), DurationUnit: "hours"},
	)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// испорченные обязательные поля позиции
	_, err = CalculateItemCost(
		Item{Quantity: math.NaN(), UnitPrice: 1},
		BillingParams{Duration: 1, DurationUnit: "hours"},
	)
	assert.ErrorIs(t, err, ErrMalformedItem)

	_, err = CalculateItemCost(
		Item{Quantity: 1, UnitPrice: math.Inf(1)},
		BillingParams{Duration: 1, DurationUnit: "hours"},
	)
	assert.ErrorIs(t, err, ErrMalformedItem)

	_, err = CalculateItemCost(
		Item{Quantity: -1, UnitPrice: 1},
		BillingParams{Duration: 1, DurationUnit: "hours"},
	)
	assert.ErrorIs(t, err, ErrMalformedItem)

	// испорченные IOPS поля тоже ошибка, NaN не должен утечь в суммы
	_, err = CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 1, IOPSUnitPrice: math.NaN(), IOPSQuantity: 100},
		BillingParams{Duration: 1, DurationUnit: "hours"},
	)
	assert.ErrorIs(t, err, ErrMalformedItem)

	_, err = CalculateItemCost(
		Item{Quantity: 1, UnitPrice: 1, IOPSUnitPrice: 0.01, IOPSQuantity: math.Inf(1)},
		BillingParams{Duration: 1, DurationUnit: "hours"},
	)
	assert.ErrorIs(t, err, ErrMalformedItem)
}
