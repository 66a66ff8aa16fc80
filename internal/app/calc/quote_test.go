package calc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateQuoteTotalNoDiscounts(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: 10},
		{Quantity: 2, UnitPrice: 5},
	}
	total, err := CalculateQuoteTotal(items, BillingParams{Duration: 100, DurationUnit: "hours"})
	require.NoError(t, err)

	assert.Equal(t, 2, total.ItemCount)
	assert.Equal(t, 2000.0, total.BaseTotal)
	assert.Equal(t, 2000.0, total.Subtotal)
	assert.Equal(t, 2000.0, total.Total)
	assert.Equal(t, 0.0, total.TotalCommitmentDiscounts)
}

func TestCalculateQuoteTotalAggregateGlobalDiscount(t *testing.T) {
	items := []Item{{Quantity: 1, UnitPrice: 100, Category: "compute"}}
	total, err := CalculateQuoteTotal(items, BillingParams{
		Duration:          100,
		DurationUnit:      "hours",
		CommitmentPeriod:  PeriodOneYear,
		GlobalDiscountPct: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 10000.0, total.BaseTotal)
	assert.Equal(t, 4000.0, total.TotalCommitmentDiscounts)
	assert.Equal(t, 6000.0, total.Subtotal)
	assert.Equal(t, 600.0, total.GlobalDiscount)
	assert.Equal(t, 5400.0, total.Total)

	// агрегатный итог совпадает с суммой позиции только потому, что
	// позиция одна: глобальная скидка применена один раз к subtotal,
	// а не поверх уже скинутых final_cost
	require.Len(t, total.Items, 1)
	assert.Equal(t, 5400.0, total.Items[0].FinalCost)
	assert.NotEqual(t, total.Items[0].FinalCost*0.9, total.Total, "скидка не должна применяться дважды")

	assert.Equal(t, total.Total, total.Summary.Total)
	assert.Equal(t, total.Subtotal, total.Summary.Subtotal)
	assert.Equal(t, total.BaseTotal, total.Summary.BaseTotal)
}

func TestCalculateQuoteTotalEmpty(t *testing.T) {
	total, err := CalculateQuoteTotal(nil, BillingParams{Duration: 10, DurationUnit: "hours"})
	require.NoError(t, err)

	assert.Equal(t, 0, total.ItemCount)
	assert.Equal(t, 0.0, total.BaseTotal)
	assert.Equal(t, 0.0, total.Subtotal)
	assert.Equal(t, 0.0, total.Total)
	assert.Empty(t, total.Items)
}

func TestCalculateQuoteTotalOrderPreserved(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: 1},
		{Quantity: 2, UnitPrice: 2},
		{Quantity: 3, UnitPrice: 3},
	}
	total, err := CalculateQuoteTotal(items, BillingParams{Duration: 1, DurationUnit: "hours"})
	require.NoError(t, err)

	require.Len(t, total.Items, 3)
	for i, item := range items {
		assert.Equal(t, item.Quantity, total.Items[i].Quantity)
	}
}

func TestCalculateQuoteTotalFailsWholeBatch(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: 1},
		{Quantity: math.NaN(), UnitPrice: 1},
	}
	_, err := CalculateQuoteTotal(items, BillingParams{Duration: 1, DurationUnit: "hours"})
	assert.ErrorIs(t, err, ErrMalformedItem)
}

func TestCalculateQuoteTotalIdempotent(t *testing.T) {
	items := []Item{
		{Quantity: 1, UnitPrice: 100, Category: "compute", Flags: "PER_MONTH"},
		{Quantity: 4, UnitPrice: 0.05, Category: "storage", IOPSUnitPrice: 0.001, IOPSQuantity: 3000},
	}
	params := BillingParams{
		Duration:          6,
		DurationUnit:      "months",
		CommitmentPeriod:  PeriodOneMonth,
		GlobalDiscountPct: 5,
	}

	first, err := CalculateQuoteTotal(items, params)
	require.NoError(t, err)
	second, err := CalculateQuoteTotal(items, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// побайтно одинаковая сериализация
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}
