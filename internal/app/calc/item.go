package calc

import (
	"fmt"
	"math"
	"strings"
)

// BillingParams - параметры расчета уровня заявки, общие для всех позиций
type BillingParams struct {
	Duration          float64 // величина длительности
	DurationUnit      string  // hours/days/weeks/months/years
	CommitmentPeriod  string  // none/1-month/1-year/3-years, пустая строка = none
	GlobalDiscountPct float64 // глобальная скидка заявки, 0-100
}

// Item - одна позиция заявки на входе расчета.
// Ядро не изменяет вход, результат собирается в новый ItemCost.
type Item struct {
	Quantity      float64 // количество, >= 0
	UnitPrice     float64 // цена за расчетную единицу
	Category      string  // сырое поле Category из метаданных ресурса
	Flags         string  // строка флагов, может содержать PER_MONTH
	IOPSUnitPrice float64 // цена за IOPS, 0 = надбавки нет
	IOPSQuantity  float64 // количество IOPS, 0 = надбавки нет
}

// ItemCost - полная раскладка стоимости одной позиции
type ItemCost struct {
	Quantity              float64 `json:"quantity"`
	UnitPrice             float64 `json:"unit_price"`
	DurationInBillingUnit float64 `json:"duration_in_billing_unit"`
	IsMonthly             bool    `json:"is_monthly"`
	BaseCost              float64 `json:"base_cost"`
	IOPSCost              float64 `json:"iops_cost"`
	CommitmentDiscountPct float64 `json:"commitment_discount_percent"`
	CommitmentDiscount    float64 `json:"commitment_discount_amount"`
	CostAfterCommitment   float64 `json:"cost_after_commitment_discount"`
	GlobalDiscountPct     float64 `json:"global_discount_percent"`
	GlobalDiscount        float64 `json:"global_discount_amount"`
	FinalCost             float64 `json:"final_cost"`
}

// round2 округляет денежное поле до копеек. Вызывается только при
// выдаче результата, чтобы не накапливать ошибку округления по шагам.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// finite - обязательное числовое поле позиции должно быть конечным
// неотрицательным числом
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// CalculateItemCost считает стоимость одной позиции заявки:
// база = количество × цена × длительность в расчетных единицах,
// затем надбавка за IOPS, скидка за резервирование и глобальная скидка.
// Глобальная скидка считается от суммы ПОСЛЕ скидки за резервирование.
func CalculateItemCost(item Item, p BillingParams) (ItemCost, error) {
	if err := CheckDuration(p.Duration); err != nil {
		return ItemCost{}, err
	}
	if !finite(item.Quantity) || !finite(item.UnitPrice) {
		return ItemCost{}, fmt.Errorf("%w: quantity=%v, unit_price=%v",
			ErrMalformedItem, item.Quantity, item.UnitPrice)
	}
	if !finite(item.IOPSQuantity) || !finite(item.IOPSUnitPrice) {
		return ItemCost{}, fmt.Errorf("%w: iops_quantity=%v, iops_unit_price=%v",
			ErrMalformedItem, item.IOPSQuantity, item.IOPSUnitPrice)
	}

	// Расчетная единица позиции: месяц при флаге PER_MONTH, иначе час
	isMonthly := strings.Contains(item.Flags, FlagPerMonth)
	var dur float64
	if isMonthly {
		dur = ToMonths(p.Duration, p.DurationUnit)
	} else {
		dur = ToHours(p.Duration, p.DurationUnit)
	}

	baseCost := item.Quantity * item.UnitPrice * dur

	// Надбавка за IOPS складывается в базу, дальше отдельно не учитывается
	var iopsCost float64
	if item.IOPSUnitPrice != 0 && item.IOPSQuantity != 0 {
		iopsCost = item.IOPSQuantity * item.IOPSUnitPrice * dur
		baseCost += iopsCost
	}

	discountPct := CommitmentDiscountPercent(item.Category, p.CommitmentPeriod)
	discountAmount := baseCost * discountPct / 100
	afterCommitment := baseCost - discountAmount

	globalAmount := afterCommitment * p.GlobalDiscountPct / 100
	finalCost := afterCommitment - globalAmount

	return ItemCost{
		Quantity:              item.Quantity,
		UnitPrice:             item.UnitPrice,
		DurationInBillingUnit: round4(dur),
		IsMonthly:             isMonthly,
		BaseCost:              round2(baseCost),
		IOPSCost:              round2(iopsCost),
		CommitmentDiscountPct: discountPct,
		CommitmentDiscount:    round2(discountAmount),
		CostAfterCommitment:   round2(afterCommitment),
		GlobalDiscountPct:     p.GlobalDiscountPct,
		GlobalDiscount:        round2(globalAmount),
		FinalCost:             round2(finalCost),
	}, nil
}
