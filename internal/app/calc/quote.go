package calc

// QuoteSummary - сводка по заявке, дублирует агрегаты для фронтенда
type QuoteSummary struct {
	BaseTotal           float64 `json:"base_total"`
	CommitmentDiscounts float64 `json:"commitment_discounts"`
	Subtotal            float64 `json:"subtotal"`
	GlobalDiscount      float64 `json:"global_discount"`
	Total               float64 `json:"total"`
}

// QuoteTotal - результат расчета всей заявки.
//
// Итог total = subtotal − глобальная скидка от subtotal. Это НЕ сумма
// final_cost позиций: там глобальная скидка уже применена на уровне
// каждой позиции отдельно. Обе величины считаются независимо и обе
// отдаются наружу, итоговой для заявки является агрегатная.
type QuoteTotal struct {
	Items                    []ItemCost   `json:"items"`
	ItemCount                int          `json:"item_count"`
	BaseTotal                float64      `json:"base_total"`
	TotalCommitmentDiscounts float64      `json:"total_commitment_discounts"`
	Subtotal                 float64      `json:"subtotal"`
	GlobalDiscountPct        float64      `json:"global_discount_percent"`
	GlobalDiscount           float64      `json:"global_discount_amount"`
	Total                    float64      `json:"total"`
	Summary                  QuoteSummary `json:"summary"`
}

// CalculateQuoteTotal прогоняет расчет по всем позициям заявки
// (порядок сохраняется) и собирает агрегаты. Ошибка по любой позиции
// отменяет весь расчет - частичный итог был бы молча неверным.
// Пустой список позиций - не ошибка, все агрегаты нулевые.
func CalculateQuoteTotal(items []Item, p BillingParams) (QuoteTotal, error) {
	result := QuoteTotal{
		Items:             make([]ItemCost, 0, len(items)),
		GlobalDiscountPct: p.GlobalDiscountPct,
	}

	var baseTotal, commitmentTotal, subtotal float64
	for _, item := range items {
		cost, err := CalculateItemCost(item, p)
		if err != nil {
			return QuoteTotal{}, err
		}
		result.Items = append(result.Items, cost)
		baseTotal += cost.BaseCost
		commitmentTotal += cost.CommitmentDiscount
		subtotal += cost.CostAfterCommitment
	}

	// Глобальная скидка применяется еще раз, уже к промежуточному итогу
	globalAmount := subtotal * p.GlobalDiscountPct / 100

	result.ItemCount = len(result.Items)
	result.BaseTotal = round2(baseTotal)
	result.TotalCommitmentDiscounts = round2(commitmentTotal)
	result.Subtotal = round2(subtotal)
	result.GlobalDiscount = round2(globalAmount)
	result.Total = round2(subtotal - globalAmount)
	result.Summary = QuoteSummary{
		BaseTotal:           result.BaseTotal,
		CommitmentDiscounts: result.TotalCommitmentDiscounts,
		Subtotal:            result.Subtotal,
		GlobalDiscount:      result.GlobalDiscount,
		Total:               result.Total,
	}
	return result, nil
}
