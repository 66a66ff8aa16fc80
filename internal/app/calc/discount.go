package calc

import "strings"

// Категории ресурсов из каталога провайдера
const (
	CategoryCompute = "compute"
	CategoryStorage = "storage"
	CategoryNetwork = "network"
	CategoryLicence = "licence"
	CategoryDefault = "default" // все неизвестные категории
)

// Периоды резервирования
const (
	PeriodNone       = "none"
	PeriodOneMonth   = "1-month"
	PeriodOneYear    = "1-year"
	PeriodThreeYears = "3-years"
)

// FlagPerMonth - маркер в строке флагов ресурса: тариф за месяц, а не за час
const FlagPerMonth = "PER_MONTH"

// Статичная таблица скидок за резервирование: категория → период → процент.
// Скидка есть только у compute, остальные категории всегда 0.
var commitmentDiscounts = map[string]map[string]float64{
	CategoryCompute: {
		PeriodOneMonth:   30,
		PeriodOneYear:    40,
		PeriodThreeYears: 50,
	},
	CategoryStorage: {},
	CategoryNetwork: {},
	CategoryLicence: {},
	CategoryDefault: {},
}

// ResolveCategory приводит сырое значение поля Category из метаданных
// ресурса к известной категории. Все нераспознанное (включая пустую
// строку) попадает в default.
func ResolveCategory(raw string) string {
	c := strings.ToLower(raw)
	switch c {
	case CategoryCompute, CategoryStorage, CategoryNetwork, CategoryLicence:
		return c
	default:
		return CategoryDefault
	}
}

// CommitmentDiscountPercent возвращает процент скидки за резервирование.
// Двухуровневый поиск: сначала категория (неизвестная → default),
// затем период (неизвестный или none → 0).
func CommitmentDiscountPercent(category, period string) float64 {
	table, ok := commitmentDiscounts[ResolveCategory(category)]
	if !ok {
		table = commitmentDiscounts[CategoryDefault]
	}
	return table[period]
}
