package calc

import (
	"math"
	"strings"
)

// Перевод длительности в расчетные единицы биллинга (часы или месяцы).
// Прайс-лист провайдера задает цены либо за час, либо за месяц,
// поэтому других базисов нет.

const (
	hoursPerDay   = 24.0
	daysPerWeek   = 7.0
	daysPerMonth  = 30.0  // приближение: месяц = 30 дней
	daysPerYear   = 365.0 // приближение: год = 365 дней
	weeksPerMonth = 4.33  // приближение для перевода недель в месяцы
	monthsPerYear = 12.0
)

// CheckDuration проверяет, что длительность - валидное число.
// Отсутствующую/нечисловую длительность ядро не подменяет нулем,
// это ошибка вызывающей стороны.
func CheckDuration(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return ErrInvalidDuration
	}
	return nil
}

// ToHours переводит (значение, единица) в часы.
// Единица сравнивается без учета регистра; нераспознанная единица
// возвращает значение как есть - без ошибки.
func ToHours(d float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "hours":
		return d
	case "days":
		return d * hoursPerDay
	case "weeks":
		return d * hoursPerDay * daysPerWeek
	case "months":
		return d * hoursPerDay * daysPerMonth
	case "years":
		return d * hoursPerDay * daysPerYear
	default:
		return d
	}
}

// ToMonths переводит (значение, единица) в месяцы.
func ToMonths(d float64, unit string) float64 {
	switch strings.ToLower(unit) {
	case "months":
		return d
	case "days":
		return d / daysPerMonth
	case "weeks":
		return d / weeksPerMonth
	case "hours":
		return d / (hoursPerDay * daysPerMonth)
	case "years":
		return d * monthsPerYear
	default:
		return d
	}
}
