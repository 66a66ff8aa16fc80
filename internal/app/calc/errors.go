package calc

import "errors"

// Ошибки расчетного ядра. Ядро не восстанавливается само - ошибку
// получает вызывающий слой и отказывает по всей заявке целиком.
var (
	// ErrInvalidDuration - длительность не является числом (NaN/Inf)
	ErrInvalidDuration = errors.New("длительность должна быть числом")
	// ErrMalformedItem - у позиции отсутствуют или испорчены обязательные числовые поля
	ErrMalformedItem = errors.New("некорректная позиция заявки")
)
