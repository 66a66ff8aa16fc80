package ds

import "time"

// Статусы заявки
const (
	QuoteStatusDraft     = "черновик"
	QuoteStatusDeleted   = "удалён"
	QuoteStatusFormed    = "сформирован"
	QuoteStatusCompleted = "завершён"
	QuoteStatusRejected  = "отклонён"
)

// 2. Таблица заявок (сметы стоимости)
type Quote struct {
	ID          uint       `gorm:"primaryKey"`
	Status      string     `gorm:"type:varchar(20);not null"` // черновик, удалён, сформирован, завершён, отклонён
	CreatedAt   time.Time  `gorm:"not null"`
	CreatorID   uint       `gorm:"not null"`
	FormattedAt *time.Time `gorm:"default:null"` // Дата формирования (2 действия создателя)
	CompletedAt *time.Time `gorm:"default:null"` // Дата завершения (2 действия модератора)
	ModeratorID *uint      `gorm:"default:null"`
	// Поля по предметной области: параметры биллинга уровня заявки
	Name              string   `gorm:"type:varchar(100)"`
	Duration          float64  `gorm:"type:decimal(10,2);default:1"`      // величина длительности
	DurationUnit      string   `gorm:"type:varchar(10);default:'months'"` // hours, days, weeks, months, years
	CommitmentPeriod  *string  `gorm:"type:varchar(10);default:null"`     // 1-month, 1-year, 3-years; NULL = none
	GlobalDiscountPct float64  `gorm:"type:decimal(5,2);default:0"`       // глобальная скидка, 0-100
	TotalCost         *float64 `gorm:"type:decimal(14,2)"`                // Рассчитываемое поле

	Creator   User  `gorm:"foreignKey:CreatorID"`
	Moderator *User `gorm:"foreignKey:ModeratorID"`
}
