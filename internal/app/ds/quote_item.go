package ds

// 3. Таблица многие-ко-многим (заявки-услуги) - связь + количество и кэш расчета
type QuoteItem struct {
	ID           uint    `gorm:"primaryKey"`
	QuoteID      uint    `gorm:"not null;index;uniqueIndex:idx_quote_service"`
	ServiceID    uint    `gorm:"not null;index;uniqueIndex:idx_quote_service"`
	Quantity     float64 `gorm:"type:decimal(12,2);default:1"` // количество единиц ресурса
	IOPSQuantity float64 `gorm:"type:decimal(12,2);default:0"` // заказанные IOPS, 0 = без надбавки
	// Кэш последнего расчета (пересчитывается ядром при изменении параметров)
	BaseCost           float64 `gorm:"type:decimal(14,2);default:0"`
	CommitmentDiscount float64 `gorm:"type:decimal(14,2);default:0"`
	FinalCost          float64 `gorm:"type:decimal(14,2);default:0"`

	Quote   Quote        `gorm:"foreignKey:QuoteID"`
	Service CloudService `gorm:"foreignKey:ServiceID"`
}
