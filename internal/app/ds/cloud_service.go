package ds

// 1. Таблица услуг (ресурсы облачного каталога) - справочная информация о ценах
type CloudService struct {
	ID            uint     `gorm:"primaryKey"`
	Name          string   `gorm:"type:varchar(100);not null"`
	Description   string   `gorm:"type:text"`
	Category      string   `gorm:"type:varchar(20);not null"`   // compute, storage, network, licence
	Flags         string   `gorm:"type:varchar(100)"`           // маркеры тарификации, например PER_MONTH
	UnitPrice     float64  `gorm:"type:decimal(12,4);not null"` // цена за расчетную единицу (час или месяц)
	IOPSUnitPrice *float64 `gorm:"type:decimal(12,6)"`          // цена за IOPS, NULL если не тарифицируется
	IsDeleted     bool     `gorm:"type:boolean;default:false;not null"`
	ImageURL      *string  `gorm:"type:varchar(255)"` // Nullable
}
