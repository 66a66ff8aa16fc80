package dto

import (
	"time"

	"cloudcost/internal/app/calc"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Услуги (Cloud Services) ============

type ServiceResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"` // compute, storage, network, licence
	Flags         string  `json:"flags"`
	UnitPrice     float64 `json:"unit_price"`
	IOPSUnitPrice float64 `json:"iops_unit_price,omitempty"`
	ImageURL      string  `json:"image_url"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

type CreateServiceRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category" binding:"required,oneof=compute storage network licence"`
	Flags         string  `json:"flags"`
	UnitPrice     float64 `json:"unit_price" binding:"required,gt=0"`
	IOPSUnitPrice float64 `json:"iops_unit_price" binding:"omitempty,gte=0"`
}

type UpdateServiceRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"omitempty,oneof=compute storage network licence"`
	Flags         *string  `json:"flags"`
	UnitPrice     float64  `json:"unit_price" binding:"omitempty,gt=0"`
	IOPSUnitPrice *float64 `json:"iops_unit_price" binding:"omitempty,gte=0"`
}

// ============ Заявки (Quotes) ============

type QuoteResponse struct {
	ID                uint             `json:"id"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	FormattedAt       *time.Time       `json:"formatted_at,omitempty"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	Creator           string           `json:"creator"`   // Логин создателя
	Moderator         string           `json:"moderator"` // Логин модератора (если есть)
	Name              string           `json:"name"`
	Duration          float64          `json:"duration"`
	DurationUnit      string           `json:"duration_unit"`
	CommitmentPeriod  string           `json:"commitment_period"` // none если не задан
	GlobalDiscountPct float64          `json:"global_discount_percent"`
	TotalCost         float64          `json:"total_cost,omitempty"`
	Items             []ItemInQuote    `json:"items,omitempty"` // Только для GET одной заявки
	Calculation       *calc.QuoteTotal `json:"calculation,omitempty"`
}

// ItemInQuote - позиция заявки вместе с раскладкой стоимости
type ItemInQuote struct {
	ServiceID     uint    `json:"service_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"image_url"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      float64 `json:"quantity"`
	IOPSQuantity  float64 `json:"iops_quantity,omitempty"`
	IOPSUnitPrice float64 `json:"iops_unit_price,omitempty"`

	Cost calc.ItemCost `json:"cost"`
}

type QuoteListResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Total  int             `json:"total"`
}

type CartResponse struct {
	QuoteID   uint `json:"quote_id"`   // ID черновика заявки
	ItemCount int  `json:"item_count"` // Количество услуг в корзине
}

type UpdateQuoteParamsRequest struct {
	Name              *string  `json:"name"`
	Duration          *float64 `json:"duration" binding:"omitempty,gte=0"`
	DurationUnit      *string  `json:"duration_unit"` // нераспознанная единица не ошибка - ядро вернет значение как есть
	CommitmentPeriod  *string  `json:"commitment_period" binding:"omitempty,oneof=none 1-month 1-year 3-years"`
	GlobalDiscountPct *float64 `json:"global_discount_percent" binding:"omitempty,gte=0,lte=100"`
}

// ============ М-М связь (Quote Items) ============

type UpdateQuoteItemRequest struct {
	Quantity     *float64 `json:"quantity" binding:"omitempty,gte=0"`
	IOPSQuantity *float64 `json:"iops_quantity" binding:"omitempty,gte=0"`
}

// ============ Потребление и тренды ============

type ConsumptionRecordResponse struct {
	Date        string  `json:"date"`
	ServiceName string  `json:"service_name"`
	Category    string  `json:"category"`
	Quantity    float64 `json:"quantity"`
	Cost        float64 `json:"cost"`
}

type ConsumptionResponse struct {
	Records   []ConsumptionRecordResponse `json:"records"`
	Total     int                         `json:"total"`
	TotalCost float64                     `json:"total_cost"`
}

type TrendStartRequest struct {
	DateFrom string `json:"date_from" binding:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" binding:"required,datetime=2006-01-02"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID          uint   `json:"id"`
	Login       string `json:"login"`
	FullName    string `json:"full_name"`
	IsModerator bool   `json:"is_moderator"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     int    `json:"role" binding:"omitempty,gte=0,lte=2"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
