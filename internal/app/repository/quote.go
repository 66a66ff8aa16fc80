package repository

import (
	"errors"
	"fmt"
	"time"

	"cloudcost/internal/app/calc"
	"cloudcost/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с заявками

// ItemInQuote - позиция заявки вместе с данными услуги из каталога
type ItemInQuote struct {
	QuoteItemID   uint // ID записи в quote_items
	ServiceID     uint
	Name          string
	Description   string
	Category      string
	Flags         string
	ImageURL      string
	UnitPrice     float64
	IOPSUnitPrice float64
	Quantity      float64
	IOPSQuantity  float64
	// Кэш последнего расчета из quote_items
	BaseCost           float64
	CommitmentDiscount float64
	FinalCost          float64
}

// Получить черновик заявки для пользователя (если есть)
func (r *Repository) GetDraftQuote(userID uint) (*ds.Quote, error) {
	var quote ds.Quote
	err := r.db.Where("creator_id = ? AND status = ?", userID, ds.QuoteStatusDraft).First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Создать новую заявку в статусе черновик
func (r *Repository) CreateDraftQuote(userID uint) (*ds.Quote, error) {
	quote := ds.Quote{
		Status:       ds.QuoteStatusDraft,
		CreatedAt:    time.Now(),
		CreatorID:    userID,
		Duration:     1,
		DurationUnit: "months",
	}

	err := r.db.Create(&quote).Error
	if err != nil {
		return nil, err
	}

	return &quote, nil
}

// Получить заявку по ID (только если она не удалена)
func (r *Repository) GetQuoteByID(quoteID uint) (*ds.Quote, error) {
	var quote ds.Quote
	err := r.db.Preload("Creator").Preload("Moderator").
		Where("id = ? AND status != ?", quoteID, ds.QuoteStatusDeleted).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Получить список заявок с фильтрами по статусу, датам и создателю
func (r *Repository) GetQuotes(status string, dateFrom, dateTo *time.Time, creatorID *uint) ([]ds.Quote, error) {
	query := r.db.Preload("Creator").Preload("Moderator").
		Where("status != ? AND status != ?", ds.QuoteStatusDeleted, ds.QuoteStatusDraft)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if dateFrom != nil {
		query = query.Where("formatted_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("formatted_at < ?", dateTo.AddDate(0, 0, 1))
	}
	if creatorID != nil {
		query = query.Where("creator_id = ?", *creatorID)
	}

	var quotes []ds.Quote
	err := query.Order("created_at DESC").Find(&quotes).Error
	return quotes, err
}

// SQL операция для логического удаления
func (r *Repository) DeleteQuote(quoteID uint) error {
	result := r.db.Exec("UPDATE quotes SET status = 'удалён' WHERE id = ? AND status = 'черновик'", quoteID)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("заявку нельзя удалить - неверный статус или ID")
	}

	return nil
}

// Обновить параметры биллинга заявки (только в черновике)
func (r *Repository) UpdateQuoteParams(quoteID uint, name *string, duration *float64, durationUnit *string, commitmentPeriod *string, globalDiscountPct *float64) error {
	updates := map[string]interface{}{}

	if name != nil {
		updates["name"] = *name
	}
	if duration != nil {
		updates["duration"] = *duration
	}
	if durationUnit != nil {
		updates["duration_unit"] = *durationUnit
	}
	if commitmentPeriod != nil {
		if *commitmentPeriod == calc.PeriodNone {
			updates["commitment_period"] = nil
		} else {
			updates["commitment_period"] = *commitmentPeriod
		}
	}
	if globalDiscountPct != nil {
		updates["global_discount_pct"] = *globalDiscountPct
	}

	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&ds.Quote{}).
		Where("id = ? AND status = ?", quoteID, ds.QuoteStatusDraft).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заявка не найдена или не в статусе черновик")
	}
	return nil
}

// FormQuote переводит заявку черновик → сформирован
func (r *Repository) FormQuote(quoteID uint) error {
	count := r.GetQuoteItemCount(quoteID)
	if count == 0 {
		return errors.New("нельзя сформировать пустую заявку")
	}

	now := time.Now()
	result := r.db.Model(&ds.Quote{}).
		Where("id = ? AND status = ?", quoteID, ds.QuoteStatusDraft).
		Updates(map[string]interface{}{
			"status":       ds.QuoteStatusFormed,
			"formatted_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заявка не найдена или не в статусе черновик")
	}
	return nil
}

// CompleteQuote завершает заявку модератором
func (r *Repository) CompleteQuote(quoteID, moderatorID uint) error {
	now := time.Now()
	result := r.db.Model(&ds.Quote{}).
		Where("id = ? AND status = ?", quoteID, ds.QuoteStatusFormed).
		Updates(map[string]interface{}{
			"status":       ds.QuoteStatusCompleted,
			"completed_at": now,
			"moderator_id": moderatorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заявка не найдена или не в статусе сформирован")
	}
	return nil
}

// RejectQuote отклоняет заявку модератором
func (r *Repository) RejectQuote(quoteID, moderatorID uint) error {
	now := time.Now()
	result := r.db.Model(&ds.Quote{}).
		Where("id = ? AND status = ?", quoteID, ds.QuoteStatusFormed).
		Updates(map[string]interface{}{
			"status":       ds.QuoteStatusRejected,
			"completed_at": now,
			"moderator_id": moderatorID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заявка не найдена или не в статусе сформирован")
	}
	return nil
}

// Получить позиции заявки вместе с данными услуг
func (r *Repository) GetItemsInQuote(quoteID uint) ([]ItemInQuote, error) {
	var quoteItems []ds.QuoteItem
	err := r.db.Where("quote_id = ?", quoteID).Order("id").Find(&quoteItems).Error
	if err != nil {
		return nil, err
	}

	if len(quoteItems) == 0 {
		return []ItemInQuote{}, nil
	}

	var serviceIDs []uint
	for _, qi := range quoteItems {
		serviceIDs = append(serviceIDs, qi.ServiceID)
	}

	var dbServices []ds.CloudService
	err = r.db.Where("id IN ? AND is_deleted = ?", serviceIDs, false).Find(&dbServices).Error
	if err != nil {
		return nil, err
	}

	// Создаем map для быстрого доступа к данным услуг
	serviceMap := make(map[uint]ds.CloudService)
	for _, s := range dbServices {
		serviceMap[s.ID] = s
	}

	items := make([]ItemInQuote, 0, len(quoteItems))
	for _, qi := range quoteItems {
		s, exists := serviceMap[qi.ServiceID]
		if !exists {
			continue // Услуга удалена
		}

		view := toCatalogService(s)
		items = append(items, ItemInQuote{
			QuoteItemID:        qi.ID,
			ServiceID:          s.ID,
			Name:               view.Name,
			Description:        view.Description,
			Category:           view.Category,
			Flags:              view.Flags,
			ImageURL:           view.ImageURL,
			UnitPrice:          view.UnitPrice,
			IOPSUnitPrice:      view.IOPSUnitPrice,
			Quantity:           qi.Quantity,
			IOPSQuantity:       qi.IOPSQuantity,
			BaseCost:           qi.BaseCost,
			CommitmentDiscount: qi.CommitmentDiscount,
			FinalCost:          qi.FinalCost,
		})
	}
	return items, nil
}

// Получить заявку вместе с позициями
func (r *Repository) GetQuoteWithItems(quoteID uint) (*ds.Quote, []ItemInQuote, error) {
	quote, err := r.GetQuoteByID(quoteID)
	if err != nil {
		return nil, nil, err
	}

	items, err := r.GetItemsInQuote(quote.ID)
	if err != nil {
		return nil, nil, err
	}

	return quote, items, nil
}

// SaveCalculation сохраняет результат расчета: раскладку по позициям и
// итог заявки одной транзакцией. Порядок result.Items совпадает с items.
func (r *Repository) SaveCalculation(quoteID uint, items []ItemInQuote, result calc.QuoteTotal) error {
	if len(items) != len(result.Items) {
		return fmt.Errorf("несовпадение позиций расчета: %d != %d", len(items), len(result.Items))
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, item := range items {
			cost := result.Items[i]
			err := tx.Model(&ds.QuoteItem{}).
				Where("id = ?", item.QuoteItemID).
				Updates(map[string]interface{}{
					"base_cost":           cost.BaseCost,
					"commitment_discount": cost.CommitmentDiscount,
					"final_cost":          cost.FinalCost,
				}).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&ds.Quote{}).
			Where("id = ?", quoteID).
			Update("total_cost", result.Total).Error
	})
}

// Получить количество услуг в заявке (количество записей, не сумму)
func (r *Repository) GetQuoteItemCount(quoteID uint) int {
	var count int64
	err := r.db.Model(&ds.QuoteItem{}).Where("quote_id = ?", quoteID).Count(&count).Error
	if err != nil {
		return 0
	}

	return int(count)
}

// Получить количество в корзине (черновик для пользователя)
func (r *Repository) GetCartCount(userID uint) int {
	quote, err := r.GetDraftQuote(userID)
	if err != nil {
		return 0 // Нет черновика - корзина пуста
	}

	return r.GetQuoteItemCount(quote.ID)
}

// Получить ID черновика заявки (или 0 если нет)
func (r *Repository) GetDraftQuoteID(userID uint) uint {
	quote, err := r.GetDraftQuote(userID)
	if err != nil {
		return 0
	}
	return quote.ID
}
