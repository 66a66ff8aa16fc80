package repository

import (
	"errors"

	"cloudcost/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для М-М связи заявка-услуга

// AddServiceToQuote добавляет услугу в заявку. Если услуга уже есть,
// увеличивается количество.
func (r *Repository) AddServiceToQuote(quoteID, serviceID uint) error {
	var existing ds.QuoteItem
	err := r.db.Where("quote_id = ? AND service_id = ?", quoteID, serviceID).First(&existing).Error
	if err == nil {
		return r.db.Model(&existing).Update("quantity", existing.Quantity+1).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := ds.QuoteItem{
		QuoteID:   quoteID,
		ServiceID: serviceID,
		Quantity:  1,
	}
	return r.db.Create(&item).Error
}

// RemoveServiceFromQuote удаляет услугу из заявки
func (r *Repository) RemoveServiceFromQuote(quoteID, serviceID uint) error {
	result := r.db.Where("quote_id = ? AND service_id = ?", quoteID, serviceID).
		Delete(&ds.QuoteItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не найдена в заявке")
	}
	return nil
}

// UpdateQuoteItem обновляет количество и IOPS позиции (только переданные поля)
func (r *Repository) UpdateQuoteItem(quoteID, serviceID uint, quantity, iopsQuantity *float64) error {
	updates := map[string]interface{}{}

	if quantity != nil {
		updates["quantity"] = *quantity
	}
	if iopsQuantity != nil {
		updates["iops_quantity"] = *iopsQuantity
	}

	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&ds.QuoteItem{}).
		Where("quote_id = ? AND service_id = ?", quoteID, serviceID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не найдена в заявке")
	}
	return nil
}
