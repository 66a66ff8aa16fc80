package repository

import (
	"database/sql"
	"errors"

	"cloudcost/internal/app/ds"
)

// Заглушка, если у услуги нет изображения
const defaultServiceImage = "service-default.png"

// Простая структура услуги для выдачи (NULL поля уже развернуты)
type CatalogService struct {
	ID            uint
	Name          string
	Description   string
	Category      string // compute, storage, network, licence
	Flags         string
	UnitPrice     float64
	IOPSUnitPrice float64 // 0 если IOPS не тарифицируется
	ImageURL      string
}

func toCatalogService(s ds.CloudService) CatalogService {
	imageURL := defaultServiceImage
	if s.ImageURL != nil && *s.ImageURL != "" {
		imageURL = *s.ImageURL
	}

	var iopsPrice float64
	if s.IOPSUnitPrice != nil {
		iopsPrice = *s.IOPSUnitPrice
	}

	return CatalogService{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		Flags:         s.Flags,
		UnitPrice:     s.UnitPrice,
		IOPSUnitPrice: iopsPrice,
		ImageURL:      imageURL,
	}
}

// Методы для работы с услугами каталога

// Получить все услуги из БД
func (r *Repository) GetAllServices() ([]CatalogService, error) {
	var dbServices []ds.CloudService
	err := r.db.Where("is_deleted = ?", false).Find(&dbServices).Error
	if err != nil {
		return nil, err
	}

	services := make([]CatalogService, len(dbServices))
	for i, s := range dbServices {
		services[i] = toCatalogService(s)
	}
	return services, nil
}

// Поиск услуг по имени
func (r *Repository) SearchServicesByName(name string) ([]CatalogService, error) {
	var dbServices []ds.CloudService
	err := r.db.Where("name ILIKE ? AND is_deleted = ?", "%"+name+"%", false).Find(&dbServices).Error
	if err != nil {
		return nil, err
	}

	services := make([]CatalogService, len(dbServices))
	for i, s := range dbServices {
		services[i] = toCatalogService(s)
	}
	return services, nil
}

// Получить услугу по ID
func (r *Repository) GetServiceByID(id uint) (*CatalogService, error) {
	// Используем курсор
	query := `SELECT id, name, description, category, flags, unit_price, iops_unit_price, image_url
	          FROM cloud_services
	          WHERE id = $1 AND is_deleted = false`

	row := r.db.Raw(query, id).Row()

	var dbID uint
	var name, description, category, flags string
	var unitPrice float64
	var iopsPricePtr *float64
	var imageURLPtr *string

	err := row.Scan(&dbID, &name, &description, &category, &flags, &unitPrice, &iopsPricePtr, &imageURLPtr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Возвращаем nil, если записи нет
		}
		return nil, err
	}

	imageURL := defaultServiceImage
	if imageURLPtr != nil && *imageURLPtr != "" {
		imageURL = *imageURLPtr
	}

	var iopsPrice float64
	if iopsPricePtr != nil {
		iopsPrice = *iopsPricePtr
	}

	service := &CatalogService{
		ID:            dbID,
		Name:          name,
		Description:   description,
		Category:      category,
		Flags:         flags,
		UnitPrice:     unitPrice,
		IOPSUnitPrice: iopsPrice,
		ImageURL:      imageURL,
	}
	return service, nil
}

// ServiceExists проверяет, что услуга существует и не удалена
func (r *Repository) ServiceExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.CloudService{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	return count > 0, err
}

// Создать услугу каталога
func (r *Repository) CreateService(name, description, category, flags string, unitPrice float64, iopsUnitPrice *float64) (*CatalogService, error) {
	service := ds.CloudService{
		Name:          name,
		Description:   description,
		Category:      category,
		Flags:         flags,
		UnitPrice:     unitPrice,
		IOPSUnitPrice: iopsUnitPrice,
	}

	err := r.db.Create(&service).Error
	if err != nil {
		return nil, err
	}

	result := toCatalogService(service)
	return &result, nil
}

// Обновить услугу (только переданные поля)
func (r *Repository) UpdateService(id uint, name, description, category, flags *string, unitPrice, iopsUnitPrice *float64) error {
	updates := map[string]interface{}{}

	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if category != nil {
		updates["category"] = *category
	}
	if flags != nil {
		updates["flags"] = *flags
	}
	if unitPrice != nil {
		updates["unit_price"] = *unitPrice
	}
	if iopsUnitPrice != nil {
		updates["iops_unit_price"] = *iopsUnitPrice
	}

	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&ds.CloudService{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates).Error
}

// Логическое удаление услуги
func (r *Repository) DeleteService(id uint) error {
	result := r.db.Model(&ds.CloudService{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не найдена")
	}
	return nil
}

// Обновить изображение услуги
func (r *Repository) UpdateServiceImage(id uint, imageURL string) error {
	return r.db.Model(&ds.CloudService{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

// Сбросить изображение услуги
func (r *Repository) DeleteServiceImage(id uint) error {
	return r.db.Model(&ds.CloudService{}).
		Where("id = ?", id).
		Update("image_url", nil).Error
}
