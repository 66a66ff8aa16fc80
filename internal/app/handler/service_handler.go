package handler

import (
	"io"
	"net/http"
	"strconv"

	"cloudcost/internal/app/dto"
	"cloudcost/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН УСЛУГИ ============

func toServiceResponse(s repository.CatalogService) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		Description:   s.Description,
		Category:      s.Category,
		Flags:         s.Flags,
		UnitPrice:     s.UnitPrice,
		IOPSUnitPrice: s.IOPSUnitPrice,
		ImageURL:      s.ImageURL,
	}
}

// GetServices получает список услуг
// @Summary Получение списка услуг
// @Description Возвращает список всех услуг каталога с возможностью поиска по названию
// @Tags Services
// @Produce json
// @Param query query string false "Поиск по названию услуги"
// @Success 200 {object} dto.ServiceListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services [get]
func (h *APIHandler) GetServices(c *gin.Context) {
	searchQuery := c.Query("query")

	var services []repository.CatalogService
	var err error

	if searchQuery == "" {
		services, err = h.Repository.GetAllServices()
	} else {
		services, err = h.Repository.SearchServicesByName(searchQuery)
	}

	if err != nil {
		logrus.Error("Error getting services: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения услуг")
		return
	}

	// Преобразуем в DTO
	dtoServices := make([]dto.ServiceResponse, len(services))
	for i, s := range services {
		dtoServices[i] = toServiceResponse(s)
	}

	response := dto.ServiceListResponse{
		Services: dtoServices,
		Total:    len(dtoServices),
	}

	c.JSON(http.StatusOK, response)
}

// GetService получает одну услугу
// @Summary Получение услуги по ID
// @Description Возвращает детальную информацию об услуге каталога
// @Tags Services
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/services/{id} [get]
func (h *APIHandler) GetService(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID услуги")
		return
	}

	service, err := h.Repository.GetServiceByID(uint(id))
	if err != nil || service == nil {
		h.errorResponse(c, http.StatusNotFound, "Услуга не найдена")
		return
	}

	c.JSON(http.StatusOK, toServiceResponse(*service))
}

// CreateService создает новую услугу
// @Summary Создание услуги
// @Description Создает новую услугу каталога (только для модераторов)
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateServiceRequest true "Данные услуги"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services [post]
func (h *APIHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	var iopsPrice *float64
	if req.IOPSUnitPrice > 0 {
		iopsPrice = &req.IOPSUnitPrice
	}

	service, err := h.Repository.CreateService(req.Name, req.Description, req.Category, req.Flags, req.UnitPrice, iopsPrice)
	if err != nil {
		logrus.Error("Error creating service: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания услуги")
		return
	}

	c.JSON(http.StatusCreated, toServiceResponse(*service))
}

// UpdateService обновляет услугу
// @Summary Обновление услуги
// @Description Обновляет данные услуги каталога (только для модераторов)
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID услуги"
// @Param request body dto.UpdateServiceRequest true "Данные для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services/{id} [put]
func (h *APIHandler) UpdateService(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID услуги")
		return
	}

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// Проверяем существование услуги
	exists, err := h.Repository.ServiceExists(uint(id))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Услуга не найдена")
		return
	}

	// Подготавливаем указатели на поля
	var name, description, category *string
	var unitPrice *float64

	if req.Name != "" {
		name = &req.Name
	}
	if req.Description != "" {
		description = &req.Description
	}
	if req.Category != "" {
		category = &req.Category
	}
	if req.UnitPrice > 0 {
		unitPrice = &req.UnitPrice
	}

	err = h.Repository.UpdateService(uint(id), name, description, category, req.Flags, unitPrice, req.IOPSUnitPrice)
	if err != nil {
		logrus.Error("Error updating service: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления услуги")
		return
	}

	h.successResponse(c, http.StatusOK, "Услуга успешно обновлена", nil)
}

// DeleteService удаляет услугу
// @Summary Удаление услуги
// @Description Удаляет услугу каталога (только для модераторов)
// @Tags Services
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services/{id} [delete]
func (h *APIHandler) DeleteService(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID услуги")
		return
	}

	// Сначала получаем услугу чтобы удалить изображение
	service, _ := h.Repository.GetServiceByID(uint(id))
	if service != nil && service.ImageURL != "" && service.ImageURL != "service-default.png" {
		// Удаляем изображение из MinIO
		if h.MinIOClient != nil {
			err := h.MinIOClient.DeleteFile(service.ImageURL)
			if err != nil {
				logrus.Warnf("Failed to delete image from MinIO: %v", err)
			}
		}
		h.Repository.DeleteServiceImage(uint(id))
	}

	// Логическое удаление услуги
	err = h.Repository.DeleteService(uint(id))
	if err != nil {
		logrus.Error("Error deleting service: ", err)
		h.errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Услуга успешно удалена", nil)
}

// AddServiceToQuote добавляет услугу в заявку
// @Summary Добавление услуги в заявку
// @Description Добавляет услугу в черновик заявки текущего пользователя
// @Tags Services
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services/{id}/add-to-quote [post]
func (h *APIHandler) AddServiceToQuote(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil || userID == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	serviceID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || serviceID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID услуги")
		return
	}

	// Проверяем существование услуги
	exists, err := h.Repository.ServiceExists(uint(serviceID))
	if err != nil || !exists {
		h.errorResponse(c, http.StatusNotFound, "Услуга не найдена")
		return
	}

	// Получаем или создаем черновик заявки
	quote, err := h.Repository.GetDraftQuote(userID)
	if err != nil {
		// Черновика нет - создаем
		quote, err = h.Repository.CreateDraftQuote(userID)
		if err != nil {
			logrus.Error("Error creating draft quote: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания заявки")
			return
		}
	}

	// Добавляем услугу в заявку
	err = h.Repository.AddServiceToQuote(quote.ID, uint(serviceID))
	if err != nil {
		logrus.Error("Error adding service to quote: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка добавления услуги в заявку")
		return
	}

	h.successResponse(c, http.StatusOK, "Услуга добавлена в заявку", gin.H{
		"quote_id": quote.ID,
	})
}

// UploadServiceImage загружает изображение для услуги
// @Summary Загрузка изображения услуги
// @Description Загружает изображение для услуги в MinIO (только для модераторов)
// @Tags Services
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID услуги"
// @Param image formData file true "Файл изображения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/services/{id}/image [post]
func (h *APIHandler) UploadServiceImage(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID услуги")
		return
	}

	// Проверяем существование услуги
	service, err := h.Repository.GetServiceByID(uint(id))
	if err != nil || service == nil {
		h.errorResponse(c, http.StatusNotFound, "Услуга не найдена")
		return
	}

	// Получаем файл из запроса
	file, err := c.FormFile("image")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не найден в запросе")
		return
	}

	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	// Удаляем старое изображение из MinIO (если есть)
	if service.ImageURL != "" && service.ImageURL != "service-default.png" {
		if h.MinIOClient != nil {
			err := h.MinIOClient.DeleteFile(service.ImageURL)
			if err != nil {
				logrus.Warnf("Failed to delete old image %s: %v", service.ImageURL, err)
			}
		}
	}

	// Загружаем новое изображение в MinIO
	var imageURL string
	if h.MinIOClient != nil {
		imageURL, err = h.MinIOClient.UploadFile(fileData, file.Filename)
		if err != nil {
			logrus.Error("Error uploading to MinIO: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки изображения")
			return
		}
	} else {
		// Fallback если MinIO не настроен
		imageURL = "uploaded_" + file.Filename
	}

	// Обновляем URL изображения в БД
	err = h.Repository.UpdateServiceImage(uint(id), imageURL)
	if err != nil {
		logrus.Error("Error updating service image: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления изображения")
		return
	}

	h.successResponse(c, http.StatusOK, "Изображение успешно загружено", gin.H{
		"image_url": imageURL,
	})
}
