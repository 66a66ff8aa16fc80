package handler

import (
	"net/http"
	"strconv"
	"time"

	"cloudcost/internal/app/calc"
	"cloudcost/internal/app/ds"
	"cloudcost/internal/app/dto"
	"cloudcost/internal/app/repository"
	"cloudcost/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ЗАЯВКИ ============

// Преобразование модели заявки в DTO
func toQuoteResponse(quote *ds.Quote) dto.QuoteResponse {
	response := dto.QuoteResponse{
		ID:                quote.ID,
		Status:            quote.Status,
		CreatedAt:         quote.CreatedAt,
		FormattedAt:       quote.FormattedAt,
		CompletedAt:       quote.CompletedAt,
		Creator:           quote.Creator.Login,
		Name:              quote.Name,
		Duration:          quote.Duration,
		DurationUnit:      quote.DurationUnit,
		CommitmentPeriod:  calc.PeriodNone,
		GlobalDiscountPct: quote.GlobalDiscountPct,
	}

	if quote.CommitmentPeriod != nil {
		response.CommitmentPeriod = *quote.CommitmentPeriod
	}
	if quote.Moderator != nil {
		response.Moderator = quote.Moderator.Login
	}
	if quote.TotalCost != nil {
		response.TotalCost = *quote.TotalCost
	}

	return response
}

// Проверка доступа: создатель видит свои заявки, модератор - все
func canAccessQuote(quote *ds.Quote, userID uint, userRole role.Role) bool {
	if userRole == role.Admin {
		return true
	}
	return quote.CreatorID == userID
}

// GetCart получает корзину пользователя
// @Summary Получение корзины
// @Description Возвращает ID черновика заявки и количество услуг в нем
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/quotes/cart [get]
func (h *APIHandler) GetCart(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	response := dto.CartResponse{
		QuoteID:   h.Repository.GetDraftQuoteID(userID),
		ItemCount: h.Repository.GetCartCount(userID),
	}

	c.JSON(http.StatusOK, response)
}

// GetQuotes получает список заявок
// @Summary Получение списка заявок
// @Description Возвращает заявки с фильтрацией по статусу и датам формирования. Обычный пользователь видит только свои заявки
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param date_from query string false "Дата формирования от (YYYY-MM-DD)"
// @Param date_to query string false "Дата формирования до (YYYY-MM-DD)"
// @Success 200 {object} dto.QuoteListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quotes [get]
func (h *APIHandler) GetQuotes(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	status := c.Query("status")

	var dateFrom, dateTo *time.Time
	if dateStr := c.Query("date_from"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат date_from, ожидается YYYY-MM-DD")
			return
		}
		dateFrom = &parsed
	}
	if dateStr := c.Query("date_to"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат date_to, ожидается YYYY-MM-DD")
			return
		}
		dateTo = &parsed
	}

	// Обычный пользователь видит только свои заявки
	var creatorID *uint
	if userRole != role.Admin {
		creatorID = &userID
	}

	quotes, err := h.Repository.GetQuotes(status, dateFrom, dateTo, creatorID)
	if err != nil {
		logrus.Error("Error getting quotes: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	dtoQuotes := make([]dto.QuoteResponse, len(quotes))
	for i := range quotes {
		dtoQuotes[i] = toQuoteResponse(&quotes[i])
	}

	c.JSON(http.StatusOK, dto.QuoteListResponse{
		Quotes: dtoQuotes,
		Total:  len(dtoQuotes),
	})
}

// GetQuote получает одну заявку
// @Summary Получение заявки по ID
// @Description Возвращает заявку с позициями и актуальной раскладкой стоимости
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [get]
func (h *APIHandler) GetQuote(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	quote, items, err := h.Repository.GetQuoteWithItems(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	if !canAccessQuote(quote, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к этой заявке")
		return
	}

	response := toQuoteResponse(quote)

	// Рассчитываем актуальную стоимость по текущим параметрам
	calcItems, params := buildCalcInputs(quote, items)
	result, calcErr := calc.CalculateQuoteTotal(calcItems, params)
	if calcErr != nil {
		logrus.Warnf("Quote %d calculation failed: %v", quote.ID, calcErr)
	}

	response.Items = make([]dto.ItemInQuote, len(items))
	for i, item := range items {
		itemDTO := dto.ItemInQuote{
			ServiceID:     item.ServiceID,
			Name:          item.Name,
			Description:   item.Description,
			Category:      item.Category,
			ImageURL:      item.ImageURL,
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			IOPSQuantity:  item.IOPSQuantity,
			IOPSUnitPrice: item.IOPSUnitPrice,
		}
		if calcErr == nil {
			itemDTO.Cost = result.Items[i]
		}
		response.Items[i] = itemDTO
	}
	if calcErr == nil {
		response.Calculation = &result
	}

	c.JSON(http.StatusOK, response)
}

// UpdateQuoteParams обновляет параметры биллинга заявки
// @Summary Обновление параметров заявки
// @Description Обновляет название, длительность, обязательство и глобальную скидку черновика
// @Tags Quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.UpdateQuoteParamsRequest true "Параметры для обновления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [put]
func (h *APIHandler) UpdateQuoteParams(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	var req dto.UpdateQuoteParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	quote, err := h.Repository.GetQuoteByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}
	if !canAccessQuote(quote, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к этой заявке")
		return
	}

	err = h.Repository.UpdateQuoteParams(uint(id), req.Name, req.Duration, req.DurationUnit, req.CommitmentPeriod, req.GlobalDiscountPct)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Параметры заявки обновлены", nil)
}

// FormQuote формирует заявку
// @Summary Формирование заявки
// @Description Переводит черновик в статус сформирован, рассчитывает и сохраняет стоимость
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quotes/{id}/form [put]
func (h *APIHandler) FormQuote(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	quote, items, err := h.Repository.GetQuoteWithItems(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}
	if !canAccessQuote(quote, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к этой заявке")
		return
	}

	// Сначала считаем стоимость - пустую или некорректную заявку не формируем
	calcItems, params := buildCalcInputs(quote, items)
	result, err := calc.CalculateQuoteTotal(calcItems, params)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Ошибка расчета стоимости: "+err.Error())
		return
	}

	err = h.Repository.FormQuote(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Фиксируем раскладку в БД
	err = h.Repository.SaveCalculation(uint(id), items, result)
	if err != nil {
		logrus.Error("Error saving calculation: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения расчета")
		return
	}

	h.successResponse(c, http.StatusOK, "Заявка успешно сформирована", gin.H{
		"total_cost": result.Total,
	})
}

// CompleteQuote завершает заявку
// @Summary Завершение заявки
// @Description Переводит сформированную заявку в статус завершён (только для модераторов)
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/quotes/{id}/complete [put]
func (h *APIHandler) CompleteQuote(c *gin.Context) {
	h.moderateQuote(c, h.Repository.CompleteQuote, "Заявка успешно завершена")
}

// RejectQuote отклоняет заявку
// @Summary Отклонение заявки
// @Description Переводит сформированную заявку в статус отклонён (только для модераторов)
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/quotes/{id}/reject [put]
func (h *APIHandler) RejectQuote(c *gin.Context) {
	h.moderateQuote(c, h.Repository.RejectQuote, "Заявка отклонена")
}

// Общий код завершения/отклонения заявки модератором
func (h *APIHandler) moderateQuote(c *gin.Context, action func(quoteID, moderatorID uint) error, successMessage string) {
	moderatorID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	err = action(uint(id), moderatorID)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, successMessage, nil)
}

// DeleteQuote удаляет заявку
// @Summary Удаление заявки
// @Description Логически удаляет черновик заявки
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/quotes/{id} [delete]
func (h *APIHandler) DeleteQuote(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	quote, err := h.Repository.GetQuoteByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}
	if !canAccessQuote(quote, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к этой заявке")
		return
	}

	err = h.Repository.DeleteQuote(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Заявка успешно удалена", nil)
}

// buildCalcInputs собирает вход расчетного ядра из заявки и ее позиций
func buildCalcInputs(quote *ds.Quote, items []repository.ItemInQuote) ([]calc.Item, calc.BillingParams) {
	params := calc.BillingParams{
		Duration:          quote.Duration,
		DurationUnit:      quote.DurationUnit,
		CommitmentPeriod:  calc.PeriodNone,
		GlobalDiscountPct: quote.GlobalDiscountPct,
	}
	if quote.CommitmentPeriod != nil {
		params.CommitmentPeriod = *quote.CommitmentPeriod
	}

	calcItems := make([]calc.Item, len(items))
	for i, item := range items {
		calcItems[i] = calc.Item{
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Category:      item.Category,
			Flags:         item.Flags,
			IOPSUnitPrice: item.IOPSUnitPrice,
			IOPSQuantity:  item.IOPSQuantity,
		}
	}

	return calcItems, params
}
