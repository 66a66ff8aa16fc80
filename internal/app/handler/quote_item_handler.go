package handler

import (
	"net/http"
	"strconv"

	"cloudcost/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// ============ М-М СВЯЗЬ (ПОЗИЦИИ ЗАЯВКИ) ============

// Разбор пары quote_id/service_id из пути с проверкой доступа к заявке
func (h *APIHandler) parseQuoteItemPath(c *gin.Context) (quoteID, serviceID uint, ok bool) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return 0, 0, false
	}

	qID, err := strconv.ParseUint(c.Param("quote_id"), 10, 32)
	if err != nil || qID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return 0, 0, false
	}

	sID, err := strconv.ParseUint(c.Param("service_id"), 10, 32)
	if err != nil || sID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID услуги")
		return 0, 0, false
	}

	quote, err := h.Repository.GetQuoteByID(uint(qID))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return 0, 0, false
	}
	if !canAccessQuote(quote, userID, userRole) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к этой заявке")
		return 0, 0, false
	}

	return uint(qID), uint(sID), true
}

// RemoveServiceFromQuote удаляет услугу из заявки
// @Summary Удаление услуги из заявки
// @Description Удаляет позицию из заявки по паре ID заявки и ID услуги
// @Tags QuoteItems
// @Produce json
// @Security BearerAuth
// @Param quote_id path int true "ID заявки"
// @Param service_id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quote-items/{quote_id}/{service_id} [delete]
func (h *APIHandler) RemoveServiceFromQuote(c *gin.Context) {
	quoteID, serviceID, ok := h.parseQuoteItemPath(c)
	if !ok {
		return
	}

	err := h.Repository.RemoveServiceFromQuote(quoteID, serviceID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Услуга удалена из заявки", nil)
}

// UpdateQuoteItem обновляет позицию заявки
// @Summary Обновление позиции заявки
// @Description Обновляет количество и/или IOPS позиции заявки
// @Tags QuoteItems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quote_id path int true "ID заявки"
// @Param service_id path int true "ID услуги"
// @Param request body dto.UpdateQuoteItemRequest true "Количество и IOPS"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quote-items/{quote_id}/{service_id} [put]
func (h *APIHandler) UpdateQuoteItem(c *gin.Context) {
	quoteID, serviceID, ok := h.parseQuoteItemPath(c)
	if !ok {
		return
	}

	var req dto.UpdateQuoteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	err := h.Repository.UpdateQuoteItem(quoteID, serviceID, req.Quantity, req.IOPSQuantity)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "Позиция заявки обновлена", nil)
}
