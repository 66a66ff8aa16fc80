package handler

import (
	"net/http"
	"strconv"

	"cloudcost/internal/app/calc"

	"github.com/gin-gonic/gin"
)

// GetQuoteCalculation получает раскладку стоимости заявки
// @Summary Расчет стоимости заявки
// @Description Возвращает актуальную раскладку стоимости по текущим параметрам заявки, без сохранения в БД
// @Tags Quotes
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Success 200 {object} calc.QuoteTotal
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quotes/{id}/calculation [get]
func (h *APIHandler) GetQuoteCalculation(c *gin.Context) {
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

	calcItems, params := buildCalcInputs(quote, items)
	result, err := calc.CalculateQuoteTotal(calcItems, params)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Ошибка расчета стоимости: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
