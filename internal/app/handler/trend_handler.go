package handler

import (
	"errors"
	"net/http"
	"time"

	"cloudcost/internal/app/dto"
	"cloudcost/internal/app/trend"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ АСИНХРОННЫЕ ОТЧЕТЫ ПО ТРЕНДАМ ============

// StartTrendJob запускает асинхронный расчет тренда
// @Summary Запуск расчета тренда потребления
// @Description Запускает фоновую задачу построения помесячного тренда стоимости потребления
// @Tags Trends
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TrendStartRequest true "Период отчета"
// @Success 202 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trends [post]
func (h *APIHandler) StartTrendJob(c *gin.Context) {
	var req dto.TrendStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)
	if dateTo.Before(dateFrom) {
		h.errorResponse(c, http.StatusBadRequest, "date_to раньше date_from")
		return
	}

	jobID, err := h.Trends.Start(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		logrus.Error("Error starting trend job: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка запуска задачи")
		return
	}

	h.successResponse(c, http.StatusAccepted, "Задача запущена", gin.H{
		"job_id": jobID,
	})
}

// GetTrendJob получает состояние задачи расчета тренда
// @Summary Статус расчета тренда
// @Description Возвращает состояние задачи и результат, когда задача завершена
// @Tags Trends
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID задачи"
// @Success 200 {object} trend.Job
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/trends/{id} [get]
func (h *APIHandler) GetTrendJob(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.Trends.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, trend.ErrJobNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Задача не найдена")
			return
		}
		logrus.Error("Error getting trend job: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения задачи")
		return
	}

	c.JSON(http.StatusOK, job)
}
