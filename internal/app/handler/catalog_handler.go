package handler

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cloudcost/internal/app/dto"
	"cloudcost/internal/app/gateway"
	"cloudcost/internal/app/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДАННЫЕ ПРОВАЙДЕРА (ЧЕРЕЗ ШЛЮЗ) ============

// Прайс-лист провайдера меняется редко, кэшируем в Redis
const catalogCacheTTL = 5 * time.Minute

// GetProviderCatalog получает прайс-лист провайдера
// @Summary Прайс-лист провайдера
// @Description Возвращает актуальный прайс-лист облачного провайдера через шлюз (с кэшированием)
// @Tags Provider
// @Produce json
// @Security BearerAuth
// @Success 200 {array} gateway.CatalogEntry
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/catalog [get]
func (h *APIHandler) GetProviderCatalog(c *gin.Context) {
	// Сначала проверяем кэш
	if h.RedisClient != nil {
		cached, err := h.RedisClient.GetCatalogCache(c.Request.Context())
		if err == nil {
			var entries []gateway.CatalogEntry
			if json.Unmarshal(cached, &entries) == nil {
				c.JSON(http.StatusOK, entries)
				return
			}
		} else if !redis.IsNotFound(err) {
			logrus.Warn("Redis catalog cache read failed: ", err)
		}
	}

	entries, err := h.Gateway.FetchCatalog(c.Request.Context())
	if err != nil {
		logrus.Error("Error fetching provider catalog: ", err)
		h.errorResponse(c, http.StatusBadGateway, "Шлюз провайдера недоступен")
		return
	}

	if h.RedisClient != nil {
		payload, err := json.Marshal(entries)
		if err == nil {
			if err := h.RedisClient.SetCatalogCache(c.Request.Context(), payload, catalogCacheTTL); err != nil {
				logrus.Warn("Redis catalog cache write failed: ", err)
			}
		}
	}

	c.JSON(http.StatusOK, entries)
}

// Разбор обязательных параметров date_from/date_to из query
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	fromStr := c.Query("date_from")
	toStr := c.Query("date_to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}

	dateFrom, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	dateTo, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if dateTo.Before(dateFrom) {
		return time.Time{}, time.Time{}, false
	}

	return dateFrom, dateTo, true
}

// GetConsumption получает историю потребления
// @Summary История потребления
// @Description Возвращает историю потребления за период через шлюз провайдера. Поддерживает выгрузку в CSV (?format=csv)
// @Tags Provider
// @Produce json
// @Security BearerAuth
// @Param date_from query string true "Начало периода (YYYY-MM-DD)"
// @Param date_to query string true "Конец периода (YYYY-MM-DD)"
// @Param format query string false "Формат ответа: json или csv"
// @Success 200 {object} dto.ConsumptionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/consumption [get]
func (h *APIHandler) GetConsumption(c *gin.Context) {
	dateFrom, dateTo, ok := parseDateRange(c)
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Нужны корректные date_from и date_to в формате YYYY-MM-DD")
		return
	}

	records, err := h.Gateway.FetchConsumption(c.Request.Context(), dateFrom, dateTo)
	if err != nil {
		logrus.Error("Error fetching consumption: ", err)
		h.errorResponse(c, http.StatusBadGateway, "Шлюз провайдера недоступен")
		return
	}

	if c.Query("format") == "csv" {
		h.writeConsumptionCSV(c, records)
		return
	}

	dtoRecords := make([]dto.ConsumptionRecordResponse, len(records))
	var totalCost float64
	for i, rec := range records {
		dtoRecords[i] = dto.ConsumptionRecordResponse{
			Date:        rec.Date,
			ServiceName: rec.ServiceName,
			Category:    rec.Category,
			Quantity:    rec.Quantity,
			Cost:        rec.Cost,
		}
		totalCost += rec.Cost
	}

	c.JSON(http.StatusOK, dto.ConsumptionResponse{
		Records:   dtoRecords,
		Total:     len(dtoRecords),
		TotalCost: totalCost,
	})
}

// Выгрузка истории потребления в CSV
func (h *APIHandler) writeConsumptionCSV(c *gin.Context, records []gateway.ConsumptionRecord) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="consumption.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	if err := w.Write([]string{"date", "service_name", "category", "quantity", "unit_price", "cost"}); err != nil {
		logrus.Error("CSV write failed: ", err)
		return
	}

	for _, rec := range records {
		row := []string{
			rec.Date,
			rec.ServiceName,
			rec.Category,
			strconv.FormatFloat(rec.Quantity, 'f', -1, 64),
			strconv.FormatFloat(rec.UnitPrice, 'f', -1, 64),
			strconv.FormatFloat(rec.Cost, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			logrus.Error("CSV write failed: ", err)
			return
		}
	}
}
