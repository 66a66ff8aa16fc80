package handler

import (
	"fmt"
	"net/http"

	"cloudcost/internal/app/config"
	"cloudcost/internal/app/dto"
	"cloudcost/internal/app/gateway"
	"cloudcost/internal/app/redis"
	"cloudcost/internal/app/repository"
	"cloudcost/internal/app/role"
	"cloudcost/internal/app/storage"
	"cloudcost/internal/app/trend"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	RedisClient *redis.Client
	Gateway     *gateway.Client
	Trends      *trend.Runner
	AuthHandler *AuthHandler
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, redisClient *redis.Client, gw *gateway.Client, trends *trend.Runner, authHandler *AuthHandler, cfg *config.Config) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		RedisClient: redisClient,
		Gateway:     gw,
		Trends:      trends,
		AuthHandler: authHandler,
		Config:      cfg,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Buyer, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
