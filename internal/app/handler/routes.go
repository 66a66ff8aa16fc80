package handler

import (
	"cloudcost/internal/app/middleware"
	"cloudcost/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	// ============ Услуги (Services) - публичные и для модераторов ============
	services := api.Group("/services")
	{
		// Публичные эндпоинты (без авторизации)
		services.GET("", h.GetServices)    // GET список с фильтрацией
		services.GET("/:id", h.GetService) // GET одна запись

		// Для авторизованных пользователей (добавление в заявку)
		services.POST("/:id/add-to-quote", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.AddServiceToQuote)

		// Только для модераторов (управление каталогом)
		services.POST("", authMiddleware.WithAuthCheck(role.Admin), h.CreateService)                // POST создание
		services.PUT("/:id", authMiddleware.WithAuthCheck(role.Admin), h.UpdateService)             // PUT изменение
		services.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin), h.DeleteService)          // DELETE удаление
		services.POST("/:id/image", authMiddleware.WithAuthCheck(role.Admin), h.UploadServiceImage) // POST изображение
	}

	// ============ Заявки (Quotes) - для авторизованных пользователей ============
	quotes := api.Group("/quotes")
	{
		// Для всех авторизованных пользователей
		quotes.GET("/cart", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.GetCart)
		quotes.GET("", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.GetQuotes)
		quotes.GET("/:id", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.GetQuote)
		quotes.GET("/:id/calculation", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.GetQuoteCalculation)
		quotes.PUT("/:id", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.UpdateQuoteParams)
		quotes.PUT("/:id/form", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.FormQuote)
		quotes.DELETE("/:id", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.DeleteQuote)

		// Только для модераторов
		quotes.PUT("/:id/complete", authMiddleware.WithAuthCheck(role.Admin), h.CompleteQuote) // PUT завершить
		quotes.PUT("/:id/reject", authMiddleware.WithAuthCheck(role.Admin), h.RejectQuote)     // PUT отклонить
	}

	// М-М связь (Quote Items) - для авторизованных пользователей
	quoteItems := api.Group("/quote-items")
	quoteItems.Use(authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin))
	{
		quoteItems.DELETE("/:quote_id/:service_id", h.RemoveServiceFromQuote) // DELETE из заявки
		quoteItems.PUT("/:quote_id/:service_id", h.UpdateQuoteItem)           // PUT количество/IOPS
	}

	// ============ Данные провайдера (через шлюз) ============
	api.GET("/catalog", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.GetProviderCatalog)
	api.GET("/consumption", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.GetConsumption)

	// Асинхронные отчеты по трендам
	trends := api.Group("/trends")
	trends.Use(authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin))
	{
		trends.POST("", h.StartTrendJob)
		trends.GET("/:id", h.GetTrendJob)
	}

	// ============ Аутентификация (публичные эндпоинты) ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser)            // POST регистрация
		auth.POST("/login", h.AuthHandler.LoginUser)                  // POST аутентификация JWT
		auth.POST("/session-login", h.AuthHandler.SessionLoginUser)   // POST сессионная авторизация (через cookies)
		auth.POST("/session-logout", h.AuthHandler.SessionLogoutUser) // POST выход из сессии (cookies)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.UpdateProfile) // PUT обновление профиля
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin), h.AuthHandler.LogoutUser)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}
