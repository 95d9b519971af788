package handlers

import (
	"pc_restarter/internal/logger"
	"pc_restarter/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Browser status stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerDeviceRoutes(api)
		h.registerOtaRoutes(api)
		h.registerSetupRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	device := api.Group("/device")
	{
		device.GET("/status", h.getState)
		device.POST("/power", h.power)
		device.POST("/reset", h.reset)

		// action is "power" or "reset"
		device.POST("/hold/:action/press", h.holdPress)
		device.POST("/hold/:action/release", h.holdRelease)
		device.POST("/hold/:action/cancel", h.holdCancel)
	}
}

func (h *Handler) registerOtaRoutes(api *gin.RouterGroup) {
	ota := api.Group("/ota")
	{
		ota.GET("/status", h.otaStatus)
		ota.POST("/check", h.otaCheck)
		ota.POST("/update", h.otaUpdate)
	}
}

func (h *Handler) registerSetupRoutes(api *gin.RouterGroup) {
	setup := api.Group("/setup")
	{
		setup.GET("/config", h.getConfig)
		setup.POST("/config", h.saveConfig)
		setup.GET("/wifi/scan", h.scanWifi)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
