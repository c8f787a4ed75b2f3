package api

import (
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", handler.Health)

	v1 := router.Group("/v1")
	v1.GET("/rates", handler.GetRates)
	v1.POST("/quote", handler.PostQuote)

	// receipt reads are reachable anonymously with a share token
	v1.GET("/receipts/:id", OptionalAuth(), handler.GetReceipt)

	authed := v1.Group("")
	authed.Use(RequireAuth())
	authed.POST("/intents", handler.PostIntent)
	authed.POST("/confirm", handler.PostConfirm)
	authed.GET("/receipts", handler.ListReceipts)

	// operator role is enforced below the handler
	authed.PUT("/admin/config", handler.PutAdminConfig)

	return router
}
