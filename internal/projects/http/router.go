package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. The listing is
// public by design; mutations authorize inside the service so the forwarded
// token is checked before any validation or store access. Extra middleware
// (rate limiting) applies to mutation routes only.
func (h *Handler) Register(rg *gin.RouterGroup, mutation ...gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.POST("", append(append([]gin.HandlerFunc{}, mutation...), h.add)...)
	rg.PUT("/:id", append(append([]gin.HandlerFunc{}, mutation...), h.update)...)
	rg.DELETE("/:id", append(append([]gin.HandlerFunc{}, mutation...), h.delete)...)
}
