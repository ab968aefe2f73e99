package public

import (
	"context"
	"time"

	"github.com/vitrine-next/internal/cache"
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/models"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Healthz 健康检查：数据库与 Redis 可用性
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := gin.H{"database": "ok", "redis": "disabled", "cart_store": ""}
	if h.Container != nil {
		status["cart_store"] = h.CartBackend
	}
	healthy := true
	if models.DB != nil {
		if sqlDB, err := models.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "down"
			healthy = false
		}
	} else {
		status["database"] = "uninitialized"
	}
	if cache.Enabled() {
		status["redis"] = "ok"
		if err := cache.Ping(ctx); err != nil {
			status["redis"] = "down"
			healthy = false
		}
	}
	if !healthy {
		response.ErrorWithDetail(c, response.CodeInternal, response.Message("error.service_unavailable"), status)
		return
	}
	response.Success(c, status)
}
