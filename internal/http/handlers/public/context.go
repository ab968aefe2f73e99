package public

import (
	"strconv"

	"github.com/vitrine-next/internal/constants"
	handlershared "github.com/vitrine-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// getOwner 读取会话中间件写入的购物车持有者
func getOwner(c *gin.Context) (string, bool) {
	return handlershared.GetContextString(c, constants.ContextKeyOwner)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}
