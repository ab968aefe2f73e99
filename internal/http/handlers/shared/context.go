package shared

import (
	"strings"

	"github.com/vitrine-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextString 从上下文读取非空字符串并统一处理错误响应。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	str, ok := value.(string)
	if !ok || strings.TrimSpace(str) == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	return str, true
}
