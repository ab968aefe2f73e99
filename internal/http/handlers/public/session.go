package public

import (
	"strings"

	"github.com/vitrine-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateSession 签发匿名会话。请求携带有效令牌时为同一持有者续签，购物车保持不变。
func (h *Handler) CreateSession(c *gin.Context) {
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		if owner, err := h.SessionService.Parse(token); err == nil {
			session, err := h.SessionService.IssueFor(owner)
			if err != nil {
				respondError(c, response.CodeInternal, "error.session_issue_failed", err)
				return
			}
			response.Success(c, session)
			return
		}
	}
	session, err := h.SessionService.Issue()
	if err != nil {
		respondError(c, response.CodeInternal, "error.session_issue_failed", err)
		return
	}
	response.Success(c, session)
}

// bearerToken 解析 "Bearer <token>" 头，格式不符时返回空串
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
