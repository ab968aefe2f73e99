package response

import (
	"net/http"

	"github.com/vitrine-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// Envelope 店面接口统一返回体；列表接口额外带 pagination
type Envelope struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

func newPagination(page, pageSize int, total int64) *Pagination {
	p := &Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		p.TotalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return p
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{StatusCode: CodeOK, Msg: "success", Data: data})
}

// Page 分页列表响应，total_page 由 total 与 pageSize 推出
func Page(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	c.JSON(http.StatusOK, Envelope{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: newPagination(page, pageSize, total),
	})
}

// Error 业务错误。HTTP 状态始终为 200，data 中带 request_id 便于排查
func Error(c *gin.Context, code int, msg string) {
	ErrorWithDetail(c, code, msg, nil)
}

// ErrorWithDetail 业务错误，detail 与 request_id 一并写入 data
func ErrorWithDetail(c *gin.Context, code int, msg string, detail gin.H) {
	data := gin.H{}
	for k, v := range detail {
		data[k] = v
	}
	if id := requestID(c); id != "" {
		data["request_id"] = id
	}
	var body interface{}
	if len(data) > 0 {
		body = data
	}
	c.JSON(http.StatusOK, Envelope{StatusCode: code, Msg: msg, Data: body})
}

// NotFound 资源不存在
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 会话缺失或失效
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// BadRequest 参数错误
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(constants.ContextKeyRequestID)
}
