package response

import "errors"

// 业务状态码，随响应体 status_code 返回，HTTP 状态码恒为 200
const (
	CodeOK              = 0
	CodeBadRequest      = 400 // 参数或业务校验失败
	CodeUnauthorized    = 401 // 缺少或无效的会话令牌
	CodeNotFound        = 404
	CodeTooManyRequests = 429 // 触发限流
	CodeInternal        = 500
)

// AppError 业务错误：接口码 + 文案键，原始错误只进日志不返回给前端
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewKeyedError 按文案键构造错误，Message 取自文案表
func NewKeyedError(code int, key string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: Message(key),
		Err:     err,
	}
}

// WrapError 使用自定义文案包装错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
