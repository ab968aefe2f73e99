package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// 异步任务类型
const (
	TaskOrderConfirm = "order:confirm"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 请求上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyOwner     = "session_owner"
)

// 请求头
const (
	HeaderRequestID = "X-Request-ID"
)
