package models

import (
	"time"

	"github.com/vitrine-next/internal/constants"
)

// 订单状态
const (
	OrderStatusPending   = constants.OrderStatusPending
	OrderStatusConfirmed = constants.OrderStatusConfirmed
)

// Order 订单表
type Order struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	OrderNo      string     `gorm:"type:varchar(40);uniqueIndex;not null" json:"order_no"`
	Owner        string     `gorm:"type:varchar(64);index;not null" json:"-"`
	Status       string     `gorm:"type:varchar(20);index;not null" json:"status"`
	Currency     string     `gorm:"type:varchar(8);not null" json:"currency"`
	TotalItems   int        `gorm:"not null" json:"total_items"`
	TotalAmount  Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	ContactName  string     `gorm:"type:varchar(100);not null" json:"contact_name"`
	ContactEmail string     `gorm:"type:varchar(200);not null" json:"contact_email"`
	ContactPhone string     `gorm:"type:varchar(40)" json:"contact_phone"`
	AddressLine1 string     `gorm:"type:varchar(200);not null" json:"address_line1"`
	AddressLine2 string     `gorm:"type:varchar(200)" json:"address_line2"`
	City         string     `gorm:"type:varchar(100);not null" json:"city"`
	State        string     `gorm:"type:varchar(100)" json:"state"`
	PostalCode   string     `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country      string     `gorm:"type:varchar(64);not null" json:"country"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项，复制下单时的购物车行
type OrderItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrderID     uint      `gorm:"index;not null" json:"-"`
	LineID      string    `gorm:"type:varchar(120);not null" json:"line_id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(200);not null" json:"product_name"`
	SizeCode    string    `gorm:"type:varchar(32)" json:"size"`
	SizeName    string    `gorm:"type:varchar(64)" json:"size_name"`
	ColorCode   string    `gorm:"type:varchar(32)" json:"color"`
	ColorName   string    `gorm:"type:varchar(64)" json:"color_name"`
	UnitPrice   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	TotalPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
