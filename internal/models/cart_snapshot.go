package models

import "time"

// CartSnapshot 购物车快照，一个持有者一行，行项目以 JSON 保存
type CartSnapshot struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Owner     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"owner"` // 会话持有者
	ItemsJSON string    `gorm:"column:items;type:text;not null" json:"-"`           // 行项目 JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定表名
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
