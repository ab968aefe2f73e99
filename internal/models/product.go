package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                            // 唯一标识
	Name          string         `gorm:"type:varchar(200);not null" json:"name"`                      // 商品名称
	Description   string         `gorm:"type:text" json:"description"`                                // 描述
	Brand         string         `gorm:"type:varchar(100);index" json:"brand"`                        // 品牌
	Category      string         `gorm:"type:varchar(100);index" json:"category"`                     // 分类
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 售价
	OriginalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"original_price"` // 划线价，0 表示无
	Images        StringArray    `gorm:"type:json" json:"images"`                                     // 图片数组
	Tags          StringArray    `gorm:"type:json" json:"tags"`                                       // 标签数组
	Rating        float64        `gorm:"not null;default:0;index" json:"rating"`                      // 评分
	ReviewCount   int            `gorm:"not null;default:0" json:"review_count"`                      // 评价数
	InStock       bool           `gorm:"not null" json:"in_stock"`                                    // 是否有货
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`                         // 是否上架
	SupportsTryOn bool           `gorm:"not null;default:false" json:"supports_try_on"`               // 是否支持试穿展示
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                           // 排序权重
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                  // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Sizes  []ProductSize  `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`  // 尺码
	Colors []ProductColor `gorm:"foreignKey:ProductID" json:"colors,omitempty"` // 颜色
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ProductSize 商品尺码
type ProductSize struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_size_code" json:"-"`
	Code      string `gorm:"type:varchar(32);not null;uniqueIndex:idx_product_size_code" json:"id"` // 尺码编码，如 M
	Name      string `gorm:"type:varchar(64);not null" json:"name"`                                 // 展示名称
	InStock   bool   `gorm:"not null" json:"in_stock"`
	SortOrder int    `gorm:"default:0" json:"-"`
}

// TableName 指定表名
func (ProductSize) TableName() string {
	return "product_sizes"
}

// ProductColor 商品颜色
type ProductColor struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_product_color_code" json:"-"`
	Code      string `gorm:"type:varchar(32);not null;uniqueIndex:idx_product_color_code" json:"id"` // 颜色编码
	Name      string `gorm:"type:varchar(64);not null" json:"name"`
	Hex       string `gorm:"type:varchar(16)" json:"hex"`
	SortOrder int    `gorm:"default:0" json:"-"`
}

// TableName 指定表名
func (ProductColor) TableName() string {
	return "product_colors"
}
