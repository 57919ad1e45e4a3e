package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

type Order struct {
	ID      int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	Number  string      `gorm:"type:varchar(36);not null;uniqueIndex" json:"number"`
	Address string      `gorm:"type:text;not null" json:"address"`
	Email   string      `gorm:"type:varchar(255);not null" json:"email"`
	Status  OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//確定時スナップショット。以後のカタログ価格変更では再計算しない。
	TotalProductsPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_products_price"`
	DeliveryPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"delivery_price"`

	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
}
