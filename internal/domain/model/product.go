package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Composition  string          `gorm:"type:text;not null" json:"composition"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CollectionID int64           `gorm:"not null;index" json:"collection_id"`

	//3Dモデルは外部URLか埋め込みバイナリのどちらか
	ModelURL      *string `gorm:"type:varchar(1024)" json:"model_url"`
	ModelData     []byte  `json:"-"`
	ModelMimeType *string `gorm:"type:varchar(255)" json:"-"`

	GlbAttribution *string `gorm:"type:varchar(512)" json:"glb_attribution"`
	GlbLink        *string `gorm:"type:varchar(1024)" json:"glb_link"`

	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
