package model

type ProductSize struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64  `gorm:"not null;index" json:"product_id"`
	Size      string `gorm:"type:varchar(16);not null" json:"size"`
}
