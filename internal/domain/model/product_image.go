package model

// 画像は外部URLか埋め込みバイナリのどちらか。バイナリは一覧APIでは返さない。
type ProductImage struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64   `gorm:"not null;index" json:"product_id"`
	URL       *string `gorm:"type:varchar(1024)" json:"url"`
	Data      []byte  `json:"-"`
	MimeType  *string `gorm:"type:varchar(255)" json:"-"`

	//商品内の表示順（連番である必要はない）
	DisplayOrder int `gorm:"not null;default:0" json:"display_order"`
}
