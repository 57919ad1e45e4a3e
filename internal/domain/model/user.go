package model

import "time"

// 管理者ユーザー。パスワードは持たず、TOTPシークレットだけで認証する。
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	Username   string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	TOTPSecret string    `gorm:"column:totp_secret;type:varchar(255);not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
}
