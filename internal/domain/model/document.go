package model

import "time"

// キー単位の JSON ドキュメント（GORMバックエンド用）。
type Document struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string {
	return "storage_documents"
}
