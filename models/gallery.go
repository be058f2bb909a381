package models

import (
	"time"
)

type GalleryItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Image     string    `json:"image" gorm:"not null"`
	Title     string    `json:"title"`
	Status    string    `json:"status" gorm:"default:active;index"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
