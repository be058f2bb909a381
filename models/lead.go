package models

import (
	"time"
)

// Lead is one visit to a page, recorded best-effort
type Lead struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Page      string    `json:"page"`
	Time      string    `json:"time"`
	Device    string    `json:"device"`
	SessionID string    `json:"sessionId" gorm:"index"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
