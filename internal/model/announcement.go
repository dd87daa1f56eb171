package model

import "time"

// Announcement is one row of TDnet disclosure metadata, kept even for
// documents the financial pipeline does not parse.
type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Ticker      string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_announcements_key,priority:1" json:"ticker"`
	Title       string    `gorm:"type:text;not null;uniqueIndex:idx_announcements_key,priority:2" json:"title"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	AnnouncedAt time.Time `gorm:"not null;uniqueIndex:idx_announcements_key,priority:3" json:"announced_at"`
	DocumentURL string    `gorm:"type:text" json:"document_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Announcement) TableName() string {
	return "announcements"
}
