package models

import "time"

type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"_id"`
	UserID uint   `json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	PostID uint   `json:"post_id"`
	Body   string `gorm:"not null" json:"body"`
	Score  int    `gorm:"default:0" json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}
