package models

import "time"

type Post struct {
	ID       uint      `gorm:"primaryKey" json:"_id"`
	UserID   uint      `json:"user_id"`
	User     User      `gorm:"foreignKey:UserID" json:"user"`
	Title    string    `gorm:"not null" json:"title"`
	Body     string    `json:"body"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Score    int       `gorm:"default:0" json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type EditPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}
