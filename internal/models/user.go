package models

import "time"

// User carries the account record. Email, bio and the admin flag are
// hidden from serialization; handlers expose them through the profile
// projections below so they never leak on populated owner fields.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	Email       string `gorm:"unique;not null" json:"-"`
	Password    string `gorm:"not null" json:"-"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"-"`
	IsAdmin     bool   `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type EditProfileRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	// Bio may be set to empty to clear it.
	Bio string `json:"bio"`
}

// PublicProfile is the projection served for other users' profiles.
// Email, password hash and the admin flag stay hidden.
type PublicProfile struct {
	ID          uint   `json:"_id"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

// OwnProfile is the projection a user gets of their own account.
type OwnProfile struct {
	ID          uint   `json:"_id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	IsAdmin     bool   `json:"isAdmin"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, DisplayName: u.DisplayName, Bio: u.Bio}
}

func (u *User) Own() OwnProfile {
	return OwnProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Bio:         u.Bio,
		IsAdmin:     u.IsAdmin,
	}
}
