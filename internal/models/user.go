package models

import "time"

// User is the identity record. Email or phone can each be absent, but
// registration guarantees at least one of them is set.
type User struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	FullName       string    `gorm:"not null" json:"fullname"`
	Email          *string   `gorm:"uniqueIndex;default:null" json:"email"`
	Phone          *string   `gorm:"uniqueIndex;default:null" json:"phone"`
	HashedPassword string    `gorm:"not null" json:"-"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	IsAdmin        bool      `gorm:"default:false" json:"is_admin"`
	IsVerified     bool      `gorm:"default:false" json:"is_verified"`
	TokenVersion   int       `gorm:"default:1" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Wallet *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
}

// EmailOrEmpty avoids nil checks at call sites that only need a display value.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// PhoneOrEmpty avoids nil checks at call sites that only need a display value.
func (u *User) PhoneOrEmpty() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}

// CreateUserInput is the registration request payload.
type CreateUserInput struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
