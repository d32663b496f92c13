package user

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a member of the workspace. Tasks and activities reference
// users but never own them.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Username     string    `json:"username" gorm:"uniqueIndex:idx_user_username;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex:idx_user_email;not null"`
	FullName     string    `json:"full_name" gorm:"not null"`
	Role         string    `json:"role" gorm:"not null;default:'member'"`
	Initials     string    `json:"initials"`
	AvatarColor  string    `json:"avatar_color"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_user_created"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is called before inserting a new user record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Initials == "" {
		u.Initials = DeriveInitials(u.FullName)
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate is called before updating a user record
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// DeriveInitials builds up to two uppercase initials from a full name.
func DeriveInitials(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	initials := firstLetter(parts[0])
	if len(parts) > 1 {
		initials += firstLetter(parts[len(parts)-1])
	}
	return initials
}

// firstLetter returns the uppercased first rune, not byte, so multibyte
// names keep valid UTF-8 initials.
func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}
