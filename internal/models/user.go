package models

import "time"

// Role determines what a user may do in the system.
type Role string

// User roles. Admins manage users and see system-wide reports, reviewers
// upload and annotate videos, viewers have read-only access.
const (
	RoleAdmin    Role = "admin"
	RoleReviewer Role = "reviewer"
	RoleViewer   Role = "viewer"
)

// User represents a reviewer, viewer, or administrator account.
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null;size:120" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             Role       `gorm:"not null;default:reviewer;size:20" json:"role"`
	FirstName        string     `gorm:"size:50" json:"first_name"`
	LastName         string     `gorm:"size:50" json:"last_name"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Videos      []Video      `gorm:"foreignKey:UploaderID" json:"videos,omitempty"`
	Annotations []Annotation `gorm:"foreignKey:ReviewerID" json:"annotations,omitempty"`
	Reviews     []Review     `gorm:"foreignKey:ReviewerID" json:"reviews,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAnnotate reports whether the user may create or edit annotations.
func (u *User) CanAnnotate() bool {
	return u.Role == RoleAdmin || u.Role == RoleReviewer
}
