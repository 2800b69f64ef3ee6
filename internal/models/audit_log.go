package models

// AuditLog records sensitive user operations for security and compliance.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;index" json:"user_id"`
	Action       string `gorm:"not null;size:50;index" json:"action"`
	ResourceType string `gorm:"size:50" json:"resource_type"`
	ResourceID   string `gorm:"type:uuid" json:"resource_id"`
	Details      string `gorm:"type:text" json:"details,omitempty"`
	IPAddress    string `gorm:"size:45" json:"ip_address"`
}
