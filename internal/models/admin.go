// internal/models/admin.go
package models

import (
	"time"
)

type AuditLog struct {
	BaseModel
	UserID       string `json:"user_id" gorm:"size:128;index"`
	Action       string `json:"action" gorm:"size:100;not null;index"`
	ResourceType string `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   string `json:"resource_id" gorm:"size:64;index"`
	OldValues    JSONB  `json:"old_values" gorm:"type:jsonb"`
	NewValues    JSONB  `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string `json:"ip_address" gorm:"size:45"`
	UserAgent    string `json:"user_agent" gorm:"type:text"`
}

type AdminNotification struct {
	BaseModel
	Type                string     `json:"type" gorm:"type:varchar(50);not null;index"`
	Title               string     `json:"title" gorm:"size:255;not null"`
	Message             string     `json:"message" gorm:"type:text;not null"`
	Priority            string     `json:"priority" gorm:"type:varchar(20);index"`
	Status              string     `json:"status" gorm:"type:varchar(20);index"`
	ActorID             string     `json:"actor_id" gorm:"size:128;index"`
	RelatedResourceType string     `json:"related_resource_type,omitempty" gorm:"size:50"`
	RelatedResourceID   string     `json:"related_resource_id,omitempty" gorm:"size:64"`
	ReadAt              *time.Time `json:"read_at"`
}
