// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the id in code so the in-memory store and postgres agree.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}

	return json.Unmarshal(bytes, j)
}

// Clone returns a deep copy made through the JSON representation.
func (j JSONB) Clone() JSONB {
	if j == nil {
		return nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return j
	}
	var out JSONB
	if err := json.Unmarshal(raw, &out); err != nil {
		return j
	}
	return out
}

// Actor roles carried by identity tokens
type ActorRole string

const (
	ActorRoleApplicant ActorRole = "applicant"
	ActorRoleAdmin     ActorRole = "admin"
)

// Actor is the identity resolved from the external identity provider.
type Actor struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Role  ActorRole `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == ActorRoleAdmin
}
