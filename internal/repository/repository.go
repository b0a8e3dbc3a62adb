// Package repository is the persistent document store behind the portal. Exactly one
// implementation (postgres through gorm, or in-memory) is selected at start-up.
package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/javajoker/permit-portal/internal/models"
	"gorm.io/gorm"
)

// ApplicationFilter narrows Query. Zero values mean "no filter".
type ApplicationFilter struct {
	UserID string
	Status *models.ApplicationStatus
	Type   string
	// Search is a case-insensitive substring match on applicant name or id.
	Search string
}

// Order selects the sort column. The default is date, newest first.
type Order struct {
	Field      string
	Descending bool
}

var DateDescending = Order{Field: "date", Descending: true}

var sortColumns = map[string]string{
	"date":          "date",
	"type":          "type",
	"status":        "status",
	"applicantName": "applicant_name",
}

func (o Order) column() string {
	if col, ok := sortColumns[o.Field]; ok {
		return col
	}
	return "date"
}

// ApplicationRepository stores Application records. Writes are atomic per record;
// UpdateFields is a blind overwrite with last-writer-wins semantics.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (string, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	Query(ctx context.Context, filter ApplicationFilter, order Order) ([]models.Application, error)
}

// AuditRepository records administrative side effects.
type AuditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error)
	CreateNotification(ctx context.Context, n *models.AdminNotification) error
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.AdminNotification, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Applications ApplicationRepository
	Audit        AuditRepository
}

func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Applications: NewGormApplicationRepository(db),
		Audit:        NewGormAuditRepository(db),
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Applications: NewMemoryApplicationRepository(),
		Audit:        NewMemoryAuditRepository(),
	}
}

func assignID(app *models.Application) {
	if strings.TrimSpace(app.ID) == "" {
		app.ID = uuid.NewString()
	}
}
