package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/javajoker/permit-portal/internal/models"
)

type MemoryAuditRepository struct {
	mu            sync.RWMutex
	logs          []models.AuditLog
	notifications []models.AdminNotification
}

func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{}
}

func stamp(base *models.BaseModel) {
	now := time.Now()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func (r *MemoryAuditRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(&log.BaseModel)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *MemoryAuditRepository) ListAuditLogs(ctx context.Context, resourceType, resourceID string) ([]models.AuditLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.AuditLog
	for _, log := range r.logs {
		if log.ResourceType == resourceType && log.ResourceID == resourceID {
			out = append(out, log)
		}
	}
	return out, nil
}

func (r *MemoryAuditRepository) CreateNotification(ctx context.Context, n *models.AdminNotification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(&n.BaseModel)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *MemoryAuditRepository) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.AdminNotification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]models.AdminNotification, 0, len(r.notifications))
	for _, n := range r.notifications {
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		out = append(out, n)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
