package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/models"
)

// MemoryApplicationRepository keeps applications in process memory. Records are
// copied on the way in and out so callers never share state with the store.
type MemoryApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]models.Application
}

func NewMemoryApplicationRepository() *MemoryApplicationRepository {
	return &MemoryApplicationRepository{apps: make(map[string]models.Application)}
}

func (r *MemoryApplicationRepository) Create(ctx context.Context, app *models.Application) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	assignID(app)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; exists {
		return "", fmt.Errorf("failed to create application: duplicate id %s", app.ID)
	}
	r.apps[app.ID] = copyApplication(*app)
	return app.ID, nil
}

func (r *MemoryApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	out := copyApplication(app)
	return &out, nil
}

func (r *MemoryApplicationRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return errs.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "status":
			status, err := toStatus(value)
			if err != nil {
				return err
			}
			app.Status = status
		case "applicant_name":
			name, ok := value.(string)
			if !ok {
				return fmt.Errorf("failed to update application: applicant_name must be a string")
			}
			app.ApplicantName = name
		default:
			return fmt.Errorf("failed to update application: unsupported column %q", column)
		}
	}
	r.apps[id] = app
	return nil
}

func (r *MemoryApplicationRepository) Query(ctx context.Context, filter ApplicationFilter, order Order) ([]models.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]models.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if filter.matches(app) {
			out = append(out, copyApplication(app))
		}
	}
	r.mu.RUnlock()

	less := lessFunc(order.column())
	sort.SliceStable(out, func(i, j int) bool {
		if order.Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out, nil
}

func (f ApplicationFilter) matches(app models.Application) bool {
	if f.UserID != "" && app.UserID != f.UserID {
		return false
	}
	if f.Status != nil && app.Status != *f.Status {
		return false
	}
	if f.Type != "" && app.Type != f.Type {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(app.ApplicantName), term) &&
			!strings.Contains(strings.ToLower(app.ID), term) {
			return false
		}
	}
	return true
}

// lessFunc orders by column, then by ID so equal keys sort the same way on every call.
func lessFunc(column string) func(a, b models.Application) bool {
	var cmp func(a, b models.Application) int
	switch column {
	case "type":
		cmp = func(a, b models.Application) int { return strings.Compare(a.Type, b.Type) }
	case "status":
		cmp = func(a, b models.Application) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case "applicant_name":
		cmp = func(a, b models.Application) int { return strings.Compare(a.ApplicantName, b.ApplicantName) }
	default:
		cmp = func(a, b models.Application) int { return a.Date.Compare(b.Date) }
	}
	return func(a, b models.Application) bool {
		if c := cmp(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	}
}

func toStatus(value interface{}) (models.ApplicationStatus, error) {
	switch v := value.(type) {
	case models.ApplicationStatus:
		return v, nil
	case string:
		return models.ApplicationStatus(v), nil
	}
	return "", fmt.Errorf("failed to update application: status has type %T", value)
}

func copyApplication(app models.Application) models.Application {
	app.Data = app.Data.Clone()
	return app
}
