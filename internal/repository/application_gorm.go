package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javajoker/permit-portal/internal/errs"
	"github.com/javajoker/permit-portal/internal/models"
	"gorm.io/gorm"
)

// likeEscaper makes LIKE wildcards in user input match literally. Postgres uses
// backslash as the default ILIKE escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type GormApplicationRepository struct {
	db *gorm.DB
}

func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

func (r *GormApplicationRepository) Create(ctx context.Context, app *models.Application) (string, error) {
	assignID(app)
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return "", fmt.Errorf("failed to create application: %w", err)
	}
	return app.ID, nil
}

func (r *GormApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (r *GormApplicationRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *GormApplicationRepository) Query(ctx context.Context, filter ApplicationFilter, order Order) ([]models.Application, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Search != "" {
		searchTerm := "%" + likeEscaper.Replace(filter.Search) + "%"
		query = query.Where("applicant_name ILIKE ? OR id ILIKE ?", searchTerm, searchTerm)
	}

	direction := "ASC"
	if order.Descending {
		direction = "DESC"
	}

	var apps []models.Application
	if err := query.Order(order.column() + " " + direction).Order("id " + direction).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	return apps, nil
}
