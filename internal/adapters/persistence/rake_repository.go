package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/domain/planning"
)

// RakeRepositoryGORM implements rake persistence using GORM
type RakeRepositoryGORM struct {
	db *gorm.DB
}

// NewRakeRepository creates a new GORM-based rake repository
func NewRakeRepository(db *gorm.DB) *RakeRepositoryGORM {
	return &RakeRepositoryGORM{db: db}
}

// Save inserts or updates a rake record
func (r *RakeRepositoryGORM) Save(ctx context.Context, model *RakeModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save rake: %w", err)
	}
	return nil
}

// FindByRakeNumber retrieves a rake by its unique number. Returns nil when not found.
func (r *RakeRepositoryGORM) FindByRakeNumber(ctx context.Context, rakeNumber string) (*RakeModel, error) {
	var model RakeModel
	result := r.db.WithContext(ctx).Where("rake_number = ?", rakeNumber).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rake: %w", result.Error)
	}
	return &model, nil
}

// ListAvailable returns all available rakes as planner snapshot entities, in
// insertion order
func (r *RakeRepositoryGORM) ListAvailable(ctx context.Context) ([]*planning.Rake, error) {
	var models []*RakeModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(planning.RakeStatusAvailable)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available rakes: %w", err)
	}

	rakes := make([]*planning.Rake, len(models))
	for i, m := range models {
		rakes[i] = rakeModelToDomain(m)
	}
	return rakes, nil
}

// UpdateStatus flips a rake's status
func (r *RakeRepositoryGORM) UpdateStatus(ctx context.Context, id string, status planning.RakeStatus) error {
	result := r.db.WithContext(ctx).
		Model(&RakeModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update rake status: %w", result.Error)
	}
	return nil
}

func rakeModelToDomain(m *RakeModel) *planning.Rake {
	return &planning.Rake{
		ID:                  m.ID,
		RakeNumber:          m.RakeNumber,
		WagonTypeCode:       m.WagonTypeCode,
		NumWagons:           m.NumWagons,
		TotalCapacityTonnes: m.TotalCapacityTonnes,
		Status:              planning.RakeStatus(m.Status),
		CurrentLocation:     m.CurrentLocation,
	}
}
