package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ReferenceRepositoryGORM covers the static reference tables: products,
// wagon types, product-wagon compatibility, loading points, and settings.
// The planner core never writes these; they are consumed by seeding and the
// data surface.
type ReferenceRepositoryGORM struct {
	db *gorm.DB
}

// NewReferenceRepository creates a new GORM-based reference data repository
func NewReferenceRepository(db *gorm.DB) *ReferenceRepositoryGORM {
	return &ReferenceRepositoryGORM{db: db}
}

// SaveProduct inserts or updates a product record
func (r *ReferenceRepositoryGORM) SaveProduct(ctx context.Context, model *ProductModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// ListProducts returns all products ordered by code
func (r *ReferenceRepositoryGORM) ListProducts(ctx context.Context) ([]*ProductModel, error) {
	var models []*ProductModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return models, nil
}

// SaveWagonType inserts or updates a wagon type record
func (r *ReferenceRepositoryGORM) SaveWagonType(ctx context.Context, model *WagonTypeModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save wagon type: %w", err)
	}
	return nil
}

// ListWagonTypes returns all wagon types ordered by code
func (r *ReferenceRepositoryGORM) ListWagonTypes(ctx context.Context) ([]*WagonTypeModel, error) {
	var models []*WagonTypeModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list wagon types: %w", err)
	}
	return models, nil
}

// SaveCompatibility records that a product may load into a wagon type
func (r *ReferenceRepositoryGORM) SaveCompatibility(ctx context.Context, model *ProductWagonCompatibilityModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save product-wagon compatibility: %w", err)
	}
	return nil
}

// SaveLoadingPoint inserts or updates a loading point record
func (r *ReferenceRepositoryGORM) SaveLoadingPoint(ctx context.Context, model *LoadingPointModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save loading point: %w", err)
	}
	return nil
}

// GetSetting retrieves a setting by key. Returns nil when not found.
func (r *ReferenceRepositoryGORM) GetSetting(ctx context.Context, key string) (*SettingModel, error) {
	var model SettingModel
	result := r.db.WithContext(ctx).Where("key = ?", key).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get setting: %w", result.Error)
	}
	return &model, nil
}

// PutSetting inserts or updates a setting by key
func (r *ReferenceRepositoryGORM) PutSetting(ctx context.Context, model *SettingModel) error {
	existing, err := r.GetSetting(ctx, model.Key)
	if err != nil {
		return err
	}
	if existing != nil {
		model.ID = existing.ID
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	return nil
}
