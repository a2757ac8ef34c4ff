package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/domain/planning"
)

// StockyardRepositoryGORM implements stockyard persistence using GORM
type StockyardRepositoryGORM struct {
	db *gorm.DB
}

// NewStockyardRepository creates a new GORM-based stockyard repository
func NewStockyardRepository(db *gorm.DB) *StockyardRepositoryGORM {
	return &StockyardRepositoryGORM{db: db}
}

// Save inserts or updates a stockyard record
func (r *StockyardRepositoryGORM) Save(ctx context.Context, model *StockyardModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save stockyard: %w", err)
	}
	return nil
}

// FindByCode retrieves a stockyard by its unique code. Returns nil when not found.
func (r *StockyardRepositoryGORM) FindByCode(ctx context.Context, code string) (*StockyardModel, error) {
	var model StockyardModel
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stockyard: %w", result.Error)
	}
	return &model, nil
}

// FindByID retrieves a stockyard by id. Returns nil when not found.
func (r *StockyardRepositoryGORM) FindByID(ctx context.Context, id string) (*StockyardModel, error) {
	var model StockyardModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stockyard: %w", result.Error)
	}
	return &model, nil
}

// ListAll returns every stockyard as a planner snapshot entity with its
// inventory decoded
func (r *StockyardRepositoryGORM) ListAll(ctx context.Context) ([]*planning.Stockyard, error) {
	var models []*StockyardModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list stockyards: %w", err)
	}

	stockyards := make([]*planning.Stockyard, len(models))
	for i, m := range models {
		sy, err := stockyardModelToDomain(m)
		if err != nil {
			return nil, err
		}
		stockyards[i] = sy
	}
	return stockyards, nil
}

func stockyardModelToDomain(m *StockyardModel) (*planning.Stockyard, error) {
	inventory := map[string]float64{}
	if m.CurrentInventory != "" {
		if err := json.Unmarshal([]byte(m.CurrentInventory), &inventory); err != nil {
			return nil, fmt.Errorf("failed to decode inventory for stockyard %s: %w", m.Code, err)
		}
	}
	return &planning.Stockyard{
		ID:             m.ID,
		Code:           m.Code,
		Name:           m.Name,
		Location:       m.Location,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		CapacityTonnes: m.CapacityTonnes,
		Inventory:      inventory,
	}, nil
}

// EncodeInventory serializes an inventory map for storage on a stockyard row
func EncodeInventory(inventory map[string]float64) (string, error) {
	raw, err := json.Marshal(inventory)
	if err != nil {
		return "", fmt.Errorf("failed to encode inventory: %w", err)
	}
	return string(raw), nil
}
