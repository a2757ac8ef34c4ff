package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/domain/planning"
)

// OrderRepositoryGORM implements order persistence using GORM
type OrderRepositoryGORM struct {
	db *gorm.DB
}

// NewOrderRepository creates a new GORM-based order repository
func NewOrderRepository(db *gorm.DB) *OrderRepositoryGORM {
	return &OrderRepositoryGORM{db: db}
}

// Save inserts or updates an order record
func (r *OrderRepositoryGORM) Save(ctx context.Context, model *OrderModel) error {
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// FindByID retrieves a single order by id. Returns nil when not found.
func (r *OrderRepositoryGORM) FindByID(ctx context.Context, id string) (*OrderModel, error) {
	var model OrderModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", result.Error)
	}
	return &model, nil
}

// ListPending returns all pending orders as planner snapshot entities, in
// insertion order
func (r *OrderRepositoryGORM) ListPending(ctx context.Context) ([]*planning.Order, error) {
	var models []*OrderModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(planning.OrderStatusPending)).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}

	orders := make([]*planning.Order, len(models))
	for i, m := range models {
		orders[i] = orderModelToDomain(m)
	}
	return orders, nil
}

// UpdateStatus flips an order's status
func (r *OrderRepositoryGORM) UpdateStatus(ctx context.Context, id string, status planning.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	return nil
}

func orderModelToDomain(m *OrderModel) *planning.Order {
	sourceID := ""
	if m.SourceStockyardID != nil {
		sourceID = *m.SourceStockyardID
	}
	return &planning.Order{
		ID:                   m.ID,
		OrderNumber:          m.OrderNumber,
		ProductCode:          m.ProductCode,
		QuantityTonnes:       m.QuantityTonnes,
		SourceStockyardID:    sourceID,
		Destination:          m.Destination,
		DestinationLatitude:  m.DestinationLatitude,
		DestinationLongitude: m.DestinationLongitude,
		Priority:             m.Priority,
		DueDate:              m.DueDate,
		SLAHours:             m.SLAHours,
		Status:               planning.OrderStatus(m.Status),
	}
}
