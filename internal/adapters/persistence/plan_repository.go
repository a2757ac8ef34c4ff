package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/domain/planning"
	"github.com/railops/rakeplanner/internal/domain/shared"
)

// PlanRepositoryGORM implements plan persistence using GORM
type PlanRepositoryGORM struct {
	db *gorm.DB
}

// NewPlanRepository creates a new GORM-based plan repository
func NewPlanRepository(db *gorm.DB) *PlanRepositoryGORM {
	return &PlanRepositoryGORM{db: db}
}

// SavePlanWithRakes persists a planner result as a plan row plus its plan_rake
// rows in a single transaction. Origin stockyard codes are resolved to ids at
// save time; a code that no longer resolves leaves the origin null.
func (r *PlanRepositoryGORM) SavePlanWithRakes(
	ctx context.Context,
	jobID string,
	name string,
	result *planning.Result,
) (*PlanModel, error) {
	planData, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize plan data: %w", err)
	}

	plan := &PlanModel{
		ID:              uuid.NewString(),
		JobID:           jobID,
		Name:            name,
		PlanData:        string(planData),
		TotalCost:       result.TotalCost,
		FreightCost:     result.FreightCost,
		DemurrageCost:   result.DemurrageCost,
		IdleCost:        result.IdleCost,
		UtilizationPct:  result.UtilizationPct,
		OrdersFulfilled: result.OrdersFulfilled,
		TotalOrders:     result.TotalOrders,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return fmt.Errorf("failed to insert plan: %w", err)
		}

		for _, rakePlan := range result.Rakes {
			var originID *string
			if rakePlan.OriginStockyardCode != "" {
				var origin StockyardModel
				lookupErr := tx.Where("code = ?", rakePlan.OriginStockyardCode).First(&origin).Error
				if lookupErr == nil {
					originID = &origin.ID
				} else if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("failed to resolve origin stockyard: %w", lookupErr)
				}
			}

			destinations, err := json.Marshal(rakePlan.Destinations)
			if err != nil {
				return fmt.Errorf("failed to serialize destinations: %w", err)
			}
			ordersAssigned, err := json.Marshal(rakePlan.Orders)
			if err != nil {
				return fmt.Errorf("failed to serialize assigned orders: %w", err)
			}

			model := &PlanRakeModel{
				ID:                uuid.NewString(),
				PlanID:            plan.ID,
				RakeNumber:        rakePlan.RakeNumber,
				OriginStockyardID: originID,
				Destinations:      string(destinations),
				OrdersAssigned:    string(ordersAssigned),
				TotalWeight:       rakePlan.TotalWeight,
				UtilizationPct:    rakePlan.UtilizationPct,
				FreightCost:       rakePlan.FreightCost,
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to insert plan rake: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}

// FindByID retrieves a plan by id. Returns nil when not found.
func (r *PlanRepositoryGORM) FindByID(ctx context.Context, id string) (*PlanModel, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan: %w", result.Error)
	}
	return &model, nil
}

// FindByJobID retrieves the plan belonging to a job. Returns nil when the job
// has not produced one.
func (r *PlanRepositoryGORM) FindByJobID(ctx context.Context, jobID string) (*PlanModel, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get plan for job: %w", result.Error)
	}
	return &model, nil
}

// ListRakes returns the plan_rake rows for a plan in insertion order
func (r *PlanRepositoryGORM) ListRakes(ctx context.Context, planID string) ([]*PlanRakeModel, error) {
	var models []*PlanRakeModel
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list plan rakes: %w", err)
	}
	return models, nil
}

// CommitPlan marks the plan committed and flips the referenced rakes and
// orders to assigned, all in one transaction. Missing or already-claimed
// references are reported as anomalies but never abort the commit: plans may
// outlive the reference rows they were built from.
//
// A second commit of the same plan fails with a precondition error and
// changes nothing.
func (r *PlanRepositoryGORM) CommitPlan(
	ctx context.Context,
	planID string,
	now time.Time,
) ([]string, error) {
	var anomalies []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan PlanModel
		if err := tx.Where("id = ?", planID).First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.NewNotFoundError("plan", planID)
			}
			return fmt.Errorf("failed to get plan: %w", err)
		}

		if plan.Committed {
			return shared.NewPreconditionError(fmt.Sprintf("plan %s is already committed", planID))
		}

		updates := map[string]interface{}{
			"committed":    true,
			"committed_at": &now,
		}
		if err := tx.Model(&PlanModel{}).Where("id = ?", planID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to mark plan committed: %w", err)
		}

		var planRakes []*PlanRakeModel
		if err := tx.Where("plan_id = ?", planID).Find(&planRakes).Error; err != nil {
			return fmt.Errorf("failed to list plan rakes: %w", err)
		}

		for _, planRake := range planRakes {
			anomalies = append(anomalies, commitRake(tx, planRake)...)

			var assigned []planning.AssignedOrder
			if planRake.OrdersAssigned != "" {
				if err := json.Unmarshal([]byte(planRake.OrdersAssigned), &assigned); err != nil {
					return fmt.Errorf("failed to decode assigned orders: %w", err)
				}
			}
			for _, rec := range assigned {
				anomalies = append(anomalies, commitOrder(tx, rec)...)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return anomalies, nil
}

// commitRake flips one referenced rake to assigned, reporting anomalies for
// missing or non-available rakes
func commitRake(tx *gorm.DB, planRake *PlanRakeModel) []string {
	var rake RakeModel
	err := tx.Where("rake_number = ?", planRake.RakeNumber).First(&rake).Error
	if err != nil {
		return []string{fmt.Sprintf("rake %s not found, skipping status update", planRake.RakeNumber)}
	}

	if rake.Status != string(planning.RakeStatusAvailable) {
		return []string{fmt.Sprintf("rake %s is %s, not available; leaving status unchanged",
			planRake.RakeNumber, rake.Status)}
	}

	if err := tx.Model(&RakeModel{}).
		Where("id = ?", rake.ID).
		Update("status", string(planning.RakeStatusAssigned)).Error; err != nil {
		return []string{fmt.Sprintf("failed to assign rake %s: %v", planRake.RakeNumber, err)}
	}
	return nil
}

// commitOrder flips one referenced order to assigned, reporting anomalies for
// missing or non-pending orders
func commitOrder(tx *gorm.DB, rec planning.AssignedOrder) []string {
	var order OrderModel
	err := tx.Where("id = ?", rec.OrderID).First(&order).Error
	if err != nil {
		return []string{fmt.Sprintf("order %s not found, skipping status update", rec.OrderID)}
	}

	if order.Status != string(planning.OrderStatusPending) {
		return []string{fmt.Sprintf("order %s is %s, not pending; leaving status unchanged",
			rec.OrderNumber, order.Status)}
	}

	if err := tx.Model(&OrderModel{}).
		Where("id = ?", order.ID).
		Update("status", string(planning.OrderStatusAssigned)).Error; err != nil {
		return []string{fmt.Sprintf("failed to assign order %s: %v", rec.OrderNumber, err)}
	}
	return nil
}
