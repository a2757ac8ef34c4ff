package cli

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
	"github.com/railops/rakeplanner/internal/domain/shared"
	"github.com/railops/rakeplanner/internal/infrastructure/config"
	"github.com/railops/rakeplanner/internal/infrastructure/database"
)

// services wires the repositories a CLI command needs onto one DB connection
type services struct {
	db         *gorm.DB
	jobs       *persistence.JobRepositoryGORM
	plans      *persistence.PlanRepositoryGORM
	orders     *persistence.OrderRepositoryGORM
	stockyards *persistence.StockyardRepositoryGORM
	rakes      *persistence.RakeRepositoryGORM
	reference  *persistence.ReferenceRepositoryGORM
}

func openServices() (*services, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, err
	}

	clock := shared.NewRealClock()
	return &services{
		db:         db,
		jobs:       persistence.NewJobRepository(db, clock),
		plans:      persistence.NewPlanRepository(db),
		orders:     persistence.NewOrderRepository(db),
		stockyards: persistence.NewStockyardRepository(db),
		rakes:      persistence.NewRakeRepository(db),
		reference:  persistence.NewReferenceRepository(db),
	}, nil
}

func (s *services) close() {
	_ = database.Close(s.db)
}

// printJSON pretty-prints a value for terminal output
func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
