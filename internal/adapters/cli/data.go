package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/railops/rakeplanner/internal/adapters/persistence"
)

// NewDataCommand creates the data command group
func NewDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Manage reference and demo data",
	}

	dataCmd.AddCommand(newDataSeedCommand())

	return dataCmd
}

func newDataSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo products, stockyards, rakes, and orders",
		Long: `Load a demo dataset: steel products, wagon types, three plant
stockyards with inventory, a rake fleet, and a batch of pending orders.
Intended for an empty database; unique codes collide on re-seed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices()
			if err != nil {
				return err
			}
			defer svc.close()

			if err := seedDemoData(cmd.Context(), svc); err != nil {
				return err
			}
			fmt.Println("Demo data seeded")
			return nil
		},
	}
}

func seedDemoData(ctx context.Context, svc *services) error {
	products := []*persistence.ProductModel{
		{ID: uuid.NewString(), Code: "TMT", Name: "TMT Bars", Density: 7.85, HandlingTime: 2.0},
		{ID: uuid.NewString(), Code: "HRC", Name: "HR Coils", Density: 7.85, HandlingTime: 3.0},
		{ID: uuid.NewString(), Code: "PLT", Name: "Steel Plates", Density: 7.85, HandlingTime: 2.5},
	}
	for _, p := range products {
		if err := svc.reference.SaveProduct(ctx, p); err != nil {
			return err
		}
	}

	wagonTypes := []*persistence.WagonTypeModel{
		{ID: uuid.NewString(), Code: "BOXN", Name: "BOXN Open Wagon", CapacityTonnes: 58, CapacityVolume: 60, TareWeight: 25},
		{ID: uuid.NewString(), Code: "BRN", Name: "BRN Flat Wagon", CapacityTonnes: 60, CapacityVolume: 55, TareWeight: 24},
	}
	for _, w := range wagonTypes {
		if err := svc.reference.SaveWagonType(ctx, w); err != nil {
			return err
		}
	}

	// TMT and plates ride both wagon types; coils need flats
	compat := []*persistence.ProductWagonCompatibilityModel{
		{ProductID: products[0].ID, WagonTypeID: wagonTypes[0].ID, LoadingEfficiency: 1.0},
		{ProductID: products[0].ID, WagonTypeID: wagonTypes[1].ID, LoadingEfficiency: 0.9},
		{ProductID: products[1].ID, WagonTypeID: wagonTypes[1].ID, LoadingEfficiency: 1.0},
		{ProductID: products[2].ID, WagonTypeID: wagonTypes[0].ID, LoadingEfficiency: 0.85},
		{ProductID: products[2].ID, WagonTypeID: wagonTypes[1].ID, LoadingEfficiency: 1.0},
	}
	for _, c := range compat {
		if err := svc.reference.SaveCompatibility(ctx, c); err != nil {
			return err
		}
	}

	stockyards := []*persistence.StockyardModel{
		demoStockyard("SY-BHILAI", "Bhilai Steel Plant Yard", "Bhilai", 21.21, 81.38, 150000,
			map[string]float64{"TMT": 40000, "HRC": 25000, "PLT": 15000}),
		demoStockyard("SY-ROURKELA", "Rourkela Steel Plant Yard", "Rourkela", 22.26, 84.85, 120000,
			map[string]float64{"TMT": 20000, "HRC": 30000}),
		demoStockyard("SY-DURGAPUR", "Durgapur Steel Plant Yard", "Durgapur", 23.55, 87.32, 100000,
			map[string]float64{"PLT": 18000, "TMT": 12000}),
	}
	for _, sy := range stockyards {
		if err := svc.stockyards.Save(ctx, sy); err != nil {
			return err
		}
	}

	// One loading point per plant yard
	for i, sy := range stockyards {
		lp := &persistence.LoadingPointModel{
			ID:              uuid.NewString(),
			Code:            fmt.Sprintf("LP-%03d", i+1),
			Name:            sy.Name + " Loading Point",
			StockyardID:     &sy.ID,
			Location:        sy.Location,
			Latitude:        sy.Latitude,
			Longitude:       sy.Longitude,
			Sidings:         2,
			MaxRakeLength:   58,
			ProductsHandled: `["TMT","HRC","PLT"]`,
		}
		if err := svc.reference.SaveLoadingPoint(ctx, lp); err != nil {
			return err
		}
	}

	for i := 1; i <= 6; i++ {
		wt := wagonTypes[i%2]
		rake := &persistence.RakeModel{
			ID:                  uuid.NewString(),
			RakeNumber:          fmt.Sprintf("RAKE-%03d", i),
			WagonTypeCode:       wt.Code,
			NumWagons:           58,
			TotalCapacityTonnes: wt.CapacityTonnes * 58,
			Status:              "available",
			CurrentLocation:     stockyards[i%3].Location,
		}
		if err := svc.rakes.Save(ctx, rake); err != nil {
			return err
		}
	}

	destinations := []struct {
		city string
		lat  float64
		lon  float64
	}{
		{"Mumbai", 19.08, 72.88},
		{"Chennai", 13.08, 80.27},
		{"Delhi", 28.61, 77.21},
		{"Kolkata", 22.57, 88.36},
	}
	now := time.Now().UTC()
	for i := 0; i < 12; i++ {
		dest := destinations[i%len(destinations)]
		lat, lon := dest.lat, dest.lon
		order := &persistence.OrderModel{
			ID:                   uuid.NewString(),
			OrderNumber:          fmt.Sprintf("ORD-%04d", i+1),
			ProductCode:          products[i%len(products)].Code,
			QuantityTonnes:       float64(800 + 200*(i%4)),
			Destination:          dest.city,
			DestinationLatitude:  &lat,
			DestinationLongitude: &lon,
			Priority:             1 + i%5,
			DueDate:              now.AddDate(0, 0, 3+i%7),
			SLAHours:             72,
			Status:               "pending",
		}
		if err := svc.orders.Save(ctx, order); err != nil {
			return err
		}
	}

	return nil
}

func demoStockyard(code, name, location string, lat, lon, capacity float64, inventory map[string]float64) *persistence.StockyardModel {
	encoded, _ := persistence.EncodeInventory(inventory)
	return &persistence.StockyardModel{
		ID:               uuid.NewString(),
		Code:             code,
		Name:             name,
		Location:         location,
		Latitude:         &lat,
		Longitude:        &lon,
		CapacityTonnes:   capacity,
		CurrentInventory: encoded,
	}
}
