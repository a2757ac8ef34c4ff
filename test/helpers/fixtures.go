package helpers

import (
	"time"

	"github.com/google/uuid"

	"github.com/railops/rakeplanner/internal/domain/planning"
)

// FloatPtr returns a pointer to the given float64
func FloatPtr(v float64) *float64 {
	return &v
}

// NewOrder builds a pending order fixture with sensible defaults
func NewOrder(orderNumber string, quantity float64, priority int, opts ...func(*planning.Order)) *planning.Order {
	order := &planning.Order{
		ID:             uuid.NewString(),
		OrderNumber:    orderNumber,
		ProductCode:    "TMT",
		QuantityTonnes: quantity,
		Destination:    "Mumbai",
		Priority:       priority,
		DueDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		SLAHours:       72,
		Status:         planning.OrderStatusPending,
	}
	for _, opt := range opts {
		opt(order)
	}
	return order
}

// WithDestination sets the order destination and drops any coordinates
func WithDestination(city string) func(*planning.Order) {
	return func(o *planning.Order) {
		o.Destination = city
		o.DestinationLatitude = nil
		o.DestinationLongitude = nil
	}
}

// WithDestinationCoords sets the order destination with coordinates
func WithDestinationCoords(city string, lat, lon float64) func(*planning.Order) {
	return func(o *planning.Order) {
		o.Destination = city
		o.DestinationLatitude = &lat
		o.DestinationLongitude = &lon
	}
}

// WithDueDate sets the order due date
func WithDueDate(due time.Time) func(*planning.Order) {
	return func(o *planning.Order) {
		o.DueDate = due
	}
}

// WithProduct sets the order product code
func WithProduct(code string) func(*planning.Order) {
	return func(o *planning.Order) {
		o.ProductCode = code
	}
}

// WithSourceStockyard pins the order to a stockyard id
func WithSourceStockyard(id string) func(*planning.Order) {
	return func(o *planning.Order) {
		o.SourceStockyardID = id
	}
}

// NewStockyard builds a stockyard fixture holding the given inventory
func NewStockyard(code string, inventory map[string]float64, opts ...func(*planning.Stockyard)) *planning.Stockyard {
	sy := &planning.Stockyard{
		ID:             uuid.NewString(),
		Code:           code,
		Name:           code + " Yard",
		Location:       code,
		CapacityTonnes: 100000,
		Inventory:      inventory,
	}
	for _, opt := range opts {
		opt(sy)
	}
	return sy
}

// WithYardCoords sets the stockyard coordinates
func WithYardCoords(lat, lon float64) func(*planning.Stockyard) {
	return func(s *planning.Stockyard) {
		s.Latitude = &lat
		s.Longitude = &lon
	}
}

// NewRake builds an available rake fixture with the given capacity
func NewRake(rakeNumber string, capacity float64) *planning.Rake {
	return &planning.Rake{
		ID:                  uuid.NewString(),
		RakeNumber:          rakeNumber,
		WagonTypeCode:       "BOXN",
		NumWagons:           58,
		TotalCapacityTonnes: capacity,
		Status:              planning.RakeStatusAvailable,
	}
}
