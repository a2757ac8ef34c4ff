package planning

import (
	"time"

	"github.com/railops/rakeplanner/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of a transport order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAssigned  OrderStatus = "assigned"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// RakeStatus represents the operational state of a rake
type RakeStatus string

const (
	RakeStatusAvailable   RakeStatus = "available"
	RakeStatusAssigned    RakeStatus = "assigned"
	RakeStatusInTransit   RakeStatus = "in_transit"
	RakeStatusMaintenance RakeStatus = "maintenance"
)

// Order is the planner's view of a pending transport order. Orders are
// immutable during planning; their status flips to assigned only on commit.
type Order struct {
	ID                   string
	OrderNumber          string
	ProductCode          string
	QuantityTonnes       float64
	SourceStockyardID    string
	Destination          string
	DestinationLatitude  *float64
	DestinationLongitude *float64
	Priority             int
	DueDate              time.Time
	SLAHours             float64
	Status               OrderStatus
}

// DestinationPoint returns the order's destination as a geographic point
func (o *Order) DestinationPoint() shared.Point {
	return shared.Point{Latitude: o.DestinationLatitude, Longitude: o.DestinationLongitude}
}

// Stockyard is the planner's view of a storage site. Inventory is a snapshot,
// not live ground truth.
type Stockyard struct {
	ID             string
	Code           string
	Name           string
	Location       string
	Latitude       *float64
	Longitude      *float64
	CapacityTonnes float64
	Inventory      map[string]float64
}

// Point returns the stockyard's geographic position
func (s *Stockyard) Point() shared.Point {
	return shared.Point{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Rake is the planner's view of a train unit. Capacity is a hard upper bound
// on packed tonnage.
type Rake struct {
	ID                  string
	RakeNumber          string
	WagonTypeCode       string
	NumWagons           int
	TotalCapacityTonnes float64
	Status              RakeStatus
	CurrentLocation     string
}

// Snapshot is the immutable input to one planning run. Each run owns its own
// copy; nothing here is shared across concurrent jobs.
type Snapshot struct {
	Orders     []*Order
	Stockyards []*Stockyard
	Rakes      []*Rake
}

// AvailableRakes returns the rakes that are candidates for packing, in input order
func (s *Snapshot) AvailableRakes() []*Rake {
	available := make([]*Rake, 0, len(s.Rakes))
	for _, r := range s.Rakes {
		if r.Status == RakeStatusAvailable {
			available = append(available, r)
		}
	}
	return available
}
