package persistence

import (
	"time"
)

// ProductModel represents the products table
type ProductModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Code         string    `gorm:"column:code;unique;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Density      float64   `gorm:"column:density;default:1.5"`
	HandlingTime float64   `gorm:"column:handling_time;default:2.0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductModel) TableName() string {
	return "products"
}

// WagonTypeModel represents the wagon_types table
type WagonTypeModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	Code           string    `gorm:"column:code;unique;not null;index"`
	Name           string    `gorm:"column:name;not null"`
	CapacityTonnes float64   `gorm:"column:capacity_tonnes;not null"`
	CapacityVolume float64   `gorm:"column:capacity_volume;default:50.0"`
	TareWeight     float64   `gorm:"column:tare_weight;default:20.0"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (WagonTypeModel) TableName() string {
	return "wagon_types"
}

// ProductWagonCompatibilityModel represents the product_wagon_compatibility table
type ProductWagonCompatibilityModel struct {
	ProductID         string  `gorm:"column:product_id;primaryKey"`
	WagonTypeID       string  `gorm:"column:wagon_type_id;primaryKey"`
	LoadingEfficiency float64 `gorm:"column:loading_efficiency;default:1.0"`
}

func (ProductWagonCompatibilityModel) TableName() string {
	return "product_wagon_compatibility"
}

// StockyardModel represents the stockyards table
// CurrentInventory is a JSON object (product code -> tonnes) stored as text
type StockyardModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	Code             string    `gorm:"column:code;unique;not null;index"`
	Name             string    `gorm:"column:name;not null"`
	Location         string    `gorm:"column:location;not null"`
	Latitude         *float64  `gorm:"column:latitude"`
	Longitude        *float64  `gorm:"column:longitude"`
	CapacityTonnes   float64   `gorm:"column:capacity_tonnes;default:100000"`
	CurrentInventory string    `gorm:"column:current_inventory;type:text"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StockyardModel) TableName() string {
	return "stockyards"
}

// LoadingPointModel represents the loading_points table
type LoadingPointModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	Code            string    `gorm:"column:code;unique;not null;index"`
	Name            string    `gorm:"column:name;not null"`
	StockyardID     *string   `gorm:"column:stockyard_id"`
	Location        string    `gorm:"column:location;not null"`
	Latitude        *float64  `gorm:"column:latitude"`
	Longitude       *float64  `gorm:"column:longitude"`
	Sidings         int       `gorm:"column:sidings;default:2"`
	MaxRakeLength   int       `gorm:"column:max_rake_length;default:58"`
	ProductsHandled string    `gorm:"column:products_handled;type:text"` // JSON array as text
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LoadingPointModel) TableName() string {
	return "loading_points"
}

// OrderModel represents the orders table
type OrderModel struct {
	ID                   string    `gorm:"column:id;primaryKey"`
	OrderNumber          string    `gorm:"column:order_number;unique;not null;index"`
	ProductCode          string    `gorm:"column:product_code;not null"`
	QuantityTonnes       float64   `gorm:"column:quantity_tonnes;not null"`
	SourceStockyardID    *string   `gorm:"column:source_stockyard_id"`
	Destination          string    `gorm:"column:destination;not null"`
	DestinationLatitude  *float64  `gorm:"column:destination_latitude"`
	DestinationLongitude *float64  `gorm:"column:destination_longitude"`
	Priority             int       `gorm:"column:priority;default:3"`
	DueDate              time.Time `gorm:"column:due_date;not null"`
	SLAHours             float64   `gorm:"column:sla_hours;default:72"`
	Status               string    `gorm:"column:status;default:'pending';index"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// RakeModel represents the rakes table
type RakeModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	RakeNumber          string    `gorm:"column:rake_number;unique;not null;index"`
	WagonTypeCode       string    `gorm:"column:wagon_type_code;not null"`
	NumWagons           int       `gorm:"column:num_wagons;not null"`
	TotalCapacityTonnes float64   `gorm:"column:total_capacity_tonnes;not null"`
	Status              string    `gorm:"column:status;default:'available';index"`
	CurrentLocation     string    `gorm:"column:current_location"`
	AvailabilityDate    time.Time `gorm:"column:availability_date;autoCreateTime"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (RakeModel) TableName() string {
	return "rakes"
}

// PlanningJobModel represents the planning_jobs table.
// Config is the planner configuration snapshot as JSON text; Logs is the
// append-only log buffer. Every update is a full-row replace under the
// primary key.
type PlanningJobModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	ScenarioName string     `gorm:"column:scenario_name;not null"`
	Notes        string     `gorm:"column:notes;type:text"`
	Config       string     `gorm:"column:config;type:text"`
	Status       string     `gorm:"column:status;default:'queued';index"`
	Progress     int        `gorm:"column:progress;default:0"`
	Logs         string     `gorm:"column:logs;type:text"`
	StartedAt    *time.Time `gorm:"column:started_at"`
	CompletedAt  *time.Time `gorm:"column:completed_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (PlanningJobModel) TableName() string {
	return "planning_jobs"
}

// PlanModel represents the plans table. PlanData is the structured planner
// result (including the algorithm tag) as JSON text.
type PlanModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	JobID           string     `gorm:"column:job_id;not null;index"`
	Name            string     `gorm:"column:name;not null"`
	PlanData        string     `gorm:"column:plan_data;type:text"`
	TotalCost       float64    `gorm:"column:total_cost;default:0"`
	FreightCost     float64    `gorm:"column:freight_cost;default:0"`
	DemurrageCost   float64    `gorm:"column:demurrage_cost;default:0"`
	IdleCost        float64    `gorm:"column:idle_cost;default:0"`
	UtilizationPct  float64    `gorm:"column:utilization_pct;default:0"`
	OrdersFulfilled int        `gorm:"column:orders_fulfilled;default:0"`
	TotalOrders     int        `gorm:"column:total_orders;default:0"`
	Committed       bool       `gorm:"column:committed;default:false;index"`
	CommittedAt     *time.Time `gorm:"column:committed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (PlanModel) TableName() string {
	return "plans"
}

// PlanRakeModel represents the plan_rakes table. Destinations and
// OrdersAssigned are denormalized JSON snapshots so plans survive reference
// data mutations; RakeNumber is deliberately stringly-typed for the same
// reason.
type PlanRakeModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	PlanID            string    `gorm:"column:plan_id;not null;index"`
	RakeNumber        string    `gorm:"column:rake_number;not null"`
	OriginStockyardID *string   `gorm:"column:origin_stockyard_id"`
	Destinations      string    `gorm:"column:destinations;type:text"`    // JSON array as text
	OrdersAssigned    string    `gorm:"column:orders_assigned;type:text"` // JSON array as text
	TotalWeight       float64   `gorm:"column:total_weight;default:0"`
	UtilizationPct    float64   `gorm:"column:utilization_pct;default:0"`
	FreightCost       float64   `gorm:"column:freight_cost;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PlanRakeModel) TableName() string {
	return "plan_rakes"
}

// SettingModel represents the settings table
type SettingModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Key         string    `gorm:"column:key;unique;not null;index"`
	Value       string    `gorm:"column:value;type:text"` // JSON as text
	Description string    `gorm:"column:description;type:text"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SettingModel) TableName() string {
	return "settings"
}
