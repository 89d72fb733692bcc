package models

type AssetStatus string

const (
	StatusAvailable AssetStatus = "Available"
	StatusAssigned  AssetStatus = "Assigned"
	StatusInRepair  AssetStatus = "In Repair"
	StatusRetired   AssetStatus = "Retired"
	StatusLost      AssetStatus = "Lost"
	StatusDamaged   AssetStatus = "Damaged"
)

type AssetCondition string

const (
	ConditionNew     AssetCondition = "New"
	ConditionGood    AssetCondition = "Good"
	ConditionFair    AssetCondition = "Fair"
	ConditionPoor    AssetCondition = "Poor"
	ConditionDamaged AssetCondition = "Damaged"
)

// Asset dates travel as YYYY-MM-DD strings end to end, matching the wire format.
type Asset struct {
	ID           string         `json:"id"`
	Tag          string         `json:"tag"` // human-readable asset tag / barcode
	Name         string         `json:"name"`
	SerialNumber string         `json:"serialNumber"`
	Category     string         `json:"category"` // Laptop, Monitor, ... (free text)
	Vendor       string         `json:"vendor"`
	PurchaseDate string         `json:"purchaseDate"`
	Cost         float64        `json:"cost"`
	Status       AssetStatus    `json:"status"`
	Condition    AssetCondition `json:"condition"`
	Location     string         `json:"location"`
	AssignedTo   string         `json:"assignedTo,omitempty"` // employee ID
	Image        string         `json:"image,omitempty"`
}
