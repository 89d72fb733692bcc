package models

type MaintenanceStatus string

const (
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

type MaintenanceLog struct {
	ID          string            `json:"id"`
	AssetID     string            `json:"assetId"`
	Description string            `json:"description"`
	Vendor      string            `json:"vendor"`
	Cost        float64           `json:"cost"`
	Date        string            `json:"date"`
	Status      MaintenanceStatus `json:"status"`
}
