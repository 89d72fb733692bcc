package models

// Assignment links one asset to one employee. At most one assignment per asset
// is active at a time; the store's mutators maintain that by convention.
type Assignment struct {
	ID                 string `json:"id"`
	AssetID            string `json:"assetId"`
	EmployeeID         string `json:"employeeId"`
	BorrowDate         string `json:"borrowDate"`
	ExpectedReturnDate string `json:"expectedReturnDate,omitempty"`
	ReturnedDate       string `json:"returnedDate,omitempty"`
	Notes              string `json:"notes,omitempty"`
	IsActive           bool   `json:"isActive"`
}
