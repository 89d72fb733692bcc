package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
	RequestClosed   RequestStatus = "Closed"
)

// AssetRequest is a service ticket. The user* fields record the requesting
// account when it differs from the employee record; MessageCount is derived
// server-side and drives the client's change detection.
type AssetRequest struct {
	ID           string        `json:"id"`
	EmployeeID   string        `json:"employeeId"`
	Category     string        `json:"category"`
	Reason       string        `json:"reason"`
	Status       RequestStatus `json:"status"`
	RequestDate  string        `json:"requestDate"`
	UserID       string        `json:"userId,omitempty"`
	UserName     string        `json:"userName,omitempty"`
	UserEmail    string        `json:"userEmail,omitempty"`
	RequestIP    string        `json:"requestIp,omitempty"`
	MessageCount int           `json:"messageCount"`
}

// TicketMessage is one chat entry on a request. Append-only.
type TicketMessage struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}
