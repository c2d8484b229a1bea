package models

import "encoding/json"

// Event names published by the lifecycle engine after commit.
const (
	EventComplaintCreated = "complaint:created"
	EventComplaintUpdated = "complaint:updated"
)

// Event is the wire shape of a terminal notification. Delivery is
// best-effort: listeners connected at publish time receive it, later ones
// do not.
type Event struct {
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ComplaintCreatedPayload is the payload of a complaint:created event.
// PlateNumber and ValidationStatus are set for traffic complaints only.
type ComplaintCreatedPayload struct {
	ComplaintID      string `json:"complaintId"`
	Type             string `json:"type"`
	Category         string `json:"category"`
	Status           string `json:"status"`
	PlateNumber      string `json:"plateNumber,omitempty"`
	ValidationStatus string `json:"validationStatus,omitempty"`
}

// ComplaintUpdatedPayload is the payload of a complaint:updated event.
// WorkerID is set for assignment changes only.
type ComplaintUpdatedPayload struct {
	ComplaintID string  `json:"complaintId"`
	Status      string  `json:"status"`
	UserID      string  `json:"userId"`
	WorkerID    *string `json:"workerId,omitempty"`
}
