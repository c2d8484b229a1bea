// Package validation decides the initial validation status of a traffic
// complaint from the plate-recognition output. The decision is a pure
// function: it is computed once, before the creation transaction opens, and
// persisted with the complaint row.
package validation

import (
	"github.com/Aaryan-549/CivicPulse/internal/config"
	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// PlateResult is the response of the plate-OCR service for one image.
type PlateResult struct {
	Detected    bool    `json:"detected"`
	PlateNumber string  `json:"plate_number"`
	Confidence  float64 `json:"confidence"`
}

// Decision is the gate's verdict for a traffic complaint.
type Decision struct {
	ValidationStatus string
	PlateNumber      string
	Confidence       float64
}

// Decide maps an ML result onto a validation status and the plate number to
// record. A nil result means the image pipeline was unavailable; that never
// blocks creation, it degrades to manual review with the user-supplied plate.
// A detected plate replaces the user-supplied one regardless of confidence.
func Decide(res *PlateResult, userPlate string) Decision {
	if res == nil || !res.Detected {
		return Decision{
			ValidationStatus: models.ValidationManualReview,
			PlateNumber:      userPlate,
		}
	}

	plate := res.PlateNumber
	if plate == "" {
		plate = userPlate
	}

	status := models.ValidationManualReview
	if res.Confidence >= config.PlateApproveThreshold {
		status = models.ValidationApproved
	}

	return Decision{
		ValidationStatus: status,
		PlateNumber:      plate,
		Confidence:       res.Confidence,
	}
}
