package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/validation"
)

func TestDecide_PipelineUnavailable(t *testing.T) {
	d := validation.Decide(nil, "KA09XY9999")

	assert.Equal(t, models.ValidationManualReview, d.ValidationStatus)
	assert.Equal(t, "KA09XY9999", d.PlateNumber, "user-supplied plate must be kept when the pipeline is down")
	assert.Zero(t, d.Confidence)
}

func TestDecide_NotDetected(t *testing.T) {
	d := validation.Decide(&validation.PlateResult{Detected: false}, "KA09XY9999")

	assert.Equal(t, models.ValidationManualReview, d.ValidationStatus)
	assert.Equal(t, "KA09XY9999", d.PlateNumber)
}

func TestDecide_HighConfidenceApproves(t *testing.T) {
	d := validation.Decide(&validation.PlateResult{
		Detected:    true,
		PlateNumber: "DL01AB1234",
		Confidence:  0.92,
	}, "WRONG123")

	assert.Equal(t, models.ValidationApproved, d.ValidationStatus)
	assert.Equal(t, "DL01AB1234", d.PlateNumber, "detected plate must replace the user-supplied one")
	assert.Equal(t, 0.92, d.Confidence)
}

func TestDecide_LowConfidenceStillReplacesPlate(t *testing.T) {
	d := validation.Decide(&validation.PlateResult{
		Detected:    true,
		PlateNumber: "MH12CD5678",
		Confidence:  0.41,
	}, "WRONG123")

	assert.Equal(t, models.ValidationManualReview, d.ValidationStatus)
	assert.Equal(t, "MH12CD5678", d.PlateNumber, "detected plate takes precedence regardless of confidence")
}

func TestDecide_ThresholdIsInclusive(t *testing.T) {
	d := validation.Decide(&validation.PlateResult{
		Detected:    true,
		PlateNumber: "DL01AB1234",
		Confidence:  0.8,
	}, "")

	assert.Equal(t, models.ValidationApproved, d.ValidationStatus)
}

func TestDecide_DetectedButEmptyPlateFallsBack(t *testing.T) {
	d := validation.Decide(&validation.PlateResult{
		Detected:   true,
		Confidence: 0.95,
	}, "KA09XY9999")

	assert.Equal(t, models.ValidationApproved, d.ValidationStatus)
	assert.Equal(t, "KA09XY9999", d.PlateNumber)
}

func TestDecide_Deterministic(t *testing.T) {
	res := &validation.PlateResult{Detected: true, PlateNumber: "DL01AB1234", Confidence: 0.79}

	first := validation.Decide(res, "USER1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, validation.Decide(res, "USER1"))
	}
}
