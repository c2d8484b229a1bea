// Package lifecycle owns every complaint state transition: status and worker
// assignment writes, the append-only status history, and the per-worker load
// counter. Each operation is one atomic unit of work against the store; the
// change notification fans out only after the unit has committed.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/validation"
)

// Service is the lifecycle engine.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// NewService creates a lifecycle engine over the given store and notifier.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// MediaRef is the object-store reference recorded for an uploaded image.
type MediaRef struct {
	URL      string
	PublicID string
}

// CreateParams carries the caller-supplied fields for a new complaint. The
// media upload and ML call happen before Create is invoked, so no store
// transaction is ever held open across a slow external call.
type CreateParams struct {
	Type        string
	Category    string
	Subcategory string
	Description string
	Address     string
	Latitude    float64
	Longitude   float64
	UserID      string

	// PlateNumber is the user-supplied plate, traffic only. The validation
	// gate may replace it with the detected one.
	PlateNumber string

	// Media is nil when no image survived the upload pipeline.
	Media *MediaRef
	// HasImage records that the caller attached an image, even if the
	// pipeline then failed. It distinguishes "pipeline unavailable" (manual
	// review) from "no image filed" (validation stays Pending).
	HasImage bool
}

// Create inserts a new Pending complaint, attaching media when present and
// running the validation gate for traffic complaints. No history entry is
// written: the audit trail starts at the first transition. plate is the ML
// result, nil when the image pipeline failed or no image was filed.
func (s *Service) Create(p CreateParams, plate *validation.PlateResult) (*models.Complaint, error) {
	c := &models.Complaint{
		Type:        p.Type,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		Address:     p.Address,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		UserID:      p.UserID,
		Status:      models.StatusPending,
	}

	switch p.Type {
	case models.TypeCivic:
		c.ValidationStatus = models.ValidationApproved
	case models.TypeTraffic:
		c.PlateNumber = p.PlateNumber
		c.ValidationStatus = models.ValidationPending
		if p.HasImage {
			d := validation.Decide(plate, p.PlateNumber)
			c.ValidationStatus = d.ValidationStatus
			c.PlateNumber = d.PlateNumber
			c.ConfidenceScore = d.Confidence
		}
	default:
		return nil, fmt.Errorf("%w: unknown complaint type %q", ErrInvalidArgument, p.Type)
	}

	err := s.store.RunInTransaction(func(tx Store) error {
		if err := tx.CreateComplaint(c); err != nil {
			return err
		}
		if p.Media != nil {
			return tx.CreateMedia(&models.Media{
				ComplaintID: c.ID,
				URL:         p.Media.URL,
				PublicID:    p.Media.PublicID,
				Type:        "image",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := models.ComplaintCreatedPayload{
		ComplaintID: c.ID,
		Type:        c.Type,
		Category:    c.Category,
		Status:      c.Status,
	}
	if c.Type == models.TypeTraffic {
		payload.PlateNumber = c.PlateNumber
		payload.ValidationStatus = c.ValidationStatus
	}
	s.notifier.Publish(models.EventComplaintCreated, payload)

	return c, nil
}

// Assign gives the complaint to a worker and moves it to In-Progress. A
// reassignment is modeled as release-then-acquire: the new worker's count goes
// up and the previous worker's comes down in the same transaction, so each
// counter reflects only complaints currently held. Assigning the worker who
// already holds the complaint is a net no-op on the counter.
func (s *Service) Assign(complaintID, workerID, changedBy string) (*models.Complaint, error) {
	var updated *models.Complaint

	err := s.store.RunInTransaction(func(tx Store) error {
		c, err := tx.GetComplaintForUpdate(complaintID)
		if err != nil {
			return err
		}
		w, err := tx.GetWorker(workerID)
		if err != nil {
			return err
		}

		previousWorkerID := c.WorkerID
		oldStatus := c.Status

		c.WorkerID = &w.ID
		c.Status = models.StatusInProgress
		c.ResolvedAt = nil
		if err := tx.SaveComplaint(c); err != nil {
			return err
		}

		if err := tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID: c.ID,
			OldStatus:   oldStatus,
			NewStatus:   models.StatusInProgress,
			ChangedBy:   changedBy,
		}); err != nil {
			return err
		}

		if err := tx.IncrementAssigned(w.ID); err != nil {
			return err
		}
		if previousWorkerID != nil {
			if err := tx.DecrementAssigned(*previousWorkerID); err != nil {
				return err
			}
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(models.EventComplaintUpdated, models.ComplaintUpdatedPayload{
		ComplaintID: updated.ID,
		Status:      updated.Status,
		UserID:      updated.UserID,
		WorkerID:    updated.WorkerID,
	})

	return updated, nil
}

// UpdateStatus writes any of the four statuses, recording the transition in
// the history ledger. There is deliberately no transition table beyond enum
// membership: any status may follow any other. Resolving releases the
// assigned worker's load; moving out of Resolved clears the resolution
// timestamp again.
func (s *Service) UpdateStatus(complaintID, newStatus, changedBy string) (*models.Complaint, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidArgument, newStatus)
	}

	var updated *models.Complaint

	err := s.store.RunInTransaction(func(tx Store) error {
		c, err := tx.GetComplaintForUpdate(complaintID)
		if err != nil {
			return err
		}

		if err := tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID: c.ID,
			OldStatus:   c.Status,
			NewStatus:   newStatus,
			ChangedBy:   changedBy,
		}); err != nil {
			return err
		}

		c.Status = newStatus
		if newStatus == models.StatusResolved {
			now := s.now()
			c.ResolvedAt = &now
		} else {
			c.ResolvedAt = nil
		}
		if err := tx.SaveComplaint(c); err != nil {
			return err
		}

		if newStatus == models.StatusResolved && c.WorkerID != nil {
			if err := tx.DecrementAssigned(*c.WorkerID); err != nil {
				return err
			}
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(models.EventComplaintUpdated, models.ComplaintUpdatedPayload{
		ComplaintID: updated.ID,
		Status:      updated.Status,
		UserID:      updated.UserID,
	})

	return updated, nil
}

// Reject marks the complaint rejected, optionally appending the reason to the
// description, and releases the assigned worker's load. The worker reference
// itself is kept for the record.
func (s *Service) Reject(complaintID, reason, changedBy string) (*models.Complaint, error) {
	var updated *models.Complaint

	err := s.store.RunInTransaction(func(tx Store) error {
		c, err := tx.GetComplaintForUpdate(complaintID)
		if err != nil {
			return err
		}

		oldStatus := c.Status
		if reason != "" {
			c.Description = c.Description + "\n\nRejection Reason: " + reason
		}
		c.Status = models.StatusRejected
		c.ValidationStatus = models.ValidationRejected
		c.ResolvedAt = nil
		if err := tx.SaveComplaint(c); err != nil {
			return err
		}

		if err := tx.AppendStatusHistory(&models.StatusHistory{
			ComplaintID: c.ID,
			OldStatus:   oldStatus,
			NewStatus:   models.StatusRejected,
			ChangedBy:   changedBy,
		}); err != nil {
			return err
		}

		if c.WorkerID != nil {
			if err := tx.DecrementAssigned(*c.WorkerID); err != nil {
				return err
			}
		}

		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(models.EventComplaintUpdated, models.ComplaintUpdatedPayload{
		ComplaintID: updated.ID,
		Status:      updated.Status,
		UserID:      updated.UserID,
	})

	return updated, nil
}

// Delete removes the complaint and its dependent rows. A worker still holding
// the complaint is released, but a Resolved complaint already released its
// worker at resolution time, so that case must not decrement again. No event
// is emitted for deletes.
func (s *Service) Delete(complaintID string) error {
	return s.store.RunInTransaction(func(tx Store) error {
		c, err := tx.GetComplaintForUpdate(complaintID)
		if err != nil {
			return err
		}

		if err := tx.DeleteComplaint(c.ID); err != nil {
			return err
		}

		if c.WorkerID != nil && c.Status != models.StatusResolved {
			return tx.DecrementAssigned(*c.WorkerID)
		}
		return nil
	})
}

// ListHistory returns the complaint's status history, newest first.
func (s *Service) ListHistory(complaintID string) ([]models.StatusHistory, error) {
	return s.store.ListStatusHistory(complaintID)
}
