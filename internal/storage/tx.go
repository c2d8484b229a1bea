package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aaryan-549/CivicPulse/internal/lifecycle"
	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// lifecycle.Store implementation. Every method here is either called inside
// RunInTransaction by the engine, or is a plain read.

// RunInTransaction executes fn against a transaction-scoped Service. A non-nil
// error from fn rolls back every write the callback performed.
func (s *Service) RunInTransaction(fn func(tx lifecycle.Store) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Service{DB: tx, Redis: s.Redis, Ctx: s.Ctx})
	})
}

// GetComplaintForUpdate loads the complaint row with a FOR UPDATE lock, so
// concurrent lifecycle operations on the same complaint serialize on commit
// order instead of interleaving their read-modify-write halves.
func (s *Service) GetComplaintForUpdate(id string) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: complaint %s", lifecycle.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) GetWorker(id string) (*models.Worker, error) {
	var w models.Worker
	err := s.DB.First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: worker %s", lifecycle.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Service) CreateComplaint(c *models.Complaint) error {
	return s.DB.Create(c).Error
}

func (s *Service) SaveComplaint(c *models.Complaint) error {
	return s.DB.Omit(clause.Associations).Save(c).Error
}

// DeleteComplaint removes the complaint and its dependent media and history
// rows. Deletes are explicit rather than left to the FK cascade so the
// behavior does not depend on how the schema was migrated.
func (s *Service) DeleteComplaint(id string) error {
	if err := s.DB.Where("complaint_id = ?", id).Delete(&models.Media{}).Error; err != nil {
		return err
	}
	if err := s.DB.Where("complaint_id = ?", id).Delete(&models.StatusHistory{}).Error; err != nil {
		return err
	}
	return s.DB.Delete(&models.Complaint{}, "id = ?", id).Error
}

func (s *Service) CreateMedia(m *models.Media) error {
	return s.DB.Create(m).Error
}

func (s *Service) AppendStatusHistory(h *models.StatusHistory) error {
	return s.DB.Create(h).Error
}

// ListStatusHistory returns a complaint's audit trail newest-first. The ID is
// the tiebreaker for entries written within the same timestamp resolution.
func (s *Service) ListStatusHistory(complaintID string) ([]models.StatusHistory, error) {
	var entries []models.StatusHistory
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("timestamp DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// IncrementAssigned adds one to the worker's load counter in a single UPDATE.
func (s *Service) IncrementAssigned(workerID string) error {
	return s.DB.Model(&models.Worker{}).
		Where("id = ?", workerID).
		UpdateColumn("assigned_count", gorm.Expr("assigned_count + 1")).Error
}

// DecrementAssigned subtracts one, saturating at zero. Decrementing an
// already-zero counter is a no-op so racing releases never go negative.
func (s *Service) DecrementAssigned(workerID string) error {
	return s.DB.Model(&models.Worker{}).
		Where("id = ?", workerID).
		UpdateColumn("assigned_count",
			gorm.Expr("CASE WHEN assigned_count > 0 THEN assigned_count - 1 ELSE 0 END")).Error
}
