package lifecycle

import "github.com/Aaryan-549/CivicPulse/internal/models"

// Store is the persistence capability the engine runs on. storage.Service
// implements it on Postgres; tests substitute an in-memory fake.
//
// RunInTransaction yields a Store scoped to one atomic unit of work: every
// write the callback performs commits together or not at all. Status history
// appends and assigned-count mutations exist only on this interface, so they
// have no write path outside an engine transaction.
type Store interface {
	RunInTransaction(fn func(tx Store) error) error

	// GetComplaintForUpdate loads a complaint and, when called on a
	// transaction-scoped Store, locks its row until commit so concurrent
	// lifecycle calls on the same complaint serialize.
	GetComplaintForUpdate(id string) (*models.Complaint, error)
	GetWorker(id string) (*models.Worker, error)

	CreateComplaint(c *models.Complaint) error
	SaveComplaint(c *models.Complaint) error
	DeleteComplaint(id string) error
	CreateMedia(m *models.Media) error

	AppendStatusHistory(h *models.StatusHistory) error
	ListStatusHistory(complaintID string) ([]models.StatusHistory, error)

	// IncrementAssigned and DecrementAssigned apply a single atomic +-1 to a
	// worker's assigned count. Decrement saturates at zero: releasing an
	// already-released worker is a no-op, not an error.
	IncrementAssigned(workerID string) error
	DecrementAssigned(workerID string) error
}

// Notifier publishes a terminal event describing a committed change.
// Publish is fire-and-forget: it must never block, fail or retry in a way
// that surfaces to the lifecycle caller.
type Notifier interface {
	Publish(event string, payload any)
}
