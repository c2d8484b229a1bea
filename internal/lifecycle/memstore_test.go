package lifecycle_test

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Aaryan-549/CivicPulse/internal/lifecycle"
	"github.com/Aaryan-549/CivicPulse/internal/models"
)

// memStore is an in-memory lifecycle.Store. It deep-copies on every read and
// write so callers never share state with the store, and RunInTransaction
// snapshots everything up front and restores the snapshot when the callback
// fails, mirroring a database rollback.
type memStore struct {
	complaints map[string]models.Complaint
	workers    map[string]models.Worker
	media      []models.Media
	history    []models.StatusHistory
	nextHistID uint

	// Per-method error injection for failure-path tests.
	createComplaintErr error
	createMediaErr     error
	saveComplaintErr   error
	appendHistoryErr   error
}

func newMemStore() *memStore {
	return &memStore{
		complaints: make(map[string]models.Complaint),
		workers:    make(map[string]models.Worker),
		nextHistID: 1,
	}
}

func (m *memStore) addWorker(id string) {
	m.workers[id] = models.Worker{ID: id, Name: "Worker " + id, Status: models.WorkerActive}
}

func (m *memStore) addComplaint(c models.Complaint) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	m.complaints[c.ID] = copyComplaint(c)
}

func (m *memStore) assignedCount(workerID string) int {
	return m.workers[workerID].AssignedCount
}

func copyComplaint(c models.Complaint) models.Complaint {
	if c.WorkerID != nil {
		id := *c.WorkerID
		c.WorkerID = &id
	}
	if c.ResolvedAt != nil {
		at := *c.ResolvedAt
		c.ResolvedAt = &at
	}
	return c
}

func (m *memStore) snapshot() *memStore {
	s := newMemStore()
	for id, c := range m.complaints {
		s.complaints[id] = copyComplaint(c)
	}
	for id, w := range m.workers {
		s.workers[id] = w
	}
	s.media = append([]models.Media(nil), m.media...)
	s.history = append([]models.StatusHistory(nil), m.history...)
	s.nextHistID = m.nextHistID
	return s
}

func (m *memStore) restore(s *memStore) {
	m.complaints = s.complaints
	m.workers = s.workers
	m.media = s.media
	m.history = s.history
	m.nextHistID = s.nextHistID
}

func (m *memStore) RunInTransaction(fn func(tx lifecycle.Store) error) error {
	before := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(before)
		return err
	}
	return nil
}

func (m *memStore) GetComplaintForUpdate(id string) (*models.Complaint, error) {
	c, ok := m.complaints[id]
	if !ok {
		return nil, fmt.Errorf("%w: complaint %s", lifecycle.ErrNotFound, id)
	}
	c = copyComplaint(c)
	return &c, nil
}

func (m *memStore) GetWorker(id string) (*models.Worker, error) {
	w, ok := m.workers[id]
	if !ok {
		return nil, fmt.Errorf("%w: worker %s", lifecycle.ErrNotFound, id)
	}
	return &w, nil
}

func (m *memStore) CreateComplaint(c *models.Complaint) error {
	if m.createComplaintErr != nil {
		return m.createComplaintErr
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	m.complaints[c.ID] = copyComplaint(*c)
	return nil
}

func (m *memStore) SaveComplaint(c *models.Complaint) error {
	if m.saveComplaintErr != nil {
		return m.saveComplaintErr
	}
	m.complaints[c.ID] = copyComplaint(*c)
	return nil
}

func (m *memStore) DeleteComplaint(id string) error {
	delete(m.complaints, id)
	kept := m.media[:0]
	for _, md := range m.media {
		if md.ComplaintID != id {
			kept = append(kept, md)
		}
	}
	m.media = kept
	keptHist := m.history[:0]
	for _, h := range m.history {
		if h.ComplaintID != id {
			keptHist = append(keptHist, h)
		}
	}
	m.history = keptHist
	return nil
}

func (m *memStore) CreateMedia(md *models.Media) error {
	if m.createMediaErr != nil {
		return m.createMediaErr
	}
	md.ID = uint(len(m.media) + 1)
	m.media = append(m.media, *md)
	return nil
}

func (m *memStore) AppendStatusHistory(h *models.StatusHistory) error {
	if m.appendHistoryErr != nil {
		return m.appendHistoryErr
	}
	h.ID = m.nextHistID
	m.nextHistID++
	h.Timestamp = time.Now()
	m.history = append(m.history, *h)
	return nil
}

func (m *memStore) ListStatusHistory(complaintID string) ([]models.StatusHistory, error) {
	var out []models.StatusHistory
	for _, h := range m.history {
		if h.ComplaintID == complaintID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memStore) IncrementAssigned(workerID string) error {
	w, ok := m.workers[workerID]
	if !ok {
		return fmt.Errorf("%w: worker %s", lifecycle.ErrNotFound, workerID)
	}
	w.AssignedCount++
	m.workers[workerID] = w
	return nil
}

func (m *memStore) DecrementAssigned(workerID string) error {
	w, ok := m.workers[workerID]
	if !ok {
		return fmt.Errorf("%w: worker %s", lifecycle.ErrNotFound, workerID)
	}
	if w.AssignedCount > 0 {
		w.AssignedCount--
	}
	m.workers[workerID] = w
	return nil
}

// recording is a lifecycle.Notifier capturing every published event.
type recording struct {
	mu     sync.Mutex
	events []recorded
}

type recorded struct {
	Name    string
	Payload any
}

func (r *recording) Publish(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recorded{Name: event, Payload: payload})
}

func (r *recording) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.events...)
}

func (r *recording) last() *recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	e := r.events[len(r.events)-1]
	return &e
}
