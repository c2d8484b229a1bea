package notifyhub_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan-549/CivicPulse/internal/models"
	"github.com/Aaryan-549/CivicPulse/internal/notifyhub"
)

// mockListener buffers delivered events for inspection.
type mockListener struct {
	id     string
	send   chan models.Event
	closed chan struct{}
}

func newMockListener(id string, buffer int) *mockListener {
	return &mockListener{
		id:     id,
		send:   make(chan models.Event, buffer),
		closed: make(chan struct{}),
	}
}

func (m *mockListener) GetID() string { return m.id }

func (m *mockListener) GetSendChannel() chan<- models.Event { return m.send }

func (m *mockListener) Run() {}

func (m *mockListener) Close() { close(m.closed) }

func (m *mockListener) receive(t *testing.T) models.Event {
	t.Helper()
	select {
	case ev := <-m.send:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return models.Event{}
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := notifyhub.NewHub(nil)
	go hub.Run()

	l1 := newMockListener("ws-1", 4)
	l2 := newMockListener("ws-2", 4)
	hub.RegisterCh <- l1
	hub.RegisterCh <- l2
	time.Sleep(50 * time.Millisecond)

	hub.PubSubCh <- models.Event{Name: models.EventComplaintCreated, Payload: json.RawMessage(`{"complaintId":"c1"}`)}

	ev1 := l1.receive(t)
	ev2 := l2.receive(t)
	assert.Equal(t, models.EventComplaintCreated, ev1.Name)
	assert.Equal(t, models.EventComplaintCreated, ev2.Name)
	assert.JSONEq(t, `{"complaintId":"c1"}`, string(ev1.Payload))
}

func TestHub_Unregister(t *testing.T) {
	hub := notifyhub.NewHub(nil)
	go hub.Run()

	l := newMockListener("ws-1", 4)
	hub.RegisterCh <- l
	time.Sleep(50 * time.Millisecond)

	hub.UnregisterCh <- l
	time.Sleep(50 * time.Millisecond)

	select {
	case <-l.closed:
	default:
		t.Fatal("unregistered listener was not closed")
	}

	hub.PubSubCh <- models.Event{Name: models.EventComplaintUpdated}
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, l.send, "unregistered listener must receive nothing")
}

func TestHub_PublishWithoutRedisLoopsBack(t *testing.T) {
	hub := notifyhub.NewHub(nil)
	go hub.Run()

	l := newMockListener("ws-1", 4)
	hub.RegisterCh <- l
	time.Sleep(50 * time.Millisecond)

	hub.Publish(models.EventComplaintUpdated, models.ComplaintUpdatedPayload{
		ComplaintID: "c1",
		Status:      models.StatusResolved,
		UserID:      "user-1",
	})

	ev := l.receive(t)
	assert.Equal(t, models.EventComplaintUpdated, ev.Name)

	var payload models.ComplaintUpdatedPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, "c1", payload.ComplaintID)
	assert.Equal(t, models.StatusResolved, payload.Status)
	assert.Nil(t, payload.WorkerID)
}

func TestHub_SlowListenerIsDropped(t *testing.T) {
	hub := notifyhub.NewHub(nil)
	go hub.Run()

	slow := newMockListener("slow", 1)
	healthy := newMockListener("healthy", 8)
	hub.RegisterCh <- slow
	hub.RegisterCh <- healthy
	time.Sleep(50 * time.Millisecond)

	// First event fills the slow listener's buffer, the second overflows it.
	hub.PubSubCh <- models.Event{Name: models.EventComplaintCreated}
	hub.PubSubCh <- models.Event{Name: models.EventComplaintUpdated}
	time.Sleep(50 * time.Millisecond)

	select {
	case <-slow.closed:
	default:
		t.Fatal("slow listener should have been dropped")
	}

	healthy.receive(t)
	healthy.receive(t)

	// The healthy listener keeps receiving after the drop.
	hub.PubSubCh <- models.Event{Name: models.EventComplaintUpdated}
	ev := healthy.receive(t)
	assert.Equal(t, models.EventComplaintUpdated, ev.Name)
}
