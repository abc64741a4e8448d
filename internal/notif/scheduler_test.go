package notif

import (
	"sync"
	"testing"
	"time"

	"culturlens/internal/dbmysql"

	"github.com/stretchr/testify/assert"
)

type deliveryRecorder struct {
	mu        sync.Mutex
	delivered []uint64
	signal    chan uint64
}

func newDeliveryRecorder() *deliveryRecorder {
	return &deliveryRecorder{signal: make(chan uint64, 16)}
}

func (r *deliveryRecorder) onReady(n *dbmysql.Notification) {
	r.mu.Lock()
	r.delivered = append(r.delivered, n.ID)
	r.mu.Unlock()
	r.signal <- n.ID
}

func (r *deliveryRecorder) wait(t *testing.T) uint64 {
	t.Helper()
	select {
	case id := <-r.signal:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return 0
	}
}

func (r *deliveryRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delivered)
}

func TestDeliveryScheduler_Schedule(t *testing.T) {
	s := NewDeliveryScheduler()
	defer s.Shutdown()
	rec := newDeliveryRecorder()

	s.Schedule(&dbmysql.Notification{ID: 1}, 10*time.Millisecond, rec.onReady)

	assert.Equal(t, uint64(1), rec.wait(t))
	assert.Equal(t, 0, s.Pending())
}

func TestDeliveryScheduler_NegativeDelayFiresImmediately(t *testing.T) {
	s := NewDeliveryScheduler()
	defer s.Shutdown()
	rec := newDeliveryRecorder()

	s.Schedule(&dbmysql.Notification{ID: 2}, -time.Second, rec.onReady)

	assert.Equal(t, uint64(2), rec.wait(t))
}

func TestDeliveryScheduler_Cancel(t *testing.T) {
	s := NewDeliveryScheduler()
	defer s.Shutdown()
	rec := newDeliveryRecorder()

	s.Schedule(&dbmysql.Notification{ID: 3}, time.Hour, rec.onReady)

	assert.Equal(t, 1, s.Pending())
	assert.True(t, s.Cancel(3))
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, rec.count())

	// Cancelling twice, or an unknown id, is a no-op.
	assert.False(t, s.Cancel(3))
	assert.False(t, s.Cancel(99))
}

func TestDeliveryScheduler_Pending(t *testing.T) {
	s := NewDeliveryScheduler()
	defer s.Shutdown()
	rec := newDeliveryRecorder()

	s.Schedule(&dbmysql.Notification{ID: 1}, time.Hour, rec.onReady)
	s.Schedule(&dbmysql.Notification{ID: 2}, time.Hour, rec.onReady)

	assert.Equal(t, 2, s.Pending())
}

func TestDeliveryScheduler_Shutdown(t *testing.T) {
	s := NewDeliveryScheduler()
	rec := newDeliveryRecorder()

	s.Schedule(&dbmysql.Notification{ID: 1}, 20*time.Millisecond, rec.onReady)
	s.Schedule(&dbmysql.Notification{ID: 2}, 20*time.Millisecond, rec.onReady)

	s.Shutdown()
	assert.Equal(t, 0, s.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestDeliveryScheduler_ScheduleAfterShutdown(t *testing.T) {
	s := NewDeliveryScheduler()
	s.Shutdown()
	rec := newDeliveryRecorder()

	s.Schedule(&dbmysql.Notification{ID: 1}, time.Millisecond, rec.onReady)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, rec.count())
	assert.Equal(t, 0, s.Pending())
}
