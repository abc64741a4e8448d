package notif

import (
	"log"
	"sync"
	"time"

	"culturlens/internal/dbmysql"
)

// DeliveryScheduler defers a notification's delivery until its visibility
// delay elapses, without blocking the triggering request. Timers live only
// in memory: deliveries pending when the process exits are lost.
type DeliveryScheduler struct {
	mu     sync.Mutex
	timers map[uint64]*time.Timer
	closed bool
}

func NewDeliveryScheduler() *DeliveryScheduler {
	return &DeliveryScheduler{
		timers: make(map[uint64]*time.Timer),
	}
}

// Schedule fires onReady(n) once after delay. Concurrent schedules are
// independent; there is no coalescing.
func (s *DeliveryScheduler) Schedule(n *dbmysql.Notification, delay time.Duration, onReady func(*dbmysql.Notification)) {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Printf("Scheduler shut down, dropping delivery for notification %d", n.ID)
		return
	}

	timer := time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, live := s.timers[n.ID]
		delete(s.timers, n.ID)
		closed := s.closed
		s.mu.Unlock()

		if !live || closed {
			return
		}
		onReady(n)
	})
	s.timers[n.ID] = timer
	s.mu.Unlock()
}

// Cancel stops a pending delivery by notification id. Returns false when
// nothing was pending, including after the timer already fired.
func (s *DeliveryScheduler) Cancel(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	timer.Stop()
	return true
}

// Pending returns the number of deliveries still waiting on their timer.
func (s *DeliveryScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Shutdown stops every pending timer. Undelivered notifications stay in
// the store but are not pushed.
func (s *DeliveryScheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	log.Println("DeliveryScheduler shutdown complete")
}
