package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	lockCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// SlotLockService serializes booking and reschedule attempts per doctor.
// The availability check and the consultation insert race without it: two
// concurrent bookers can both pass the check for overlapping windows before
// either persists. Holding the doctor's mutex across check+insert closes the
// window in-process; the database exclusion constraint backs it at the store
// level.
type SlotLockService struct {
	log *logrus.Logger

	// Per-doctor mutex for concurrent safety
	doctorMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

func NewSlotLockService(log *logrus.Logger) *SlotLockService {
	s := &SlotLockService{
		log:      log,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Lock acquires the doctor's mutex, blocking until it is free. Callers must
// release with Unlock on the same doctor id.
func (s *SlotLockService) Lock(doctorID uuid.UUID) {
	m := s.getMutex(doctorID)
	m.mu.Lock()
	m.lastUsed.Store(time.Now().Unix())
}

func (s *SlotLockService) Unlock(doctorID uuid.UUID) {
	m := s.getMutex(doctorID)
	m.lastUsed.Store(time.Now().Unix())
	m.mu.Unlock()
}

func (s *SlotLockService) getMutex(doctorID uuid.UUID) *mutexWithTimestamp {
	actual, _ := s.doctorMu.LoadOrStore(doctorID, &mutexWithTimestamp{})
	return actual.(*mutexWithTimestamp)
}

// cleanupLoop drops mutexes that have not been touched for a while, so the
// registry does not grow with every doctor ever booked.
func (s *SlotLockService) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStale()
		}
	}
}

func (s *SlotLockService) cleanupStale() {
	cutoff := time.Now().Add(-lockStaleThreshold).Unix()
	removed := 0

	s.doctorMu.Range(func(key, value interface{}) bool {
		m := value.(*mutexWithTimestamp)
		if m.lastUsed.Load() < cutoff && m.mu.TryLock() {
			s.doctorMu.Delete(key)
			m.mu.Unlock()
			removed++
		}
		return true
	})

	if removed > 0 {
		s.log.Infof("Slot lock cleanup removed %d stale doctor mutexes", removed)
	}
}

// Stop terminates the cleanup goroutine.
func (s *SlotLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
	}
}
