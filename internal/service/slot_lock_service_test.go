package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSlotLockSerializesPerDoctor(t *testing.T) {
	s := NewSlotLockService(logrus.New())
	defer s.Stop()

	doctorID := uuid.New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Lock(doctorID)
			defer s.Unlock(doctorID)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestSlotLockIndependentDoctors(t *testing.T) {
	s := NewSlotLockService(logrus.New())
	defer s.Stop()

	a, b := uuid.New(), uuid.New()

	// Holding doctor A's lock must not block doctor B's.
	s.Lock(a)
	done := make(chan struct{})
	go func() {
		s.Lock(b)
		s.Unlock(b)
		close(done)
	}()
	<-done
	s.Unlock(a)
}

func TestSlotLockReusesMutexPerDoctor(t *testing.T) {
	s := NewSlotLockService(logrus.New())
	defer s.Stop()

	doctorID := uuid.New()
	first := s.getMutex(doctorID)
	second := s.getMutex(doctorID)
	assert.Same(t, first, second)
}
