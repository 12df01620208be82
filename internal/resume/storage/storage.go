package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/medflow/resume-parser/internal/resume/domain"
)

// TempStorage keeps extraction jobs in memory. Uploads are processed in RAM
// only; jobs expire after a TTL and are never written to disk.
type TempStorage struct {
	mu   sync.RWMutex
	jobs map[string]*domain.ExtractionJob
	ttl  time.Duration
	now  func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTempStorage creates the store and starts its cleanup loop. Call Close
// to stop the loop.
func NewTempStorage(ttl time.Duration) *TempStorage {
	s := &TempStorage{
		jobs: make(map[string]*domain.ExtractionJob),
		ttl:  ttl,
		now:  time.Now,
		stop: make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// GenerateJobID creates a random job ID
func GenerateJobID() string {
	return uuid.New().String()
}

// StoreJob stores an extraction job
func (s *TempStorage) StoreJob(job *domain.ExtractionJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = job
}

// GetJob returns a snapshot of the job, or nil when it is unknown or expired
func (s *TempStorage) GetJob(jobID string) *domain.ExtractionJob {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok || s.expired(job) {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// UpdateJob updates an existing extraction job
func (s *TempStorage) UpdateJob(jobID string, update func(*domain.ExtractionJob)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[jobID]; ok {
		update(job)
	}
}

// DeleteJob removes a job from storage
func (s *TempStorage) DeleteJob(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, jobID)
}

// Len returns the number of stored jobs, expired ones included
func (s *TempStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Close stops the cleanup loop
func (s *TempStorage) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// ZeroBytes overwrites a byte slice with zeros so uploaded documents do not
// linger in memory after their text has been extracted.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func (s *TempStorage) expired(job *domain.ExtractionJob) bool {
	return job.CreatedAt.Before(s.now().Add(-s.ttl))
}

// minCleanupInterval keeps the ticker valid for zero or tiny TTLs
const minCleanupInterval = 10 * time.Millisecond

func (s *TempStorage) cleanupLoop() {
	interval := s.ttl / 2
	if interval < minCleanupInterval {
		interval = minCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *TempStorage) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, job := range s.jobs {
		if s.expired(job) {
			delete(s.jobs, id)
		}
	}
}
