package service

import (
	"sync"
	"time"

	"github.com/dupliscan/dupliscan/domain"
)

// MarkingStoreImpl implements the domain.MarkingStore interface with an
// in-memory ordered list. Entries live until explicitly cleared or the
// process exits; they are never pruned automatically. Marking the same
// record twice intentionally yields two entries.
type MarkingStoreImpl struct {
	mu     sync.Mutex
	marked []domain.MarkedClone
}

// NewMarkingStore creates an empty marking store
func NewMarkingStore() *MarkingStoreImpl {
	return &MarkingStoreImpl{}
}

// Mark appends a copy of the record to the store
func (s *MarkingStoreImpl) Mark(record domain.CloneRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.marked = append(s.marked, domain.MarkedClone{
		Record:   record,
		MarkedAt: time.Now(),
	})
}

// ListMarked returns the marked clones in marking order
func (s *MarkingStoreImpl) ListMarked() []domain.MarkedClone {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.MarkedClone, len(s.marked))
	copy(result, s.marked)
	return result
}

// ClearMarked removes all marked clones
func (s *MarkingStoreImpl) ClearMarked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = nil
}

// Count returns the number of marked clones
func (s *MarkingStoreImpl) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.marked)
}
