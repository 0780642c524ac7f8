package leave

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryRepository is the default request store: one in-memory collection per
// session with no external durability. New requests are prepended so reads
// come back newest first without sorting. Missing rows are reported with
// gorm.ErrRecordNotFound so services handle both stores identically.
type MemoryRepository struct {
	mu       sync.RWMutex
	requests []LeaveRequest
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// WithTx is a no-op: mutations happen under the repository mutex.
func (r *MemoryRepository) WithTx(tx *gorm.DB) Repository {
	return r
}

func (r *MemoryRepository) Create(ctx context.Context, l *LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.requests = append([]LeaveRequest{*l}, r.requests...)
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.requests {
		if l.ID == parsed {
			copied := l
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	parsed, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.EmployeeID == parsed {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *MemoryRepository) FindAllPending(ctx context.Context) ([]LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []LeaveRequest
	for _, l := range r.requests {
		if l.Status == StatusPending {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, l *LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.requests {
		if r.requests[i].ID == l.ID {
			r.requests[i] = *l
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
