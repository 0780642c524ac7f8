package employee

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemoryRepository is the default employee registry: one in-memory directory
// per process, no external durability. It reports missing rows with
// gorm.ErrRecordNotFound so services handle both stores identically.
type MemoryRepository struct {
	mu        sync.RWMutex
	employees map[uuid.UUID]Employee
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{employees: make(map[uuid.UUID]Employee)}
}

// WithTx is a no-op: the memory registry has no transactions.
func (r *MemoryRepository) WithTx(tx *gorm.DB) Repository {
	return r
}

func (r *MemoryRepository) Create(ctx context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.employees[e.ID] = *e
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*Employee, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.employees[parsed]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := e
	return &copied, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.employees {
		if strings.EqualFold(e.Email, email) {
			copied := e
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryRepository) FindAll(ctx context.Context) ([]Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	employees := make([]Employee, 0, len(r.employees))
	for _, e := range r.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].FullName < employees[j].FullName
	})
	return employees, nil
}

func (r *MemoryRepository) Update(ctx context.Context, e *Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.employees[e.ID] = *e
	return nil
}
