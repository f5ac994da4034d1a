package repository

import (
	"sync"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// ProductionRepository shop-floor production history and operator sessions
type ProductionRepository struct {
	entries  *memTable[entity.ProductionEntry]
	mu       sync.Mutex
	sessions []entity.OperatorSession
}

func NewProductionRepository() *ProductionRepository {
	return &ProductionRepository{
		entries: newMemTable(
			func(e *entity.ProductionEntry) string { return e.ID },
			func(e *entity.ProductionEntry) *entity.ProductionEntry { c := *e; return &c },
		),
	}
}

func (r *ProductionRepository) AddEntry(e *entity.ProductionEntry) (*entity.ProductionEntry, error) {
	return r.entries.insert(e)
}

// ListEntries optional exact-match work order filter
func (r *ProductionRepository) ListEntries(workOrderID string) []entity.ProductionEntry {
	return r.entries.list(func(e *entity.ProductionEntry) bool {
		return workOrderID == "" || e.WorkOrderID == workOrderID
	})
}

func (r *ProductionRepository) AddSession(s entity.OperatorSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, s)
}

// CloseSession stamps clock-out on the operator's most recent open session
func (r *ProductionRepository) CloseSession(operatorID string, at time.Time) (*entity.OperatorSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.sessions) - 1; i >= 0; i-- {
		s := &r.sessions[i]
		if s.OperatorID == operatorID && s.ClockOutTime == nil {
			t := at
			s.ClockOutTime = &t
			c := *s
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// ListSessions optional exact-match operator filter
func (r *ProductionRepository) ListSessions(operatorID string) []entity.OperatorSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.OperatorSession{}
	for _, s := range r.sessions {
		if operatorID == "" || s.OperatorID == operatorID {
			out = append(out, s)
		}
	}
	return out
}
