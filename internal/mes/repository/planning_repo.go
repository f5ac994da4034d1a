package repository

import (
	"sync"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// PlanningRepository MRP run history
type PlanningRepository struct {
	mu   sync.RWMutex
	runs []entity.MRPResult
}

func NewPlanningRepository() *PlanningRepository {
	return &PlanningRepository{}
}

func (r *PlanningRepository) AddRun(res entity.MRPResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, res)
}

// ListRuns newest first
func (r *PlanningRepository) ListRuns() []entity.MRPResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.MRPResult, 0, len(r.runs))
	for i := len(r.runs) - 1; i >= 0; i-- {
		out = append(out, r.runs[i])
	}
	return out
}
