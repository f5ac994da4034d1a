package repository

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

type WorkOrderRepository struct {
	t   *memTable[entity.WorkOrder]
	seq int
}

func NewWorkOrderRepository(seed []entity.WorkOrder) (*WorkOrderRepository, error) {
	r := &WorkOrderRepository{
		t: newMemTable(
			func(wo *entity.WorkOrder) string { return wo.ID },
			func(wo *entity.WorkOrder) *entity.WorkOrder { return wo.Clone() },
		),
	}
	for i := range seed {
		if _, err := r.t.insert(&seed[i]); err != nil {
			return nil, err
		}
		if n := numberSuffix(seed[i].WorkOrderNumber); n > r.seq {
			r.seq = n
		}
	}
	return r, nil
}

// Create stores wo and assigns the next sequential display number
func (r *WorkOrderRepository) Create(wo *entity.WorkOrder) (*entity.WorkOrder, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	wo.WorkOrderNumber = fmt.Sprintf("WO-%d-%03d", wo.CreatedAt.Year(), r.seq+1)
	created, err := r.t.insertLocked(wo)
	if err != nil {
		return nil, err
	}
	r.seq++
	return created, nil
}

func (r *WorkOrderRepository) GetByID(id string) (*entity.WorkOrder, error) {
	return r.t.get(id)
}

// Update runs fn against a draft; nothing is stored if fn fails
func (r *WorkOrderRepository) Update(id string, fn func(wo *entity.WorkOrder) error) (*entity.WorkOrder, error) {
	return r.t.update(id, fn)
}

type WOListParams struct {
	Status   string
	Priority string
}

// List exact-match status and priority filters, combined with AND
func (r *WorkOrderRepository) List(params WOListParams) []entity.WorkOrder {
	return r.t.list(func(wo *entity.WorkOrder) bool {
		if params.Status != "" && wo.Status != params.Status {
			return false
		}
		return params.Priority == "" || wo.Priority == params.Priority
	})
}

// CountOpen work orders not yet completed or cancelled
func (r *WorkOrderRepository) CountOpen() int {
	return r.t.count(func(wo *entity.WorkOrder) bool {
		return !entity.IsWorkOrderTerminal(wo.Status)
	})
}

// Recent newest work orders by creation time
func (r *WorkOrderRepository) Recent(limit int) []entity.WorkOrder {
	all := r.t.list(nil)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// numberSuffix trailing integer of a display number such as WO-2025-007
func numberSuffix(number string) int {
	idx := strings.LastIndex(number, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
