package repository

import (
	"fmt"
	"sort"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

type NCRRepository struct {
	t   *memTable[entity.NonConformanceReport]
	seq int
}

func NewNCRRepository(seed []entity.NonConformanceReport) (*NCRRepository, error) {
	r := &NCRRepository{
		t: newMemTable(
			func(n *entity.NonConformanceReport) string { return n.ID },
			func(n *entity.NonConformanceReport) *entity.NonConformanceReport { return n.Clone() },
		),
	}
	for i := range seed {
		if _, err := r.t.insert(&seed[i]); err != nil {
			return nil, err
		}
		if n := numberSuffix(seed[i].NCRNumber); n > r.seq {
			r.seq = n
		}
	}
	return r, nil
}

// Create stores ncr and assigns the next sequential display number
func (r *NCRRepository) Create(ncr *entity.NonConformanceReport) (*entity.NonConformanceReport, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	ncr.NCRNumber = fmt.Sprintf("NCR-%d-%03d", ncr.ReportedAt.Year(), r.seq+1)
	created, err := r.t.insertLocked(ncr)
	if err != nil {
		return nil, err
	}
	r.seq++
	return created, nil
}

func (r *NCRRepository) GetByID(id string) (*entity.NonConformanceReport, error) {
	return r.t.get(id)
}

func (r *NCRRepository) Update(id string, fn func(n *entity.NonConformanceReport) error) (*entity.NonConformanceReport, error) {
	return r.t.update(id, fn)
}

// List optional exact-match status filter
func (r *NCRRepository) List(status string) []entity.NonConformanceReport {
	return r.t.list(func(n *entity.NonConformanceReport) bool {
		return status == "" || n.Status == status
	})
}

// Recent newest NCRs by report time
func (r *NCRRepository) Recent(limit int) []entity.NonConformanceReport {
	all := r.t.list(nil)
	sort.SliceStable(all, func(i, j int) bool { return all[i].ReportedAt.After(all[j].ReportedAt) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
