package repository

import "github.com/bitfantasy/nimo-mes/internal/mes/entity"

// QualityRepository static inspection forms and results
type QualityRepository struct {
	forms   []entity.InspectionForm
	results []entity.InspectionResult
}

func NewQualityRepository(forms []entity.InspectionForm, results []entity.InspectionResult) *QualityRepository {
	return &QualityRepository{
		forms:   append([]entity.InspectionForm{}, forms...),
		results: append([]entity.InspectionResult{}, results...),
	}
}

func (r *QualityRepository) ListForms() []entity.InspectionForm {
	return append([]entity.InspectionForm{}, r.forms...)
}

// ListResults optional exact-match work order filter
func (r *QualityRepository) ListResults(workOrderID string) []entity.InspectionResult {
	out := []entity.InspectionResult{}
	for _, res := range r.results {
		if workOrderID == "" || res.WorkOrderID == workOrderID {
			out = append(out, res)
		}
	}
	return out
}
