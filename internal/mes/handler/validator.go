package handler

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// enumRules custom binding tags backed by the entity enums
var enumRules = map[string]func(string) bool{
	"priority":          entity.IsPriority,
	"wostatus":          entity.IsWorkOrderStatus,
	"opstatus":          isOperationStatus,
	"ncrstatus":         entity.IsNCRStatus,
	"severity":          entity.IsSeverity,
	"disposition":       entity.IsDisposition,
	"integrationstatus": entity.IsIntegrationStatus,
	"isodate":           isISODate,
}

func isOperationStatus(s string) bool {
	return s == entity.OpStatusPending || s == entity.OpStatusInProgress || s == entity.OpStatusCompleted
}

// isISODate accepts a calendar date or an RFC 3339 timestamp
func isISODate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// RegisterValidators installs the custom tags on gin's validator and makes
// field errors report JSON names. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		for tag, valid := range enumRules {
			valid := valid
			if err = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return valid(fl.Field().String())
			}); err != nil {
				return
			}
		}
	})
	return err
}
