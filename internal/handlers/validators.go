package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators wires request-level validations into gin's
// binding engine. "dateonly" is the calendar-date format used by
// business_date fields; a malformed date is rejected at binding time with
// the same semantics as the service-level check.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterAlias("dateonly", "datetime=2006-01-02")
	}
}
