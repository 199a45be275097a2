package dto

import (
	"github.com/go-playground/validator/v10"
)

// RegisterValidations attaches struct-level validations to gin's binding
// engine. Schedule ordering cannot be expressed with field tags alone.
func RegisterValidations(v *validator.Validate) {
	v.RegisterStructValidation(validateJobSchedule, CreateJobRequest{}, UpdateJobRequest{})
}

func validateJobSchedule(sl validator.StructLevel) {
	switch req := sl.Current().Interface().(type) {
	case CreateJobRequest:
		if req.ScheduledStart != nil && req.ScheduledEnd != nil && req.ScheduledEnd.Before(*req.ScheduledStart) {
			sl.ReportError(req.ScheduledEnd, "scheduledEnd", "ScheduledEnd", "gtefield", "scheduledStart")
		}
	case UpdateJobRequest:
		if req.ScheduledStart != nil && req.ScheduledEnd != nil && req.ScheduledEnd.Before(*req.ScheduledStart) {
			sl.ReportError(req.ScheduledEnd, "scheduledEnd", "ScheduledEnd", "gtefield", "scheduledStart")
		}
	}
}
