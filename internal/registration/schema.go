package registration

import (
	"github.com/eventsynk/eventsynk-backend/internal/event"
)

// FilterResponses applies the dynamic-schema acceptance policy: a submitted
// pair is kept only when the referenced field belongs to the event's own field
// set and, for required fields, the value is non-empty. Everything else is
// silently dropped — registration itself still succeeds, leaving a documented
// incompleteness when a required answer is missing.
func FilterResponses(fields []event.RegistrationField, submitted []SubmittedResponse) []RegistrationFieldResponse {
	byID := make(map[uint]event.RegistrationField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	var accepted []RegistrationFieldResponse
	for _, resp := range submitted {
		field, ok := byID[resp.FieldID]
		if !ok {
			continue // field from another event, or unknown
		}
		if field.IsRequired && resp.ResponseValue == "" {
			continue
		}
		accepted = append(accepted, RegistrationFieldResponse{
			FieldID:       resp.FieldID,
			ResponseValue: resp.ResponseValue,
		})
	}
	return accepted
}
