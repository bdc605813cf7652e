package registration

import (
	"testing"

	"github.com/eventsynk/eventsynk-backend/internal/event"
)

func eventFields() []event.RegistrationField {
	return []event.RegistrationField{
		{ID: 1, EventID: 10, FieldName: "College", FieldType: "text", IsRequired: true},
		{ID: 2, EventID: 10, FieldName: "Phone", FieldType: "text", IsRequired: false},
		{ID: 3, EventID: 10, FieldName: "Year", FieldType: "number", IsRequired: true},
	}
}

func TestFilterResponsesKeepsValidAnswers(t *testing.T) {
	submitted := []SubmittedResponse{
		{FieldID: 1, ResponseValue: "NIT Trichy"},
		{FieldID: 2, ResponseValue: "9876543210"},
		{FieldID: 3, ResponseValue: "3"},
	}

	accepted := FilterResponses(eventFields(), submitted)
	if len(accepted) != 3 {
		t.Fatalf("expected 3 accepted responses, got %d", len(accepted))
	}
	if accepted[0].FieldID != 1 || accepted[0].ResponseValue != "NIT Trichy" {
		t.Errorf("unexpected first response: %+v", accepted[0])
	}
}

func TestFilterResponsesDropsForeignField(t *testing.T) {
	submitted := []SubmittedResponse{
		{FieldID: 99, ResponseValue: "belongs to another event"},
		{FieldID: 2, ResponseValue: "9876543210"},
	}

	accepted := FilterResponses(eventFields(), submitted)
	if len(accepted) != 1 {
		t.Fatalf("expected 1 accepted response, got %d", len(accepted))
	}
	if accepted[0].FieldID != 2 {
		t.Errorf("expected field 2 to survive, got %d", accepted[0].FieldID)
	}
}

func TestFilterResponsesDropsEmptyRequired(t *testing.T) {
	submitted := []SubmittedResponse{
		{FieldID: 1, ResponseValue: ""},
		{FieldID: 3, ResponseValue: "2"},
	}

	accepted := FilterResponses(eventFields(), submitted)
	if len(accepted) != 1 {
		t.Fatalf("expected 1 accepted response, got %d", len(accepted))
	}
	if accepted[0].FieldID != 3 {
		t.Errorf("expected field 3 to survive, got %d", accepted[0].FieldID)
	}
}

func TestFilterResponsesKeepsEmptyOptional(t *testing.T) {
	submitted := []SubmittedResponse{
		{FieldID: 2, ResponseValue: ""},
	}

	accepted := FilterResponses(eventFields(), submitted)
	if len(accepted) != 1 {
		t.Fatalf("expected empty optional answer to be kept, got %d responses", len(accepted))
	}
}

func TestFilterResponsesEmptySubmission(t *testing.T) {
	if accepted := FilterResponses(eventFields(), nil); len(accepted) != 0 {
		t.Fatalf("expected no responses for empty submission, got %d", len(accepted))
	}
}
