package reports

import (
	"github.com/eventsynk/eventsynk-backend/internal/registration"
)

// Export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// RosterData is everything the exporter needs to lay out a participant roster.
type RosterData struct {
	EventTitle   string
	FieldNames   []string // registration-field columns, in definition order
	Participants []registration.ParticipantRow
}
