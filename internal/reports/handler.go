package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventsynk/eventsynk-backend/internal/event"
	"github.com/eventsynk/eventsynk-backend/internal/registration"
)

type Handler struct {
	exporter RosterExporter
	regSvc   *registration.Service
	eventSvc *event.Service
}

func NewHandler(exporter RosterExporter, regSvc *registration.Service, eventSvc *event.Service) *Handler {
	return &Handler{exporter: exporter, regSvc: regSvc, eventSvc: eventSvc}
}

// ExportParticipants streams the organiser's roster as csv, excel or pdf
func (h *Handler) ExportParticipants(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event id.", "status": http.StatusBadRequest})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	userID := c.GetUint("user_id")

	e, err := h.eventSvc.GetEvent(uint(eventID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
		return
	}

	participants, err := h.regSvc.GetParticipants(uint(eventID), userID)
	if err != nil {
		if errors.Is(err, registration.ErrNotOrganiser) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden: Only organiser can view participants.", "status": http.StatusForbidden})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found.", "status": http.StatusNotFound})
		return
	}

	fieldNames := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fieldNames = append(fieldNames, f.FieldName)
	}

	out, filename, contentType, err := h.exporter.Export(format, RosterData{
		EventTitle:   e.Title,
		FieldNames:   fieldNames,
		Participants: participants,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error(), "status": http.StatusBadRequest})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(http.StatusOK, contentType, out)
}
