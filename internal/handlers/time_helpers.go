package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/middleware"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
)

// --------------------------------------------------
// Datas sempre no fuso configurado do serviço
// --------------------------------------------------

func parseDateIn(loc *time.Location, dateStr string) (time.Time, error) {
	return timezone.ParseDate(dateStr, loc)
}

func parseDateTimeIn(
	loc *time.Location,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		loc,
	)
}

// dateQueryOrToday lê ?date=, usando hoje quando ausente.
// Responde 400 e devolve false quando a data é inválida.
func dateQueryOrToday(c *gin.Context, loc *time.Location, clock timezone.Clock) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		return timezone.StartOfDay(clock(), loc), true
	}

	date, err := parseDateIn(loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Data inválida. Use AAAA-MM-DD.")
		return time.Time{}, false
	}
	return date, true
}

// --------------------------------------------------
// Parâmetros de rota
// --------------------------------------------------

func professionalIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return 0, false
	}
	return uint(id), true
}

func appointmentIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Agendamento inválido.")
		return uuid.Nil, false
	}
	return id, true
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}
