package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
)

// ======================================================
// USE CASES
// ======================================================

type appointmentCreator interface {
	Execute(ctx context.Context, in ucAppointment.CreateAppointmentInput) (*models.Appointment, error)
}

type appointmentCanceller interface {
	Execute(ctx context.Context, appointmentID uuid.UUID, requesterID uint) (*models.Appointment, error)
}

type appointmentsByDate interface {
	Execute(ctx context.Context, professionalID uint, date time.Time) ([]dto.AppointmentDTO, error)
}

type appointmentsByMonth interface {
	Execute(ctx context.Context, professionalID uint, year int, month int) ([]dto.AppointmentDTO, error)
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create      appointmentCreator
	cancel      appointmentCanceller
	listByDate  appointmentsByDate
	listByMonth appointmentsByMonth
	loc         *time.Location
	clock       timezone.Clock
}

func NewAppointmentHandler(
	create appointmentCreator,
	cancel appointmentCanceller,
	listByDate appointmentsByDate,
	listByMonth appointmentsByMonth,
	loc *time.Location,
	clock timezone.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:      create,
		cancel:      cancel,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		loc:         loc,
		clock:       clock,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	startAt, err := parseDateTimeIn(h.loc, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Data ou horário inválido.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ProfessionalID: req.ProfessionalID,
		ClientID:       currentUserID(c),
		ServiceType:    req.ServiceType,
		StartAt:        startAt,
		Notes:          req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, dto.FromAppointment(*ap, h.loc))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := appointmentIDParam(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, dto.FromAppointment(*ap, h.loc))
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, ok := dateQueryOrToday(c, h.loc, h.clock)
	if !ok {
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), currentUserID(c), date)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	now := h.clock().In(h.loc)

	year := now.Year()
	month := int(now.Month())

	if s := c.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, "Ano inválido.")
			return
		}
		year = v
	}

	if s := c.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, "Mês inválido.")
			return
		}
		month = v
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), currentUserID(c), year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, list)
}
