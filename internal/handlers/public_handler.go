package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/tattoo-scheduler/internal/usecase/appointment"
)

type slotFinder interface {
	Execute(ctx context.Context, in ucAppointment.SlotsInput) (*ucAppointment.SlotsResult, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	slots slotFinder
	loc   *time.Location
}

func NewPublicHandler(slots slotFinder, loc *time.Location) *PublicHandler {
	return &PublicHandler{slots: slots, loc: loc}
}

////////////////////////////////////////////////////////
// SERVICE TYPES
////////////////////////////////////////////////////////

func (h *PublicHandler) ServiceTypes(c *gin.Context) {
	httpresp.List(c, dto.FromCatalog())
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

// GET /api/professionals/:id/slots?date=YYYY-MM-DD&service_type=ID
func (h *PublicHandler) Slots(c *gin.Context) {
	professionalID, ok := professionalIDParam(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	serviceType := strings.TrimSpace(c.Query("service_type"))

	if dateStr == "" || serviceType == "" {
		httperr.BadRequest(c, "missing_params", "Data e tipo de serviço obrigatórios.")
		return
	}

	date, err := parseDateIn(h.loc, dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Data inválida. Use AAAA-MM-DD.")
		return
	}

	res, err := h.slots.Execute(c.Request.Context(), ucAppointment.SlotsInput{
		ProfessionalID: professionalID,
		Date:           date,
		ServiceType:    serviceType,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_slots", "Erro ao calcular horários.")
		return
	}

	out := dto.SlotsDTO{
		ProfessionalID: professionalID,
		Date:           date.Format("2006-01-02"),
		ServiceType:    res.ServiceType.String(),
		DurationHours:  int(res.Duration / time.Hour),
		Slots:          make([]dto.SlotDTO, 0, len(res.Starts)),
	}
	for _, start := range res.Starts {
		local := start.In(h.loc)
		out.Slots = append(out.Slots, dto.SlotDTO{
			Start: local,
			End:   local.Add(res.Duration),
			Label: availability.FromTime(local).String(),
		})
	}

	httpresp.OK(c, out)
}
