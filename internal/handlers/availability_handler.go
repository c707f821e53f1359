package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
)

type weeklyGetter interface {
	Execute(ctx context.Context, professionalID uint) (*domain.Weekly, error)
}

type weeklySetter interface {
	Execute(ctx context.Context, professionalID uint, days domain.Days) (*domain.Weekly, error)
}

type weeklyDeleter interface {
	Execute(ctx context.Context, professionalID uint) error
}

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	get weeklyGetter
	set weeklySetter
	del weeklyDeleter
}

func NewAvailabilityHandler(
	get weeklyGetter,
	set weeklySetter,
	del weeklyDeleter,
) *AvailabilityHandler {
	return &AvailabilityHandler{get: get, set: set, del: del}
}

// GET /api/me/availability
func (h *AvailabilityHandler) GetMine(c *gin.Context) {
	h.respondWeekly(c, currentUserID(c))
}

// GET /api/professionals/:id/availability
func (h *AvailabilityHandler) GetByProfessional(c *gin.Context) {
	id, ok := professionalIDParam(c)
	if !ok {
		return
	}
	h.respondWeekly(c, id)
}

func (h *AvailabilityHandler) respondWeekly(c *gin.Context, professionalID uint) {
	w, err := h.get.Execute(c.Request.Context(), professionalID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_availability", "Erro ao buscar disponibilidade.")
		return
	}

	httpresp.OK(c, dto.FromWeekly(w))
}

// PUT /api/me/availability
func (h *AvailabilityHandler) Update(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	days, err := req.ToDays()
	if err != nil {
		httperr.FromError(c, err, "invalid_request", "Dados inválidos.")
		return
	}

	w, err := h.set.Execute(c.Request.Context(), currentUserID(c), days)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_availability", "Erro ao salvar disponibilidade.")
		return
	}

	httpresp.OK(c, dto.FromWeekly(w))
}

// DELETE /api/me/availability
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	if err := h.del.Execute(c.Request.Context(), currentUserID(c)); err != nil {
		httperr.FromError(c, err, "failed_to_delete_availability", "Erro ao remover disponibilidade.")
		return
	}

	httpresp.NoContent(c)
}
