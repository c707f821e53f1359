package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/dto"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type servicePriceStore interface {
	ListByProfessional(ctx context.Context, professionalID uint, onlyActive bool) ([]models.ServicePrice, error)
	Upsert(ctx context.Context, sp *models.ServicePrice) error
}

type ServicePriceHandler struct {
	store servicePriceStore
	audit audit.Recorder
}

func NewServicePriceHandler(store servicePriceStore, recorder audit.Recorder) *ServicePriceHandler {
	return &ServicePriceHandler{store: store, audit: recorder}
}

// --------- Listagem ---------

// GET /api/me/services
func (h *ServicePriceHandler) ListMine(c *gin.Context) {
	h.list(c, currentUserID(c), false)
}

// GET /api/professionals/:id/services
func (h *ServicePriceHandler) ListPublic(c *gin.Context) {
	id, ok := professionalIDParam(c)
	if !ok {
		return
	}
	h.list(c, id, true)
}

func (h *ServicePriceHandler) list(c *gin.Context, professionalID uint, onlyActive bool) {
	prices, err := h.store.ListByProfessional(c.Request.Context(), professionalID, onlyActive)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, dto.FromServicePrices(prices))
}

// --------- Publicação ---------

// PUT /api/me/services/:service_type
func (h *ServicePriceHandler) Upsert(c *gin.Context) {
	professionalID := currentUserID(c)

	st, err := catalog.Parse(c.Param("service_type"))
	if err != nil {
		httperr.FromError(c, err, "invalid_service_type", "Tipo de serviço inválido.")
		return
	}

	var req dto.UpsertServicePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "Preço não pode ser negativo.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	sp := models.ServicePrice{
		ProfessionalID: professionalID,
		ServiceType:    st.String(),
		Price:          req.Price.Round(2),
		Active:         active,
	}
	if err := h.store.Upsert(c.Request.Context(), &sp); err != nil {
		httperr.FromError(c, err, "failed_to_save_service", "Erro ao salvar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		ProfessionalID: professionalID,
		UserID:         &professionalID,
		Action:         audit.ActionServicePriceUpdated,
		Entity:         "service_price",
		EntityID:       st.String(),
		Metadata: map[string]string{
			"price":  sp.Price.StringFixed(2),
			"active": strconv.FormatBool(active),
		},
	})

	httpresp.OK(c, dto.FromServicePrices([]models.ServicePrice{sp})[0])
}
