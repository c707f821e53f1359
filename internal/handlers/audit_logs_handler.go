package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/audit"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/tattoo-scheduler/internal/models"
)

type auditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs auditLister
	loc  *time.Location
}

func NewAuditLogsHandler(logs auditLister, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := audit.Filter{
		ProfessionalID: currentUserID(c),
		Action:         c.Query("action"),
		Entity:         c.Query("entity"),
		Page:           page,
		Limit:          limit,
	}

	// --------------------------------------------------
	// Período opcional (dias inteiros no fuso do serviço)
	// --------------------------------------------------

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := parseDateIn(h.loc, fromStr)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, "Data inicial inválida.")
			return
		}
		f.From = &from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := parseDateIn(h.loc, toStr)
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidDate, "Data final inválida.")
			return
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
