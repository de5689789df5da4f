package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	log  *zap.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

type AuditLogsQuery struct {
	BranchID *uint  `form:"branch_id"`
	Action   string `form:"action"`
	Entity   string `form:"entity"`
	From     string `form:"from" binding:"omitempty,ymd"`
	To       string `form:"to" binding:"omitempty,ymd"`
	Page     int    `form:"page" binding:"min=0"`
	Limit    int    `form:"limit" binding:"min=0"`
}

type auditLogsMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// List is staff-only; it pages through the audit trail newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	if !requireStaff(c) {
		return
	}

	var q AuditLogsQuery
	if !bindQuery(c, &q) {
		return
	}

	f := audit.Filter{
		BranchID: q.BranchID,
		Action:   q.Action,
		Entity:   q.Entity,
		Page:     q.Page,
		Limit:    q.Limit,
	}
	// Dates were validated by binding.
	if q.From != "" {
		from, _ := timezone.ParseDate(q.From)
		f.From = &from
	}
	if q.To != "" {
		to, _ := timezone.ParseDate(q.To)
		f.To = &to
	}
	f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if logs == nil {
		logs = []models.AuditLog{}
	}
	httpresp.Write(c, http.StatusOK, httpresp.Envelope{
		Success: true,
		Message: "Audit logs retrieved.",
		Data:    logs,
		Meta:    auditLogsMeta{Page: f.Page, Limit: f.Limit, Total: total},
	})
}
