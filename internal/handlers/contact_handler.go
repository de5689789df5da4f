package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	ucContact "github.com/BruksfildServices01/salon-booking/internal/usecase/contact"
)

type ContactHandler struct {
	submit *ucContact.SubmitContact
	// nil disables the DNS check on the sender's domain.
	domainOK func(email string) bool
	log      *zap.Logger
}

func NewContactHandler(submit *ucContact.SubmitContact, domainOK func(string) bool, log *zap.Logger) *ContactHandler {
	return &ContactHandler{submit: submit, domainOK: domainOK, log: log}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=100"`
	Phone   string `json:"phone" binding:"max=20"`
	Subject string `json:"subject" binding:"max=150"`
	Message string `json:"message" binding:"required,max=5000"`
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if !bindJSON(c, &req) {
		return
	}

	if h.domainOK != nil && !h.domainOK(req.Email) {
		httperr.Respond(c, h.log, httperr.ErrValidation("invalid_email_domain", map[string]string{"email": req.Email}))
		return
	}

	sub, err := h.submit.Execute(c.Request.Context(), ucContact.Input{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Thank you, we will get back to you soon.", sub)
}
