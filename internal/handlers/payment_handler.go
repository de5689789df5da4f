package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucPayment "github.com/BruksfildServices01/salon-booking/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	gateway *ucPayment.Gateway
	log     *zap.Logger
}

func NewPaymentHandler(gateway *ucPayment.Gateway, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required"`
	BankCode  string `json:"bank_code" binding:"max=20"`
	Language  string `json:"language" binding:"omitempty,oneof=vi vn en"`
}

type RefundRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	Amount        int64  `json:"amount" binding:"min=0"`
	Reason        string `json:"reason" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.gateway.CreateRedirectURL(c.Request.Context(), ucPayment.CreatePaymentInput{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		BankCode:  req.BankCode,
		Locale:    req.Language,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Payment created.", res)
}

// ======================================================
// GATEWAY CALLBACKS
// ======================================================

// Return handles the customer's browser coming back from the gateway.
func (h *PaymentHandler) Return(c *gin.Context) {
	res := h.gateway.HandleReturn(c.Request.Context(), c.Request.URL.Query())
	if res.Success {
		httpresp.OK(c, res.Message, res)
		return
	}

	httperr.Write(c, returnStatus(res.Code), httperr.KindBusiness, res.Code, res.Payment)
}

// IPN answers with the gateway's bare {RspCode, Message} contract, never
// the envelope.
func (h *PaymentHandler) IPN(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusOK, ucPayment.IPNResult{RspCode: ucPayment.RspUnknownError, Message: "Unknown error"})
		return
	}

	c.JSON(http.StatusOK, h.gateway.HandleIPN(c.Request.Context(), c.Request.Form))
}

func returnStatus(code string) int {
	switch code {
	case "invalid_signature":
		return http.StatusBadRequest
	case "transaction_not_found", "payment_not_found":
		return http.StatusNotFound
	case "internal_error":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

// ======================================================
// STAFF
// ======================================================

func (h *PaymentHandler) Refund(c *gin.Context) {
	if !requireStaff(c) {
		return
	}

	var req RefundRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.gateway.Refund(c.Request.Context(), ucPayment.RefundInput{
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Reason:        req.Reason,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Payment refunded.", p)
}

func (h *PaymentHandler) Query(c *gin.Context) {
	if !requireStaff(c) {
		return
	}

	res, err := h.gateway.Query(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Payment retrieved.", res)
}

func requireStaff(c *gin.Context) bool {
	p := middleware.Principal(c)
	if p == nil {
		httperr.Unauthorized(c, "unauthenticated")
		return false
	}
	if !p.IsStaff() {
		httperr.Write(c, http.StatusForbidden, httperr.KindForbidden, "forbidden", nil)
		return false
	}
	return true
}
