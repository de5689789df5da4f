package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/chatbot"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
)

const HeaderGuestToken = "X-Guest-Token"

type ChatbotHandler struct {
	svc *chatbot.Service
	log *zap.Logger
}

func NewChatbotHandler(svc *chatbot.Service, log *zap.Logger) *ChatbotHandler {
	return &ChatbotHandler{svc: svc, log: log}
}

type SendMessageRequest struct {
	SessionID  uint   `json:"session_id"`
	GuestToken string `json:"guest_token"`
	Message    string `json:"message" binding:"required"`
}

func (h *ChatbotHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}

	token := req.GuestToken
	if token == "" {
		token = c.GetHeader(HeaderGuestToken)
	}

	res, err := h.svc.Send(c.Request.Context(), middleware.Principal(c), chatbot.SendInput{
		SessionID:  req.SessionID,
		GuestToken: token,
		Message:    req.Message,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Message sent.", res)
}

// Messages is polled by the widget with the last id it has seen.
func (h *ChatbotHandler) Messages(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var afterID uint64
	if s := c.Query("after_id"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_request", map[string]string{"after_id": "Must be a number"})
			return
		}
		afterID = v
	}

	token := c.Query("guest_token")
	if token == "" {
		token = c.GetHeader(HeaderGuestToken)
	}

	msgs, err := h.svc.Messages(c.Request.Context(), middleware.Principal(c), id, token, uint(afterID))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, "Messages retrieved.", msgs)
}
