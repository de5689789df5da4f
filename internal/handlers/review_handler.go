package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucReview "github.com/BruksfildServices01/salon-booking/internal/usecase/review"
)

type ReviewHandler struct {
	create *ucReview.CreateReview
	list   *ucReview.ListServiceReviews
	log    *zap.Logger
}

func NewReviewHandler(create *ucReview.CreateReview, list *ucReview.ListServiceReviews, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{create: create, list: list, log: log}
}

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"max=1000"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	rv, err := h.create.Execute(c.Request.Context(), middleware.Principal(c), ucReview.CreateInput{
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Review created.", rv)
}

func (h *ReviewHandler) ListByService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := h.list.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, "Reviews retrieved.", reviews)
}
