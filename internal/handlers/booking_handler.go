package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create   *ucBooking.CreateBooking
	update   *ucBooking.UpdateBooking
	cancel   *ucBooking.CancelBooking
	confirm  *ucBooking.StaffTransition
	complete *ucBooking.StaffTransition
	get      *ucBooking.GetBooking
	listMine *ucBooking.ListMyBookings
	slots    *ucBooking.Slots
	log      *zap.Logger
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	update *ucBooking.UpdateBooking,
	cancel *ucBooking.CancelBooking,
	confirm *ucBooking.StaffTransition,
	complete *ucBooking.StaffTransition,
	get *ucBooking.GetBooking,
	listMine *ucBooking.ListMyBookings,
	slots *ucBooking.Slots,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:   create,
		update:   update,
		cancel:   cancel,
		confirm:  confirm,
		complete: complete,
		get:      get,
		listMine: listMine,
		slots:    slots,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BranchID      uint   `json:"branch_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	StaffID       *uint  `json:"staff_id"`
	Date          string `json:"booking_date" binding:"required,ymd"`
	Time          string `json:"booking_time" binding:"required,hhmm"`
	Notes         string `json:"notes" binding:"max=255"`
	PromotionCode string `json:"promotion_code" binding:"max=50"`

	GuestName  string `json:"guest_name" binding:"max=100"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email"`
	GuestPhone string `json:"guest_phone" binding:"max=20"`
}

type UpdateBookingRequest struct {
	Date    *string `json:"booking_date" binding:"omitempty,ymd"`
	Time    *string `json:"booking_time" binding:"omitempty,hhmm"`
	StaffID *uint   `json:"staff_id"`
	Notes   *string `json:"notes" binding:"omitempty,max=255"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

type SlotsQuery struct {
	BranchID  uint   `form:"branch_id" binding:"required"`
	ServiceID uint   `form:"service_id" binding:"required"`
	Date      string `form:"date" binding:"required,ymd"`
	StaffID   *uint  `form:"staff_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.create.Execute(c.Request.Context(), middleware.Principal(c), ucBooking.CreateInput{
		BranchID:      req.BranchID,
		ServiceID:     req.ServiceID,
		StaffID:       req.StaffID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		PromotionCode: req.PromotionCode,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, "Booking created.", b)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.listMine.Execute(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, "Bookings retrieved.", dto.BookingList(bookings))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking retrieved.", b)
}

func (h *BookingHandler) Slots(c *gin.Context) {
	var q SlotsQuery
	if !bindQuery(c, &q) {
		return
	}

	slots, err := h.slots.GenerateSlots(c.Request.Context(), ucBooking.SlotQuery{
		BranchID:  q.BranchID,
		Date:      q.Date,
		ServiceID: q.ServiceID,
		StaffID:   q.StaffID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, "Slots retrieved.", slots)
}

// ======================================================
// UPDATE / CANCEL
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.update.Execute(c.Request.Context(), middleware.Principal(c), id, ucBooking.UpdateInput{
		Date:    req.Date,
		Time:    req.Time,
		StaffID: req.StaffID,
		Notes:   req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking updated.", b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CancelBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), middleware.Principal(c), id, req.Reason)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, "Booking cancelled.", b)
}

// ======================================================
// STAFF
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.staffTransition(c, h.confirm, "Booking confirmed.")
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.staffTransition(c, h.complete, "Booking completed.")
}

func (h *BookingHandler) staffTransition(c *gin.Context, uc *ucBooking.StaffTransition, message string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := uc.Execute(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, message, b)
}
